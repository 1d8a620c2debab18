package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"lab-portal/internal/config"
	"lab-portal/internal/dto"
	"lab-portal/internal/handler"
	"lab-portal/internal/logging"
	authmw "lab-portal/internal/middleware"
	"lab-portal/internal/model"
	"lab-portal/internal/service"
)

// Services are the application services the HTTP layer depends on.
type Services struct {
	Auth           service.AuthService
	Checkout       service.CheckoutService
	Purchase       service.PurchaseService
	Payment        service.PaymentService
	Product        service.ProductService
	LabManual      service.ContentService[model.LabManual]
	Faqs           service.ContentService[model.Faqs]
	CourseVideo    service.ContentService[model.CourseVideo]
	CourseMaterial service.ContentService[model.CourseMaterial]
	MachineForm    service.MachineFormService
	Exam           service.ExamService
}

type Server struct {
	echo          *echo.Echo
	sessionSecret []byte

	authHandler           *handler.AuthHandler
	checkoutHandler       *handler.CheckoutHandler
	orderHandler          *handler.OrderHandler
	productHandler        *handler.ProductHandler
	labManualHandler      *handler.ContentHandler[model.LabManual, dto.LabManualRequest, *dto.LabManualRequest]
	faqsHandler           *handler.ContentHandler[model.Faqs, dto.FaqsRequest, *dto.FaqsRequest]
	courseVideoHandler    *handler.ContentHandler[model.CourseVideo, dto.CourseVideoRequest, *dto.CourseVideoRequest]
	courseMaterialHandler *handler.ContentHandler[model.CourseMaterial, dto.CourseMaterialRequest, *dto.CourseMaterialRequest]
	machineFormHandler    *handler.MachineFormHandler
	examHandler           *handler.ExamHandler
}

func NewServer(cfg *config.Config, logger logging.Logger, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Environment.IsDevelopment()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.Warn(c.Request().Context(), "request", append(args, "error", v.Error)...)
				return nil
			}
			logger.Info(c.Request().Context(), "request", args...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))
	e.Use(middleware.BodyLimit(cfg.HTTP.BodyLimit))

	labManuals := handler.NewContentHandler[model.LabManual, dto.LabManualRequest](services.LabManual, handler.ContentOptions{
		Noun:       "Lab manual",
		Collection: "tasks",
		Duplicate:  "Lab manual already exists for this product. You can edit it instead.",
	})
	faqs := handler.NewContentHandler[model.Faqs, dto.FaqsRequest](services.Faqs, handler.ContentOptions{
		Noun:       "FAQs",
		Collection: "faqs",
		Duplicate:  "Cannot create FAQs. Product already has FAQs. You can edit it instead.",
	})
	courseVideos := handler.NewContentHandler[model.CourseVideo, dto.CourseVideoRequest](services.CourseVideo, handler.ContentOptions{
		Noun:       "Course videos",
		Collection: "groups",
		Single:     true,
		Duplicate:  "Course videos already exist for this product",
	})
	courseMaterials := handler.NewContentHandler[model.CourseMaterial, dto.CourseMaterialRequest](services.CourseMaterial, handler.ContentOptions{
		Noun:       "Course materials",
		Collection: "driveLinks",
		Single:     true,
		Duplicate:  "Cannot create course material. Product already has materials. You can edit it instead.",
	})

	s := &Server{
		echo:                  e,
		sessionSecret:         []byte(cfg.Auth.SessionSecret),
		authHandler:           handler.NewAuthHandler(services.Auth, services.Purchase),
		checkoutHandler:       handler.NewCheckoutHandler(services.Checkout, services.Purchase),
		orderHandler:          handler.NewOrderHandler(services.Payment),
		productHandler:        handler.NewProductHandler(services.Product),
		labManualHandler:      labManuals,
		faqsHandler:           faqs,
		courseVideoHandler:    courseVideos,
		courseMaterialHandler: courseMaterials,
		machineFormHandler:    handler.NewMachineFormHandler(services.MachineForm),
		examHandler:           handler.NewExamHandler(services.Exam),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.RouteNotFound("/*", handler.NotFound)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := api.Group("/v1")

	// -------- auth --------
	auth := v1.Group("/auth")
	auth.POST("/signin", s.authHandler.SignIn)
	auth.GET("/verify", s.authHandler.Verify)
	auth.GET("/me", s.authHandler.Me, authmw.SessionAuth(s.sessionSecret))

	// -------- razorpay --------
	order := v1.Group("/order")
	order.POST("/create-order", s.orderHandler.CreateOrder)
	order.POST("/verify-payment", s.orderHandler.VerifyPayment)
	order.GET("/getkey", s.orderHandler.GetKey)
	order.GET("/paid-orders", s.orderHandler.PaidOrders)

	// -------- checkout --------
	checkout := v1.Group("/checkout")
	checkout.POST("", s.checkoutHandler.CreateOrder)
	checkout.POST("/user", s.checkoutHandler.SaveUser)
	checkout.GET("/users/purchases", s.checkoutHandler.UsersWithPurchases)
	checkout.GET("/users/purchases/:userId", s.checkoutHandler.UserPurchases)
	checkout.GET("/users/:userId/orders", s.checkoutHandler.UserOrders)
	checkout.PATCH("/checkout-user/:id", s.checkoutHandler.UpdateUser)
	checkout.PATCH("/:id/status", s.checkoutHandler.UpdateStatus)
	checkout.POST("/:id/products", s.checkoutHandler.AddItem)
	checkout.DELETE("/:orderId/products/:itemId", s.checkoutHandler.RemoveItem)

	// -------- catalog --------
	products := v1.Group("/products")
	products.POST("", s.productHandler.Create)
	products.GET("", s.productHandler.List)
	products.GET("/:id", s.productHandler.Get)
	products.PATCH("/:id", s.productHandler.Update)
	products.DELETE("/:id", s.productHandler.Delete)

	// -------- content --------
	labManuals := v1.Group("/labManuals")
	labManuals.GET("", s.labManualHandler.List)
	labManuals.GET("/product/:product", s.labManualHandler.ListByProduct)
	labManuals.POST("/save", s.labManualHandler.Save)
	labManuals.POST("/create", s.labManualHandler.Create)
	labManuals.PATCH("/update", s.labManualHandler.UpdateByProduct)
	labManuals.DELETE("/product/:product", s.labManualHandler.DeleteByProduct)

	faqs := v1.Group("/faqs")
	faqs.GET("", s.faqsHandler.List)
	faqs.GET("/product/:product", s.faqsHandler.ListByProduct)
	faqs.POST("/save", s.faqsHandler.Save)
	faqs.POST("/create", s.faqsHandler.Create)
	faqs.PUT("/update/:id", s.faqsHandler.UpdateByID)
	faqs.DELETE("/product/:product", s.faqsHandler.DeleteByProduct)

	courseVideos := v1.Group("/courseVideos")
	courseVideos.GET("", s.courseVideoHandler.List)
	courseVideos.GET("/product/:product", s.courseVideoHandler.ListByProduct)
	courseVideos.POST("/save", s.courseVideoHandler.Save)
	courseVideos.POST("/add", s.courseVideoHandler.Create)
	courseVideos.PUT("/update", s.courseVideoHandler.UpdateByProduct)
	courseVideos.DELETE("/product/:product", s.courseVideoHandler.DeleteByProduct)

	courseMaterials := v1.Group("/courseMaterials")
	courseMaterials.GET("", s.courseMaterialHandler.List)
	courseMaterials.GET("/product/:product", s.courseMaterialHandler.ListByProduct)
	courseMaterials.POST("/save", s.courseMaterialHandler.Save)
	courseMaterials.POST("/add", s.courseMaterialHandler.Create)
	courseMaterials.PUT("/edit/:product", s.courseMaterialHandler.UpdateByProduct)
	courseMaterials.DELETE("/product/:product", s.courseMaterialHandler.DeleteByProduct)

	machineForms := v1.Group("/machineForms")
	machineForms.GET("", s.machineFormHandler.List)
	machineForms.GET("/product/:product", s.machineFormHandler.ListByProduct)
	machineForms.POST("/save", s.machineFormHandler.Save)
	machineForms.POST("/:id/answer", s.machineFormHandler.Answer)
	machineForms.DELETE("/product/:product", s.machineFormHandler.DeleteByProduct)
	machineForms.DELETE("/:id", s.machineFormHandler.Delete)

	// -------- exams --------
	exam := v1.Group("/exam")
	exam.POST("/:userId", s.examHandler.Schedule)
	exam.GET("", s.examHandler.List)
	exam.GET("/:id", s.examHandler.Get)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
