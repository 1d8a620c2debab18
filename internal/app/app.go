// Package app wires repositories and services together.
package app

import (
	"gorm.io/gorm"

	"lab-portal/internal/client"
	"lab-portal/internal/config"
	"lab-portal/internal/logging"
	"lab-portal/internal/repository"
	"lab-portal/internal/server"
	"lab-portal/internal/service"
)

// Clients are the outbound integrations, built once by the caller.
type Clients struct {
	Razorpay client.RazorpayClient
	Mail     client.MailClient
}

func NewServices(cfg *config.Config, db *gorm.DB, clients Clients, logger logging.Logger) server.Services {
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewCheckoutUserRepository(db)
	examRepo := repository.NewExamRepository(db)
	formRepo := repository.NewMachineFormRepository(db)

	return server.Services{
		Auth: service.NewAuthService(userRepo, clients.Mail, logger, service.AuthOptions{
			BaseURL:       cfg.BaseURL,
			TokenTTL:      cfg.Auth.TokenTTL,
			SessionTTL:    cfg.Auth.SessionTTL,
			SessionSecret: []byte(cfg.Auth.SessionSecret),
			DevMode:       cfg.Environment.IsDevelopment(),
		}),
		Checkout: service.NewCheckoutService(db, orderRepo, userRepo, logger),
		Purchase: service.NewPurchaseService(userRepo, orderRepo),
		Payment:  service.NewPaymentService(db, clients.Razorpay, orderRepo, userRepo, logger),
		Product:  service.NewProductService(productRepo),

		LabManual:      service.NewContentService("lab manual", repository.NewLabManualRepository(db), productRepo),
		Faqs:           service.NewContentService("faqs", repository.NewFaqsRepository(db), productRepo),
		CourseVideo:    service.NewContentService("course videos", repository.NewCourseVideoRepository(db), productRepo),
		CourseMaterial: service.NewContentService("course materials", repository.NewCourseMaterialRepository(db), productRepo),

		MachineForm: service.NewMachineFormService(formRepo, productRepo, logger),
		Exam:        service.NewExamService(db, examRepo, userRepo, logger),
	}
}
