package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-portal/internal/dto"
	"lab-portal/internal/service"
)

// OrderHandler serves the Razorpay checkout flow.
type OrderHandler struct {
	paymentService service.PaymentService
}

func NewOrderHandler(paymentService service.PaymentService) *OrderHandler {
	return &OrderHandler{paymentService: paymentService}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.paymentService.CreateOrder(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"order":   order,
	})
}

func (h *OrderHandler) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.paymentService.VerifyPayment(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Payment verified successfully",
		"order":   order,
	})
}

func (h *OrderHandler) GetKey(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"razorpay_key_id": h.paymentService.KeyID(),
	})
}

func (h *OrderHandler) PaidOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.paymentService.PaidOrders(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"orders":  orders,
	})
}
