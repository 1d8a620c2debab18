package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-portal/internal/dto"
	"lab-portal/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	purchaseService service.PurchaseService
}

func NewCheckoutHandler(checkoutService service.CheckoutService, purchaseService service.PurchaseService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		purchaseService: purchaseService,
	}
}

func (h *CheckoutHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.checkoutService.CreateOrder(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Order created successfully",
		"data":    order,
	})
}

func (h *CheckoutHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	if req.IsSuccess == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isSuccess is required")
	}

	order, err := h.checkoutService.UpdateStatus(ctx, c.Param("id"), *req.IsSuccess)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Order status updated to " + string(order.Status),
		"data":    order,
	})
}

func (h *CheckoutHandler) SaveUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.checkoutService.SaveCheckoutUser(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Checkout user saved successfully",
		"data":    user,
	})
}

func (h *CheckoutHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.checkoutService.AddItem(ctx, c.Param("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product added to order",
		"data":    order,
	})
}

func (h *CheckoutHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.checkoutService.RemoveItem(ctx, c.Param("orderId"), c.Param("itemId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product removed from order",
		"data":    order,
	})
}

func (h *CheckoutHandler) UserOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.purchaseService.UserOrders(ctx, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":             true,
		"userId":              orders.UserID,
		"userName":            orders.UserName,
		"userEmail":           orders.UserEmail,
		"purchasedItemsCount": orders.PurchasedItemsCount,
		"purchasedItems":      orders.PurchasedItems,
	})
}

func (h *CheckoutHandler) UsersWithPurchases(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.purchaseService.UsersWithPurchases(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"userCount": len(users),
		"data":      users,
	})
}

func (h *CheckoutHandler) UserPurchases(c echo.Context) error {
	ctx := c.Request().Context()

	purchases, err := h.purchaseService.UserPurchases(ctx, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    purchases,
	})
}

func (h *CheckoutHandler) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateCheckoutUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.checkoutService.UpdateCheckoutUser(ctx, c.Param("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Checkout user updated successfully",
		"user":    user,
	})
}
