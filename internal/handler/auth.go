package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"lab-portal/internal/common"
	"lab-portal/internal/dto"
	"lab-portal/internal/middleware"
	"lab-portal/internal/service"
	"lab-portal/internal/validation"
)

type AuthHandler struct {
	authService     service.AuthService
	purchaseService service.PurchaseService
}

func NewAuthHandler(authService service.AuthService, purchaseService service.PurchaseService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		purchaseService: purchaseService,
	}
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and name are required")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(&req); err != nil {
		return err
	}

	result, err := h.authService.SignIn(ctx, &req)
	if errors.Is(err, common.ErrDownstream) {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Failed to send verification email",
			"error":   err.Error(),
		})
	}
	if err != nil {
		return err
	}

	if !result.UserFound {
		return c.JSON(http.StatusOK, echo.Map{
			"success": false,
			"message": "User not found. Please checkout first.",
		})
	}

	resp := echo.Map{
		"success": true,
		"message": "Verification email sent. Please check your inbox.",
	}
	if result.Warning != "" {
		resp["message"] = result.Warning
		resp["error"] = result.EmailError
	}
	if result.VerificationLink != "" {
		resp["verificationLink"] = result.VerificationLink
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil || req.Token == "" || req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid verification link")
	}

	result, err := h.authService.Verify(ctx, req.Token, req.UserID)
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid verification link: User not found")
	case errors.Is(err, common.ErrTokenMismatch):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid verification link: Token mismatch")
	case errors.Is(err, common.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusBadRequest, "Verification link has expired. Please request a new one.")
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Authentication successful",
		"user":    result.User,
		"token":   result.SessionToken,
	})
}

// Me returns the signed-in buyer and what they own.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	purchases, err := h.purchaseService.UserPurchases(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user": dto.UserResponse{
			ID:    purchases.ID,
			Name:  purchases.Name,
			Email: purchases.Email,
		},
		"purchasedItemsCount": purchases.PurchasedItemsCount,
		"purchasedItems":      purchases.PurchasedItems,
	})
}
