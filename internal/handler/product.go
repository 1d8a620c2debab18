package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-portal/internal/model"
	"lab-portal/internal/repository"
	"lab-portal/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var product model.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}

	if err := h.productService.Create(ctx, &product); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.List(ctx, repository.ProductFilter{
		Title:                c.QueryParam("title"),
		Category:             c.QueryParam("category"),
		Prices:               c.QueryParam("prices"),
		BootcampAvailability: c.QueryParam("bootcampAvailability"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(products),
		"data":    products,
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.productService.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    product,
	})
}

// Update merges the JSON body onto the stored product.
func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	if len(body) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body is empty")
	}

	product, err := h.productService.Update(ctx, c.Param("id"), func(p *model.Product) error {
		if err := json.Unmarshal(body, p); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.productService.Delete(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
