package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-portal/internal/common"
	"lab-portal/internal/dto"
	"lab-portal/internal/service"
)

type MachineFormHandler struct {
	formService service.MachineFormService
}

func NewMachineFormHandler(formService service.MachineFormService) *MachineFormHandler {
	return &MachineFormHandler{formService: formService}
}

func (h *MachineFormHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	forms, err := h.formService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(forms),
		"data":    forms,
	})
}

func (h *MachineFormHandler) ListByProduct(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.formService.ListByProduct(ctx, c.Param("product"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"count":        len(result.Forms),
		"productTitle": result.ProductTitle,
		"data":         result.Forms,
		"groupedData":  result.GroupedData,
	})
}

func (h *MachineFormHandler) Save(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.MachineFormRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	form := req.ToModel()
	if err := h.formService.Create(ctx, form); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Machine form saved successfully",
		"data":    form,
	})
}

func (h *MachineFormHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.formService.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Machine form not found").SetInternal(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Machine form deleted successfully",
	})
}

func (h *MachineFormHandler) DeleteByProduct(c echo.Context) error {
	ctx := c.Request().Context()

	n, err := h.formService.DeleteByProduct(ctx, c.Param("product"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      "Machine forms deleted successfully",
		"deletedCount": n,
	})
}

func (h *MachineFormHandler) Answer(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.MachineAnswerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	form, err := h.formService.AddAnswer(ctx, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Machine form not found").SetInternal(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Answer submitted successfully",
		"data":    form,
	})
}
