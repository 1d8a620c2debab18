package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lab-portal/internal/common"
	"lab-portal/internal/dto"
	"lab-portal/internal/service"
)

type ExamHandler struct {
	examService service.ExamService
}

func NewExamHandler(examService service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

func (h *ExamHandler) Schedule(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ExamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	exam, err := h.examService.Schedule(ctx, c.Param("userId"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Exam scheduled successfully",
		"data":    exam,
	})
}

func (h *ExamHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	exams, err := h.examService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(exams),
		"data":    exams,
	})
}

func (h *ExamHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	exam, err := h.examService.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Exam not found").SetInternal(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    exam,
	})
}
