package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"lab-portal/internal/common"
	"lab-portal/internal/logging"
	"lab-portal/internal/validation"
)

// NewHTTPErrorHandler renders every error as {success:false, message} and
// maps application errors onto status codes. Server errors are logged and
// their detail is only exposed when echo runs in debug mode.
func NewHTTPErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		body := echo.Map{"success": false}

		var (
			httpErr *echo.HTTPError
			vErr    *common.ValidationError
			vErrs   validator.ValidationErrors
		)
		switch {
		case errors.Is(err, echo.ErrNotFound):
			code = http.StatusNotFound
			body["message"] = "Route not found"
		case errors.As(err, &httpErr):
			code = httpErr.Code
			body["message"] = httpErr.Message
		case errors.As(err, &vErr):
			code = http.StatusBadRequest
			body["message"] = vErr.Message
			if len(vErr.Fields) > 0 {
				body["errors"] = fieldMap(vErr.Fields)
				if vErr.Message == "" {
					body["message"] = "Validation failed"
				}
			}
		case errors.As(err, &vErrs):
			code = http.StatusBadRequest
			fields := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				fields[fe.Field()] = fe.Translate(validation.Translator)
			}
			body["message"] = "Validation failed"
			body["errors"] = fields
		case errors.Is(err, common.ErrNotFound):
			code = http.StatusNotFound
			body["message"] = err.Error()
		case errors.Is(err, common.ErrAlreadyExists), errors.Is(err, common.ErrVersionConflict):
			code = http.StatusConflict
			body["message"] = err.Error()
		case errors.Is(err, common.ErrInvalidSignature):
			code = http.StatusBadRequest
			body["message"] = "Invalid signature"
		default:
			body["message"] = http.StatusText(http.StatusInternalServerError)
		}

		if code >= http.StatusInternalServerError {
			logger.Error(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"error", err,
			)
			if c.Echo().Debug {
				body["error"] = err.Error()
			}
		}

		var rerr error
		if c.Request().Method == http.MethodHead {
			rerr = c.NoContent(code)
		} else {
			rerr = c.JSON(code, body)
		}
		if rerr != nil {
			logger.Error(c.Request().Context(), "write error response", "error", rerr)
		}
	}
}

func fieldMap(fields []common.FieldError) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Field] = f.Error
	}
	return m
}

// bindAndValidate decodes the request into req and validates its tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return validation.Struct(req)
}

// NotFound is the fallback for unknown routes.
func NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Route not found"})
}
