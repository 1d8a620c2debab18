package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"lab-portal/internal/common"
	"lab-portal/internal/logging"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		debug    bool
		wantCode int
		wantBody string
	}{
		{
			name:     "http error",
			err:      echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated"),
			wantCode: http.StatusUnauthorized,
			wantBody: `{"success":false,"message":"Not authenticated"}`,
		},
		{
			name:     "validation",
			err:      common.NewValidationError("", common.FieldError{Field: "email", Error: "email must be a valid email address"}),
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Validation failed","errors":{"email":"email must be a valid email address"}}`,
		},
		{
			name:     "validation message only",
			err:      common.NewValidationError("Cannot remove the last item from an order"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Cannot remove the last item from an order"}`,
		},
		{
			name:     "not found",
			err:      fmt.Errorf("order o1: %w", common.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"success":false,"message":"order o1: not found"}`,
		},
		{
			name:     "conflict",
			err:      fmt.Errorf("update: %w", common.ErrVersionConflict),
			wantCode: http.StatusConflict,
		},
		{
			name:     "invalid signature",
			err:      common.ErrInvalidSignature,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Invalid signature"}`,
		},
		{
			name:     "internal hides detail",
			err:      errors.New("db is on fire"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"success":false,"message":"Internal Server Error"}`,
		},
		{
			name:     "internal in debug",
			err:      errors.New("db is on fire"),
			debug:    true,
			wantCode: http.StatusInternalServerError,
			wantBody: `{"success":false,"message":"Internal Server Error","error":"db is on fire"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			e.Debug = tc.debug
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(logging.Discard())(tc.err, c)

			assert.Equal(t, tc.wantCode, rec.Code)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, rec.Body.String())
			}
		})
	}
}
