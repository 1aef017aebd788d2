package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	verr := domain.NewValidationError()
	verr.Add("password", "Password must contain at least one number")

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"no session", domain.ErrNoSession, http.StatusUnauthorized},
		{"email taken (wrapped)", fmt.Errorf("insert: %w", domain.ErrEmailTaken), http.StatusConflict},
		{"version conflict", domain.ErrVersionConflict, http.StatusConflict},
		{"validation", verr, http.StatusUnprocessableEntity},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"image not found", ports.ErrImageNotFound, http.StatusNotFound},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"loading", domain.ErrSessionLoading, http.StatusServiceUnavailable},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	handle := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

			handle(tc.err, c)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}

			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error == "" {
				t.Fatalf("missing error message")
			}
			if tc.code == http.StatusInternalServerError && body.Error != "internal server error" {
				t.Fatalf("internal details leaked: %q", body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationFields(t *testing.T) {
	verr := domain.NewValidationError()
	verr.Add("confirmPassword", "Passwords do not match")

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	NewHTTPErrorHandler(zerolog.Nop())(verr, c)

	var body errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Fields["confirmPassword"] != "Passwords do not match" {
		t.Fatalf("unexpected fields: %v", body.Fields)
	}
}
