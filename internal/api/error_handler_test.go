package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/moviesportal/movies-api/internal/core/domain"
	"github.com/moviesportal/movies-api/pkg/logger"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "title is required"), 422, `{"error":"title is required"}`},
		{"not found", fmt.Errorf("find: %w", domain.ErrMovieNotFound), 404, `{"error":"movie not found"}`},
		{"unauthenticated", domain.ErrUnauthenticated, 401, `{"error":"unauthorized"}`},
		{"forbidden", domain.ErrForbidden, 403, `{"error":"forbidden"}`},
		{"identity errors", fmt.Errorf("register: %w", domain.DuplicateUserName("a@x.com")), 400, `[{"code":"DuplicateUserName","description":"Username 'a@x.com' is already taken."}]`},
		{"unexpected", errors.New("disk on fire"), 500, `{"error":"internal server error"}`},
	}

	h := NewHTTPErrorHandler(logger.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if got := rec.Body.String(); got != tt.wantBody+"\n" {
				t.Fatalf("unexpected body %q", got)
			}
		})
	}
}

func TestHTTPErrorHandler_Head(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)

	NewHTTPErrorHandler(logger.Nop())(domain.ErrMovieNotFound, c)

	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Fatalf("expected bare 404, got %d %q", rec.Code, rec.Body.String())
	}
}
