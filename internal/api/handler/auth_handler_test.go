package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviesportal/movies-api/internal/core/domain"
	"github.com/moviesportal/movies-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, email, password, role string) (*domain.User, error) {
			if email != "a@x.com" || password != "Passw0rd!" || role != "Admin" {
				t.Fatalf("unexpected args: %s %s %s", email, password, role)
			}
			return &domain.User{Username: email, Email: email, Roles: []string{role}}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"Passw0rd!","role":"Admin"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %+v", resp)
	}
}

func TestAuthHandler_Register_IdentityErrors(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.NewIdentityErrors(domain.ErrWeakPassword,
				domain.IdentityError{Code: "PasswordRequiresDigit", Description: "Passwords must have at least one digit ('0'-'9')."},
				domain.IdentityError{Code: "PasswordRequiresUpper", Description: "Passwords must have at least one uppercase ('A'-'Z')."},
			)
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"password!","role":"Admin"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp []domain.IdentityError
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].Code != "PasswordRequiresDigit" || resp[1].Code != "PasswordRequiresUpper" {
		t.Fatalf("unexpected error list: %+v", resp)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, email, _, _ string) (*domain.User, error) {
			return nil, domain.DuplicateUserName(email)
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"Passw0rd!","role":"Admin"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"DuplicateUserName"`) {
		t.Fatalf("expected DuplicateUserName in body, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register", `{"email":`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "InvalidPayload") {
		t.Fatalf("expected InvalidPayload, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_UnexpectedError(t *testing.T) {
	boom := errors.New("mongo unavailable")
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, boom
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"Passw0rd!","role":"Admin"}`)
	if err := handler.Register(c); !errors.Is(err, boom) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	exp := time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "a@x.com" || password != "Passw0rd!" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token:       "signed.jwt.token",
				ExpiresAt:   exp,
				Username:    "a@x.com",
				Roles:       []string{"Admin", "User"},
				PrimaryRole: "Admin",
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"Passw0rd!"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed.jwt.token" || resp["username"] != "a@x.com" || resp["roles"] != "Admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["expiration"] != "2025-04-16T12:00:00Z" {
		t.Fatalf("unexpected expiration: %v", resp["expiration"])
	}
}

func TestAuthHandler_Login_Unauthenticated(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrUnauthenticated
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"nope"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `not json`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
