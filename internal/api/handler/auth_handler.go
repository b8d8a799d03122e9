package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviesportal/movies-api/internal/api/metrics"
	"github.com/moviesportal/movies-api/internal/core/domain"
	"github.com/moviesportal/movies-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
	Username   string    `json:"username"`
	Roles      string    `json:"roles"`
}

var invalidPayload = []domain.IdentityError{{
	Code:        "InvalidPayload",
	Description: "The request body could not be parsed.",
}}

// Register creates a new user account and assigns it the requested role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  messageResponse
// @Failure      400   {array}   domain.IdentityError
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		return c.JSON(http.StatusBadRequest, invalidPayload)
	}

	_, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		var ie *domain.IdentityErrors
		if errors.As(err, &ie) {
			metrics.RegistrationsTotal.WithLabelValues(registrationResult(ie.Kind)).Inc()
			return c.JSON(http.StatusBadRequest, ie.Errors)
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User registered successfully"})
}

// Login authenticates a user and returns a signed bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {array}   domain.IdentityError
// @Failure      401   "empty body"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, invalidPayload)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			metrics.LoginsTotal.WithLabelValues("unauthenticated").Inc()
			return c.NoContent(http.StatusUnauthorized)
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:      result.Token,
		Expiration: result.ExpiresAt.UTC(),
		Username:   result.Username,
		Roles:      result.PrimaryRole,
	})
}

func registrationResult(kind error) string {
	switch {
	case errors.Is(kind, domain.ErrCredentialConflict):
		return "conflict"
	case errors.Is(kind, domain.ErrWeakPassword):
		return "weak_password"
	default:
		return "invalid_input"
	}
}
