package handler

import (
	"net/http"

	"clinic-service/internal/service"
	"clinic-service/prometheus"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves registration, login and the current user
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates a clinic and its first user
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request data")
	}

	token, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "Registration")
	}

	prometheus.IncRegister()
	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

// Login exchanges credentials for a token
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request data")
	}

	token, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "Login")
	}

	prometheus.IncLogin()
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Me returns the authenticated user with their clinic
func (h *AuthHandler) Me(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	me, err := h.auth.Me(c.Request().Context(), scope)
	if err != nil {
		return respondError(c, err, "Lookup user")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": me})
}
