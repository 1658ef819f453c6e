package handler

import (
	"net/http"

	"clinic-service/internal/service"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the caller's clinic profile
type ProfileHandler struct {
	clinics *service.ClinicService
}

// NewProfileHandler creates a ProfileHandler
func NewProfileHandler(clinics *service.ClinicService) *ProfileHandler {
	return &ProfileHandler{clinics: clinics}
}

// Get returns the clinic
func (h *ProfileHandler) Get(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	clinic, err := h.clinics.Get(c.Request().Context(), scope)
	if err != nil {
		return respondError(c, err, "Get clinic")
	}
	return c.JSON(http.StatusOK, echo.Map{"clinic": clinic})
}

// Update renames the clinic
func (h *ProfileHandler) Update(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.ClinicInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request data")
	}

	clinic, err := h.clinics.Update(c.Request().Context(), scope, req)
	if err != nil {
		return respondError(c, err, "Update clinic")
	}
	return c.JSON(http.StatusOK, echo.Map{"clinic": clinic})
}
