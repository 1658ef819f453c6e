package handler

import (
	"net/http"

	"clinic-service/internal/model"
	"clinic-service/internal/service"

	"github.com/labstack/echo/v4"
)

// AppointmentHandler serves /clinic/appointments; record ids travel in the path
type AppointmentHandler struct {
	appointments *service.AppointmentService
}

// NewAppointmentHandler creates an AppointmentHandler
func NewAppointmentHandler(appointments *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// List returns upcoming appointments, or all of them with ?view=all
func (h *AppointmentHandler) List(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	var (
		appointments []model.Appointment
		err          error
	)
	if c.QueryParam("view") == "all" {
		appointments, err = h.appointments.List(c.Request().Context(), scope)
	} else {
		appointments, err = h.appointments.ListUpcoming(c.Request().Context(), scope, 0)
	}
	if err != nil {
		return respondError(c, err, "List appointments")
	}
	return c.JSON(http.StatusOK, echo.Map{"appointments": newAppointmentViews(appointments)})
}

// Create schedules an appointment
func (h *AppointmentHandler) Create(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.AppointmentInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request data")
	}

	appointment, err := h.appointments.Create(c.Request().Context(), scope, req)
	if err != nil {
		return respondError(c, err, "Schedule appointment")
	}
	return c.JSON(http.StatusCreated, echo.Map{"appointment": newAppointmentView(*appointment)})
}

// Update edits an appointment
func (h *AppointmentHandler) Update(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "Appointment ID required")
	}

	var req service.AppointmentInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request data")
	}

	appointment, err := h.appointments.Update(c.Request().Context(), scope, id, req)
	if err != nil {
		return respondError(c, err, "Update appointment")
	}
	return c.JSON(http.StatusOK, echo.Map{"appointment": newAppointmentView(*appointment)})
}

// Delete cancels an appointment
func (h *AppointmentHandler) Delete(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return badRequest(c, "Appointment ID required")
	}

	if err := h.appointments.Delete(c.Request().Context(), scope, id); err != nil {
		return respondError(c, err, "Delete appointment")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
