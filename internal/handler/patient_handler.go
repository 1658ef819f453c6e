package handler

import (
	"net/http"

	"clinic-service/internal/service"

	"github.com/labstack/echo/v4"
)

// PatientHandler serves /clinic/patients; record ids travel in the id query parameter
type PatientHandler struct {
	patients *service.PatientService
}

// NewPatientHandler creates a PatientHandler
func NewPatientHandler(patients *service.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// List returns the clinic's patients
func (h *PatientHandler) List(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	patients, err := h.patients.List(c.Request().Context(), scope)
	if err != nil {
		return respondError(c, err, "List patients")
	}
	return c.JSON(http.StatusOK, echo.Map{"patients": newPatientViews(patients)})
}

// Create adds a patient
func (h *PatientHandler) Create(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.PatientInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request data")
	}

	patient, err := h.patients.Create(c.Request().Context(), scope, req)
	if err != nil {
		return respondError(c, err, "Create patient")
	}
	return c.JSON(http.StatusCreated, echo.Map{"patient": newPatientView(*patient)})
}

// Update replaces a patient's details
func (h *PatientHandler) Update(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c.QueryParam("id"))
	if err != nil {
		return badRequest(c, "Patient ID required")
	}

	var req service.PatientInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request data")
	}

	patient, err := h.patients.Update(c.Request().Context(), scope, id, req)
	if err != nil {
		return respondError(c, err, "Update patient")
	}
	return c.JSON(http.StatusOK, echo.Map{"patient": newPatientView(*patient)})
}

// Delete removes a patient
func (h *PatientHandler) Delete(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c.QueryParam("id"))
	if err != nil {
		return badRequest(c, "Patient ID required")
	}

	if err := h.patients.Delete(c.Request().Context(), scope, id); err != nil {
		return respondError(c, err, "Delete patient")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
