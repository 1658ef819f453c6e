package handler

import (
	"net/http"

	"clinic-service/internal/service"

	"github.com/labstack/echo/v4"
)

// equipmentUpdateRequest carries the record id alongside the patch
type equipmentUpdateRequest struct {
	ID flexID `json:"id"`
	service.EquipmentPatch
}

// EquipmentHandler serves /clinic/equipment. PUT reads the id from the body,
// DELETE from the id query parameter.
type EquipmentHandler struct {
	equipment *service.EquipmentService
}

// NewEquipmentHandler creates an EquipmentHandler
func NewEquipmentHandler(equipment *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

// List returns the clinic's equipment
func (h *EquipmentHandler) List(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	equipment, err := h.equipment.List(c.Request().Context(), scope)
	if err != nil {
		return respondError(c, err, "List equipment")
	}
	return c.JSON(http.StatusOK, echo.Map{"equipment": equipmentList(equipment)})
}

// Create adds equipment
func (h *EquipmentHandler) Create(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.EquipmentInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request data")
	}

	equipment, err := h.equipment.Create(c.Request().Context(), scope, req)
	if err != nil {
		return respondError(c, err, "Add equipment")
	}
	return c.JSON(http.StatusCreated, echo.Map{"equipment": equipment})
}

// Update applies a partial update
func (h *EquipmentHandler) Update(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	var req equipmentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request data")
	}
	if req.ID == 0 {
		return badRequest(c, "Missing equipment id")
	}

	equipment, err := h.equipment.Update(c.Request().Context(), scope, uint(req.ID), req.EquipmentPatch)
	if err != nil {
		return respondError(c, err, "Update equipment")
	}
	return c.JSON(http.StatusOK, echo.Map{"equipment": equipment})
}

// Delete removes equipment
func (h *EquipmentHandler) Delete(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := parseID(c.QueryParam("id"))
	if err != nil {
		return badRequest(c, "Missing equipment id")
	}

	if err := h.equipment.Delete(c.Request().Context(), scope, id); err != nil {
		return respondError(c, err, "Delete equipment")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
