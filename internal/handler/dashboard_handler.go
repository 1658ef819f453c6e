package handler

import (
	"net/http"

	"clinic-service/internal/service"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the clinic overview
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get returns the dashboard summary
func (h *DashboardHandler) Get(c echo.Context) error {
	scope, ok := scopeOf(c)
	if !ok {
		return unauthorized(c)
	}

	d, err := h.dashboard.Summarize(c.Request().Context(), scope)
	if err != nil {
		return respondError(c, err, "Dashboard")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"patients":                    d.Patients,
		"upcomingAppointments":        newAppointmentViews(d.UpcomingAppointments),
		"equipmentNeedingMaintenance": equipmentList(d.EquipmentNeedingMaintenance),
		"totalEquipment":              d.TotalEquipment,
	})
}
