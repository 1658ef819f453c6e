package handler

import (
	"clinic-service/internal/middleware"
	"clinic-service/internal/service"
	"clinic-service/pkg/jwtutil"
	"clinic-service/prometheus"

	"github.com/labstack/echo/v4"
)

// Services is everything the HTTP layer calls into
type Services struct {
	Auth         *service.AuthService
	Clinics      *service.ClinicService
	Patients     *service.PatientService
	Appointments *service.AppointmentService
	Equipment    *service.EquipmentService
	Dashboard    *service.DashboardService
}

// RegisterRoutes mounts the public, authenticated and operational routes on e
func RegisterRoutes(e *echo.Echo, serviceName string, svc *Services, jwtUtil *jwtutil.JWTUtil) {
	e.GET("/health", HealthCheck(serviceName))
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	authRequired := middleware.JWTAuthMiddleware(jwtUtil)

	auth := NewAuthHandler(svc.Auth)
	authGroup := e.Group("/auth")
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)
	authGroup.GET("/me", auth.Me, authRequired)

	clinic := e.Group("/clinic", authRequired)

	patients := NewPatientHandler(svc.Patients)
	clinic.GET("/patients", patients.List)
	clinic.POST("/patients", patients.Create)
	clinic.PUT("/patients", patients.Update)
	clinic.DELETE("/patients", patients.Delete)

	appointments := NewAppointmentHandler(svc.Appointments)
	clinic.GET("/appointments", appointments.List)
	clinic.POST("/appointments", appointments.Create)
	clinic.PATCH("/appointments/:id", appointments.Update)
	clinic.DELETE("/appointments/:id", appointments.Delete)

	equipment := NewEquipmentHandler(svc.Equipment)
	clinic.GET("/equipment", equipment.List)
	clinic.POST("/equipment", equipment.Create)
	clinic.PUT("/equipment", equipment.Update)
	clinic.DELETE("/equipment", equipment.Delete)

	clinic.GET("/dashboard", NewDashboardHandler(svc.Dashboard).Get)

	profile := NewProfileHandler(svc.Clinics)
	clinic.GET("/profile", profile.Get)
	clinic.PUT("/profile", profile.Update)
}
