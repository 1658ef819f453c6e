package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-service/internal/handler"
	"clinic-service/internal/jobs"
	mid "clinic-service/internal/middleware"
	"clinic-service/internal/service"
	"clinic-service/pkg/database"
	"clinic-service/pkg/jwtutil"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	jwtUtil, err := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})
	if err != nil {
		return err
	}

	prometheus.InitMetrics(cfg.Metrics.Prefix)
	log.Info("Prometheus metrics initialized", zap.String("metrics_prefix", cfg.Metrics.Prefix))

	store, err := openStore(cfg, log)
	if err != nil {
		log.Error("Failed to initialize storage", zap.Error(err))
		return err
	}
	defer database.Close()

	patients := service.NewPatientService(store.Patients)
	appointments := service.NewAppointmentService(store.Appointments, time.Local)
	equipment := service.NewEquipmentService(store.Equipment)
	services := &handler.Services{
		Auth:         service.NewAuthService(store.Users, store.Clinics, jwtUtil),
		Clinics:      service.NewClinicService(store.Clinics),
		Patients:     patients,
		Appointments: appointments,
		Equipment:    equipment,
		Dashboard:    service.NewDashboardService(patients, appointments, equipment),
	}

	sweep := jobs.NewMaintenanceSweep(store.Equipment, log)
	scheduler, err := sweep.Start(cfg.Jobs.MaintenanceSchedule)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware)

	handler.RegisterRoutes(e, cfg.ServiceName, services, jwtUtil)

	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
		return err
	}
	log.Info("Server stopped")
	return nil
}
