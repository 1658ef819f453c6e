package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors stay nil until InitMetrics runs; every recorder below is a no-op
// in that state so packages can be exercised without a registry.
var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	LoginCounter     prometheus.Counter
	RegisterCounter  prometheus.Counter
	AuthErrorCounter *prometheus.CounterVec

	// Database operation metrics
	DBOperationDuration *prometheus.HistogramVec

	// Record operations by entity (patient, appointment, equipment, clinic)
	RecordOperationCounter *prometheus.CounterVec

	// Failed requests by kind
	RequestErrorCounter *prometheus.CounterVec

	// Equipment needing maintenance, refreshed by the maintenance sweep
	EquipmentMaintenanceGauge *prometheus.GaugeVec
)

// InitMetrics registers the collectors on the default registry using prefix
func InitMetrics(prefix string) {
	InitMetricsWith(prefix, prometheus.DefaultRegisterer)
}

// InitMetricsWith registers the collectors on reg
func InitMetricsWith(prefix string, reg prometheus.Registerer) {
	factory := promauto.With(reg)

	HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_login_total",
			Help: "Total number of login attempts",
		},
	)

	RegisterCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_register_total",
			Help: "Total number of clinic registrations",
		},
	)

	AuthErrorCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // missing_token, invalid_token, invalid_credentials
	)

	DBOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	RecordOperationCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_record_operations_total",
			Help: "Total number of tenant record operations",
		},
		[]string{"entity", "operation"},
	)

	RequestErrorCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_request_errors_total",
			Help: "Total number of failed requests by kind",
		},
		[]string{"kind"}, // bad_request, validation, not_found, conflict, internal
	)

	EquipmentMaintenanceGauge = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_equipment_needing_maintenance",
			Help: "Equipment items in a maintenance status per clinic",
		},
		[]string{"clinic_id"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DBOperationDuration == nil {
			return
		}
		DBOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordOperation increments the counter for a record operation
func RecordOperation(entity, operation string) {
	if RecordOperationCounter == nil {
		return
	}
	RecordOperationCounter.WithLabelValues(entity, operation).Inc()
}

// RecordAuthError increments the authentication error counter
func RecordAuthError(errorType string) {
	if AuthErrorCounter == nil {
		return
	}
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// RecordRequestError increments the request error counter
func RecordRequestError(kind string) {
	if RequestErrorCounter == nil {
		return
	}
	RequestErrorCounter.WithLabelValues(kind).Inc()
}

// IncLogin counts a login attempt
func IncLogin() {
	if LoginCounter != nil {
		LoginCounter.Inc()
	}
}

// IncRegister counts a registration attempt
func IncRegister() {
	if RegisterCounter != nil {
		RegisterCounter.Inc()
	}
}

// SetEquipmentNeedingMaintenance sets the maintenance gauge for one clinic
func SetEquipmentNeedingMaintenance(clinicID uint, count int64) {
	if EquipmentMaintenanceGauge == nil {
		return
	}
	EquipmentMaintenanceGauge.WithLabelValues(strconv.FormatUint(uint64(clinicID), 10)).Set(float64(count))
}

// MetricsMiddleware records request counts and durations
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		if HTTPRequestsTotal == nil {
			return nil
		}

		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

		return nil
	}
}

// GetPrometheusHandler returns an HTTP handler for exposing Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
