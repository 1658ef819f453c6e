package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders_NoopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordOperation("patient", "create")
		RecordAuthError("invalid_token")
		RecordRequestError("internal")
		IncLogin()
		IncRegister()
		SetEquipmentNeedingMaintenance(1, 3)
		TrackDBOperation("query")(time.Now())
	})
}

func TestInitMetricsWith(t *testing.T) {
	reg := prometheus.NewRegistry()
	InitMetricsWith("test", reg)

	RecordOperation("patient", "create")
	RecordOperation("patient", "create")
	SetEquipmentNeedingMaintenance(7, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(RecordOperationCounter.WithLabelValues("patient", "create")))
	assert.Equal(t, 2.0, testutil.ToFloat64(EquipmentMaintenanceGauge.WithLabelValues("7")))

	e := echo.New()
	e.Use(MetricsMiddleware)
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/ping", "200")))
}
