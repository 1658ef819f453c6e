package handler

import (
	"errors"
	"net/http"

	"clinic-service/internal/service"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError maps a service error onto a status code and a JSON body.
// Unexpected errors are logged and reported without detail.
func respondError(c echo.Context, err error, action string) error {
	log := logger.FromEcho(c)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		prometheus.RecordRequestError("validation")
		log.Info(action+" rejected", zap.String("field", verr.Field), zap.String("reason", verr.Message))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message})
	case errors.Is(err, service.ErrNotFoundOrUnauthorized):
		prometheus.RecordRequestError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found or unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		prometheus.RecordRequestError("not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
	case errors.Is(err, service.ErrConflict):
		prometheus.RecordRequestError("conflict")
		return c.JSON(http.StatusConflict, echo.Map{"error": "User already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	default:
		prometheus.RecordRequestError("internal")
		log.Error(action+" failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}

func badRequest(c echo.Context, message string) error {
	prometheus.RecordRequestError("bad_request")
	return c.JSON(http.StatusBadRequest, echo.Map{"error": message})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
}
