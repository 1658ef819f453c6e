package middleware

import (
	"net/http"
	"strings"

	"clinic-service/internal/service"
	"clinic-service/pkg/jwtutil"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware
const (
	UserIDKey   = "user_id"
	ClinicIDKey = "clinic_id"
)

// JWTAuthMiddleware creates a middleware that validates bearer tokens and
// stores the caller's user and clinic ids in the echo context
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				log.Warn("Missing or malformed authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(ClinicIDKey, claims.ClinicID)
			log.Debug("JWT token validated successfully",
				zap.Uint("user_id", claims.UserID),
				zap.Uint("clinic_id", claims.ClinicID))

			return next(c)
		}
	}
}

// GetScopeFromContext returns the identity stored by JWTAuthMiddleware
func GetScopeFromContext(c echo.Context) (service.Scope, bool) {
	userID, ok := c.Get(UserIDKey).(uint)
	if !ok {
		return service.Scope{}, false
	}
	clinicID, ok := c.Get(ClinicIDKey).(uint)
	if !ok || clinicID == 0 {
		return service.Scope{}, false
	}
	return service.Scope{UserID: userID, ClinicID: clinicID}, true
}
