package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"clinic-service/internal/middleware"
	"clinic-service/internal/service"

	"github.com/labstack/echo/v4"
)

var errInvalidID = errors.New("invalid id")

// parseID reads a positive decimal record id
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// flexID accepts an id sent either as a JSON number or as a numeric string
type flexID uint

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	if s == "" {
		*f = 0
		return nil
	}
	id, err := parseID(s)
	if err != nil {
		return err
	}
	*f = flexID(id)
	return nil
}

func scopeOf(c echo.Context) (service.Scope, bool) {
	return middleware.GetScopeFromContext(c)
}
