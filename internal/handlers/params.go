package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
)

func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.Validation("invalid id", map[string]string{name: "numeric"})
	}
	return uint(id), nil
}

// optionalUintQuery returns nil when the parameter is absent.
func optionalUintQuery(c *gin.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, httperr.Validation("invalid query", map[string]string{name: "numeric"})
	}
	id := uint(v)
	return &id, nil
}

func optionalBoolQuery(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, httperr.Validation("invalid query", map[string]string{name: "boolean"})
	}
	return &v, nil
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return httperr.FromBinding(err)
	}
	return nil
}
