package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

type SecurityLogReader interface {
	List(ctx context.Context, f repository.SecurityLogFilter) ([]models.SecurityLog, int64, error)
}

type SecurityLogHandler struct {
	logs SecurityLogReader
	loc  *time.Location
	log  *zap.Logger
}

func NewSecurityLogHandler(logs SecurityLogReader, loc *time.Location, log *zap.Logger) *SecurityLogHandler {
	return &SecurityLogHandler{logs: logs, loc: loc, log: log}
}

// List supports ?action, ?from, ?to (inclusive dates), ?page and ?limit.
func (h *SecurityLogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLogLimit)))
	if limit <= 0 || limit > maxLogLimit {
		limit = defaultLogLimit
	}

	f := repository.SecurityLogFilter{
		TenantID: middleware.TenantID(c),
		Action:   strings.ToUpper(strings.TrimSpace(c.Query("action"))),
		Page:     page,
		Limit:    limit,
	}

	if raw := c.Query("from"); raw != "" {
		from, err := domain.ParseDate(raw, h.loc)
		if err != nil {
			httperr.Respond(c, h.log, httperr.Validation("invalid date", map[string]string{"from": "format=YYYY-MM-DD"}))
			return
		}
		f.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := domain.ParseDate(raw, h.loc)
		if err != nil {
			httperr.Respond(c, h.log, httperr.Validation("invalid date", map[string]string{"to": "format=YYYY-MM-DD"}))
			return
		}
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
