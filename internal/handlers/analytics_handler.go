package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reservation-scheduler/internal/timezone"
)

const maxAnalyticsDays = 366

type AnalyticsReader interface {
	Summary(ctx context.Context, tenantID, from, to string) (*repository.AnalyticsSummary, error)
}

type AnalyticsHandler struct {
	analytics AnalyticsReader
	flags     *featureflag.Service
	loc       *time.Location
	now       func() time.Time
	log       *zap.Logger
}

func NewAnalyticsHandler(analytics AnalyticsReader, flags *featureflag.Service, loc *time.Location, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, flags: flags, loc: loc, now: time.Now, log: log}
}

// Summary defaults to the current month in the tenant timezone.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	if !h.flags.IsEnabled(c.Request.Context(), tenantID, featureflag.AnalyticsDashboard) {
		httperr.Respond(c, h.log, httperr.New(httperr.CodeFeatureDisabled, "analytics_dashboard is disabled"))
		return
	}

	today := h.now().In(h.loc)
	from, to := timezone.MonthRange(today.Year(), today.Month())
	if v := c.Query("from"); v != "" {
		from = v
	}
	if v := c.Query("to"); v != "" {
		to = v
	}

	f, errF := time.Parse(domain.DateLayout, from)
	t, errT := time.Parse(domain.DateLayout, to)
	switch {
	case errF != nil:
		httperr.Respond(c, h.log, httperr.Validation("invalid date", map[string]string{"from": "format=YYYY-MM-DD"}))
		return
	case errT != nil:
		httperr.Respond(c, h.log, httperr.Validation("invalid date", map[string]string{"to": "format=YYYY-MM-DD"}))
		return
	case t.Before(f):
		httperr.Respond(c, h.log, invalidRange("to must not be before from"))
		return
	case t.Sub(f) > maxAnalyticsDays*24*time.Hour:
		httperr.Respond(c, h.log, invalidRange("range must not exceed one year"))
		return
	}

	summary, err := h.analytics.Summary(c.Request.Context(), tenantID, from, to)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, summary)
}
