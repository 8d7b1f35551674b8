package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	usecase "github.com/BruksfildServices01/reservation-scheduler/internal/usecase/reservation"
)

type ReminderSender interface {
	Execute(ctx context.Context, tenantID string) (*usecase.ReminderReport, error)
}

type CronHandler struct {
	tenantID  string
	reminders ReminderSender
	log       *zap.Logger
}

func NewCronHandler(tenantID string, reminders ReminderSender, log *zap.Logger) *CronHandler {
	return &CronHandler{tenantID: tenantID, reminders: reminders, log: log}
}

// SendReminders runs the daily batch. Per-reservation failures are reported in the body, not as an error status.
func (h *CronHandler) SendReminders(c *gin.Context) {
	report, err := h.reminders.Execute(c.Request.Context(), h.tenantID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, report)
}
