package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
	"github.com/BruksfildServices01/reservation-scheduler/internal/timezone"
)

type ScheduleStore interface {
	ListShifts(ctx context.Context, tenantID string, staffID uint) ([]models.StaffShift, error)
	ReplaceShifts(ctx context.Context, tenantID string, staffID uint, shifts []models.StaffShift) error

	ListVacations(ctx context.Context, tenantID string, staffID uint) ([]models.StaffVacation, error)
	CreateVacation(ctx context.Context, v *models.StaffVacation) error
	DeleteVacation(ctx context.Context, tenantID string, staffID, id uint) error

	ListBlocked(ctx context.Context, tenantID string, from, to time.Time) ([]models.BlockedTimeSlot, error)
	CreateBlocked(ctx context.Context, b *models.BlockedTimeSlot) error
	DeleteBlocked(ctx context.Context, tenantID string, id uint) error
}

type staffGetter interface {
	GetStaff(ctx context.Context, tenantID string, id uint) (*models.Staff, error)
}

// ScheduleHandler manages shifts, vacations and blocked windows.
type ScheduleHandler struct {
	schedule ScheduleStore
	staff    staffGetter
	loc      *time.Location
	now      func() time.Time
	log      *zap.Logger
}

func NewScheduleHandler(schedule ScheduleStore, staff staffGetter, loc *time.Location, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, staff: staff, loc: loc, now: time.Now, log: log}
}

// --------- Requests ---------

// ShiftRequest times are "HH:MM"; EndTime "24:00" runs the shift until midnight.
type ShiftRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    *bool  `json:"active"`
}

type ReplaceShiftsRequest struct {
	Shifts []ShiftRequest `json:"shifts" binding:"dive"`
}

type CreateVacationRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"max=255"`
}

type CreateBlockedRequest struct {
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	Reason  string    `json:"reason" binding:"max=255"`
}

// --------- Shifts ---------

func (h *ScheduleHandler) ListShifts(c *gin.Context) {
	staffID, ok := h.staffParam(c)
	if !ok {
		return
	}

	shifts, err := h.schedule.ListShifts(c.Request.Context(), middleware.TenantID(c), staffID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, shifts)
}

// ReplaceShifts overwrites the weekly template of one staff member.
func (h *ScheduleHandler) ReplaceShifts(c *gin.Context) {
	staffID, ok := h.staffParam(c)
	if !ok {
		return
	}

	var req ReplaceShiftsRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	tenantID := middleware.TenantID(c)
	shifts := make([]models.StaffShift, 0, len(req.Shifts))
	for _, s := range req.Shifts {
		active := s.Active == nil || *s.Active
		shifts = append(shifts, models.StaffShift{
			TenantID:  tenantID,
			StaffID:   staffID,
			DayOfWeek: s.DayOfWeek,
			StartTime: strings.TrimSpace(s.StartTime),
			EndTime:   strings.TrimSpace(s.EndTime),
			Active:    active,
		})
	}
	if err := checkShifts(shifts); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.schedule.ReplaceShifts(c.Request.Context(), tenantID, staffID, shifts); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, shifts)
}

// --------- Vacations ---------

func (h *ScheduleHandler) ListVacations(c *gin.Context) {
	staffID, ok := h.staffParam(c)
	if !ok {
		return
	}

	vacations, err := h.schedule.ListVacations(c.Request.Context(), middleware.TenantID(c), staffID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, vacations)
}

func (h *ScheduleHandler) CreateVacation(c *gin.Context) {
	staffID, ok := h.staffParam(c)
	if !ok {
		return
	}

	var req CreateVacationRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if err := dateRange(req.StartDate, req.EndDate); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	v := models.StaffVacation{
		TenantID:  middleware.TenantID(c),
		StaffID:   staffID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}
	if err := h.schedule.CreateVacation(c.Request.Context(), &v); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, v)
}

func (h *ScheduleHandler) DeleteVacation(c *gin.Context) {
	staffID, ok := h.staffParam(c)
	if !ok {
		return
	}
	id, err := idParam(c, "vacationId")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.schedule.DeleteVacation(c.Request.Context(), middleware.TenantID(c), staffID, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"id": id})
}

// --------- Blocked times ---------

// ListBlocked takes ?from and ?to as inclusive dates; it defaults to the next 30 days.
func (h *ScheduleHandler) ListBlocked(c *gin.Context) {
	today := timezone.Midnight(h.now(), h.loc)
	from, to := today, today.AddDate(0, 0, 30)

	if raw := c.Query("from"); raw != "" {
		d, err := domain.ParseDate(raw, h.loc)
		if err != nil {
			httperr.Respond(c, h.log, httperr.Validation("invalid date", map[string]string{"from": "format=YYYY-MM-DD"}))
			return
		}
		from = d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := domain.ParseDate(raw, h.loc)
		if err != nil {
			httperr.Respond(c, h.log, httperr.Validation("invalid date", map[string]string{"to": "format=YYYY-MM-DD"}))
			return
		}
		to = d
	}
	if to.Before(from) {
		httperr.Respond(c, h.log, invalidRange("to must not be before from"))
		return
	}

	blocks, err := h.schedule.ListBlocked(c.Request.Context(), middleware.TenantID(c), from, to.AddDate(0, 0, 1))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, blocks)
}

func (h *ScheduleHandler) CreateBlocked(c *gin.Context) {
	var req CreateBlockedRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if !req.EndAt.After(req.StartAt) {
		httperr.Respond(c, h.log, invalidRange("end_at must be after start_at"))
		return
	}

	b := models.BlockedTimeSlot{
		TenantID: middleware.TenantID(c),
		StartAt:  req.StartAt.UTC(),
		EndAt:    req.EndAt.UTC(),
		Reason:   req.Reason,
	}
	if err := h.schedule.CreateBlocked(c.Request.Context(), &b); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, b)
}

func (h *ScheduleHandler) DeleteBlocked(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.schedule.DeleteBlocked(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"id": id})
}

// staffParam resolves :id to an existing staff member and writes the error response otherwise.
func (h *ScheduleHandler) staffParam(c *gin.Context) (uint, bool) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return 0, false
	}
	if _, err := h.staff.GetStaff(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return 0, false
	}
	return id, true
}
