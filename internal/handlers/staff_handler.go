package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type StaffStore interface {
	ListStaff(ctx context.Context, tenantID string, activeOnly bool) ([]models.Staff, error)
	GetStaff(ctx context.Context, tenantID string, id uint) (*models.Staff, error)
	CreateStaff(ctx context.Context, staff *models.Staff) error
	SaveStaff(ctx context.Context, staff *models.Staff) error
}

type StaffHandler struct {
	staff StaffStore
	log   *zap.Logger
}

func NewStaffHandler(staff StaffStore, log *zap.Logger) *StaffHandler {
	return &StaffHandler{staff: staff, log: log}
}

type CreateStaffRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"omitempty,email,max=100"`
	Phone string `json:"phone" binding:"max=20"`
	Title string `json:"title" binding:"max=50"`
	Bio   string `json:"bio"`
}

type UpdateStaffRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email  *string `json:"email" binding:"omitempty,email,max=100"`
	Phone  *string `json:"phone" binding:"omitempty,max=20"`
	Title  *string `json:"title" binding:"omitempty,max=50"`
	Bio    *string `json:"bio"`
	Active *bool   `json:"active"`
}

func (h *StaffHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	staff, err := h.staff.ListStaff(c.Request.Context(), middleware.TenantID(c), activeOnly)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	staff := models.Staff{
		TenantID: middleware.TenantID(c),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Title:    req.Title,
		Bio:      req.Bio,
		Active:   true,
	}
	if err := h.staff.CreateStaff(c.Request.Context(), &staff); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req UpdateStaffRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	staff, err := h.staff.GetStaff(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if req.Name != nil {
		staff.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		staff.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		staff.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Title != nil {
		staff.Title = *req.Title
	}
	if req.Bio != nil {
		staff.Bio = *req.Bio
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := h.staff.SaveStaff(c.Request.Context(), staff); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, staff)
}

// Delete deactivates the staff member. Existing reservations are untouched.
func (h *StaffHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	staff, err := h.staff.GetStaff(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	staff.Active = false
	if err := h.staff.SaveStaff(c.Request.Context(), staff); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, staff)
}
