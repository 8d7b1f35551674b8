package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/dto"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
	usecase "github.com/BruksfildServices01/reservation-scheduler/internal/usecase/reservation"
)

// ======================================================
// USE CASES
// ======================================================

type ReservationCreator interface {
	Execute(ctx context.Context, in usecase.CreateInput) (*models.Reservation, error)
}

type ReservationUpdater interface {
	Execute(ctx context.Context, in usecase.UpdateInput) (*models.Reservation, error)
}

type ReservationCanceller interface {
	Execute(ctx context.Context, in usecase.CancelInput) (*models.Reservation, error)
}

type ReservationGetter interface {
	Execute(ctx context.Context, tenantID string, id, actorID uint, asAdmin bool) (*models.Reservation, error)
}

type OwnReservationsLister interface {
	Execute(ctx context.Context, tenantID string, userID uint) ([]models.Reservation, error)
}

type ReservationRangeLister interface {
	Execute(ctx context.Context, tenantID, period string, f usecase.ListFilterInput) ([]models.Reservation, error)
}

type ReservationStatusSetter interface {
	Execute(ctx context.Context, tenantID string, reservationID uint, status string) (*models.Reservation, error)
}

type ReservationUseCases struct {
	Create    ReservationCreator
	Update    ReservationUpdater
	Cancel    ReservationCanceller
	Get       ReservationGetter
	ListMine  OwnReservationsLister
	ByDate    ReservationRangeLister
	ByMonth   ReservationRangeLister
	SetStatus ReservationStatusSetter
}

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	uc  ReservationUseCases
	log *zap.Logger
}

func NewReservationHandler(uc ReservationUseCases, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{uc: uc, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	MenuID  uint   `json:"menu_id" binding:"required"`
	StaffID *uint  `json:"staff_id"`
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	Notes   string `json:"notes" binding:"max=500"`
}

// PatchReservationRequest either cancels (status=CANCELLED) or reschedules.
// AnyStaff switches the reservation to "no preference".
type PatchReservationRequest struct {
	Status   *string `json:"status"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	MenuID   *uint   `json:"menu_id"`
	StaffID  *uint   `json:"staff_id"`
	AnyStaff bool    `json:"any_staff"`
	Notes    *string `json:"notes" binding:"omitempty,max=500"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r PatchReservationRequest) staffChoice() domain.StaffChoice {
	switch {
	case r.AnyStaff:
		return domain.Unassigned{}
	case r.StaffID != nil:
		return domain.ChoiceFromID(r.StaffID)
	default:
		return nil
	}
}

func (r PatchReservationRequest) cancels() bool {
	return r.Status != nil && strings.EqualFold(strings.TrimSpace(*r.Status), string(domain.StatusCancelled))
}

func (r PatchReservationRequest) updateInput(c *gin.Context, id uint, asAdmin bool) usecase.UpdateInput {
	return usecase.UpdateInput{
		TenantID:      middleware.TenantID(c),
		ReservationID: id,
		ActorID:       middleware.UserID(c),
		AsAdmin:       asAdmin,
		Date:          trimmed(r.Date),
		Time:          trimmed(r.Time),
		MenuID:        r.MenuID,
		Staff:         r.staffChoice(),
		Notes:         r.Notes,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *ReservationHandler) ListMine(c *gin.Context) {
	list, err := h.uc.ListMine.Execute(c.Request.Context(), middleware.TenantID(c), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.ToReservationDTOs(list))
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	r, err := h.uc.Create.Execute(c.Request.Context(), usecase.CreateInput{
		TenantID: middleware.TenantID(c),
		UserID:   middleware.UserID(c),
		MenuID:   req.MenuID,
		Staff:    domain.ChoiceFromID(req.StaffID),
		Date:     strings.TrimSpace(req.Date),
		Time:     strings.TrimSpace(req.Time),
		Notes:    req.Notes,
		IP:       c.ClientIP(),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.ToReservationDTO(r))
}

func (h *ReservationHandler) Get(c *gin.Context) {
	h.get(c, false)
}

func (h *ReservationHandler) Patch(c *gin.Context) {
	h.patch(c, false)
}

// ======================================================
// ADMIN
// ======================================================

func (h *ReservationHandler) AdminGet(c *gin.Context) {
	h.get(c, true)
}

func (h *ReservationHandler) AdminPatch(c *gin.Context) {
	h.patch(c, true)
}

// AdminList lists by ?date=YYYY-MM-DD or ?month=YYYY-MM, optionally filtered by staff_id and status.
func (h *ReservationHandler) AdminList(c *gin.Context) {
	staffID, err := optionalUintQuery(c, "staff_id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	filter := usecase.ListFilterInput{StaffID: staffID, Status: c.Query("status")}

	var list []models.Reservation
	switch date, month := c.Query("date"), c.Query("month"); {
	case date != "":
		list, err = h.uc.ByDate.Execute(c.Request.Context(), middleware.TenantID(c), date, filter)
	case month != "":
		list, err = h.uc.ByMonth.Execute(c.Request.Context(), middleware.TenantID(c), month, filter)
	default:
		err = httperr.Validation("invalid request", map[string]string{"date": "required_without=month"})
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, dto.ToReservationDTOs(list))
}

func (h *ReservationHandler) AdminSetStatus(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req SetStatusRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	r, err := h.uc.SetStatus.Execute(c.Request.Context(), middleware.TenantID(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToReservationDTO(r))
}

// ======================================================
// SHARED
// ======================================================

func (h *ReservationHandler) get(c *gin.Context, asAdmin bool) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	r, err := h.uc.Get.Execute(c.Request.Context(), middleware.TenantID(c), id, middleware.UserID(c), asAdmin)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToReservationDTO(r))
}

func (h *ReservationHandler) patch(c *gin.Context, asAdmin bool) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req PatchReservationRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var r *models.Reservation
	switch {
	case req.cancels():
		r, err = h.uc.Cancel.Execute(c.Request.Context(), usecase.CancelInput{
			TenantID:      middleware.TenantID(c),
			ReservationID: id,
			ActorID:       middleware.UserID(c),
			AsAdmin:       asAdmin,
		})
	case req.Status != nil:
		err = httperr.Validation("invalid status", map[string]string{"status": "oneof=CANCELLED"})
	default:
		r, err = h.uc.Update.Execute(c.Request.Context(), req.updateInput(c, id, asAdmin))
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.ToReservationDTO(r))
}
