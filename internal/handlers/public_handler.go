package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type CatalogReader interface {
	ListMenus(ctx context.Context, tenantID string, f repository.MenuFilter) ([]models.Menu, error)
	ListStaff(ctx context.Context, tenantID string, activeOnly bool) ([]models.Staff, error)
}

type AvailabilityFinder interface {
	Execute(ctx context.Context, in domain.AvailabilityInput) ([]domain.TimeSlot, error)
}

// PublicHandler serves the unauthenticated booking pages' data.
type PublicHandler struct {
	tenantID     string
	flags        *featureflag.Service
	catalog      CatalogReader
	availability AvailabilityFinder
	log          *zap.Logger
}

func NewPublicHandler(
	tenantID string,
	flags *featureflag.Service,
	catalog CatalogReader,
	availability AvailabilityFinder,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		tenantID:     tenantID,
		flags:        flags,
		catalog:      catalog,
		availability: availability,
		log:          log,
	}
}

type publicStaff struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
}

type availabilityResponse struct {
	Date    string            `json:"date"`
	MenuID  uint              `json:"menu_id"`
	StaffID *uint             `json:"staff_id"`
	Slots   []domain.TimeSlot `json:"slots"`
}

func (h *PublicHandler) FeatureFlags(c *gin.Context) {
	httpresp.OK(c, h.flags.Get(c.Request.Context(), h.tenantID))
}

func (h *PublicHandler) ListMenus(c *gin.Context) {
	active := true
	menus, err := h.catalog.ListMenus(c.Request.Context(), h.tenantID, repository.MenuFilter{
		Category: c.Query("category"),
		Query:    c.Query("query"),
		Active:   &active,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, menus)
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	if !h.flags.IsEnabled(c.Request.Context(), h.tenantID, featureflag.PublicStaffDirectory) {
		httperr.Respond(c, h.log, httperr.New(httperr.CodeFeatureDisabled, "public_staff_directory is disabled"))
		return
	}

	staff, err := h.catalog.ListStaff(c.Request.Context(), h.tenantID, true)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	// contact details stay private
	out := make([]publicStaff, 0, len(staff))
	for _, s := range staff {
		out = append(out, publicStaff{ID: s.ID, Name: s.Name, Title: s.Title, Bio: s.Bio, ImageURL: s.ImageURL})
	}
	httpresp.List(c, out)
}

func (h *PublicHandler) Availability(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.Respond(c, h.log, httperr.Validation("invalid request", map[string]string{"date": "required"}))
		return
	}

	menuID, err := optionalUintQuery(c, "menu_id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if menuID == nil || *menuID == 0 {
		httperr.Respond(c, h.log, httperr.Validation("invalid request", map[string]string{"menu_id": "required"}))
		return
	}

	staffID, err := optionalUintQuery(c, "staff_id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		TenantID: h.tenantID,
		Date:     date,
		MenuID:   *menuID,
		Staff:    domain.ChoiceFromID(staffID),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if slots == nil {
		slots = []domain.TimeSlot{}
	}

	httpresp.OK(c, availabilityResponse{
		Date:    date,
		MenuID:  *menuID,
		StaffID: staffID,
		Slots:   slots,
	})
}
