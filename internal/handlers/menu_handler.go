package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type MenuStore interface {
	ListMenus(ctx context.Context, tenantID string, f repository.MenuFilter) ([]models.Menu, error)
	GetMenu(ctx context.Context, tenantID string, id uint) (*models.Menu, error)
	CreateMenu(ctx context.Context, menu *models.Menu) error
	SaveMenu(ctx context.Context, menu *models.Menu) error
}

type MenuHandler struct {
	menus MenuStore
	log   *zap.Logger
}

func NewMenuHandler(menus MenuStore, log *zap.Logger) *MenuHandler {
	return &MenuHandler{menus: menus, log: log}
}

// --------- Requests ---------

type CreateMenuRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=255"`
	DurationMin int     `json:"duration_min" binding:"required,min=5,max=720"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    string  `json:"category" binding:"max=50"`
}

type UpdateMenuRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	DurationMin *int     `json:"duration_min" binding:"omitempty,min=5,max=720"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
	Active      *bool    `json:"active"`
}

// --------- Handlers ---------

func (h *MenuHandler) List(c *gin.Context) {
	active, err := optionalBoolQuery(c, "active")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	menus, err := h.menus.ListMenus(c.Request.Context(), middleware.TenantID(c), repository.MenuFilter{
		Category: c.Query("category"),
		Query:    c.Query("query"),
		Active:   active,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, menus)
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req CreateMenuRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	menu := models.Menu{
		TenantID:    middleware.TenantID(c),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Active:      true,
	}
	if err := h.menus.CreateMenu(c.Request.Context(), &menu); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, menu)
}

func (h *MenuHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var req UpdateMenuRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	menu, err := h.menus.GetMenu(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if req.Name != nil {
		menu.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.DurationMin != nil {
		menu.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.Category != nil {
		menu.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Active != nil {
		menu.Active = *req.Active
	}

	if err := h.menus.SaveMenu(c.Request.Context(), menu); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, menu)
}

// Delete deactivates the menu; past reservations keep pointing at it.
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	menu, err := h.menus.GetMenu(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	menu.Active = false
	if err := h.menus.SaveMenu(c.Request.Context(), menu); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, menu)
}
