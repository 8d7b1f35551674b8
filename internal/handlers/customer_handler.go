package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/dto"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/middleware"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type CustomerStore interface {
	ListCustomers(ctx context.Context, tenantID, query string) ([]models.User, error)
	GetUser(ctx context.Context, tenantID string, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

type CustomerHandler struct {
	customers CustomerStore
	log       *zap.Logger
}

func NewCustomerHandler(customers CustomerStore, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, log: log}
}

// CreateCustomerRequest registers a walk-in customer. They have no password until they sign up.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email,max=100"`
	Phone string `json:"phone" binding:"max=20"`
}

type UpdateCustomerRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone  *string `json:"phone" binding:"omitempty,max=20"`
	Active *bool   `json:"active"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	users, err := h.customers.ListCustomers(c.Request.Context(), middleware.TenantID(c), c.Query("query"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.ToUserDTOs(users))
}

func (h *CustomerHandler) Get(c *gin.Context) {
	user, ok := h.customer(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.ToUserDTO(user))
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	user := models.User{
		TenantID: middleware.TenantID(c),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     models.RoleCustomer,
		Active:   true,
	}
	if err := h.customers.Create(c.Request.Context(), &user); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, dto.ToUserDTO(&user))
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var req UpdateCustomerRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	user, ok := h.customer(c)
	if !ok {
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := h.customers.Save(c.Request.Context(), user); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToUserDTO(user))
}

// customer loads :id and hides staff and admin accounts behind NOT_FOUND.
func (h *CustomerHandler) customer(c *gin.Context) (*models.User, bool) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.log, err)
		return nil, false
	}

	user, err := h.customers.GetUser(c.Request.Context(), middleware.TenantID(c), id)
	if err == nil && user.Role != models.RoleCustomer {
		err = httperr.NotFound("customer")
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return nil, false
	}
	return user, true
}
