package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/audit"
	"github.com/BruksfildServices01/reservation-scheduler/internal/auth"
	"github.com/BruksfildServices01/reservation-scheduler/internal/dto"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
	"github.com/BruksfildServices01/reservation-scheduler/internal/validators"
)

type UserStore interface {
	FindByEmail(ctx context.Context, tenantID, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type AuthHandler struct {
	users    UserStore
	tokens   *auth.TokenManager
	tenantID string
	events   *audit.Dispatcher
	log      *zap.Logger

	// emailDomainOK is swapped in tests to avoid DNS lookups.
	emailDomainOK func(email string) bool
}

func NewAuthHandler(
	users UserStore,
	tokens *auth.TokenManager,
	tenantID string,
	events *audit.Dispatcher,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:         users,
		tokens:        tokens,
		tenantID:      tenantID,
		events:        events,
		log:           log,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  dto.UserDTO `json:"user"`
	Token string      `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.emailDomainOK(email) {
		httperr.Respond(c, h.log, httperr.Validation("invalid email domain", map[string]string{"email": "domain"}))
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	user := models.User{
		TenantID:     h.tenantID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hashed,
		Role:         models.RoleCustomer,
		Active:       true,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.TenantID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.events.Dispatch(audit.Event{
		TenantID: h.tenantID,
		UserID:   &user.ID,
		Action:   audit.ActionRegister,
		Entity:   "user",
		EntityID: &user.ID,
		IP:       c.ClientIP(),
	})

	httpresp.Created(c, authResponse{User: dto.ToUserDTO(&user), Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.FindByEmail(c.Request.Context(), h.tenantID, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, h.log, err)
		return
	}
	if user == nil || !user.Active || !auth.CheckPassword(user.PasswordHash, req.Password) {
		h.loginFailed(c, email, user)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.TenantID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.events.Dispatch(audit.Event{
		TenantID: h.tenantID,
		UserID:   &user.ID,
		Action:   audit.ActionLoginSuccess,
		IP:       c.ClientIP(),
	})

	httpresp.OK(c, authResponse{User: dto.ToUserDTO(user), Token: token})
}

func (h *AuthHandler) loginFailed(c *gin.Context, email string, user *models.User) {
	ev := audit.Event{
		TenantID: h.tenantID,
		Action:   audit.ActionLoginFailed,
		IP:       c.ClientIP(),
		Metadata: map[string]string{"email": email},
	}
	if user != nil {
		ev.UserID = &user.ID
	}
	h.events.Dispatch(ev)

	httperr.Unauthorized(c, "invalid credentials")
}
