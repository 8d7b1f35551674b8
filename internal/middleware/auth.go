package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/audit"
	"github.com/BruksfildServices01/reservation-scheduler/internal/auth"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextTenantID = "tenantID"
	ContextUserRole = "userRole"

	HeaderTestAdmin = "X-Test-Admin-Token"
)

type UserLookup interface {
	GetUser(ctx context.Context, tenantID string, id uint) (*models.User, error)
}

type AuthOptions struct {
	Tokens   *auth.TokenManager
	Users    UserLookup
	TenantID string
	// BypassToken is ignored when Production is set.
	BypassToken string
	Production  bool
}

// Auth verifies the bearer token and loads the caller's role from the database.
func Auth(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.bypass(c) {
			c.Set(ContextUserID, uint(0))
			c.Set(ContextTenantID, opts.TenantID)
			c.Set(ContextUserRole, models.RoleAdmin)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid authorization header")
			return
		}

		claims, err := opts.Tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid or expired token")
			return
		}
		if claims.TenantID != opts.TenantID {
			httperr.Unauthorized(c, "invalid token tenant")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			httperr.Unauthorized(c, "invalid token subject")
			return
		}

		user, err := opts.Users.GetUser(c.Request.Context(), opts.TenantID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Unauthorized(c, "user not found")
				return
			}
			httperr.Respond(c, nil, err)
			return
		}
		if !user.Active {
			httperr.Unauthorized(c, "user disabled")
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextTenantID, user.TenantID)
		c.Set(ContextUserRole, user.Role)

		c.Next()
	}
}

func (o AuthOptions) bypass(c *gin.Context) bool {
	if o.Production || o.BypassToken == "" {
		return false
	}
	got := c.GetHeader(HeaderTestAdmin)
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(o.BypassToken)) == 1
}

// RequireAdmin must run after Auth.
func RequireAdmin(events *audit.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c).IsAdmin() {
			c.Next()
			return
		}

		userID := UserID(c)
		events.Dispatch(audit.Event{
			TenantID: TenantID(c),
			UserID:   &userID,
			Action:   audit.ActionAdminAccessDenied,
			IP:       c.ClientIP(),
			Metadata: map[string]string{"method": c.Request.Method, "path": c.FullPath()},
		})
		httperr.Forbidden(c, httperr.CodeForbidden, "admin access required")
	}
}

func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func TenantID(c *gin.Context) string {
	return c.GetString(ContextTenantID)
}

func Role(c *gin.Context) models.Role {
	v, _ := c.Get(ContextUserRole)
	role, _ := v.(models.Role)
	return role
}
