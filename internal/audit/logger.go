package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

const (
	ActionRegister            = "REGISTER"
	ActionLoginSuccess        = "LOGIN_SUCCESS"
	ActionLoginFailed         = "LOGIN_FAILED"
	ActionAdminAccessDenied   = "ADMIN_ACCESS_DENIED"
	ActionReservationConflict = "RESERVATION_CONFLICT"
)

// Sink persists security events.
type Sink interface {
	Write(ctx context.Context, entry *models.SecurityLog) error
}

// Logger writes security events to the security_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, entry *models.SecurityLog) error {
	return l.db.WithContext(ctx).Create(entry).Error
}

func toEntry(ev Event) *models.SecurityLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return &models.SecurityLog{
		TenantID: ev.TenantID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		IP:       ev.IP,
		Metadata: metaJSON,
	}
}
