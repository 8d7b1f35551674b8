package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type SecurityLogFilter struct {
	TenantID string
	Action   string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

type SecurityLogGormRepository struct {
	db *gorm.DB
}

func NewSecurityLogGormRepository(db *gorm.DB) *SecurityLogGormRepository {
	return &SecurityLogGormRepository{db: db}
}

// List returns one page, newest first, with the unpaged total.
func (r *SecurityLogGormRepository) List(ctx context.Context, f SecurityLogFilter) ([]models.SecurityLog, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.SecurityLog{}).
		Where("tenant_id = ?", f.TenantID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.SecurityLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
