package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

// ScheduleGormRepository stores the admin calendar: shifts, vacations and blocked windows.
type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) ListShifts(ctx context.Context, tenantID string, staffID uint) ([]models.StaffShift, error) {
	var shifts []models.StaffShift
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND staff_id = ?", tenantID, staffID).
		Order("day_of_week ASC, start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// ReplaceShifts swaps a staff member's weekly template in one transaction.
func (r *ScheduleGormRepository) ReplaceShifts(ctx context.Context, tenantID string, staffID uint, shifts []models.StaffShift) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND staff_id = ?", tenantID, staffID).
			Delete(&models.StaffShift{}).Error; err != nil {
			return err
		}
		if len(shifts) == 0 {
			return nil
		}
		return tx.Create(&shifts).Error
	})
}

func (r *ScheduleGormRepository) ListVacations(ctx context.Context, tenantID string, staffID uint) ([]models.StaffVacation, error) {
	var vacations []models.StaffVacation
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND staff_id = ?", tenantID, staffID).
		Order("start_date ASC").
		Find(&vacations).Error; err != nil {
		return nil, err
	}
	return vacations, nil
}

func (r *ScheduleGormRepository) CreateVacation(ctx context.Context, v *models.StaffVacation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ScheduleGormRepository) DeleteVacation(ctx context.Context, tenantID string, staffID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND staff_id = ?", id, tenantID, staffID).
		Delete(&models.StaffVacation{})
	return affected(res)
}

// ListBlocked returns windows overlapping [from, to).
func (r *ScheduleGormRepository) ListBlocked(ctx context.Context, tenantID string, from, to time.Time) ([]models.BlockedTimeSlot, error) {
	var blocks []models.BlockedTimeSlot
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND start_at < ? AND end_at > ?", tenantID, to, from).
		Order("start_at ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *ScheduleGormRepository) CreateBlocked(ctx context.Context, b *models.BlockedTimeSlot) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *ScheduleGormRepository) DeleteBlocked(ctx context.Context, tenantID string, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.BlockedTimeSlot{})
	return affected(res)
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
