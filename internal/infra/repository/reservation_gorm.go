package repository

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *ReservationGormRepository) GetMenu(ctx context.Context, tenantID string, id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *ReservationGormRepository) GetStaff(ctx context.Context, tenantID string, id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *ReservationGormRepository) ListActiveStaff(ctx context.Context, tenantID string) ([]models.Staff, error) {
	var staff []models.Staff
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *ReservationGormRepository) ListShifts(ctx context.Context, tenantID string, weekday int) ([]models.StaffShift, error) {
	var shifts []models.StaffShift
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND day_of_week = ? AND active = ?", tenantID, weekday, true).
		Order("staff_id ASC, start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ReservationGormRepository) ListVacationsOn(ctx context.Context, tenantID string, date string) ([]models.StaffVacation, error) {
	var vacations []models.StaffVacation
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND start_date <= ? AND end_date >= ?", tenantID, date, date).
		Find(&vacations).Error; err != nil {
		return nil, err
	}
	return vacations, nil
}

func (r *ReservationGormRepository) ListBlockedBetween(ctx context.Context, tenantID string, from, to time.Time) ([]models.BlockedTimeSlot, error) {
	var blocks []models.BlockedTimeSlot
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND start_at < ? AND end_at > ?", tenantID, to, from).
		Order("start_at ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Reservation
// --------------------------------------------------

func (r *ReservationGormRepository) ListReservationsOn(ctx context.Context, tenantID string, date string) ([]models.Reservation, error) {
	var res []models.Reservation
	if err := r.db.WithContext(ctx).
		Select("id", "staff_id", "date", "time", "start_minute", "end_minute", "status").
		Where("tenant_id = ? AND date = ? AND status <> ?", tenantID, date, string(domain.StatusCancelled)).
		Order("start_minute ASC").
		Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ReservationGormRepository) CreateReservation(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
}

func (r *ReservationGormRepository) GetReservation(ctx context.Context, tenantID string, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Menu").
		Preload("Staff").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(res).Error
}

func (r *ReservationGormRepository) UpdateStatus(ctx context.Context, res *models.Reservation) error {
	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND tenant_id = ?", res.ID, res.TenantID).
		Updates(map[string]any{
			"status":       res.Status,
			"cancelled_at": res.CancelledAt,
			"completed_at": res.CompletedAt,
			"updated_at":   time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReservationGormRepository) ListReservations(ctx context.Context, f domain.ListFilter) ([]models.Reservation, error) {
	q := r.db.WithContext(ctx).
		Preload("Menu").
		Preload("Staff").
		Preload("User").
		Where("tenant_id = ?", f.TenantID)

	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date <= ?", f.To)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.StaffID != nil {
		q = q.Where("staff_id = ?", *f.StaffID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var res []models.Reservation
	if err := q.
		Order("date ASC, start_minute ASC").
		Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *ReservationGormRepository) ListDueReminders(ctx context.Context, tenantID string, date string) ([]models.Reservation, error) {
	var res []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Menu").
		Preload("Staff").
		Where(
			"tenant_id = ? AND date = ? AND reminder_sent = ? AND status IN ?",
			tenantID, date, false,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		).
		Order("start_minute ASC, id ASC").
		Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ReservationGormRepository) MarkReminderSent(ctx context.Context, tenantID string, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("reminder_sent", true).Error
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

// Atomic takes a transaction-scoped advisory lock per (tenant, date) before running fn.
// Locks are taken in sorted order so two multi-date edits cannot deadlock.
func (r *ReservationGormRepository) Atomic(
	ctx context.Context,
	tenantID string,
	dates []string,
	fn func(repo domain.Repository) error,
) error {
	keys := make([]string, 0, len(dates))
	seen := map[string]bool{}
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			keys = append(keys, tenantID+"|"+d)
		}
	}
	sort.Strings(keys)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", k).Error; err != nil {
				return err
			}
		}
		return fn(&ReservationGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
