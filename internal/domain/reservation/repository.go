package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

// ListFilter selects reservations. Dates are inclusive "YYYY-MM-DD" bounds.
type ListFilter struct {
	TenantID string
	From     string
	To       string
	StaffID  *uint
	UserID   *uint
	Status   string
}

type Repository interface {
	// -------- Catalog --------
	GetMenu(ctx context.Context, tenantID string, id uint) (*models.Menu, error)
	GetStaff(ctx context.Context, tenantID string, id uint) (*models.Staff, error)
	ListActiveStaff(ctx context.Context, tenantID string) ([]models.Staff, error)

	// -------- Calendar --------
	ListShifts(ctx context.Context, tenantID string, weekday int) ([]models.StaffShift, error)
	ListVacationsOn(ctx context.Context, tenantID string, date string) ([]models.StaffVacation, error)
	ListBlockedBetween(ctx context.Context, tenantID string, from, to time.Time) ([]models.BlockedTimeSlot, error)

	// -------- Reservation --------
	ListReservationsOn(ctx context.Context, tenantID string, date string) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, tenantID string, id uint) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, r *models.Reservation) error
	// UpdateStatus writes only the status columns, leaving date and time untouched.
	UpdateStatus(ctx context.Context, r *models.Reservation) error
	ListReservations(ctx context.Context, f ListFilter) ([]models.Reservation, error)

	// -------- Reminders --------
	ListDueReminders(ctx context.Context, tenantID string, date string) ([]models.Reservation, error)
	MarkReminderSent(ctx context.Context, tenantID string, id uint) error

	// Atomic runs fn in one transaction that holds the booking lock of every
	// listed date, so availability read inside fn cannot change before commit.
	Atomic(ctx context.Context, tenantID string, dates []string, fn func(repo Repository) error) error
}
