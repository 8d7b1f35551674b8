package reservation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
	"github.com/BruksfildServices01/reservation-scheduler/internal/timezone"
)

// FlagChecker is the capability check gated operations call first.
type FlagChecker interface {
	IsEnabled(ctx context.Context, tenantID string, key featureflag.Key) bool
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Settings carries tenant calendar policy.
type Settings struct {
	Location          *time.Location
	MinAdvanceMinutes int
	Now               func() time.Time
}

func (s Settings) loc() *time.Location {
	if s.Location == nil {
		return timezone.Location("")
	}
	return s.Location
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.loc())
	}
	return time.Now().In(s.loc())
}

// parseBookingDate rejects malformed and past dates.
func (s Settings) parseBookingDate(date string) (time.Time, error) {
	d, err := domain.ParseDate(date, s.loc())
	if err != nil {
		return time.Time{}, httperr.Validation("invalid date", map[string]string{"date": "format=YYYY-MM-DD"})
	}
	if d.Before(timezone.Midnight(s.now(), s.loc())) {
		return time.Time{}, httperr.Validation("date is in the past", map[string]string{"date": "must not be in the past"})
	}
	return d, nil
}

// earliestMinute is the first bookable minute on date: zero except for today.
func (s Settings) earliestMinute(date time.Time) int {
	now := s.now()
	midnight := timezone.Midnight(now, s.loc())
	if !date.Equal(midnight) {
		return 0
	}
	elapsed := now.Sub(midnight)
	m := int(elapsed / time.Minute)
	if elapsed%time.Minute != 0 {
		m++
	}
	return m + s.MinAdvanceMinutes
}

func loadDay(
	ctx context.Context,
	repo domain.Repository,
	settings Settings,
	tenantID string,
	date time.Time,
	excludeID uint,
) (domain.DaySchedule, error) {
	dateStr := date.Format(domain.DateLayout)

	staff, err := repo.ListActiveStaff(ctx, tenantID)
	if err != nil {
		return domain.DaySchedule{}, err
	}
	shifts, err := repo.ListShifts(ctx, tenantID, int(date.Weekday()))
	if err != nil {
		return domain.DaySchedule{}, err
	}
	vacations, err := repo.ListVacationsOn(ctx, tenantID, dateStr)
	if err != nil {
		return domain.DaySchedule{}, err
	}
	blocks, err := repo.ListBlockedBetween(ctx, tenantID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return domain.DaySchedule{}, err
	}
	reservations, err := repo.ListReservationsOn(ctx, tenantID, dateStr)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	day := domain.NewDaySchedule(date, staff, shifts, vacations, blocks, reservations, excludeID)
	day.Earliest = settings.earliestMinute(date)
	return day, nil
}

// lockedReservation runs fn on a copy read while the booking lock of the
// reservation's date is held. If a reschedule moved it to another date in
// between, the read starts over under the new date's lock.
func lockedReservation(
	ctx context.Context,
	repo domain.Repository,
	tenantID string,
	id uint,
	fn func(tx domain.Repository, r *models.Reservation) error,
) error {
	const attempts = 3

	for i := 0; i < attempts; i++ {
		seen, err := repo.GetReservation(ctx, tenantID, id)
		if err != nil {
			return notFound(err, "reservation")
		}

		moved := false
		err = repo.Atomic(ctx, tenantID, []string{seen.Date}, func(tx domain.Repository) error {
			r, err := tx.GetReservation(ctx, tenantID, id)
			if err != nil {
				return notFound(err, "reservation")
			}
			if r.Date != seen.Date {
				moved = true
				return nil
			}
			return fn(tx, r)
		})
		if err != nil {
			return httperr.Translate(err)
		}
		if !moved {
			return nil
		}
	}
	return httperr.New(httperr.CodeInvalidState, "reservation is being changed, try again")
}

func activeMenu(ctx context.Context, repo domain.Repository, tenantID string, id uint) (*models.Menu, error) {
	menu, err := repo.GetMenu(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "menu")
	}
	if !menu.Active || menu.DurationMin <= 0 {
		return nil, httperr.NotFound("menu")
	}
	return menu, nil
}

func checkStaff(ctx context.Context, repo domain.Repository, tenantID string, choice domain.StaffChoice) error {
	a, ok := choice.(domain.Assigned)
	if !ok {
		return nil
	}
	staff, err := repo.GetStaff(ctx, tenantID, a.StaffID)
	if err != nil {
		return notFound(err, "staff")
	}
	if !staff.Active {
		return httperr.NotFound("staff")
	}
	return nil
}

func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(entity)
	}
	return err
}

func featureDisabled(key featureflag.Key) error {
	return httperr.New(httperr.CodeFeatureDisabled, "feature disabled: "+string(key))
}
