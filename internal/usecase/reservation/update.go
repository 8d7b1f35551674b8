package reservation

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/metrics"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

// UpdateInput changes a reservation. Nil fields keep their current value.
type UpdateInput struct {
	TenantID      string
	ReservationID uint
	ActorID       uint
	AsAdmin       bool

	Date   *string
	Time   *string
	MenuID *uint
	Staff  domain.StaffChoice
	Notes  *string
}

type UpdateReservation struct {
	repo     domain.Repository
	flags    FlagChecker
	settings Settings
	metrics  *metrics.Metrics
}

func NewUpdateReservation(
	repo domain.Repository,
	flags FlagChecker,
	settings Settings,
	metrics *metrics.Metrics,
) *UpdateReservation {
	return &UpdateReservation{
		repo:     repo,
		flags:    flags,
		settings: settings,
		metrics:  metrics,
	}
}

func (uc *UpdateReservation) Execute(
	ctx context.Context,
	in UpdateInput,
) (*models.Reservation, error) {

	flags := func(k featureflag.Key) bool { return uc.flags.IsEnabled(ctx, in.TenantID, k) }

	if !in.AsAdmin && !flags(featureflag.CustomerReschedule) {
		return nil, featureDisabled(featureflag.CustomerReschedule)
	}

	current, err := visibleReservation(ctx, uc.repo, in.TenantID, in.ReservationID, in.ActorID, in.AsAdmin)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEdit(domain.Status(current.Status)); err != nil {
		return nil, err
	}

	dateStr := current.Date
	if in.Date != nil {
		dateStr = *in.Date
	}
	timeStr := current.Time
	if in.Time != nil {
		timeStr = *in.Time
	}
	menuID := current.MenuID
	if in.MenuID != nil {
		menuID = *in.MenuID
	}
	choice := domain.ChoiceFromID(current.StaffID)
	if in.Staff != nil && (in.AsAdmin || flags(featureflag.StaffSelection)) {
		choice = in.Staff
	}
	notes := current.Notes
	if in.Notes != nil && flags(featureflag.ReservationNotes) {
		notes = strings.TrimSpace(*in.Notes)
	}

	date, err := uc.settings.parseBookingDate(dateStr)
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseClock(timeStr)
	if err != nil {
		return nil, httperr.Validation("invalid time", map[string]string{"time": "format=HH:MM"})
	}
	if start < uc.settings.earliestMinute(date) {
		return nil, httperr.New(httperr.CodeInvalidTimeRange, "reservation starts too soon")
	}

	menu, err := activeMenu(ctx, uc.repo, in.TenantID, menuID)
	if err != nil {
		return nil, err
	}
	if err := checkStaff(ctx, uc.repo, in.TenantID, choice); err != nil {
		return nil, err
	}

	var updated *models.Reservation
	dates := []string{current.Date}
	if dateStr != current.Date {
		dates = append(dates, dateStr)
	}

	err = uc.repo.Atomic(ctx, in.TenantID, dates, func(tx domain.Repository) error {
		r, err := tx.GetReservation(ctx, in.TenantID, in.ReservationID)
		if err != nil {
			return notFound(err, "reservation")
		}
		if err := domain.CanEdit(domain.Status(r.Status)); err != nil {
			return err
		}

		day, err := loadDay(ctx, tx, uc.settings, in.TenantID, date, r.ID)
		if err != nil {
			return err
		}
		slot, ok := domain.FindSlot(day.Slots(choice, menu.DurationMin), domain.FormatClock(start))
		if !ok || !slot.Available {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		moved := r.Date != dateStr || r.StartMinute != start
		r.Date = dateStr
		r.Time = domain.FormatClock(start)
		r.StartMinute = start
		r.EndMinute = start + menu.DurationMin
		r.DurationMin = menu.DurationMin
		r.MenuID = menu.ID
		r.StaffID = domain.StaffIDOf(choice)
		r.Notes = notes
		if moved {
			r.ReminderSent = false
		}

		if err := tx.UpdateReservation(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		err = httperr.Translate(err)
		if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			uc.metrics.Reservation(metrics.OutcomeConflict)
		}
		return nil, err
	}

	uc.metrics.Reservation(metrics.OutcomeUpdated)
	return updated, nil
}
