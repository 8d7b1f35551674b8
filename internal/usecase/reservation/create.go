package reservation

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/reservation-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/metrics"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type CreateInput struct {
	TenantID string
	UserID   uint
	MenuID   uint
	Staff    domain.StaffChoice
	Date     string
	Time     string
	Notes    string
	IP       string
}

type CreateReservation struct {
	repo     domain.Repository
	flags    FlagChecker
	settings Settings
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
}

func NewCreateReservation(
	repo domain.Repository,
	flags FlagChecker,
	settings Settings,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
) *CreateReservation {
	return &CreateReservation{
		repo:     repo,
		flags:    flags,
		settings: settings,
		audit:    audit,
		metrics:  metrics,
	}
}

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Reservation, error) {

	flags := func(k featureflag.Key) bool { return uc.flags.IsEnabled(ctx, in.TenantID, k) }

	if !flags(featureflag.OnlineBooking) {
		return nil, featureDisabled(featureflag.OnlineBooking)
	}

	choice := in.Staff
	if choice == nil || !flags(featureflag.StaffSelection) {
		choice = domain.Unassigned{}
	}
	notes := strings.TrimSpace(in.Notes)
	if !flags(featureflag.ReservationNotes) {
		notes = ""
	}

	date, err := uc.settings.parseBookingDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.Validation("invalid time", map[string]string{"time": "format=HH:MM"})
	}
	if start < uc.settings.earliestMinute(date) {
		return nil, httperr.New(httperr.CodeInvalidTimeRange, "reservation starts too soon")
	}

	menu, err := activeMenu(ctx, uc.repo, in.TenantID, in.MenuID)
	if err != nil {
		return nil, err
	}
	if err := checkStaff(ctx, uc.repo, in.TenantID, choice); err != nil {
		return nil, err
	}

	r := &models.Reservation{
		TenantID:    in.TenantID,
		UserID:      in.UserID,
		StaffID:     domain.StaffIDOf(choice),
		MenuID:      menu.ID,
		Date:        in.Date,
		Time:        domain.FormatClock(start),
		StartMinute: start,
		EndMinute:   start + menu.DurationMin,
		DurationMin: menu.DurationMin,
		Status:      string(domain.InitialStatus(flags(featureflag.RequireConfirmation))),
		Notes:       notes,
	}

	err = uc.repo.Atomic(ctx, in.TenantID, []string{in.Date}, func(tx domain.Repository) error {
		day, err := loadDay(ctx, tx, uc.settings, in.TenantID, date, 0)
		if err != nil {
			return err
		}
		slot, ok := domain.FindSlot(day.Slots(choice, menu.DurationMin), r.Time)
		if !ok || !slot.Available {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return tx.CreateReservation(ctx, r)
	})
	if err != nil {
		err = httperr.Translate(err)
		if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			uc.conflict(in)
		}
		return nil, err
	}

	uc.metrics.Reservation(metrics.OutcomeCreated)
	return r, nil
}

func (uc *CreateReservation) conflict(in CreateInput) {
	uc.metrics.Reservation(metrics.OutcomeConflict)

	userID := in.UserID
	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &userID,
		Action:   audit.ActionReservationConflict,
		Entity:   "reservation",
		IP:       in.IP,
		Metadata: map[string]any{
			"date":     in.Date,
			"time":     in.Time,
			"menu_id":  in.MenuID,
			"staff_id": domain.StaffIDOf(in.Staff),
		},
	})
}
