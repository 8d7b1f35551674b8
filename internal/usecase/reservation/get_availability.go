package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
)

type GetAvailability struct {
	repo     domain.Repository
	flags    FlagChecker
	settings Settings
}

func NewGetAvailability(repo domain.Repository, flags FlagChecker, settings Settings) *GetAvailability {
	return &GetAvailability{repo: repo, flags: flags, settings: settings}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	date, err := uc.settings.parseBookingDate(in.Date)
	if err != nil {
		return nil, err
	}

	menu, err := activeMenu(ctx, uc.repo, in.TenantID, in.MenuID)
	if err != nil {
		return nil, err
	}

	choice := in.Staff
	if choice == nil || !uc.flags.IsEnabled(ctx, in.TenantID, featureflag.StaffSelection) {
		choice = domain.Unassigned{}
	}
	if err := checkStaff(ctx, uc.repo, in.TenantID, choice); err != nil {
		return nil, err
	}

	day, err := loadDay(ctx, uc.repo, uc.settings, in.TenantID, date, 0)
	if err != nil {
		return nil, err
	}

	return day.Slots(choice, menu.DurationMin), nil
}
