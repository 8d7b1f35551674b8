package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

// SetStatus is the admin override. Any status may be set, but bringing a
// cancelled reservation back needs its slot to still be free.
type SetStatus struct {
	repo     domain.Repository
	settings Settings
}

func NewSetStatus(repo domain.Repository, settings Settings) *SetStatus {
	return &SetStatus{repo: repo, settings: settings}
}

func (uc *SetStatus) Execute(
	ctx context.Context,
	tenantID string,
	reservationID uint,
	status string,
) (*models.Reservation, error) {

	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var updated *models.Reservation
	err = lockedReservation(ctx, uc.repo, tenantID, reservationID, func(tx domain.Repository, r *models.Reservation) error {
		if domain.Reoccupies(domain.Status(r.Status), st) {
			if err := uc.slotStillFree(ctx, tx, tenantID, r); err != nil {
				return err
			}
		}

		domain.ApplyStatus(r, st, uc.settings.now())
		if err := tx.UpdateStatus(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// slotStillFree checks the reservation's own slot against the day as it is now.
// Past slots count: an admin may restore a reservation that already happened.
func (uc *SetStatus) slotStillFree(ctx context.Context, tx domain.Repository, tenantID string, r *models.Reservation) error {
	date, err := domain.ParseDate(r.Date, uc.settings.loc())
	if err != nil {
		return err
	}
	day, err := loadDay(ctx, tx, uc.settings, tenantID, date, r.ID)
	if err != nil {
		return err
	}
	day.Earliest = 0

	slot, ok := domain.FindSlot(day.Slots(domain.ChoiceFromID(r.StaffID), r.DurationMin), r.Time)
	if !ok || !slot.Available {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return nil
}
