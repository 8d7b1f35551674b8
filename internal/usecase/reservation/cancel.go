package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/metrics"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type CancelInput struct {
	TenantID      string
	ReservationID uint
	ActorID       uint
	AsAdmin       bool
}

type CancelReservation struct {
	repo     domain.Repository
	flags    FlagChecker
	settings Settings
	metrics  *metrics.Metrics
}

func NewCancelReservation(
	repo domain.Repository,
	flags FlagChecker,
	settings Settings,
	metrics *metrics.Metrics,
) *CancelReservation {
	return &CancelReservation{
		repo:     repo,
		flags:    flags,
		settings: settings,
		metrics:  metrics,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	in CancelInput,
) (*models.Reservation, error) {

	if !in.AsAdmin && !uc.flags.IsEnabled(ctx, in.TenantID, featureflag.CustomerCancellation) {
		return nil, featureDisabled(featureflag.CustomerCancellation)
	}

	if _, err := visibleReservation(ctx, uc.repo, in.TenantID, in.ReservationID, in.ActorID, in.AsAdmin); err != nil {
		return nil, err
	}

	var cancelled *models.Reservation
	err := lockedReservation(ctx, uc.repo, in.TenantID, in.ReservationID, func(tx domain.Repository, r *models.Reservation) error {
		if err := domain.Cancel(r, uc.settings.now()); err != nil {
			return err
		}
		if err := tx.UpdateStatus(ctx, r); err != nil {
			return err
		}
		cancelled = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.Reservation(metrics.OutcomeCancelled)
	return cancelled, nil
}
