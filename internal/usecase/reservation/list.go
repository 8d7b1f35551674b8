package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
	"github.com/BruksfildServices01/reservation-scheduler/internal/timezone"
)

// visibleReservation hides other customers' reservations behind NOT_FOUND.
func visibleReservation(
	ctx context.Context,
	repo domain.Repository,
	tenantID string,
	id uint,
	actorID uint,
	asAdmin bool,
) (*models.Reservation, error) {
	r, err := repo.GetReservation(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "reservation")
	}
	if !asAdmin && r.UserID != actorID {
		return nil, httperr.NotFound("reservation")
	}
	return r, nil
}

type GetReservation struct {
	repo domain.Repository
}

func NewGetReservation(repo domain.Repository) *GetReservation {
	return &GetReservation{repo: repo}
}

func (uc *GetReservation) Execute(ctx context.Context, tenantID string, id, actorID uint, asAdmin bool) (*models.Reservation, error) {
	return visibleReservation(ctx, uc.repo, tenantID, id, actorID, asAdmin)
}

type ListMyReservations struct {
	repo domain.Repository
}

func NewListMyReservations(repo domain.Repository) *ListMyReservations {
	return &ListMyReservations{repo: repo}
}

func (uc *ListMyReservations) Execute(ctx context.Context, tenantID string, userID uint) ([]models.Reservation, error) {
	return uc.repo.ListReservations(ctx, domain.ListFilter{
		TenantID: tenantID,
		UserID:   &userID,
	})
}

// ListFilterInput narrows admin listings.
type ListFilterInput struct {
	StaffID *uint
	Status  string
}

func (f ListFilterInput) validate() error {
	if f.Status == "" {
		return nil
	}
	_, err := domain.ParseStatus(f.Status)
	return err
}

type ListReservationsByDate struct {
	repo domain.Repository
}

func NewListReservationsByDate(repo domain.Repository) *ListReservationsByDate {
	return &ListReservationsByDate{repo: repo}
}

func (uc *ListReservationsByDate) Execute(ctx context.Context, tenantID, date string, f ListFilterInput) ([]models.Reservation, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, httperr.Validation("invalid date", map[string]string{"date": "format=YYYY-MM-DD"})
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	st, _ := domain.ParseStatus(f.Status)
	return uc.repo.ListReservations(ctx, domain.ListFilter{
		TenantID: tenantID,
		From:     date,
		To:       date,
		StaffID:  f.StaffID,
		Status:   string(st),
	})
}

type ListReservationsByMonth struct {
	repo domain.Repository
}

func NewListReservationsByMonth(repo domain.Repository) *ListReservationsByMonth {
	return &ListReservationsByMonth{repo: repo}
}

// Execute takes month as "YYYY-MM".
func (uc *ListReservationsByMonth) Execute(ctx context.Context, tenantID, month string, f ListFilterInput) ([]models.Reservation, error) {
	m, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, httperr.Validation("invalid month", map[string]string{"month": "format=YYYY-MM"})
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	st, _ := domain.ParseStatus(f.Status)
	from, to := timezone.MonthRange(m.Year(), m.Month())
	return uc.repo.ListReservations(ctx, domain.ListFilter{
		TenantID: tenantID,
		From:     from,
		To:       to,
		StaffID:  f.StaffID,
		Status:   string(st),
	})
}
