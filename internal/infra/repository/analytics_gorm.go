package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/reservation-scheduler/internal/domain/reservation"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type MenuStat struct {
	MenuID       uint    `json:"menu_id"`
	Name         string  `json:"name"`
	Reservations int64   `json:"reservations"`
	Revenue      float64 `json:"revenue"`
}

type StaffStat struct {
	StaffID      *uint  `json:"staff_id"`
	Name         string `json:"name"`
	Reservations int64  `json:"reservations"`
}

type AnalyticsSummary struct {
	From     string        `json:"from"`
	To       string        `json:"to"`
	Total    int64         `json:"total"`
	ByStatus []StatusCount `json:"by_status"`
	ByMenu   []MenuStat    `json:"by_menu"`
	ByStaff  []StaffStat   `json:"by_staff"`
}

// AnalyticsGormRepository builds aggregation SQL with squirrel and runs it through gorm.
// Placeholders stay as "?" so gorm rebinds them for the dialect.
type AnalyticsGormRepository struct {
	db *gorm.DB
	sb sq.StatementBuilderType
}

func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func inRange(tenantID, from, to string) sq.And {
	return sq.And{
		sq.Eq{"r.tenant_id": tenantID},
		sq.GtOrEq{"r.date": from},
		sq.LtOrEq{"r.date": to},
	}
}

func (r *AnalyticsGormRepository) Summary(ctx context.Context, tenantID, from, to string) (*AnalyticsSummary, error) {
	out := &AnalyticsSummary{
		From:     from,
		To:       to,
		ByStatus: []StatusCount{},
		ByMenu:   []MenuStat{},
		ByStaff:  []StaffStat{},
	}

	byStatus := r.sb.
		Select("r.status AS status", "COUNT(*) AS count").
		From("reservations r").
		Where(inRange(tenantID, from, to)).
		GroupBy("r.status").
		OrderBy("r.status")
	if err := r.scan(ctx, byStatus, &out.ByStatus); err != nil {
		return nil, err
	}
	for _, s := range out.ByStatus {
		out.Total += s.Count
	}

	// revenue counts only completed visits
	byMenu := r.sb.
		Select(
			"m.id AS menu_id",
			"m.name AS name",
			"COUNT(*) AS reservations",
			"COALESCE(SUM(CASE WHEN r.status = '"+string(domain.StatusCompleted)+"' THEN m.price ELSE 0 END), 0) AS revenue",
		).
		From("reservations r").
		Join("menus m ON m.id = r.menu_id").
		Where(inRange(tenantID, from, to)).
		Where(sq.NotEq{"r.status": string(domain.StatusCancelled)}).
		GroupBy("m.id", "m.name").
		OrderBy("reservations DESC", "m.id")
	if err := r.scan(ctx, byMenu, &out.ByMenu); err != nil {
		return nil, err
	}

	byStaff := r.sb.
		Select(
			"r.staff_id AS staff_id",
			"COALESCE(s.name, '') AS name",
			"COUNT(*) AS reservations",
		).
		From("reservations r").
		LeftJoin("staff s ON s.id = r.staff_id").
		Where(inRange(tenantID, from, to)).
		Where(sq.NotEq{"r.status": string(domain.StatusCancelled)}).
		GroupBy("r.staff_id", "s.name").
		OrderBy("reservations DESC")
	if err := r.scan(ctx, byStaff, &out.ByStaff); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *AnalyticsGormRepository) scan(ctx context.Context, q sq.SelectBuilder, dest any) error {
	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error
}
