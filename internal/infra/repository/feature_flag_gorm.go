package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type FeatureFlagGormRepository struct {
	db *gorm.DB
}

func NewFeatureFlagGormRepository(db *gorm.DB) *FeatureFlagGormRepository {
	return &FeatureFlagGormRepository{db: db}
}

func (r *FeatureFlagGormRepository) GetFlags(ctx context.Context, tenantID string) (*models.FeatureFlag, error) {
	var row models.FeatureFlag
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// SaveFlags upserts on tenant_id.
func (r *FeatureFlagGormRepository) SaveFlags(ctx context.Context, row *models.FeatureFlag) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}

var _ featureflag.Store = (*FeatureFlagGormRepository)(nil)
