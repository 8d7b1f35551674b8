package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

// MenuFilter narrows menu listings. Zero values match everything.
type MenuFilter struct {
	Category string
	Active   *bool
	Query    string
}

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Menus
// --------------------------------------------------

func (r *CatalogGormRepository) ListMenus(ctx context.Context, tenantID string, f MenuFilter) ([]models.Menu, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)

	if category := strings.ToLower(strings.TrimSpace(f.Category)); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	var menus []models.Menu
	if err := q.Order("category ASC, name ASC").Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *CatalogGormRepository) GetMenu(ctx context.Context, tenantID string, id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *CatalogGormRepository) CreateMenu(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *CatalogGormRepository) SaveMenu(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Save(menu).Error
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *CatalogGormRepository) ListStaff(ctx context.Context, tenantID string, activeOnly bool) ([]models.Staff, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var staff []models.Staff
	if err := q.Order("name ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *CatalogGormRepository) GetStaff(ctx context.Context, tenantID string, id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *CatalogGormRepository) CreateStaff(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *CatalogGormRepository) SaveStaff(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}
