package featureflag

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

// Store persists the single flag row of each tenant.
// Get returns gorm.ErrRecordNotFound when the row is absent.
type Store interface {
	GetFlags(ctx context.Context, tenantID string) (*models.FeatureFlag, error)
	SaveFlags(ctx context.Context, row *models.FeatureFlag) error
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	store    Store
	cache    Cache
	defaults config.FeatureDefaults
	ttl      time.Duration
	log      *zap.Logger
}

// NewService builds the flag service. cache may be nil.
func NewService(store Store, cache Cache, defaults config.FeatureDefaults, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    store,
		cache:    cache,
		defaults: defaults,
		ttl:      30 * time.Second,
		log:      log,
	}
}

func cacheKey(tenantID string) string {
	return "feature_flags:" + tenantID
}

// Get never fails: a missing row or any read error yields every flag off.
func (s *Service) Get(ctx context.Context, tenantID string) Flags {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey(tenantID)); err == nil {
			var cached Flags
			if json.Unmarshal(raw, &cached) == nil && len(cached) == len(Keys()) {
				return cached
			}
		}
	}

	row, err := s.store.GetFlags(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("feature flags unavailable, failing closed",
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
		}
		return Disabled()
	}

	flags := fromRow(row)
	if s.cache != nil {
		if raw, err := json.Marshal(flags); err == nil {
			if err := s.cache.Set(ctx, cacheKey(tenantID), raw, s.ttl); err != nil {
				s.log.Debug("feature flag cache write failed", zap.Error(err))
			}
		}
	}
	return flags
}

func (s *Service) IsEnabled(ctx context.Context, tenantID string, key Key) bool {
	return s.Get(ctx, tenantID)[key]
}

// Update applies a partial change. Unknown keys are rejected.
func (s *Service) Update(ctx context.Context, tenantID string, patch map[string]bool) (Flags, error) {
	details := map[string]string{}
	for k := range patch {
		if !IsKnown(Key(k)) {
			details[k] = "unknown feature flag"
		}
	}
	if len(details) > 0 {
		return nil, httperr.Validation("invalid feature flags", details)
	}

	row, err := s.store.GetFlags(ctx, tenantID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &models.FeatureFlag{TenantID: tenantID}
	case err != nil:
		return nil, err
	}

	flags := fromRow(row)
	for k, v := range patch {
		flags[Key(k)] = v
	}
	applyTo(row, flags)

	if err := s.store.SaveFlags(ctx, row); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenantID)
	return flags, nil
}

// EnsureDefaults seeds the tenant row from configuration when it does not exist yet.
func (s *Service) EnsureDefaults(ctx context.Context, tenantID string) error {
	_, err := s.store.GetFlags(ctx, tenantID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := &models.FeatureFlag{TenantID: tenantID}
	applyTo(row, fromDefaults(s.defaults))
	if err := s.store.SaveFlags(ctx, row); err != nil {
		return err
	}
	s.invalidate(ctx, tenantID)
	s.log.Info("feature flags seeded", zap.String("tenant_id", tenantID))
	return nil
}

func (s *Service) invalidate(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(tenantID)); err != nil {
		s.log.Warn("feature flag cache invalidation failed", zap.Error(err))
	}
}
