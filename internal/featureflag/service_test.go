package featureflag

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type fakeStore struct {
	mu   sync.Mutex
	rows map[string]models.FeatureFlag
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]models.FeatureFlag{}}
}

func (f *fakeStore) GetFlags(_ context.Context, tenantID string) (*models.FeatureFlag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[tenantID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (f *fakeStore) SaveFlags(_ context.Context, row *models.FeatureFlag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows[row.TenantID] = *row
	return nil
}

type fakeCache struct {
	data map[string][]byte
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.data[key] = val
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func allOn() config.FeatureDefaults {
	return config.FeatureDefaults{
		OnlineBooking: true, StaffSelection: true, RequireConfirmation: true, EmailReminders: true,
		CustomerCancellation: true, CustomerReschedule: true, ReservationNotes: true,
		PublicStaffDirectory: true, AnalyticsDashboard: true, MenuImages: true,
	}
}

func TestGet_MissingRowIsAllFalse(t *testing.T) {
	svc := NewService(newFakeStore(), nil, allOn(), nil)

	flags := svc.Get(context.Background(), "t1")

	require.Len(t, flags, 10)
	for k, v := range flags {
		assert.False(t, v, k)
	}
}

func TestGet_StoreErrorIsAllFalse(t *testing.T) {
	store := newFakeStore()
	store.rows["t1"] = models.FeatureFlag{TenantID: "t1", OnlineBooking: true, MenuImages: true}
	store.err = errors.New("connection refused")
	svc := NewService(store, nil, allOn(), nil)

	flags := svc.Get(context.Background(), "t1")

	require.Len(t, flags, 10)
	for k, v := range flags {
		assert.False(t, v, k)
	}
	assert.False(t, svc.IsEnabled(context.Background(), "t1", OnlineBooking))
}

func TestEnsureDefaults_SeedsOnce(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, config.FeatureDefaults{OnlineBooking: true}, nil)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx, "t1"))
	assert.True(t, svc.IsEnabled(ctx, "t1", OnlineBooking))
	assert.False(t, svc.IsEnabled(ctx, "t1", MenuImages))

	_, err := svc.Update(ctx, "t1", map[string]bool{"online_booking": false})
	require.NoError(t, err)

	// existing row is left alone
	require.NoError(t, svc.EnsureDefaults(ctx, "t1"))
	assert.False(t, svc.IsEnabled(ctx, "t1", OnlineBooking))
}

func TestUpdate_RejectsUnknownKeys(t *testing.T) {
	svc := NewService(newFakeStore(), nil, allOn(), nil)

	_, err := svc.Update(context.Background(), "t1", map[string]bool{"dark_mode": true})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	store := newFakeStore()
	cache := &fakeCache{data: map[string][]byte{}}
	svc := NewService(store, cache, allOn(), nil)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx, "t1"))
	assert.True(t, svc.IsEnabled(ctx, "t1", AnalyticsDashboard))
	assert.Contains(t, cache.data, "feature_flags:t1")

	flags, err := svc.Update(ctx, "t1", map[string]bool{"analytics_dashboard": false})
	require.NoError(t, err)
	assert.False(t, flags[AnalyticsDashboard])
	assert.False(t, svc.IsEnabled(ctx, "t1", AnalyticsDashboard))
}
