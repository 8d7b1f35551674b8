package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/mailer"
	"github.com/BruksfildServices01/reservation-scheduler/internal/metrics"
	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type downStore struct{}

func (downStore) GetFlags(context.Context, string) (*models.FeatureFlag, error) {
	return nil, errors.New("database unavailable")
}

func (downStore) SaveFlags(context.Context, *models.FeatureFlag) error {
	return errors.New("database unavailable")
}

// newRouter wires every route against a pool that is never dialled.
func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(postgres.Open("postgres://nobody@127.0.0.1:1/none?sslmode=disable"), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	cfg := &config.Config{
		Env:       "test",
		Server:    config.ServerConfig{Port: 8080, AllowOrigins: []string{"*"}, BodyLimit: 1 << 20},
		Auth:      config.AuthConfig{JWTSecret: "routes-test-secret", TokenTTL: time.Hour},
		Tenant:    config.TenantConfig{ID: "salon-1", Timezone: "UTC"},
		Cron:      config.CronConfig{Secret: "cron-secret"},
		RateLimit: config.RateLimitConfig{Requests: 10, Window: time.Minute},
	}

	registry := prometheus.NewRegistry()
	log := zap.NewNop()

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Flags:    featureflag.NewService(downStore{}, nil, cfg.Features, log),
		Mailer:   mailer.NewLogMailer(log),
		Metrics:  metrics.New(registry),
		Registry: registry,
	})
	return r
}

func TestRoutes_Registered(t *testing.T) {
	r := newRouter(t)

	have := map[string]bool{}
	for _, rt := range r.Routes() {
		have[rt.Method+" "+rt.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/feature-flags",
		"GET /api/menus",
		"GET /api/staff",
		"GET /api/availability",
		"GET /api/me",
		"GET /api/reservations",
		"POST /api/reservations",
		"GET /api/reservations/:id",
		"PATCH /api/reservations/:id",
		"GET /api/cron/send-reminders",
		"PUT /api/admin/staff/:id/shifts",
		"DELETE /api/admin/staff/:id/vacations/:vacationId",
		"POST /api/admin/blocked-times",
		"PATCH /api/admin/feature-flags",
		"PATCH /api/admin/reservations/:id/status",
		"GET /api/admin/analytics",
		"GET /api/admin/security-logs",
		"POST /api/admin/menus/:id/image",
		"POST /api/admin/staff/:id/image",
	} {
		assert.True(t, have[want], want)
	}
}

func TestRoutes_Guards(t *testing.T) {
	r := newRouter(t)

	cases := []struct {
		method, path, auth string
		status             int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/me", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/staff", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/staff", "Bearer not-a-jwt", http.StatusUnauthorized},
		{http.MethodGet, "/api/cron/send-reminders", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/cron/send-reminders", "Bearer wrong", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path+" "+tc.auth, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRoutes_PublicStaffFailsClosed(t *testing.T) {
	r := newRouter(t)

	// the flag store is unavailable, so the directory flag reads as off
	req := httptest.NewRequest(http.MethodGet, "/api/staff", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "FEATURE_DISABLED"))
}
