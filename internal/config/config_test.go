package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:    "development",
		Server: ServerConfig{Port: 8080},
		Auth:   AuthConfig{JWTSecret: "0123456789abcdef"},
		Tenant: TenantConfig{ID: "salon-1", Timezone: "America/Sao_Paulo"},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"short secret":     func(c *Config) { c.Auth.JWTSecret = "short" },
		"bad port":         func(c *Config) { c.Server.Port = 0 },
		"empty tenant":     func(c *Config) { c.Tenant.ID = "  " },
		"bad timezone":     func(c *Config) { c.Tenant.Timezone = "Mars/Olympus" },
		"prod no cron":     func(c *Config) { c.Env = "production" },
		"prod with bypass": func(c *Config) { c.Env = "production"; c.Cron.Secret = "s"; c.Auth.TestBypassToken = "x" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BOOKING_AUTH_JWT_SECRET", "a-very-long-test-secret")
	t.Setenv("BOOKING_TENANT_ID", "salon-42")
	t.Setenv("BOOKING_SERVER_PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "salon-42", cfg.Tenant.ID)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.Features.OnlineBooking)
	assert.False(t, cfg.IsProduction())
}
