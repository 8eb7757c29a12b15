package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE", "memory")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"unknown store", map[string]string{"JWT_SECRET": "s", "STORE": "mongo"}},
		{"bad port", map[string]string{"JWT_SECRET": "s", "PORT": "70000"}},
		{"non-positive ttl", map[string]string{"JWT_SECRET": "s", "SESSION_TTL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "funds", DBPort: "5433"}
	assert.Equal(t,
		"host=db user=u password=p dbname=funds port=5433 sslmode=disable TimeZone=Asia/Kolkata",
		cfg.DSN())
}
