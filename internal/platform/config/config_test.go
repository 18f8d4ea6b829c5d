package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("REPORT_TX_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT", "10-S")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int32(4), cfg.DBMaxConns)
	assert.Equal(t, 5*time.Second, cfg.ReportTxTimeout)
	assert.Equal(t, "10-S", cfg.RateLimit)
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	viper.Reset()
	t.Setenv("REPORT_TX_TIMEOUT", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.ReportTxTimeout)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
}
