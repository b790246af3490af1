package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg := loadConfigFromEnv()

	assert.Equal(t, "auth-service", cfg.App.Name)
	assert.Equal(t, 9990, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)

	assert.Equal(t, 300, cfg.OTP.CodeTTL)
	assert.Equal(t, 60, cfg.OTP.CooldownTTL)
	assert.Equal(t, 3600, cfg.OTP.RequestWindowTTL)
	assert.Equal(t, 3600, cfg.OTP.SpamLockTTL)
	assert.Equal(t, 1800, cfg.OTP.AccountLockTTL)
	assert.Equal(t, 2, cfg.OTP.MaxRequestsPerWindow)
	assert.Equal(t, 3, cfg.OTP.MaxFailedAttempts)

	assert.Equal(t, 15, cfg.JWT.AccessExpiration)
	assert.Equal(t, 10080, cfg.JWT.RefreshExpiration)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("OTP_CODE_TTL", "120")
	t.Setenv("OTP_MAX_FAILED_ATTEMPTS", "5")
	t.Setenv("SERVER_PORT", "8080")

	cfg := loadConfigFromEnv()

	assert.Equal(t, 120, cfg.OTP.CodeTTL)
	assert.Equal(t, 5, cfg.OTP.MaxFailedAttempts)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestGetEnvAsInt_Malformed(t *testing.T) {
	t.Setenv("OTP_CODE_TTL", "not-a-number")

	assert.Equal(t, 300, GetEnvAsInt("OTP_CODE_TTL", 300))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")
	assert.False(t, GetEnvAsBool("APP_DEBUG", true))

	t.Setenv("APP_DEBUG", "1")
	assert.True(t, GetEnvAsBool("APP_DEBUG", false))
}
