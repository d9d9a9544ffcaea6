package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "POLL_INTERVAL", "WAIT_TIMEOUT", "ACCEPTED_STATUS", "DATABASE_DSN", "RABBITMQ_URL", "REPEAT_UPDATE_ON_RETRY"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4*time.Second, cfg.PollInterval)
	assert.Equal(t, 120*time.Second, cfg.WaitTimeout)
	assert.Equal(t, "Done", cfg.AcceptedStatus)
	assert.False(t, cfg.RepeatUpdateOnRetry)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "5s")
	t.Setenv("WAIT_TIMEOUT", "not-a-duration")
	t.Setenv("REPEAT_UPDATE_ON_RETRY", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 120*time.Second, cfg.WaitTimeout)
	assert.True(t, cfg.RepeatUpdateOnRetry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
}
