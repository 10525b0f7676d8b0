package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("ROSTER_REDIS_URL", "")
	t.Setenv("ROSTER_EVENTS_CHANNEL", "")
	t.Setenv("ROSTER_WS_PORT", "")
	t.Setenv("ROSTER_LOG_LEVEL", "")
	t.Setenv("ROSTER_NO_COLOR", "")

	cfg := FromEnv()

	assert.Equal(t, "", cfg.RedisURL)
	assert.False(t, cfg.EventsEnabled())
	assert.Equal(t, DefaultChannel, cfg.Channel)
	assert.Equal(t, DefaultWSPort, cfg.WSPort)
	assert.Equal(t, DefaultLevel, cfg.LogLevel)
	assert.False(t, cfg.NoColor)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ROSTER_REDIS_URL", " redis://localhost:6379/1 ")
	t.Setenv("ROSTER_EVENTS_CHANNEL", "class_7b")
	t.Setenv("ROSTER_WS_PORT", "9090")
	t.Setenv("ROSTER_LOG_LEVEL", "debug")
	t.Setenv("ROSTER_NO_COLOR", "1")

	cfg := FromEnv()

	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.True(t, cfg.EventsEnabled())
	assert.Equal(t, "class_7b", cfg.Channel)
	assert.Equal(t, "9090", cfg.WSPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.NoColor)
}
