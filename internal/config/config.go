// Package config reads roster settings from the environment. Command-line
// flags override these values in cmd.
package config

import (
	"os"
	"strings"
)

const (
	DefaultChannel = "roster_events"
	DefaultWSPort  = "8080"
	DefaultLevel   = "warn"
)

// Config holds everything the CLI needs besides the roster itself.
type Config struct {
	// RedisURL enables event publishing when set, e.g. redis://localhost:6379/0.
	RedisURL string
	// Channel is the Redis Pub/Sub channel for roster events.
	Channel string
	// WSPort is the port the watch server listens on.
	WSPort string

	LogLevel string
	NoColor  bool
}

// FromEnv builds a Config from ROSTER_* variables, filling in defaults.
func FromEnv() Config {
	return Config{
		RedisURL: strings.TrimSpace(os.Getenv("ROSTER_REDIS_URL")),
		Channel:  getenv("ROSTER_EVENTS_CHANNEL", DefaultChannel),
		WSPort:   getenv("ROSTER_WS_PORT", DefaultWSPort),
		LogLevel: getenv("ROSTER_LOG_LEVEL", DefaultLevel),
		NoColor:  os.Getenv("ROSTER_NO_COLOR") != "",
	}
}

// EventsEnabled reports whether a Redis URL was configured.
func (c Config) EventsEnabled() bool {
	return c.RedisURL != ""
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
