package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" INFO ", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelWarn},
		{"verbose", LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo).With(Session("abc"))

	log.Debug("hidden")
	log.Info("student added", StudentID(101), Command("add"))
	log.Error("publish failed", Err(errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "student added", first["msg"])
	assert.NotEmpty(t, first["time"])
	assert.Equal(t, "abc", first["session"])
	assert.Equal(t, float64(101), first["student_id"])
	assert.Equal(t, "add", first["command"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, "abc", second["session"])
}

func TestNilErrIsNull(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, LevelWarn).Warn("publish event failed", Err(nil))

	var e map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &e))
	assert.Contains(t, e, "error")
	assert.Nil(t, e["error"])
}

func TestWithDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, LevelDebug)
	_ = base.With(Component("feed"))

	base.Info("plain")

	var e map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &e))
	assert.Equal(t, "plain", e["msg"])
	assert.NotContains(t, e, "component")
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.False(t, log.Enabled(LevelError))
	log.Error("nothing happens")
}
