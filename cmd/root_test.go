package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCommandOutput(t *testing.T) {
	output, _, err := runRootCommand(t, []string{"demo", "--no-color"}, "")
	require.NoError(t, err)

	for _, want := range []string{
		"$ add kingsley 101",
		"Student added: kingsley (ID: 101)",
		"Name: kingsley, ID: 101, Average Grade: 87.50",
		"Name: mamah, ID: 102, Average Grade: 78.00",
		"Name: mamah, ID: 103, Average Grade: No grades available.",
		"A student with ID 101 already exists.",
		"Invalid grade: -10. Please provide a number between 0 and 100.",
		"Invalid grade: 105. Please provide a number between 0 and 100.",
		"Error: Student with ID 104 not found.",
		"Error: Student with ID 999 not found.",
	} {
		assert.Contains(t, output, want)
	}
	assert.NotContains(t, output, "\033[")
}

func TestDemoCommandJSON(t *testing.T) {
	output, _, err := runRootCommand(t, []string{"demo", "--json"}, "")
	require.NoError(t, err)

	outcomes := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, outcomes, len(demoScript))

	statuses := map[string]int{}
	for _, line := range outcomes {
		var r result
		require.NoError(t, json.Unmarshal([]byte(line), &r), "line %q", line)
		statuses[r.Status]++
	}
	assert.Equal(t, 9, statuses["success"])
	assert.Equal(t, 5, statuses["error"])
}

func TestRootCommandOpensShell(t *testing.T) {
	stdin := "add kingsley 101\ngrade 101 85\ngrade 101 90\nview 101\n"

	output, _, err := runRootCommand(t, []string{"--no-color"}, stdin)
	require.NoError(t, err)

	assert.Contains(t, output, "Roster shell.")
	assert.Contains(t, output, "Name: kingsley, ID: 101, Average Grade: 87.50")
}

func TestShellCommandJSON(t *testing.T) {
	stdin := "add kingsley 101\nview 101\n"

	output, _, err := runRootCommand(t, []string{"shell", "--json"}, stdin)
	require.NoError(t, err)

	outcomes := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, outcomes, 2, "prompts must not be printed in JSON mode")

	var last result
	require.NoError(t, json.Unmarshal([]byte(outcomes[1]), &last))
	assert.Equal(t, "view", last.Command)
	assert.Equal(t, "Name: kingsley, ID: 101, Average Grade: No grades available.", last.Message)
}

func TestEachRunStartsWithEmptyRoster(t *testing.T) {
	_, _, err := runRootCommand(t, []string{"shell", "--no-color"}, "add kingsley 101\n")
	require.NoError(t, err)

	output, _, err := runRootCommand(t, []string{"shell", "--no-color"}, "view 101\n")
	require.NoError(t, err)
	assert.Contains(t, output, "Error: Student with ID 101 not found.")
}

func TestLogLevelFlagWritesToStderr(t *testing.T) {
	_, stderr, err := runRootCommand(t, []string{"shell", "--no-color", "--log-level", "debug"}, "add kingsley 101\n")
	require.NoError(t, err)

	assert.Contains(t, stderr, `"level":"DEBUG"`)
	assert.Contains(t, stderr, "session started")
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "today")

	output, _, err := runRootCommand(t, []string{"version"}, "")
	require.NoError(t, err)
	assert.Equal(t, "roster version 1.2.3 (built today)\n", output)

	output, _, err = runRootCommand(t, []string{"version", "--json"}, "")
	require.NoError(t, err)
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(output), &payload))
	assert.Equal(t, "1.2.3", payload["version"])
}

func TestWatchRequiresRedis(t *testing.T) {
	_, _, err := runRootCommand(t, []string{"watch"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Redis URL")
}

func TestBadRedisURLFailsFast(t *testing.T) {
	_, _, err := runRootCommand(t, []string{"shell", "--redis", "not-a-url"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to event channel")
}

func runRootCommand(t *testing.T, args []string, stdin string) (string, string, error) {
	t.Helper()

	for _, key := range []string{
		"ROSTER_REDIS_URL", "ROSTER_EVENTS_CHANNEL", "ROSTER_WS_PORT", "ROSTER_LOG_LEVEL", "ROSTER_NO_COLOR",
	} {
		t.Setenv(key, "")
	}
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores defaults so one Execute does not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
