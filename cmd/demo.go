/*
Package cmd - Demo

The demo replays a fixed session through the shell: two students, a few
grades, a student without grades, then each failure case once.
*/
package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ldamasio/roster/internal/roster"
)

var demoScript = []string{
	"add kingsley 101",
	"add mamah 102",
	"grade 101 85",
	"grade 101 90",
	"grade 102 78",
	"view 101",
	"view 102",
	"add mamah 103",
	"view 103",
	"add kingsley 101",
	"grade 101 -10",
	"grade 101 105",
	"grade 104 85",
	"view 999",
}

// demoCmd runs the scripted session
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted session against a fresh roster",
	Long: `Run a fixed session against a fresh roster and print every outcome.

The script covers:
  - adding students and grades
  - viewing details with and without grades
  - a duplicate ID, out-of-range grades and unknown IDs

Events are published like in the shell when a Redis URL is configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		publisher, err := newPublisher(ctx)
		if err != nil {
			return err
		}
		defer publisher.Close()

		script := strings.NewReader(strings.Join(demoScript, "\n") + "\n")
		sh := newShell(roster.New(), script, cmd.OutOrStdout(), publisher, log)
		sh.echo = !jsonOutput
		sh.asJSON = jsonOutput
		sh.color = !jsonOutput && !cfg.NoColor
		return sh.Run(ctx)
	},
}
