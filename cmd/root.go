/*
Package cmd implements the roster CLI.

The root command opens the interactive shell; subcommands cover the scripted
demo, the live event feed and version information. Every command builds its
own roster, so nothing survives the process.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ldamasio/roster/internal/config"
	"github.com/ldamasio/roster/internal/events"
	"github.com/ldamasio/roster/internal/logger"
)

var (
	// Global flags
	jsonOutput bool
	noColor    bool
	logLevel   string
	redisURL   string
	channel    string

	// Version information (set by main)
	version   string
	buildTime string

	// Resolved in PersistentPreRunE from env + flags
	cfg config.Config
	log = logger.Nop()

	rootCmd = &cobra.Command{
		Use:   "roster",
		Short: "Roster - in-memory student records and grades",
		Long: `Roster keeps student records and grades in memory for the length of a session.

Start it without a subcommand to open the interactive shell:

  roster
  > add kingsley 101
  Student added: kingsley (ID: 101)
  > grade 101 85
  Grade 85 added to student ID 101.
  > view 101
  Name: kingsley, ID: 101, Average Grade: 85.00

Nothing is saved: the roster is gone when the shell exits.

Set ROSTER_REDIS_URL (or --redis) to publish every change as a JSON event;
"roster watch" relays those events to WebSocket clients.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
		RunE:              runShell,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information for the CLI
func SetVersionInfo(v, bt string) {
	version = v
	buildTime = bt
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format for automation/agents")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output (also ROSTER_NO_COLOR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (also ROSTER_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis", "", "Redis URL for roster events (also ROSTER_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&channel, "channel", "", "Redis Pub/Sub channel for roster events (also ROSTER_EVENTS_CHANNEL)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				return outputJSON(cmd.OutOrStdout(), map[string]string{
					"version":   version,
					"buildTime": buildTime,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "roster version %s (built %s)\n", version, buildTime)
			return nil
		},
	})

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig reads ROSTER_* variables and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg = config.FromEnv()

	flags := cmd.Flags()
	if flags.Changed("no-color") {
		cfg.NoColor = noColor
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("redis") {
		cfg.RedisURL = redisURL
	}
	if flags.Changed("channel") && channel != "" {
		cfg.Channel = channel
	}
	if flags.Changed("port") {
		cfg.WSPort = wsPort
	}

	log = logger.New(cmd.ErrOrStderr(), logger.ParseLevel(cfg.LogLevel))
	log.Debug("configuration loaded",
		logger.Command(cmd.Name()),
		logger.Any("events", cfg.EventsEnabled()),
		logger.String("channel", cfg.Channel),
	)
	return nil
}

// newPublisher connects to Redis when events are enabled. Without a URL the
// shell runs with a publisher that drops everything.
func newPublisher(ctx context.Context) (events.Publisher, error) {
	if !cfg.EventsEnabled() {
		return events.Nop{}, nil
	}

	client, err := events.Dial(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect to event channel: %w", err)
	}
	log.Info("publishing roster events", logger.String("channel", cfg.Channel))
	return events.NewRedisPublisher(client, cfg.Channel), nil
}
