/*
Package main implements the roster CLI.

Design philosophy:
  - The roster lives in memory and dies with the process
  - The shell is a thin adapter: one line in, one roster operation, one message out
  - Human-readable by default, machine-readable on demand (--json)

Architecture:
  - Root command: roster (opens the shell)
  - Subcommands: shell, demo, watch, version
*/
package main

import (
	"fmt"
	"os"

	"github.com/ldamasio/roster/cmd"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	// Set version info for commands
	cmd.SetVersionInfo(Version, BuildTime)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
