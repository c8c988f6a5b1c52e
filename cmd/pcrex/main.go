// Package main is the entry point for the pcrex CLI.
package main

import (
	"errors"
	"os"

	"github.com/coregx/pcrex/internal/cli"
	"github.com/coregx/pcrex/internal/logging"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrNoMatches) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return 1
	}
	return 0
}
