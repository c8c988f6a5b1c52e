// Package cli provides the Cobra command structure for pcrex.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/coregx/pcrex/internal/config"
	"github.com/coregx/pcrex/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// ErrNoMatches is returned by match and send when the pattern matched
// nothing. It only selects the exit code.
var ErrNoMatches = errors.New("no matches")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	debug      bool
	color      string
	engine     string
	options    []string
}

// NewRootCommand creates the root pcrex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "pcrex",
		Short: "Find pattern matches and ship them over UDP",
		Long: `pcrex scans text with a PCRE-style regular expression and reports the
non-overlapping matches. Matches can be printed, or sent one datagram per
match to a UDP address where "pcrex listen" prints them.

Patterns are compiled by a pluggable engine; see "pcrex engines".`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&flags.engine, "engine", "e", "",
		"regex engine (default from config, else the build default)")
	rootCmd.PersistentFlags().StringSliceVarP(&flags.options, "option", "o", nil,
		"compile option, repeatable (caseless, multiline, dotall, utf, ucp, ascii, ...)")

	rootCmd.AddCommand(newMatchCommand(flags))
	rootCmd.AddCommand(newSendCommand(flags))
	rootCmd.AddCommand(newListenCommand(flags))
	rootCmd.AddCommand(newEnginesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// loadConfig reads the config file and applies the global flags that were
// set explicitly.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("engine") {
		cfg.Engine = flags.engine
	}
	if cmd.Flags().Changed("option") {
		cfg.Options = flags.options
	}
	if flags.debug {
		cfg.LogLevel = "debug"
	}
	logging.SetLevel(cfg.LogLevel)
	return cfg, nil
}
