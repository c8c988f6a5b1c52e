package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/pcrex"
	"github.com/coregx/pcrex/internal/config"
	"github.com/coregx/pcrex/internal/logging"
)

// scanFlags select the pattern and subject for match and send.
type scanFlags struct {
	pattern string
	file    string
	limit   int
}

func (s *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.pattern, "pattern", "p", "", "regular expression (default from config)")
	cmd.Flags().StringVarP(&s.file, "file", "f", "", `read the subject from a file ("-" for stdin)`)
	cmd.Flags().IntVarP(&s.limit, "limit", "n", -1, "stop after this many matches (-1 for all)")
}

func newMatchCommand(flags *globalFlags) *cobra.Command {
	scan := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "match [subject]",
		Short: "Print the matches of a pattern",
		Long: `Print every non-overlapping match of the pattern in the subject.

The subject is the argument if given, else the --file contents, else the
subject from the config file. Each match is printed as its byte span and
quoted text. The exit status is 1 when nothing matched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			enabled, err := colorEnabled(flags.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			subject, err := readSubject(cmd, cfg, scan, args)
			if err != nil {
				return err
			}
			re, err := compile(cfg, scan)
			if err != nil {
				return err
			}
			defer re.Close()

			out := newPrinter(cmd.OutOrStdout(), enabled)
			matches, err := re.FindAll(subject, scan.limit)
			for _, m := range matches {
				out.match(m.Start(), m.End(), m.Bytes())
			}
			out.summary(len(matches))
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return ErrNoMatches
			}
			return nil
		},
	}
	scan.register(cmd)

	return cmd
}

// compile validates cfg, applies the --pattern override and compiles.
func compile(cfg *config.Config, scan *scanFlags) (*pcrex.Regex, error) {
	if scan.pattern != "" {
		cfg.Pattern = scan.pattern
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	rc, err := cfg.RegexConfig()
	if err != nil {
		return nil, err
	}

	logging.Default().Debug("compiling",
		logging.FieldPattern, cfg.Pattern,
		logging.FieldEngine, rc.Library.Name(),
		logging.FieldOptions, fmt.Sprintf("%#x", uint32(rc.Options)),
	)
	return pcrex.BuildWithConfig(cfg.Pattern, rc)
}

func readSubject(cmd *cobra.Command, cfg *config.Config, scan *scanFlags, args []string) ([]byte, error) {
	switch {
	case len(args) == 1:
		return []byte(args[0]), nil
	case scan.file == "-":
		return io.ReadAll(cmd.InOrStdin())
	case scan.file != "":
		data, err := os.ReadFile(scan.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read subject: %w", err)
		}
		return data, nil
	default:
		return []byte(cfg.Subject), nil
	}
}
