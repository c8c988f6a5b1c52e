package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/coregx/pcrex"
	"github.com/coregx/pcrex/internal/logging"
	"github.com/coregx/pcrex/sender"
)

func newSendCommand(flags *globalFlags) *cobra.Command {
	scan := &scanFlags{}
	var addr string

	cmd := &cobra.Command{
		Use:   "send [subject]",
		Short: "Send each match as a UDP datagram",
		Long: `Scan the subject like "match" and send every match to the UDP address,
one datagram per match. Run "pcrex listen" on the other end to print them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Address = addr
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

			conn, err := sender.DialUDP(cfg.Address)
			if err != nil {
				return err
			}
			defer conn.Close()

			logger := logging.Default().With(
				logging.FieldRunID, uuid.New().String(),
				logging.FieldAddr, conn.RemoteAddr(),
			)

			attempted, err := sendMatches(re, subject, conn, logger, scan.limit)
			if err != nil {
				return err
			}
			if attempted == 0 {
				return ErrNoMatches
			}
			return nil
		},
	}
	scan.register(cmd)
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "destination address (default from config)")

	return cmd
}

// sendMatches sends each match of re in subject as one datagram, stopping
// after limit matches when limit > 0. A failed send is logged and the scan
// goes on; the failures are returned together at the end.
func sendMatches(re *pcrex.Regex, subject []byte, conn sender.Sender, logger *log.Logger, limit int) (int, error) {
	var (
		attempted int
		failures  []error
	)
	for m, err := range re.All(subject) {
		if err != nil {
			return attempted, errors.Join(append(failures, err)...)
		}
		attempted++
		n, err := conn.Send(m.Bytes())
		if err != nil {
			logger.Error("send failed",
				logging.FieldError, err,
				logging.FieldText, m.String(),
			)
			failures = append(failures, err)
		} else {
			logger.Info("sent",
				logging.FieldBytes, n,
				logging.FieldText, m.String(),
			)
		}
		if limit > 0 && attempted >= limit {
			break
		}
	}
	logger.Debug("done",
		logging.FieldMatches, attempted,
		logging.FieldFailed, len(failures),
	)
	if len(failures) > 0 {
		return attempted, fmt.Errorf("%d of %d sends failed: %w", len(failures), attempted, errors.Join(failures...))
	}
	return attempted, nil
}
