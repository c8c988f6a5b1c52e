package cli

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/coregx/pcrex/internal/logging"
	"github.com/coregx/pcrex/sender"
)

func newListenCommand(flags *globalFlags) *cobra.Command {
	var (
		addr    string
		count   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Print datagrams received on a UDP address",
		Long: `Bind the UDP address and print each datagram received, one per line,
until interrupted, --count datagrams have arrived, or --timeout elapses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			logger := logging.Default()
			ln, err := sender.ListenUDP(cfg.Address, sender.ListenOptions{
				ReceiveBuffer: cfg.ReceiveBuffer,
				Logger:        logger,
			})
			if err != nil {
				return err
			}
			defer ln.Close()
			logger.Info("listening", logging.FieldAddr, ln.Addr().String())

			received := 0
			out := cmd.OutOrStdout()
			err = ln.Serve(ctx, func(b []byte, from net.Addr) {
				_, _ = fmt.Fprintf(out, "%s\t%q\n", from, b)
				received++
				if count > 0 && received >= count {
					cancel()
				}
			})
			logger.Debug("stopped", logging.FieldMatches, received)
			return err
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "bind address (default from config)")
	cmd.Flags().IntVarP(&count, "count", "c", 0, "exit after this many datagrams (0 for no limit)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "exit after this long (0 for no limit)")

	return cmd
}
