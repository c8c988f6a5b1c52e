package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/pcrex"
	"github.com/coregx/pcrex/native"
)

func newEnginesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the available regex engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := pcrex.DefaultLibrary().Name()
			for _, name := range native.Names() {
				marker := ""
				if name == def {
					marker = " (default)"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, marker); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
