// Package spoolcmder provides the root spool command.
package spoolcmder

import (
	servecmder "github.com/papercomputeco/spool/cmd/spool/serve"
	"github.com/spf13/cobra"
)

const spoolLongDesc string = `Spool streams lazy producers as incremental HTTP responses.

Run the simulation server using:
  spool serve          Run the streaming server`

const spoolShortDesc string = "Spool - Streaming HTTP responses"

func NewSpoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spool",
		Short: spoolShortDesc,
		Long:  spoolLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())

	return cmd
}
