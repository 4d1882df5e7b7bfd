package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// NewDevicesCommand creates the devices command.
func NewDevicesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List MIDI input devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rootOpts.NewClient(contracts.WithLogger(rootOpts.Logger))
			if err != nil {
				return err
			}
			defer client.Stop()

			devices, err := client.ListDevices()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, d := range devices {
				fmt.Fprintf(out, "%d: %s\n", i, d)
			}
			return nil
		},
	}
}
