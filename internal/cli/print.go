package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/notewatch/internal/notes"
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	var device string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print note names as they are played",
		Long: `Print the name of every note-on as it arrives, quoted and comma separated,
ready to paste into a sequence or chord binding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := rootOpts.openClient(device)
			if err != nil {
				return err
			}
			defer client.Stop()

			events := make(chan contracts.MIDI, contracts.DefaultEventBuffer)
			client.StartCapture(events)

			out := cmd.OutOrStdout()
			err = printNotes(cmd.Context(), events, func(n contracts.Note) {
				fmt.Fprintf(out, "'%s', ", n)
			})
			fmt.Fprintln(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "device name (substring match, default first device)")
	return cmd
}

// printNotes calls emit for every note-on until ctx ends or events closes.
func printNotes(ctx context.Context, events <-chan contracts.MIDI, emit func(contracts.Note)) error {
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if ev, isNote := notes.Decode(event); isNote && ev.On {
				emit(ev.Note)
			}
		}
	}
}
