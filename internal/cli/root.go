// Package cli implements the notewatch command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/leandrodaf/notewatch/internal/logger"
	"github.com/leandrodaf/notewatch/sdk/contracts"
	"github.com/leandrodaf/notewatch/sdk/midi"
)

// ClientFactory opens the platform MIDI client.
type ClientFactory func(opts ...contracts.Option) (contracts.ClientMIDI, error)

// RootOptions holds global flags and shared dependencies for all commands.
type RootOptions struct {
	LogLevel string
	LogFile  string

	Logger    contracts.Logger
	NewClient ClientFactory
}

// NewRootCommand creates the root command for the notewatch CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{NewClient: midi.NewMIDIClient})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notewatch",
		Short: "React to chords and note sequences played on a MIDI keyboard",
		Long: `notewatch listens to a MIDI input device and fires named triggers when
a configured chord is held or a note sequence is played.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogger()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file instead of stderr")

	cmd.AddCommand(NewDevicesCommand(opts))
	cmd.AddCommand(NewPrintCommand(opts))
	cmd.AddCommand(NewListenCommand(opts))

	return cmd
}

// setupLogger builds the shared logger unless a test already injected one.
func (o *RootOptions) setupLogger() error {
	level, err := contracts.ParseLogLevel(o.LogLevel)
	if err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = logger.NewStandardLogger()
	}
	o.Logger.SetLevel(level)
	if o.LogFile != "" {
		o.Logger.SetDestination(contracts.FileLog, o.LogFile)
	}
	return nil
}

// openClient creates the MIDI client and connects to the device matching name.
func (o *RootOptions) openClient(name string) (contracts.ClientMIDI, contracts.DeviceInfo, error) {
	client, err := o.NewClient(
		contracts.WithLogger(o.Logger),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}),
	)
	if err != nil {
		return nil, contracts.DeviceInfo{}, err
	}

	device, err := midi.SelectDeviceByName(client, name)
	if err != nil {
		_ = client.Stop()
		return nil, contracts.DeviceInfo{}, err
	}
	o.Logger.Info("Opened MIDI device", o.Logger.Field().String("device", device.Name))
	return client, device, nil
}
