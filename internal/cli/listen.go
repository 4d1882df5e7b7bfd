package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/notewatch/internal/config"
	"github.com/leandrodaf/notewatch/sdk/contracts"
	"github.com/leandrodaf/notewatch/sdk/subscriber"
)

// ListenOptions holds flags for the listen command.
type ListenOptions struct {
	ConfigPath string
	Device     string
	Async      bool
}

// NewListenCommand creates the listen command.
func NewListenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListenOptions{}

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Fire triggers for configured chords and sequences",
		Long: `Load pattern bindings from a YAML file and listen to the MIDI device.
Each time a binding matches, its name is printed to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListen(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "notewatch.yaml", "path to the bindings file")
	cmd.Flags().StringVarP(&opts.Device, "device", "d", "", "device name, overrides the config file")
	cmd.Flags().BoolVar(&opts.Async, "async", false, "run triggers off the event loop")

	return cmd
}

func runListen(cmd *cobra.Command, rootOpts *RootOptions, opts *ListenOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if rootOpts.LogLevel == "" && cfg.LogLevel != "" {
		level, _ := contracts.ParseLogLevel(cfg.LogLevel) // validated by Load
		rootOpts.Logger.SetLevel(level)
	}
	if rootOpts.LogFile == "" && cfg.LogFile != "" {
		rootOpts.Logger.SetDestination(contracts.FileLog, cfg.LogFile)
	}

	device := cfg.Device
	if opts.Device != "" {
		device = opts.Device
	}
	client, _, err := rootOpts.openClient(device)
	if err != nil {
		return err
	}

	subOpts := []contracts.SubscriberOption{
		contracts.WithSubscriberLogger(rootOpts.Logger),
		contracts.WithHistoryCapacity(cfg.Capacity),
	}
	if opts.Async || cfg.AsyncCallbacks {
		subOpts = append(subOpts, contracts.WithAsyncCallbacks(contracts.DefaultEventBuffer))
	}
	sub, err := subscriber.New(client, subOpts...)
	if err != nil {
		_ = client.Stop()
		return err
	}

	out := cmd.OutOrStdout()
	log := rootOpts.Logger
	err = cfg.Register(sub, func(b config.Binding) contracts.Callback {
		return func() error {
			log.Info("Trigger",
				log.Field().String("binding", b.Name),
				log.Field().String("kind", b.Kind().String()))
			_, err := fmt.Fprintln(out, b.Name)
			return err
		}
	})
	if err != nil {
		_ = client.Stop()
		return err
	}
	log.Info("Bindings loaded", log.Field().Int("count", len(cfg.Bindings)))

	runErr := sub.Run(cmd.Context())
	closeErr := sub.Close()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	return errors.Join(runErr, closeErr)
}
