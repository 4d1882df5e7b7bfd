package midi

import (
	"errors"

	"github.com/leandrodaf/notewatch/internal/logger"
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// DefaultClientName is the CoreMIDI client name used when none is configured.
const DefaultClientName = "notewatch"

// ErrEmptyClientName is returned when WithCoreMIDIConfig is given a blank client name.
var ErrEmptyClientName = errors.New("CoreMIDI client name must not be empty")

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	switch {
	case options.CoreMIDIConfig == nil:
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: DefaultClientName}
	case options.CoreMIDIConfig.ClientName == "":
		return contracts.ClientOptions{}, ErrEmptyClientName
	}
	if options.MIDIEventFilter == nil {
		options.MIDIEventFilter = &contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options, nil
}
