// Package midi opens a MIDI input device for the running platform.
package midi

import (
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// NewMIDIClient creates a MIDI client for the running OS. Unless a filter is
// given, only note-on and note-off messages are captured.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return NewClient(&options)
}
