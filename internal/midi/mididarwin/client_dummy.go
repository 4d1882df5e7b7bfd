//go:build !darwin
// +build !darwin

package mididarwin

import (
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// NewMIDIClient is only available on macOS.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return nil, contracts.ErrPlatformUnsupported
}
