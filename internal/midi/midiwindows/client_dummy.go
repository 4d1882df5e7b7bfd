//go:build !windows
// +build !windows

package midiwindows

import (
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// NewMIDIClient is only available on Windows.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return nil, contracts.ErrPlatformUnsupported
}
