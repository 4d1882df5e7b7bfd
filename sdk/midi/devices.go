package midi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leandrodaf/notewatch/internal/notes"
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// ErrDeviceNotFound is returned when no device name contains the requested text.
var ErrDeviceNotFound = errors.New("MIDI device not found")

// FindDevice returns the index of the last device whose name contains name.
// An empty name picks the first device.
func FindDevice(devices []contracts.DeviceInfo, name string) (int, error) {
	if len(devices) == 0 {
		return -1, fmt.Errorf("%w: no input devices", ErrDeviceNotFound)
	}
	if name == "" {
		return 0, nil
	}
	found := -1
	for i, d := range devices {
		if strings.Contains(d.Name, name) {
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
	}
	return found, nil
}

// SelectDeviceByName lists the client's devices and selects the one whose
// name contains name.
func SelectDeviceByName(client contracts.ClientMIDI, name string) (contracts.DeviceInfo, error) {
	devices, err := client.ListDevices()
	if err != nil {
		return contracts.DeviceInfo{}, err
	}
	idx, err := FindDevice(devices, name)
	if err != nil {
		return contracts.DeviceInfo{}, err
	}
	if err := client.SelectDevice(idx); err != nil {
		return contracts.DeviceInfo{}, err
	}
	return devices[idx], nil
}

// NoteName returns the pitch name used for key in patterns, e.g. NoteName(60).
func NoteName(key uint8) contracts.Note {
	return notes.Name(key)
}
