//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/leandrodaf/notewatch/internal/midi/capture"
	"github.com/leandrodaf/notewatch/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

var (
	ErrNoMIDIDevices   = errors.New("no MIDI devices found")
	ErrNoDeviceHandle  = errors.New("invalid MIDI device handle")
	ErrDeviceNotOpened = errors.New("no MIDI device selected")
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ClientMid reads note events through the winmm MIDI input API.
type ClientMid struct {
	logger     contracts.Logger
	handle     HMIDIIN
	portConn   bool
	started    bool
	mu         sync.Mutex
	callback   uintptr
	dispatcher *capture.Dispatcher
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// NewMIDIClient creates a MIDI client for Windows
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI client created for Windows")

	return &ClientMid{
		logger:     options.Logger,
		dispatcher: capture.NewDispatcher(options.Logger, options.MIDIEventFilter),
	}, nil
}

// ListDevices lists the available MIDI input devices
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get MIDI device capabilities", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         name,
			EntityName:   name,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// SelectDevice opens the input device at deviceID, closing any previous one.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.portConn {
		if err := m.close(); err != nil {
			return fmt.Errorf("failed to close previous MIDI device: %w", err)
		}
	}

	m.callback = windows.NewCallback(midiInCallback)
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		m.callback,
		uintptr(unsafe.Pointer(m)),
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		return fmt.Errorf("failed to open MIDI device %d: %v", deviceID, err)
	}

	m.portConn = true
	m.logger.Info("MIDI device connected", m.logger.Field().Int("deviceID", deviceID))
	return nil
}

// StartCapture routes incoming events to eventChannel and starts the device.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if !m.portConn || m.handle == 0 {
		m.logger.Error("Cannot start capture", m.logger.Field().Error("error", ErrDeviceNotOpened))
		return
	}

	m.dispatcher.Attach(eventChannel)
	if m.started {
		m.logger.Warn("Capture already started; switching to the new channel")
		return
	}

	r1, _, err := procMidiInStart.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", err))
		return
	}
	m.started = true
	m.logger.Info("MIDI capture started")
}

// midiInCallback receives driver messages; dwInstance carries the client.
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	m := (*ClientMid)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		m.logger.Debug("MIDI device opened")
	case MIM_CLOSE:
		m.logger.Debug("MIDI device closed")
	case MIM_DATA:
		m.dispatcher.Deliver(byte(dwParam1&0xFF), byte((dwParam1>>8)&0xFF), byte((dwParam1>>16)&0xFF))
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error("MIDI driver error", m.logger.Field().Int("message", int(wMsg)))
	case MIM_MOREDATA:
		m.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		m.logger.Warn("Unknown MIDI message", m.logger.Field().Int("message", int(wMsg)))
	}

	return 0
}

// Stop terminates MIDI event capture and closes the device.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portConn {
		return nil
	}
	if err := m.close(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	m.logger.Info("MIDI capture stopped and device closed")
	return nil
}

// close stops the device, detaches the channel and releases the handle.
func (m *ClientMid) close() error {
	if m.handle == 0 {
		return ErrNoDeviceHandle
	}

	if m.started {
		if r1, _, err := procMidiInStop.Call(uintptr(m.handle)); r1 != 0 {
			return err
		}
		m.started = false
	}
	m.dispatcher.Detach()

	if r1, _, err := procMidiInClose.Call(uintptr(m.handle)); r1 != 0 {
		return err
	}

	m.portConn = false
	m.handle = 0
	return nil
}
