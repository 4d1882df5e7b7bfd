//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/notewatch/internal/midi/capture"
	"github.com/leandrodaf/notewatch/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid reads note events from a CoreMIDI source.
type ClientMid struct {
	logger     contracts.Logger
	client     coremidi.Client
	inputPort  coremidi.InputPort
	portConn   internalPortConnection
	dispatcher *capture.Dispatcher
	mu         sync.Mutex
	capturing  bool
}

// NewMIDIClient creates the CoreMIDI client named in the options.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client successfully created",
		options.Logger.Field().String("clientName", options.CoreMIDIConfig.ClientName))

	return &ClientMid{
		logger:     options.Logger,
		client:     client,
		dispatcher: capture.NewDispatcher(options.Logger, options.MIDIEventFilter),
	}, nil
}

// ListDevices returns the CoreMIDI sources in system order.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		entity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice connects to the source at deviceID, dropping any previous connection.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	m.inputPort, err = coremidi.NewInputPort(m.client, "notewatch input", m.handlePacket)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device successfully connected")
	return nil
}

func (m *ClientMid) handlePacket(_ coremidi.Source, packet coremidi.Packet) {
	m.dispatcher.DeliverPacket(packet.Data)
}

// StartCapture routes incoming events to eventChannel, replacing any earlier channel.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if m.capturing {
		m.logger.Warn("Capture already started; switching to the new channel")
	}

	m.logger.Info("Starting MIDI event capture")
	m.dispatcher.Attach(eventChannel)
	m.capturing = true
}

// Stop disconnects from the device and waits for in-flight events.
// Calling it again is a no-op.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}
	if m.capturing {
		m.capturing = false
		m.dispatcher.Detach()
		m.logger.Info("MIDI capture stopped")
	}
	return nil
}
