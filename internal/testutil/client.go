// Package testutil provides an in-memory MIDI client for tests.
package testutil

import (
	"errors"
	"sync"

	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// ErrNotCapturing is returned by Send before StartCapture has been called.
var ErrNotCapturing = errors.New("capture not started")

// FakeClient implements contracts.ClientMIDI over a fixed device list.
// Tests push events with Send.
type FakeClient struct {
	mu       sync.Mutex
	Devices  []contracts.DeviceInfo
	ListErr  error
	Selected int
	Stopped  bool
	channel  chan contracts.MIDI
}

// NewFakeClient returns a client exposing the named devices.
func NewFakeClient(names ...string) *FakeClient {
	c := &FakeClient{Selected: -1}
	for _, n := range names {
		c.Devices = append(c.Devices, contracts.DeviceInfo{Name: n, EntityName: n})
	}
	return c
}

func (c *FakeClient) ListDevices() ([]contracts.DeviceInfo, error) {
	if c.ListErr != nil {
		return nil, c.ListErr
	}
	return c.Devices, nil
}

func (c *FakeClient) SelectDevice(deviceID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if deviceID < 0 || deviceID >= len(c.Devices) {
		return errors.New("invalid MIDI device")
	}
	c.Selected = deviceID
	return nil
}

func (c *FakeClient) StartCapture(eventChannel chan contracts.MIDI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channel = eventChannel
}

func (c *FakeClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Stopped = true
	c.channel = nil
	return nil
}

// Send pushes events into the capture channel, blocking if it is full.
func (c *FakeClient) Send(events ...contracts.MIDI) error {
	c.mu.Lock()
	ch := c.channel
	c.mu.Unlock()
	if ch == nil {
		return ErrNotCapturing
	}
	for _, e := range events {
		ch <- e
	}
	return nil
}

// On builds a raw note-on for key.
func On(key uint8) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.NoteOn), Note: key, Velocity: 100}
}

// Off builds a raw note-off for key.
func Off(key uint8) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.NoteOff), Note: key}
}
