// Package capture holds the delivery path shared by the OS specific MIDI
// adapters: event filtering and non-blocking hand-off to the capture channel.
package capture

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// ErrIncompleteMIDIPacket is reported when a packet is shorter than a channel message.
var ErrIncompleteMIDIPacket = errors.New("incomplete MIDI packet")

const (
	statusFlag = 0x80
	statusMask = 0xF0
)

// Dispatcher forwards decoded device messages to the capture channel.
// Deliver may be called from driver threads while Attach/Detach run elsewhere.
type Dispatcher struct {
	logger  contracts.Logger
	filter  *contracts.MIDIEventFilter
	channel atomic.Value // chan contracts.MIDI
	wg      sync.WaitGroup
	now     func() time.Time
}

// NewDispatcher creates a detached dispatcher. filter may be nil to accept every command.
func NewDispatcher(logger contracts.Logger, filter *contracts.MIDIEventFilter) *Dispatcher {
	d := &Dispatcher{logger: logger, filter: filter, now: time.Now}
	d.channel.Store((chan contracts.MIDI)(nil))
	return d
}

// Attach starts delivering to ch.
func (d *Dispatcher) Attach(ch chan contracts.MIDI) {
	d.channel.Store(ch)
}

// Detach stops delivery and waits for in-flight messages to land.
func (d *Dispatcher) Detach() {
	d.channel.Store((chan contracts.MIDI)(nil))
	d.wg.Wait()
}

// Attached reports whether a capture channel is set.
func (d *Dispatcher) Attached() bool {
	ch, _ := d.channel.Load().(chan contracts.MIDI)
	return ch != nil
}

// DeliverPacket splits a raw packet into three byte channel messages and
// delivers each one. Bytes before the first status byte are skipped.
func (d *Dispatcher) DeliverPacket(data []byte) {
	if len(data) < 3 {
		d.logger.Warn(ErrIncompleteMIDIPacket.Error(), d.logger.Field().Int("length", len(data)))
		return
	}
	for i := 0; i+2 < len(data); {
		if data[i]&statusFlag == 0 {
			i++
			continue
		}
		d.Deliver(data[i], data[i+1], data[i+2])
		i += 3
	}
}

// Deliver filters one channel message and sends it without blocking.
// When the channel is full the message is dropped with a warning.
func (d *Dispatcher) Deliver(status, data1, data2 byte) {
	d.wg.Add(1)
	defer d.wg.Done()

	ch, _ := d.channel.Load().(chan contracts.MIDI)
	if ch == nil {
		return
	}

	event := contracts.MIDI{
		Timestamp: uint64(d.now().UTC().UnixNano()),
		Command:   status & statusMask,
		Note:      data1,
		Velocity:  data2,
	}
	if !d.Allowed(event.Command) {
		d.logger.Debug("MIDI command filtered out", d.logger.Field().Uint8("command", event.Command))
		return
	}

	select {
	case ch <- event:
	default:
		d.logger.Warn("Event buffer full; dropping MIDI event",
			d.logger.Field().Uint8("command", event.Command),
			d.logger.Field().Uint8("note", event.Note))
	}
}

// Allowed verifies if a command passes the configured filter.
func (d *Dispatcher) Allowed(command byte) bool {
	if d.filter == nil {
		return true
	}
	for _, allowed := range d.filter.Commands {
		if command == byte(allowed) {
			return true
		}
	}
	return false
}
