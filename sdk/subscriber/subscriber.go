// Package subscriber connects a MIDI input client to the pattern matcher so
// callers can react to chords and note sequences played on a device.
package subscriber

import (
	"context"
	"errors"
	"sync"

	"github.com/leandrodaf/notewatch/internal/matcher"
	"github.com/leandrodaf/notewatch/internal/notes"
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

var (
	// ErrNoClient is returned by Run when the subscriber was built without a MIDI client.
	ErrNoClient = errors.New("subscriber has no MIDI client")
	// ErrClosed is returned when events arrive after Close.
	ErrClosed = errors.New("subscriber is closed")
)

// Re-exported registration errors.
var (
	ErrEmptyPattern    = matcher.ErrEmptyPattern
	ErrNilCallback     = matcher.ErrNilCallback
	ErrInvalidCapacity = matcher.ErrInvalidCapacity
)

// Subscriber feeds note events from a MIDI client into a pattern matcher.
//
// By default callbacks run inline on the goroutine that delivers the event,
// so a slow callback delays the next event. WithAsyncCallbacks moves them to
// a single worker goroutine that runs them in match order. ProcessNote may be
// called from several goroutines; the triggers of one event are always queued
// together.
type Subscriber struct {
	client  contracts.ClientMIDI
	engine  *matcher.Engine
	logger  contracts.Logger
	options contracts.SubscriberOptions

	mu       sync.Mutex
	closed   bool
	triggers chan matcher.Trigger
	failed   chan error
	done     chan struct{}
}

var _ contracts.Subscriber = (*Subscriber)(nil)

// New creates a subscriber reading from client. client may be nil when
// events are pushed with Process or ProcessNote instead of Run.
func New(client contracts.ClientMIDI, opts ...contracts.SubscriberOption) (*Subscriber, error) {
	options := applyDefaultOptions(opts...)

	engine, err := matcher.NewEngine(options.HistoryCapacity, options.Logger)
	if err != nil {
		return nil, err
	}

	s := &Subscriber{
		client:  client,
		engine:  engine,
		logger:  options.Logger,
		options: options,
		failed:  make(chan error, 1),
	}
	if options.AsyncCallbacks {
		s.triggers = make(chan matcher.Trigger, options.TriggerQueue)
		s.done = make(chan struct{})
		go s.runTriggers()
	}
	return s, nil
}

// RegisterSequence calls cb whenever pattern is played as consecutive note-ons.
func (s *Subscriber) RegisterSequence(pattern []contracts.Note, cb contracts.Callback) (contracts.SubscriptionID, error) {
	id, err := s.engine.RegisterSequence(pattern, cb)
	if err == nil {
		s.logger.Debug("Sequence registered",
			s.logger.Field().String("subscription", id.String()),
			s.logger.Field().Strings("pattern", noteNames(pattern)))
	}
	return id, err
}

// RegisterChord calls cb on every event that leaves all notes of pattern held.
func (s *Subscriber) RegisterChord(pattern []contracts.Note, cb contracts.Callback) (contracts.SubscriptionID, error) {
	id, err := s.engine.RegisterChord(pattern, cb)
	if err == nil {
		s.logger.Debug("Chord registered",
			s.logger.Field().String("subscription", id.String()),
			s.logger.Field().Strings("pattern", noteNames(pattern)))
	}
	return id, err
}

// Unregister removes a subscription and reports whether it existed.
func (s *Subscriber) Unregister(id contracts.SubscriptionID) bool {
	return s.engine.Unregister(id)
}

// History returns the note-on history used for sequence matching.
func (s *Subscriber) History() []contracts.Note {
	return s.engine.History()
}

// Held returns the notes currently held down.
func (s *Subscriber) Held() []contracts.Note {
	return s.engine.Held()
}

// Run starts capture on the client and processes events until ctx is done
// or a callback fails. The client is stopped before Run returns.
func (s *Subscriber) Run(ctx context.Context) error {
	if s.client == nil {
		return ErrNoClient
	}

	events := make(chan contracts.MIDI, s.options.EventBuffer)
	s.client.StartCapture(events)
	defer func() {
		if err := s.client.Stop(); err != nil {
			s.logger.Error("Failed to stop MIDI client", s.logger.Field().Error("error", err))
		}
	}()

	s.logger.Info("Listening for note patterns")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-s.failed:
			return err
		case event := <-events:
			if err := s.Process(event); err != nil {
				return err
			}
		}
	}
}

// Process handles one raw MIDI event. Messages other than note-on and
// note-off are ignored.
func (s *Subscriber) Process(event contracts.MIDI) error {
	noteEvent, ok := notes.Decode(event)
	if !ok {
		s.logger.Debug("Ignoring MIDI message",
			s.logger.Field().Uint8("command", event.Command),
			s.logger.Field().Uint8("data1", event.Note),
			s.logger.Field().Uint8("data2", event.Velocity))
		return nil
	}

	if noteEvent.On {
		s.logger.Debug("ON",
			s.logger.Field().String("note", string(noteEvent.Note)),
			s.logger.Field().Uint8("velocity", event.Velocity))
	} else {
		s.logger.Debug("OFF", s.logger.Field().String("note", string(noteEvent.Note)))
	}
	return s.ProcessNote(noteEvent)
}

// ProcessNote handles one note event.
func (s *Subscriber) ProcessNote(event contracts.NoteEvent) error {
	if s.triggers == nil {
		// Inline callbacks run unlocked so they may call back into s.
		if s.isClosed() {
			return ErrClosed
		}
		return s.engine.Process(event)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for _, t := range s.engine.Evaluate(event) {
		s.triggers <- t
	}

	select {
	case err := <-s.failed:
		return err
	default:
		return nil
	}
}

func (s *Subscriber) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close drains queued callbacks and stops the callback worker. It does not
// stop the MIDI client; Run does that on exit.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.triggers != nil {
		close(s.triggers)
	}
	s.mu.Unlock()

	if s.done != nil {
		<-s.done
	}
	select {
	case err := <-s.failed:
		return err
	default:
		return nil
	}
}

// runTriggers fires queued triggers in order. The first failure is reported
// through s.failed; later ones are only logged.
func (s *Subscriber) runTriggers() {
	defer close(s.done)
	for t := range s.triggers {
		if err := t.Fire(); err != nil {
			s.logger.Error("Callback failed",
				s.logger.Field().String("kind", t.Kind.String()),
				s.logger.Field().String("subscription", t.ID.String()),
				s.logger.Field().Error("error", err))
			select {
			case s.failed <- err:
			default:
			}
		}
	}
}

func noteNames(pattern []contracts.Note) []string {
	out := make([]string, len(pattern))
	for i, n := range pattern {
		out[i] = string(n)
	}
	return out
}
