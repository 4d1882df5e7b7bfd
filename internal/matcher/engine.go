package matcher

import (
	"slices"
	"sync"

	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// Trigger is a satisfied subscription waiting for its callback to run.
type Trigger struct {
	ID       contracts.SubscriptionID
	Kind     contracts.PatternKind
	callback contracts.Callback
}

// Fire runs the callback. A failure comes back as *CallbackError. The zero
// Trigger has no callback and does nothing.
func (t Trigger) Fire() error {
	if t.callback == nil {
		return nil
	}
	if err := t.callback(); err != nil {
		return &CallbackError{Kind: t.Kind, ID: t.ID, Err: err}
	}
	return nil
}

// Engine matches chord and sequence subscriptions against a stream of note
// events. All methods are safe for concurrent use; events are still applied
// strictly one at a time in the order Process is called.
type Engine struct {
	mu      sync.Mutex
	chord   *ChordState
	history *SequenceBuffer
	subs    registry
	logger  contracts.Logger
}

var _ contracts.Subscriber = (*Engine)(nil)

// NewEngine creates an engine that remembers up to capacity note-on events.
// logger may be nil.
func NewEngine(capacity int, logger contracts.Logger) (*Engine, error) {
	history, err := NewSequenceBuffer(capacity)
	if err != nil {
		return nil, err
	}
	return &Engine{
		chord:   NewChordState(),
		history: history,
		logger:  logger,
	}, nil
}

// RegisterSequence subscribes cb to pattern being played as consecutive note-ons.
func (e *Engine) RegisterSequence(pattern []contracts.Note, cb contracts.Callback) (contracts.SubscriptionID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.subs.add(contracts.SequencePattern, pattern, cb)
}

// RegisterChord subscribes cb to every note of pattern being held together.
// Duplicate notes in pattern are ignored.
func (e *Engine) RegisterChord(pattern []contracts.Note, cb contracts.Callback) (contracts.SubscriptionID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.subs.add(contracts.ChordPattern, pattern, cb)
}

// Unregister removes a subscription. It reports whether id was registered.
func (e *Engine) Unregister(id contracts.SubscriptionID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.subs.remove(id)
}

// Process applies event and runs the callback of every subscription it
// satisfies, sequences before chords, each group in registration order.
// The first callback error stops the remaining callbacks for this event and
// is returned; the matcher state has already advanced by then.
func (e *Engine) Process(event contracts.NoteEvent) error {
	for _, t := range e.Evaluate(event) {
		if err := t.Fire(); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate applies event and returns the satisfied subscriptions without
// running their callbacks. Callers that defer the callbacks must fire the
// triggers in the order returned.
func (e *Engine) Evaluate(event contracts.NoteEvent) []Trigger {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.chord.Update(event.Note, event.On)
	if event.On {
		e.history.Append(event.Note)
	}

	var fired []Trigger
	for _, sub := range e.subs.sequences {
		tail, ok := e.history.Tail(len(sub.pattern))
		if !ok || !slices.Equal(tail, sub.pattern) {
			continue
		}
		e.history.Consume()
		fired = append(fired, e.trigger(sub))
	}
	for _, sub := range e.subs.chords {
		if e.chord.HoldsAll(sub.pattern) {
			fired = append(fired, e.trigger(sub))
		}
	}
	return fired
}

func (e *Engine) trigger(sub subscription) Trigger {
	if e.logger != nil {
		e.logger.Debug("Pattern matched",
			e.logger.Field().String("kind", sub.kind.String()),
			e.logger.Field().String("subscription", sub.id.String()),
			e.logger.Field().Strings("pattern", names(sub.pattern)))
	}
	return Trigger{ID: sub.id, Kind: sub.kind, callback: sub.callback}
}

// History returns the note-on history, oldest first.
func (e *Engine) History() []contracts.Note {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Snapshot()
}

// Held returns the notes currently held down.
func (e *Engine) Held() []contracts.Note {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chord.Held()
}

func names(notes []contracts.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = string(n)
	}
	return out
}
