package contracts

import "github.com/google/uuid"

// Callback is invoked when a subscribed pattern is satisfied. It receives no
// arguments; a returned error is handed back to whoever is driving the events.
type Callback func() error

// Trigger adapts a plain func() into a Callback that never fails.
func Trigger(fn func()) Callback {
	return func() error {
		fn()
		return nil
	}
}

// SubscriptionID identifies a registered subscription.
type SubscriptionID = uuid.UUID

// PatternKind tells chord and sequence subscriptions apart.
type PatternKind int

const (
	// SequencePattern matches notes played one after the other.
	SequencePattern PatternKind = iota + 1
	// ChordPattern matches notes held at the same time.
	ChordPattern
)

func (k PatternKind) String() string {
	switch k {
	case SequencePattern:
		return "sequence"
	case ChordPattern:
		return "chord"
	default:
		return "unknown"
	}
}

// Subscriber exposes pattern registration on top of a stream of note events.
type Subscriber interface {
	RegisterSequence(pattern []Note, cb Callback) (SubscriptionID, error)
	RegisterChord(pattern []Note, cb Callback) (SubscriptionID, error)
	Unregister(id SubscriptionID) bool
}
