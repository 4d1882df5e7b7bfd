package matcher

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/notewatch/sdk/contracts"
)

var (
	// ErrInvalidCapacity is returned when the history capacity is not positive.
	ErrInvalidCapacity = errors.New("history capacity must be positive")
	// ErrEmptyPattern is returned when registering a pattern with no notes.
	ErrEmptyPattern = errors.New("pattern has no notes")
	// ErrNilCallback is returned when registering without a callback.
	ErrNilCallback = errors.New("callback is nil")
)

// CallbackError wraps a failure returned by a subscription callback.
type CallbackError struct {
	Kind contracts.PatternKind
	ID   contracts.SubscriptionID
	Err  error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s subscription %s: %v", e.Kind, e.ID, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }
