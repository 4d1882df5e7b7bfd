package matcher

import (
	"github.com/google/uuid"

	"github.com/leandrodaf/notewatch/sdk/contracts"
)

type subscription struct {
	id       contracts.SubscriptionID
	kind     contracts.PatternKind
	pattern  []contracts.Note
	callback contracts.Callback
}

// registry holds subscriptions in the order they were added.
type registry struct {
	sequences []subscription
	chords    []subscription
}

func (r *registry) add(kind contracts.PatternKind, pattern []contracts.Note, cb contracts.Callback) (contracts.SubscriptionID, error) {
	if len(pattern) == 0 {
		return uuid.Nil, ErrEmptyPattern
	}
	if cb == nil {
		return uuid.Nil, ErrNilCallback
	}

	sub := subscription{id: uuid.New(), kind: kind, callback: cb}
	switch kind {
	case contracts.ChordPattern:
		sub.pattern = dedupe(pattern)
		r.chords = append(r.chords, sub)
	default:
		sub.pattern = append([]contracts.Note(nil), pattern...)
		r.sequences = append(r.sequences, sub)
	}
	return sub.id, nil
}

func (r *registry) remove(id contracts.SubscriptionID) bool {
	var ok bool
	r.sequences, ok = without(r.sequences, id)
	if ok {
		return true
	}
	r.chords, ok = without(r.chords, id)
	return ok
}

// without returns subs minus id. It builds a new slice so a pass already
// iterating the old one is unaffected.
func without(subs []subscription, id contracts.SubscriptionID) ([]subscription, bool) {
	for i := range subs {
		if subs[i].id == id {
			out := make([]subscription, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...), true
		}
	}
	return subs, false
}

func dedupe(notes []contracts.Note) []contracts.Note {
	seen := make(map[contracts.Note]struct{}, len(notes))
	out := make([]contracts.Note, 0, len(notes))
	for _, n := range notes {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
