package matcher

import (
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// SequenceBuffer is the bounded note-on history used for sequence matching.
//
// Once full, appending evicts the oldest entry. Consume draws a boundary after
// the newest entry: Tail refuses any window that reaches back across it, so a
// matched run of notes can't be matched again.
type SequenceBuffer struct {
	notes    []contracts.Note
	capacity int
	consumed int // leading entries of notes that sit behind the boundary
}

// NewSequenceBuffer creates a buffer holding at most capacity notes.
func NewSequenceBuffer(capacity int) (*SequenceBuffer, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &SequenceBuffer{
		notes:    make([]contracts.Note, 0, capacity),
		capacity: capacity,
	}, nil
}

// Append adds note as the newest entry, evicting the oldest one when full.
func (b *SequenceBuffer) Append(note contracts.Note) {
	if len(b.notes) == b.capacity {
		copy(b.notes, b.notes[1:])
		b.notes = b.notes[:len(b.notes)-1]
		if b.consumed > 0 {
			b.consumed--
		}
	}
	b.notes = append(b.notes, note)
}

// Consume marks every entry currently in the buffer as matched.
func (b *SequenceBuffer) Consume() {
	b.consumed = len(b.notes)
}

// Tail returns the newest n entries, oldest first. ok is false when there is
// not enough history or when the window would include consumed entries.
func (b *SequenceBuffer) Tail(n int) (tail []contracts.Note, ok bool) {
	start := len(b.notes) - n
	if n <= 0 || start < b.consumed {
		return nil, false
	}
	return b.notes[start:], true
}

// Unconsumed is the number of newest entries still available for matching.
func (b *SequenceBuffer) Unconsumed() int {
	return len(b.notes) - b.consumed
}

// Len is the number of entries held.
func (b *SequenceBuffer) Len() int { return len(b.notes) }

// Cap is the fixed capacity.
func (b *SequenceBuffer) Cap() int { return b.capacity }

// Snapshot returns a copy of the history, oldest first.
func (b *SequenceBuffer) Snapshot() []contracts.Note {
	out := make([]contracts.Note, len(b.notes))
	copy(out, b.notes)
	return out
}
