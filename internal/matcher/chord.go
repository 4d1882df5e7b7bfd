package matcher

import (
	"sort"

	"github.com/leandrodaf/notewatch/sdk/contracts"
)

// ChordState records which notes are currently held down. Entries are only
// ever flipped, never removed, which is fine for the 128 MIDI pitches.
type ChordState struct {
	held map[contracts.Note]bool
}

// NewChordState returns an empty state where no note is held.
func NewChordState() *ChordState {
	return &ChordState{held: make(map[contracts.Note]bool)}
}

// Update records the latest state for note.
func (c *ChordState) Update(note contracts.Note, held bool) {
	c.held[note] = held
}

// IsHeld reports whether note is down. Notes never seen are not held.
func (c *ChordState) IsHeld(note contracts.Note) bool {
	return c.held[note]
}

// HoldsAll reports whether every note in pattern is held. Other held notes
// don't matter.
func (c *ChordState) HoldsAll(pattern []contracts.Note) bool {
	for _, note := range pattern {
		if !c.held[note] {
			return false
		}
	}
	return true
}

// Held returns the notes currently down in name order.
func (c *ChordState) Held() []contracts.Note {
	out := make([]contracts.Note, 0, len(c.held))
	for note, held := range c.held {
		if held {
			out = append(out, note)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
