// Package notes turns raw MIDI key numbers and channel messages into the
// pitch names and note events consumed by the matcher.
package notes

import (
	"strconv"

	"github.com/leandrodaf/notewatch/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// Names use sharps and scientific octave numbering: key 60 is "C4",
// key 0 is "C-1" and key 127 is "G9".
var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var keys = func() map[contracts.Note]uint8 {
	m := make(map[contracts.Note]uint8, 128)
	for key := 0; key < 128; key++ {
		m[Name(uint8(key))] = uint8(key)
	}
	return m
}()

// Name returns the canonical pitch name for a MIDI key, e.g. "C4" or "F#3".
func Name(key uint8) contracts.Note {
	return contracts.Note(pitchClasses[key%12] + strconv.Itoa(int(key)/12-1))
}

// Key returns the MIDI key for a canonical name. ok is false for anything
// Name never produces, such as flats or out of range octaves.
func Key(name contracts.Note) (key uint8, ok bool) {
	key, ok = keys[name]
	return key, ok
}

// Decode classifies a raw event as note-on or note-off. A note-on with zero
// velocity counts as note-off, as most keyboards send it that way. Any other
// message yields ok=false.
func Decode(event contracts.MIDI) (contracts.NoteEvent, bool) {
	msg := midi.Message{event.Command, event.Note, event.Velocity}

	var channel, key, velocity uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		return contracts.NoteOnEvent(Name(key)), true
	case msg.GetNoteEnd(&channel, &key):
		return contracts.NoteOffEvent(Name(key)), true
	}
	return contracts.NoteEvent{}, false
}
