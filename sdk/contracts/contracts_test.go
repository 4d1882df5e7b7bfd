package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"":        InfoLevel,
		"info":    InfoLevel,
		"DEBUG":   DebugLevel,
		" warn ":  WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestDeviceInfoString(t *testing.T) {
	assert.Equal(t, "IAC Driver", DeviceInfo{Name: "IAC Driver"}.String())
	assert.Equal(t, "P-125 (Yamaha)", DeviceInfo{Name: "P-125", Manufacturer: "Yamaha"}.String())
}

func TestPatternKindString(t *testing.T) {
	assert.Equal(t, "sequence", SequencePattern.String())
	assert.Equal(t, "chord", ChordPattern.String())
	assert.Equal(t, "unknown", PatternKind(0).String())
}

func TestTrigger(t *testing.T) {
	called := false
	cb := Trigger(func() { called = true })
	assert.NoError(t, cb())
	assert.True(t, called)
}

func TestNoteEvents(t *testing.T) {
	assert.Equal(t, NoteEvent{Note: "C4", On: true}, NoteOnEvent("C4"))
	assert.Equal(t, NoteEvent{Note: "C4"}, NoteOffEvent("C4"))
}
