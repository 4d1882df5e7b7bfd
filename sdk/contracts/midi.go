package contracts

// MIDI represents a raw MIDI event as delivered by a device adapter.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred.
	Command   byte   // Command is the status byte with the channel nibble stripped (e.g., Note On, Note Off).
	Note      byte   // Note represents the MIDI note number (0-127).
	Velocity  byte   // Velocity indicates the strength of the note being played (0-127).
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	Stop() error                         // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)  // Lists all available MIDI devices.
	SelectDevice(deviceID int) error     // Selects a MIDI device by its ID for communication.
	StartCapture(eventChannel chan MIDI) // Starts capturing MIDI events and sends them to the specified channel.
}

// Note identifies a pitch by its canonical name (e.g., "C4", "F#3").
// Two notes are the same pitch only if the names are equal.
type Note string

// NoteEvent is a single note state transition fed into the matcher.
type NoteEvent struct {
	Note Note // Note that changed state.
	On   bool // On is true for note-on and false for note-off.
}

// NoteOnEvent returns a note-on event for n.
func NoteOnEvent(n Note) NoteEvent { return NoteEvent{Note: n, On: true} }

// NoteOffEvent returns a note-off event for n.
func NoteOffEvent(n Note) NoteEvent { return NoteEvent{Note: n} }
