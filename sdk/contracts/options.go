package contracts

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	LogFilePath     string           // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFilePath sends the client's log output to a file.
func WithLogFilePath(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// DefaultHistoryCapacity is the number of note-on events kept for sequence matching.
const DefaultHistoryCapacity = 1000

// DefaultEventBuffer is the size of the channel between the device adapter and the subscriber.
const DefaultEventBuffer = 100

// SubscriberOptions defines the configuration options for a note subscriber.
type SubscriberOptions struct {
	Logger          Logger // Logger for matches and dropped events.
	HistoryCapacity int    // Number of note-on events retained for sequence matching.
	EventBuffer     int    // Capacity of the capture channel handed to the device adapter.
	AsyncCallbacks  bool   // Run callbacks on a dedicated goroutine instead of inline.
	TriggerQueue    int    // Capacity of the trigger queue when AsyncCallbacks is set.
}

// SubscriberOption is a function that modifies SubscriberOptions.
type SubscriberOption func(*SubscriberOptions)

// WithSubscriberLogger sets the logger used by the subscriber and its matcher.
func WithSubscriberLogger(l Logger) SubscriberOption {
	return func(opts *SubscriberOptions) {
		opts.Logger = l
	}
}

// WithHistoryCapacity sets how many note-on events are kept for sequence matching.
func WithHistoryCapacity(n int) SubscriberOption {
	return func(opts *SubscriberOptions) {
		opts.HistoryCapacity = n
	}
}

// WithEventBuffer sets the capacity of the capture channel.
func WithEventBuffer(n int) SubscriberOption {
	return func(opts *SubscriberOptions) {
		opts.EventBuffer = n
	}
}

// WithAsyncCallbacks moves callback execution off the event loop. Triggers are
// queued in match order and run one at a time; queueSize bounds the backlog.
func WithAsyncCallbacks(queueSize int) SubscriberOption {
	return func(opts *SubscriberOptions) {
		opts.AsyncCallbacks = true
		opts.TriggerQueue = queueSize
	}
}
