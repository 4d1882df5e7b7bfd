package contracts

import "errors"

// ErrPlatformUnsupported is returned when no MIDI backend exists for the running OS.
var ErrPlatformUnsupported = errors.New("MIDI functionality is not available on this platform")
