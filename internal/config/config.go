// Package config loads the YAML file that binds note patterns to named triggers.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leandrodaf/notewatch/internal/notes"
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

var (
	// ErrInvalidBinding is wrapped by every binding validation failure.
	ErrInvalidBinding = errors.New("invalid binding")
	// ErrInvalidConfig is wrapped by top-level validation failures.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the top-level notewatch configuration.
type Config struct {
	Device         string    `yaml:"device"`
	Capacity       int       `yaml:"capacity"`
	LogLevel       string    `yaml:"log_level"`
	LogFile        string    `yaml:"log_file"`
	AsyncCallbacks bool      `yaml:"async_callbacks"`
	Bindings       []Binding `yaml:"bindings"`
}

// Binding names one pattern. Exactly one of Sequence or Chord is set.
type Binding struct {
	Name     string   `yaml:"name"`
	Sequence []string `yaml:"sequence,omitempty"`
	Chord    []string `yaml:"chord,omitempty"`
}

// Kind reports whether the binding is a sequence or a chord.
func (b Binding) Kind() contracts.PatternKind {
	if len(b.Chord) > 0 {
		return contracts.ChordPattern
	}
	return contracts.SequencePattern
}

// Pattern returns the binding's notes.
func (b Binding) Pattern() []contracts.Note {
	src := b.Sequence
	if b.Kind() == contracts.ChordPattern {
		src = b.Chord
	}
	out := make([]contracts.Note, len(src))
	for i, n := range src {
		out[i] = contracts.Note(n)
	}
	return out
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration without touching any device.
func (c *Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative, got %d", ErrInvalidConfig, c.Capacity)
	}
	if _, err := contracts.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	names := make(map[string]struct{}, len(c.Bindings))
	for i, b := range c.Bindings {
		switch {
		case b.Name == "":
			return fmt.Errorf("%w #%d: name is required", ErrInvalidBinding, i)
		case len(b.Sequence) > 0 && len(b.Chord) > 0:
			return fmt.Errorf("%w %q: set either sequence or chord, not both", ErrInvalidBinding, b.Name)
		case len(b.Sequence) == 0 && len(b.Chord) == 0:
			return fmt.Errorf("%w %q: pattern has no notes", ErrInvalidBinding, b.Name)
		}
		for _, n := range b.Pattern() {
			if _, ok := notes.Key(n); !ok {
				return fmt.Errorf("%w %q: unknown note %q, expected sharps like C#4 with C4 as middle C", ErrInvalidBinding, b.Name, n)
			}
		}
		if _, dup := names[b.Name]; dup {
			return fmt.Errorf("%w %q: duplicate name", ErrInvalidBinding, b.Name)
		}
		names[b.Name] = struct{}{}
	}
	return nil
}

// Register subscribes every binding on sub, using newCallback to build each callback.
func (c *Config) Register(sub contracts.Subscriber, newCallback func(Binding) contracts.Callback) error {
	for _, b := range c.Bindings {
		var err error
		if b.Kind() == contracts.ChordPattern {
			_, err = sub.RegisterChord(b.Pattern(), newCallback(b))
		} else {
			_, err = sub.RegisterSequence(b.Pattern(), newCallback(b))
		}
		if err != nil {
			return fmt.Errorf("register %q: %w", b.Name, err)
		}
	}
	return nil
}
