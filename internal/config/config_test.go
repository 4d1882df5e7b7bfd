package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/notewatch/internal/matcher"
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

const sample = `
device: "Digital Piano"
capacity: 500
log_level: debug
bindings:
  - name: intro
    sequence: [C4, E4, G4]
  - name: power
    chord: [C4, E4, G4]
  - name: tritone
    chord: [C4, F#4]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "Digital Piano", cfg.Device)
	assert.Equal(t, 500, cfg.Capacity)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.Len(t, cfg.Bindings, 3)

	assert.Equal(t, contracts.SequencePattern, cfg.Bindings[0].Kind())
	assert.Equal(t, []contracts.Note{"C4", "E4", "G4"}, cfg.Bindings[0].Pattern())
	assert.Equal(t, contracts.ChordPattern, cfg.Bindings[1].Kind())
	assert.Equal(t, []contracts.Note{"C4", "F#4"}, cfg.Bindings[2].Pattern())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notewatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Bindings, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unknown key", "devise: x\n", nil},
		{"negative capacity", "capacity: -1\n", ErrInvalidConfig},
		{"bad log level", "log_level: loud\n", ErrInvalidConfig},
		{"missing name", "bindings:\n  - chord: [C4]\n", ErrInvalidBinding},
		{"empty pattern", "bindings:\n  - name: x\n", ErrInvalidBinding},
		{"both patterns", "bindings:\n  - name: x\n    chord: [C4]\n    sequence: [C4]\n", ErrInvalidBinding},
		{"duplicate name", "bindings:\n  - name: x\n    chord: [C4]\n  - name: x\n    sequence: [D4]\n", ErrInvalidBinding},
		{"flat spelling", "bindings:\n  - name: x\n    chord: [C4, Gb4]\n", ErrInvalidBinding},
		{"unknown note", "bindings:\n  - name: x\n    sequence: [C4, H4]\n", ErrInvalidBinding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	engine, err := matcher.NewEngine(10, nil)
	require.NoError(t, err)

	var fired []string
	require.NoError(t, cfg.Register(engine, func(b Binding) contracts.Callback {
		return contracts.Trigger(func() { fired = append(fired, b.Name) })
	}))

	for _, n := range []contracts.Note{"C4", "E4", "G4"} {
		require.NoError(t, engine.Process(contracts.NoteOnEvent(n)))
	}
	assert.Equal(t, []string{"intro", "power"}, fired)
}
