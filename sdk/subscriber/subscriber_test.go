package subscriber

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/leandrodaf/notewatch/internal/logger"
	"github.com/leandrodaf/notewatch/internal/notes"
	"github.com/leandrodaf/notewatch/internal/testutil"
	"github.com/leandrodaf/notewatch/sdk/contracts"
)

func quietLogger() contracts.SubscriberOption {
	return contracts.WithSubscriberLogger(logger.NewWithCore(zapcore.NewNopCore()))
}

// calls records callback names in the order they ran.
type calls struct {
	mu    sync.Mutex
	names []string
}

func (c *calls) cb(name string) contracts.Callback {
	return func() error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.names = append(c.names, name)
		return nil
	}
}

func (c *calls) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.names...)
}

var (
	c4 = notes.Name(60)
	d4 = notes.Name(62)
	e4 = notes.Name(64)
	g4 = notes.Name(67)
)

func startRun(t *testing.T, s *Subscriber, client *testutil.FakeClient) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return client.Send() == nil
	}, time.Second, 5*time.Millisecond, "capture never started")
	return cancel, errc
}

func TestNew_RejectsNegativeCapacity(t *testing.T) {
	_, err := New(nil, quietLogger(), contracts.WithHistoryCapacity(-1))
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestRun_WithoutClient(t *testing.T) {
	s, err := New(nil, quietLogger())
	require.NoError(t, err)
	assert.ErrorIs(t, s.Run(context.Background()), ErrNoClient)
}

func TestRun_FiresCallbacksAndStopsClient(t *testing.T) {
	client := testutil.NewFakeClient("Digital Piano")
	s, err := New(client, quietLogger())
	require.NoError(t, err)

	fired := make(chan string, 10)
	_, err = s.RegisterChord([]contracts.Note{c4, e4, g4}, contracts.Trigger(func() { fired <- "chord" }))
	require.NoError(t, err)
	_, err = s.RegisterSequence([]contracts.Note{c4, d4, e4}, contracts.Trigger(func() { fired <- "run" }))
	require.NoError(t, err)

	cancel, errc := startRun(t, s, client)

	require.NoError(t, client.Send(
		testutil.On(60), testutil.Off(60),
		testutil.On(62), testutil.Off(62),
		testutil.On(64), testutil.Off(64),
	))
	assert.Equal(t, "run", <-fired)

	require.NoError(t, client.Send(testutil.On(60), testutil.On(64), testutil.On(67)))
	assert.Equal(t, "chord", <-fired)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	assert.True(t, client.Stopped)
	assert.Empty(t, fired)
}

func TestRun_ReturnsCallbackError(t *testing.T) {
	client := testutil.NewFakeClient("Digital Piano")
	s, err := New(client, quietLogger())
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = s.RegisterSequence([]contracts.Note{c4}, func() error { return boom })
	require.NoError(t, err)

	cancel, errc := startRun(t, s, client)
	defer cancel()

	require.NoError(t, client.Send(testutil.On(60)))
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("Run did not return the callback error")
	}
	assert.True(t, client.Stopped)
}

func TestProcess_IgnoresNonNoteMessages(t *testing.T) {
	s, err := New(nil, quietLogger())
	require.NoError(t, err)

	c := &calls{}
	_, err = s.RegisterChord([]contracts.Note{c4}, c.cb("c"))
	require.NoError(t, err)

	require.NoError(t, s.Process(contracts.MIDI{Command: 0xB0, Note: 64, Velocity: 127}))
	assert.Empty(t, c.list())
	assert.Empty(t, s.History())

	require.NoError(t, s.Process(testutil.On(60)))
	assert.Equal(t, []string{"c"}, c.list())
	assert.Equal(t, []contracts.Note{c4}, s.Held())
}

func TestProcess_ZeroVelocityReleasesNote(t *testing.T) {
	s, err := New(nil, quietLogger())
	require.NoError(t, err)

	require.NoError(t, s.Process(testutil.On(60)))
	require.NoError(t, s.Process(contracts.MIDI{Command: byte(contracts.NoteOn), Note: 60}))

	assert.Empty(t, s.Held())
	assert.Equal(t, []contracts.Note{c4}, s.History())
}

func TestAsyncCallbacks_RunInMatchOrder(t *testing.T) {
	s, err := New(nil, quietLogger(), contracts.WithAsyncCallbacks(4))
	require.NoError(t, err)

	c := &calls{}
	_, err = s.RegisterChord([]contracts.Note{c4}, c.cb("chord"))
	require.NoError(t, err)
	_, err = s.RegisterSequence([]contracts.Note{c4}, c.cb("seq"))
	require.NoError(t, err)

	require.NoError(t, s.ProcessNote(contracts.NoteOnEvent(c4)))
	require.NoError(t, s.ProcessNote(contracts.NoteOnEvent(e4)))
	require.NoError(t, s.Close())

	assert.Equal(t, []string{"seq", "chord", "chord"}, c.list())
	assert.ErrorIs(t, s.ProcessNote(contracts.NoteOnEvent(g4)), ErrClosed)
}

func TestProcessNote_AfterClose(t *testing.T) {
	tests := []struct {
		name string
		opts []contracts.SubscriberOption
	}{
		{"inline", []contracts.SubscriberOption{quietLogger()}},
		{"async", []contracts.SubscriberOption{quietLogger(), contracts.WithAsyncCallbacks(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(nil, tt.opts...)
			require.NoError(t, err)

			c := &calls{}
			_, err = s.RegisterChord([]contracts.Note{c4}, c.cb("c"))
			require.NoError(t, err)

			require.NoError(t, s.Close())
			assert.ErrorIs(t, s.ProcessNote(contracts.NoteOnEvent(c4)), ErrClosed)
			assert.ErrorIs(t, s.Process(testutil.On(60)), ErrClosed)
			assert.Empty(t, c.list())
			assert.Empty(t, s.History())
		})
	}
}

func TestAsyncCallbacks_ConcurrentEventsStayGrouped(t *testing.T) {
	s, err := New(nil, quietLogger(), contracts.WithAsyncCallbacks(2))
	require.NoError(t, err)

	// Every event that fires a1 also fires a2 right after it, same for b.
	c := &calls{}
	for _, sub := range []struct {
		note contracts.Note
		name string
	}{{c4, "a1"}, {c4, "a2"}, {e4, "b1"}, {e4, "b2"}} {
		_, err = s.RegisterChord([]contracts.Note{sub.note}, c.cb(sub.name))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for _, n := range []contracts.Note{c4, e4} {
		wg.Add(1)
		go func(n contracts.Note) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				assert.NoError(t, s.ProcessNote(contracts.NoteOnEvent(n)))
				assert.NoError(t, s.ProcessNote(contracts.NoteOffEvent(n)))
			}
		}(n)
	}
	wg.Wait()
	require.NoError(t, s.Close())

	got := c.list()
	require.NotEmpty(t, got)
	for i, name := range got {
		switch name {
		case "a1":
			require.Less(t, i+1, len(got))
			assert.Equal(t, "a2", got[i+1], "position %d", i)
		case "b1":
			require.Less(t, i+1, len(got))
			assert.Equal(t, "b2", got[i+1], "position %d", i)
		}
	}
}

func TestAsyncCallbacks_SlowCallbackDoesNotBlockMatching(t *testing.T) {
	s, err := New(nil, quietLogger(), contracts.WithAsyncCallbacks(8))
	require.NoError(t, err)

	release := make(chan struct{})
	_, err = s.RegisterSequence([]contracts.Note{c4}, contracts.Trigger(func() { <-release }))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			assert.NoError(t, s.ProcessNote(contracts.NoteOnEvent(c4)))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event processing waited on the callback")
	}
	close(release)
	require.NoError(t, s.Close())
}

func TestAsyncCallbacks_ErrorIsReported(t *testing.T) {
	s, err := New(nil, quietLogger(), contracts.WithAsyncCallbacks(1))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = s.RegisterChord([]contracts.Note{c4}, func() error { return boom })
	require.NoError(t, err)

	// The failure is reported once, by whichever call observes it first.
	processErr := s.ProcessNote(contracts.NoteOnEvent(c4))
	closeErr := s.Close()
	assert.True(t, errors.Is(processErr, boom) != errors.Is(closeErr, boom),
		"process=%v close=%v", processErr, closeErr)
}

func TestUnregister(t *testing.T) {
	s, err := New(nil, quietLogger())
	require.NoError(t, err)

	c := &calls{}
	id, err := s.RegisterChord([]contracts.Note{c4}, c.cb("c"))
	require.NoError(t, err)
	assert.True(t, s.Unregister(id))

	require.NoError(t, s.Process(testutil.On(60)))
	assert.Empty(t, c.list())
}

func TestRegister_Errors(t *testing.T) {
	s, err := New(nil, quietLogger())
	require.NoError(t, err)

	_, err = s.RegisterSequence(nil, contracts.Trigger(func() {}))
	assert.ErrorIs(t, err, ErrEmptyPattern)
	_, err = s.RegisterChord([]contracts.Note{c4}, nil)
	assert.ErrorIs(t, err, ErrNilCallback)
}

func TestApplyDefaultOptions(t *testing.T) {
	opts := applyDefaultOptions()
	assert.NotNil(t, opts.Logger)
	assert.Equal(t, contracts.DefaultHistoryCapacity, opts.HistoryCapacity)
	assert.Equal(t, contracts.DefaultEventBuffer, opts.EventBuffer)
	assert.False(t, opts.AsyncCallbacks)

	async := applyDefaultOptions(contracts.WithAsyncCallbacks(0))
	assert.True(t, async.AsyncCallbacks)
	assert.Equal(t, contracts.DefaultEventBuffer, async.TriggerQueue)
}
