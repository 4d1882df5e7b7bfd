package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/notewatch/sdk/contracts"
)

func TestNewSequenceBuffer_RejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := NewSequenceBuffer(capacity)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	}
}

func TestSequenceBuffer_EvictsOldestWhenFull(t *testing.T) {
	b, err := NewSequenceBuffer(3)
	require.NoError(t, err)

	for _, n := range []contracts.Note{"A", "B", "C", "D", "E"} {
		b.Append(n)
		assert.LessOrEqual(t, b.Len(), b.Cap())
	}

	assert.Equal(t, []contracts.Note{"C", "D", "E"}, b.Snapshot())
}

func TestSequenceBuffer_StaysAtCapacity(t *testing.T) {
	b, err := NewSequenceBuffer(contracts.DefaultHistoryCapacity)
	require.NoError(t, err)

	for i := 0; i < 2500; i++ {
		b.Append(contracts.Note(rune('A' + i%7)))
	}
	assert.Equal(t, contracts.DefaultHistoryCapacity, b.Len())
}

func TestSequenceBuffer_Tail(t *testing.T) {
	b, err := NewSequenceBuffer(5)
	require.NoError(t, err)
	b.Append("A")
	b.Append("B")

	tail, ok := b.Tail(2)
	require.True(t, ok)
	assert.Equal(t, []contracts.Note{"A", "B"}, tail)

	_, ok = b.Tail(3)
	assert.False(t, ok, "not enough history")

	_, ok = b.Tail(0)
	assert.False(t, ok)
}

func TestSequenceBuffer_ConsumeBlocksWindowsAcrossBoundary(t *testing.T) {
	b, err := NewSequenceBuffer(5)
	require.NoError(t, err)
	b.Append("A")
	b.Append("B")
	b.Consume()

	_, ok := b.Tail(1)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Unconsumed())

	b.Append("C")
	tail, ok := b.Tail(1)
	require.True(t, ok)
	assert.Equal(t, []contracts.Note{"C"}, tail)

	_, ok = b.Tail(2)
	assert.False(t, ok, "window reaches back into consumed notes")
}

func TestSequenceBuffer_BoundarySurvivesEviction(t *testing.T) {
	b, err := NewSequenceBuffer(3)
	require.NoError(t, err)
	for _, n := range []contracts.Note{"A", "B", "C"} {
		b.Append(n)
	}
	b.Consume()

	b.Append("D") // evicts A; B and C stay consumed
	assert.Equal(t, 1, b.Unconsumed())
	_, ok := b.Tail(2)
	assert.False(t, ok)

	b.Append("E")
	b.Append("F") // B and C gone, nothing consumed remains
	assert.Equal(t, 3, b.Unconsumed())
	tail, ok := b.Tail(3)
	require.True(t, ok)
	assert.Equal(t, []contracts.Note{"D", "E", "F"}, tail)
}
