package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"szsol/engine"
)

func TestUndoStackPushPop(t *testing.T) {
	u := NewUndoStack(0)
	b := engine.DealSeeded(1)

	u.Push(b)
	require.Equal(t, 1, u.Len())

	// Mutating the live board must not touch the stored snapshot.
	want := b.Clone()
	b.Columns[0] = b.Columns[0][:0]
	b.FlowerPlaced = true

	got, ok := u.Pop()
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, 0, u.Len())

	_, ok = u.Pop()
	assert.False(t, ok)
}

func TestUndoStackDrop(t *testing.T) {
	u := NewUndoStack(0)
	first := engine.DealSeeded(1)
	second := engine.DealSeeded(2)

	u.Push(first)
	u.Push(second)
	u.Drop()

	got, ok := u.Pop()
	require.True(t, ok)
	assert.Equal(t, first, got)

	// Drop on an empty stack is a no-op.
	u.Drop()
	assert.Equal(t, 0, u.Len())
}

func TestUndoStackBounded(t *testing.T) {
	u := NewUndoStack(3)
	for seed := uint64(1); seed <= 5; seed++ {
		u.Push(engine.DealSeeded(seed))
	}
	require.Equal(t, 3, u.Len())

	// Oldest snapshots (seeds 1, 2) were evicted; top is seed 5.
	got, ok := u.Pop()
	require.True(t, ok)
	assert.Equal(t, engine.DealSeeded(5), got)
}

func TestUndoStackClear(t *testing.T) {
	u := NewUndoStack(0)
	u.Push(engine.DealSeeded(1))
	u.Push(engine.DealSeeded(2))
	u.Clear()
	assert.Equal(t, 0, u.Len())
}
