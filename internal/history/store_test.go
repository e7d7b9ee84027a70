package history

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"szsol/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), DefaultKey)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rec := NewRecord(42)
	rec.Board = engine.DealSeeded(42)
	require.NoError(t, s.Save(rec))

	got, err := s.Load(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, uint64(42), got.Seed)
	assert.Equal(t, rec.StartedAt, got.StartedAt)
	assert.False(t, got.Won)
	assert.Equal(t, rec.Board, got.Board)
}

func TestStoreUpsert(t *testing.T) {
	s := openTestStore(t)

	rec := NewRecord(7)
	rec.Board = engine.DealSeeded(7)
	require.NoError(t, s.Save(rec))

	rec.Board.AutoMove()
	rec.Won = true
	rec.EndedAt = rec.StartedAt + 300
	require.NoError(t, s.Save(rec))

	got, err := s.Load(rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Won)
	assert.Equal(t, rec.EndedAt, got.EndedAt)
	assert.Equal(t, rec.Board, got.Board)
}

func TestStoreNoSnapshot(t *testing.T) {
	s := openTestStore(t)

	rec := NewRecord(9)
	require.NoError(t, s.Save(rec))

	got, err := s.Load(rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Board)
}

func TestStoreRejectsTamperedSnapshot(t *testing.T) {
	s := openTestStore(t)

	rec := NewRecord(13)
	rec.Board = engine.DealSeeded(13)
	require.NoError(t, s.Save(rec))

	// Flip the snapshot behind the store's back.
	_, err := s.db.Exec(`UPDATE games SET snapshot = ? WHERE id = ?`,
		[]byte(`{"FlowerPlaced":true}`), rec.ID)
	require.NoError(t, err)

	got, err := s.Load(rec.ID)
	require.ErrorIs(t, err, ErrTampered)
	require.NotNil(t, got)
	assert.Nil(t, got.Board, "tampered snapshot must not be surfaced")
}

func TestLatestUnfinished(t *testing.T) {
	s := openTestStore(t)

	done := NewRecord(1)
	done.StartedAt = 100
	done.EndedAt = 200
	require.NoError(t, s.Save(done))

	older := NewRecord(2)
	older.StartedAt = 300
	older.Board = engine.DealSeeded(2)
	require.NoError(t, s.Save(older))

	newer := NewRecord(3)
	newer.StartedAt = 400
	newer.Board = engine.DealSeeded(3)
	require.NoError(t, s.Save(newer))

	got, err := s.LatestUnfinished()
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.Equal(t, newer.Board, got.Board)
}

func TestLatestUnfinishedSkipsTampered(t *testing.T) {
	s := openTestStore(t)

	bad := NewRecord(4)
	bad.StartedAt = 500
	bad.Board = engine.DealSeeded(4)
	require.NoError(t, s.Save(bad))

	good := NewRecord(5)
	good.StartedAt = 400
	good.Board = engine.DealSeeded(5)
	require.NoError(t, s.Save(good))

	_, err := s.db.Exec(`UPDATE games SET sig = ? WHERE id = ?`, []byte("bogus"), bad.ID)
	require.NoError(t, err)

	got, err := s.LatestUnfinished()
	require.NoError(t, err)
	assert.Equal(t, good.ID, got.ID)
}

func TestLatestUnfinishedEmpty(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LatestUnfinished()
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestOpenRequiresKey(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	assert.Error(t, err)
}
