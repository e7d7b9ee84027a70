// Package history holds the collaborators the board engine deliberately
// excludes: bounded undo snapshots and a tamper-evident store of game
// records. Both deal exclusively in independent board clones.
package history

import "szsol/engine"

// DefaultUndoLimit caps snapshot memory for a session.
const DefaultUndoLimit = 64

// UndoStack keeps bounded deep-copy snapshots of the board. The zero limit
// means DefaultUndoLimit.
type UndoStack struct {
	snaps []*engine.Board
	limit int
}

// NewUndoStack returns a stack bounded to limit snapshots.
func NewUndoStack(limit int) *UndoStack {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &UndoStack{limit: limit}
}

// Push stores a clone of b, evicting the oldest snapshot past the limit.
func (u *UndoStack) Push(b *engine.Board) {
	u.snaps = append(u.snaps, b.Clone())
	if len(u.snaps) > u.limit {
		u.snaps = u.snaps[1:]
	}
}

// Pop removes and returns the most recent snapshot.
func (u *UndoStack) Pop() (*engine.Board, bool) {
	if len(u.snaps) == 0 {
		return nil, false
	}
	b := u.snaps[len(u.snaps)-1]
	u.snaps = u.snaps[:len(u.snaps)-1]
	return b, true
}

// Drop discards the most recent snapshot. Used to roll back the snapshot
// pushed ahead of a move that then failed.
func (u *UndoStack) Drop() {
	if len(u.snaps) > 0 {
		u.snaps = u.snaps[:len(u.snaps)-1]
	}
}

// Len reports the number of stored snapshots.
func (u *UndoStack) Len() int { return len(u.snaps) }

// Clear discards every snapshot.
func (u *UndoStack) Clear() { u.snaps = nil }
