package engine

import "fmt"

// CanMergeDragons reports whether all four dragons of suit are exposed (top
// of a column or sitting unlocked in a free cell) and a slot is available to
// receive the lock. A slot counts as available when it is empty or when it
// holds one of the very dragons being merged, since the merge vacates it.
func (b *Board) CanMergeDragons(suit uint8) bool {
	if suit >= NumSuits {
		return false
	}
	dragon := DragonOf(suit)

	hasSlot := false
	for _, fc := range b.FreeCells {
		if fc.IsEmpty() || fc == (FreeCell{Kind: CellCard, Card: dragon}) {
			hasSlot = true
			break
		}
	}
	if !hasSlot {
		return false
	}

	return b.exposedDragons(suit) == DragonsPerSuit
}

// exposedDragons counts the suit's dragons currently on column tops or in
// unlocked free cells.
func (b *Board) exposedDragons(suit uint8) int {
	dragon := DragonOf(suit)
	n := 0
	for col := 0; col < NumColumns; col++ {
		if top, ok := b.ColumnTop(col); ok && top == dragon {
			n++
		}
	}
	for _, fc := range b.FreeCells {
		if c, ok := fc.HeldCard(); ok && c == dragon {
			n++
		}
	}
	return n
}

// MergeDragons removes all four exposed dragons of suit and permanently
// locks one previously-available free-cell slot. The lock never comes off.
// Atomic: on error nothing changes.
func (b *Board) MergeDragons(suit uint8) error {
	if suit >= NumSuits {
		return fmt.Errorf("%w: suit %d", ErrOutOfRange, suit)
	}
	if !b.CanMergeDragons(suit) {
		return fmt.Errorf("%w: not all four %s dragons are exposed, or no free cell can take the lock",
			ErrMergeBlocked, SuitName(suit))
	}

	dragon := DragonOf(suit)
	for col := 0; col < NumColumns; col++ {
		if top, ok := b.ColumnTop(col); ok && top == dragon {
			b.Columns[col] = b.Columns[col][:len(b.Columns[col])-1]
		}
	}
	for i := range b.FreeCells {
		if c, ok := b.FreeCells[i].HeldCard(); ok && c == dragon {
			b.FreeCells[i] = FreeCell{}
		}
	}

	for i := range b.FreeCells {
		if b.FreeCells[i].IsEmpty() {
			b.FreeCells[i] = FreeCell{Kind: CellLocked, LockSuit: suit}
			return nil
		}
	}
	// CanMergeDragons guarantees a slot is free once the dragons vacate.
	panic("merge found no free cell after vacating dragons")
}
