package engine

import "fmt"

// ---------------------------------------------------------------------------
// Single-card moves
// ---------------------------------------------------------------------------

// CanMove reports whether the card at src may be moved to dst. Out-of-range
// locations are simply not movable. Locked cells never qualify as a source
// or a destination; a no-op move onto the same column is illegal.
func (b *Board) CanMove(src, dst Location) bool {
	if checkLocation(src) != nil || checkLocation(dst) != nil {
		return false
	}
	card, ok := b.CardAt(src)
	if !ok {
		return false
	}

	switch dst.Kind {
	case LocFreeCell:
		return b.FreeCells[dst.Idx].IsEmpty()
	case LocColumn:
		if src.Kind == LocColumn && src.Idx == dst.Idx {
			return false
		}
		top, occupied := b.ColumnTop(dst.Idx)
		if !occupied {
			return true // empty column accepts anything
		}
		return card.CanStackOn(top)
	}
	return false
}

// MoveCard moves the card at src to dst. Validation and execution are one
// atomic step: on error the board is unchanged.
func (b *Board) MoveCard(src, dst Location) error {
	if err := checkLocation(src); err != nil {
		return err
	}
	if err := checkLocation(dst); err != nil {
		return err
	}
	if !b.CanMove(src, dst) {
		return ErrIllegalMove
	}

	card, _ := b.takeCard(src)
	b.placeCard(dst, card)
	return nil
}

// ---------------------------------------------------------------------------
// Foundation moves
// ---------------------------------------------------------------------------

// CanMoveToFoundation reports whether the card at src may go to its suit's
// foundation (or the flower to the flower slot). Dragons are never eligible.
func (b *Board) CanMoveToFoundation(src Location) bool {
	if checkLocation(src) != nil {
		return false
	}
	card, ok := b.CardAt(src)
	if !ok {
		return false
	}
	switch {
	case card.IsFlower():
		return !b.FlowerPlaced
	case card.IsNumbered():
		return b.Foundations[card.Suit()]+1 == card.Value()
	}
	return false
}

// MoveToFoundation commits the card at src to the foundation / flower slot.
func (b *Board) MoveToFoundation(src Location) error {
	if err := checkLocation(src); err != nil {
		return err
	}
	if !b.CanMoveToFoundation(src) {
		return ErrFoundationWait
	}

	card, _ := b.takeCard(src)
	if card.IsFlower() {
		b.FlowerPlaced = true
	} else {
		b.Foundations[card.Suit()]++
	}
	return nil
}

// ---------------------------------------------------------------------------
// Multi-card stack moves
// ---------------------------------------------------------------------------

// StackLen returns the length of the movable run starting at from in column
// col: the maximal prefix, toward the top, of consecutive cards where each
// card above satisfies CanStackOn against the one below it. Returns 0 when
// from is out of bounds.
func (b *Board) StackLen(col, from int) int {
	if !validColumn(col) {
		return 0
	}
	cards := b.Columns[col]
	if from < 0 || from >= len(cards) {
		return 0
	}
	n := 1
	for i := from; i+1 < len(cards); i++ {
		if !cards[i+1].CanStackOn(cards[i]) {
			break
		}
		n++
	}
	return n
}

// MoveStack relocates the contiguous slice of srcCol from start to the top
// onto dstCol, preserving internal order. The slice must be a single valid
// descending, alternating-suit run, and its bottom card must be placeable
// on dstCol under the single-card rules. Run length is not bounded by
// free-cell availability. On error the board is unchanged.
func (b *Board) MoveStack(srcCol, start, dstCol int) error {
	if !validColumn(srcCol) {
		return fmt.Errorf("%w: column %d", ErrOutOfRange, srcCol)
	}
	if !validColumn(dstCol) {
		return fmt.Errorf("%w: column %d", ErrOutOfRange, dstCol)
	}
	if srcCol == dstCol {
		return fmt.Errorf("%w: source and destination columns are the same", ErrIllegalMove)
	}

	colLen := len(b.Columns[srcCol])
	if start < 0 || start >= colLen {
		return fmt.Errorf("%w: start index %d in column of %d", ErrOutOfRange, start, colLen)
	}

	// The run must extend all the way to the top; a broken run mid-column
	// cannot move even if its prefix is valid.
	if b.StackLen(srcCol, start) < colLen-start {
		return fmt.Errorf("%w: that slice is not a movable run", ErrIllegalMove)
	}

	bottom := b.Columns[srcCol][start]
	if top, occupied := b.ColumnTop(dstCol); occupied && !bottom.CanStackOn(top) {
		return fmt.Errorf("%w: run cannot land on column %d", ErrIllegalMove, dstCol)
	}

	moved := b.Columns[srcCol][start:]
	b.Columns[dstCol] = append(b.Columns[dstCol], moved...)
	b.Columns[srcCol] = b.Columns[srcCol][:start]
	return nil
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

// takeCard removes and returns the card at loc. Callers validate first.
func (b *Board) takeCard(loc Location) (Card, bool) {
	switch loc.Kind {
	case LocColumn:
		cards := b.Columns[loc.Idx]
		if len(cards) == 0 {
			return 0, false
		}
		card := cards[len(cards)-1]
		b.Columns[loc.Idx] = cards[:len(cards)-1]
		return card, true
	case LocFreeCell:
		card, ok := b.FreeCells[loc.Idx].HeldCard()
		if ok {
			b.FreeCells[loc.Idx] = FreeCell{}
		}
		return card, ok
	}
	return 0, false
}

// placeCard puts card at loc. Callers validate first.
func (b *Board) placeCard(loc Location, card Card) {
	switch loc.Kind {
	case LocColumn:
		b.Columns[loc.Idx] = append(b.Columns[loc.Idx], card)
	case LocFreeCell:
		b.FreeCells[loc.Idx] = FreeCell{Kind: CellCard, Card: card}
	}
}
