package engine

// AutoMove repeatedly sweeps every column top and free cell, committing to
// the foundation each card that is both eligible and safe, until a full
// pass commits nothing. Returns the total number of cards advanced.
// Termination is guaranteed: foundation counters only grow and are bounded.
func (b *Board) AutoMove() int {
	moved := 0
	for {
		before := moved
		for col := 0; col < NumColumns; col++ {
			src := Column(col)
			if b.CanMoveToFoundation(src) && b.safeToAuto(src) {
				_ = b.MoveToFoundation(src)
				moved++
			}
		}
		for slot := 0; slot < NumFreeCells; slot++ {
			src := Cell(slot)
			if b.CanMoveToFoundation(src) && b.safeToAuto(src) {
				_ = b.MoveToFoundation(src)
				moved++
			}
		}
		if moved == before {
			return moved
		}
	}
}

// safeToAuto reports whether the card at src can be committed without ever
// being needed as a tableau stepping stone: the flower always can; a
// numbered card can when its value is 1 (a fresh foundation never needs a 1
// on the tableau) or within one step of the slowest foundation.
func (b *Board) safeToAuto(src Location) bool {
	card, ok := b.CardAt(src)
	if !ok {
		return false
	}
	switch {
	case card.IsFlower():
		return true
	case card.IsNumbered():
		min := b.Foundations[0]
		for _, f := range b.Foundations[1:] {
			if f < min {
				min = f
			}
		}
		return card.Value() == 1 || card.Value() <= min+1
	}
	return false
}
