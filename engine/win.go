package engine

// IsWon reports the terminal state: every foundation at 9, flower placed,
// all columns empty, and no plain card left in any free cell (locked cells
// are fine). Pure predicate; the shell re-evaluates it after every
// state-changing operation.
func (b *Board) IsWon() bool {
	for _, f := range b.Foundations {
		if f != MaxValue {
			return false
		}
	}
	if !b.FlowerPlaced {
		return false
	}
	for _, col := range b.Columns {
		if len(col) != 0 {
			return false
		}
	}
	for _, fc := range b.FreeCells {
		if fc.Kind == CellCard {
			return false
		}
	}
	return true
}
