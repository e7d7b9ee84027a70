// Package engine implements the rules of three-suit free-cell solitaire:
// the authoritative board state plus every legality check and mutation for
// single-card moves, multi-card stack moves, foundation placement, dragon
// merges, safe auto-advance, and win detection.
//
// The package is dependency-free and side-effect-free so it can be embedded
// behind any shell (CLI today, TUI or solver tomorrow). Every fallible
// operation validates first and mutates only on success; a returned error
// always means the board is byte-for-byte unchanged.
package engine

import (
	"errors"
	"fmt"
)

const (
	NumColumns     = 8
	NumFreeCells   = 3
	NumSuits       = 3
	DragonsPerSuit = 4
	MaxValue       = 9
	DeckSize       = 40 // 3×9 numbered + 3×4 dragons + 1 flower
)

// Sentinel errors returned by the move operations. Callers match with
// errors.Is; the wrapped text carries the human-readable reason.
var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrOutOfRange     = errors.New("index out of range")
	ErrFoundationWait = errors.New("card cannot go to the foundation yet")
	ErrMergeBlocked   = errors.New("cannot merge dragons")
	ErrBadDeck        = errors.New("invalid deck")
)

// CellKind discriminates the three states a free-cell slot can be in.
type CellKind uint8

const (
	CellEmpty  CellKind = iota
	CellCard            // holds a single card temporarily
	CellLocked          // permanently locked by a completed dragon merge
)

// FreeCell is a tagged variant for one free-cell slot. Card is meaningful
// only when Kind == CellCard, LockSuit only when Kind == CellLocked.
type FreeCell struct {
	Kind     CellKind
	Card     Card
	LockSuit uint8
}

// IsEmpty reports whether the slot can receive a card.
func (fc FreeCell) IsEmpty() bool { return fc.Kind == CellEmpty }

// HeldCard returns the card occupying an unlocked slot, if any.
func (fc FreeCell) HeldCard() (Card, bool) {
	if fc.Kind == CellCard {
		return fc.Card, true
	}
	return 0, false
}

// LocKind discriminates the two addressable slot families.
type LocKind uint8

const (
	LocColumn LocKind = iota
	LocFreeCell
)

// Location addresses either the top card of a tableau column or a free-cell
// slot. It never refers into the interior of a column; interior access goes
// through MoveStack's validated start index.
type Location struct {
	Kind LocKind
	Idx  int
}

// Column addresses the top of tableau column i.
func Column(i int) Location { return Location{Kind: LocColumn, Idx: i} }

// Cell addresses free-cell slot i.
func Cell(i int) Location { return Location{Kind: LocFreeCell, Idx: i} }

// Board is the full game state and the single source of truth.
type Board struct {
	// Columns holds the 8 tableau columns; index 0 of a column is the
	// bottom card, the last element is the top.
	Columns [NumColumns][]Card
	// FreeCells holds the 3 free-cell slots.
	FreeCells [NumFreeCells]FreeCell
	// Foundations holds, per suit, the highest numbered card placed so far
	// (0 = none). Counters only ever step upward 1→9.
	Foundations [NumSuits]uint8
	// FlowerPlaced reports whether the flower has reached its slot.
	FlowerPlaced bool
}

// NewBoard deals a board from an already-ordered 40-card deck, distributing
// cards round-robin so every column receives exactly 5. The deck must match
// the full-deck composition exactly; conservation of cards is only
// meaningful from a well-formed deal.
func NewBoard(deck []Card) (*Board, error) {
	if len(deck) != DeckSize {
		return nil, fmt.Errorf("%w: got %d cards, want %d", ErrBadDeck, len(deck), DeckSize)
	}

	counts := make(map[Card]int, DeckSize)
	for _, c := range deck {
		counts[c]++
	}
	for suit := uint8(0); suit < NumSuits; suit++ {
		for v := uint8(1); v <= MaxValue; v++ {
			if counts[Numbered(suit, v)] != 1 {
				return nil, fmt.Errorf("%w: wrong count for %s", ErrBadDeck, Numbered(suit, v))
			}
		}
		if counts[DragonOf(suit)] != DragonsPerSuit {
			return nil, fmt.Errorf("%w: wrong dragon count for %s", ErrBadDeck, SuitName(suit))
		}
	}
	if counts[Flower] != 1 {
		return nil, fmt.Errorf("%w: wrong flower count", ErrBadDeck)
	}

	var b Board
	for i, card := range deck {
		col := i % NumColumns
		b.Columns[col] = append(b.Columns[col], card)
	}
	return &b, nil
}

// DealSeeded shuffles the full deck with the given seed and deals it.
// The same seed always produces the same board.
func DealSeeded(seed uint64) *Board {
	r := rng{s: seed}
	if r.s == 0 {
		r.s = 1 // xorshift can't start at 0
	}

	deck := FullDeck()
	// Fisher-Yates shuffle.
	for i := len(deck) - 1; i > 0; i-- {
		j := int(r.next() % uint64(i+1))
		deck[i], deck[j] = deck[j], deck[i]
	}

	b, err := NewBoard(deck)
	if err != nil {
		// FullDeck always satisfies NewBoard's composition check.
		panic(err)
	}
	return b
}

// rng is an inline xorshift64 generator; keeps the engine free of math/rand
// while staying reproducible per seed.
type rng struct{ s uint64 }

func (r *rng) next() uint64 {
	x := r.s
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.s = x
	return x
}

// Clone returns a fully independent deep copy with no aliasing back into b.
// External collaborators use clones for undo and persistence snapshots.
func (b *Board) Clone() *Board {
	out := *b
	for i := range b.Columns {
		if b.Columns[i] != nil {
			out.Columns[i] = append([]Card(nil), b.Columns[i]...)
		}
	}
	return &out
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// ColumnTop returns the top card of column col, if the column is non-empty.
func (b *Board) ColumnTop(col int) (Card, bool) {
	if !validColumn(col) || len(b.Columns[col]) == 0 {
		return 0, false
	}
	c := b.Columns[col]
	return c[len(c)-1], true
}

// FreeCellCard returns the card sitting unlocked in slot, if any.
func (b *Board) FreeCellCard(slot int) (Card, bool) {
	if !validCell(slot) {
		return 0, false
	}
	return b.FreeCells[slot].HeldCard()
}

// CardAt returns the card living at loc: the top of a column or the card in
// an unlocked free cell.
func (b *Board) CardAt(loc Location) (Card, bool) {
	switch loc.Kind {
	case LocColumn:
		return b.ColumnTop(loc.Idx)
	case LocFreeCell:
		return b.FreeCellCard(loc.Idx)
	}
	return 0, false
}

// NextFoundationValue returns the next value the suit's foundation needs.
func (b *Board) NextFoundationValue(suit uint8) uint8 {
	return b.Foundations[suit] + 1
}

func validColumn(i int) bool { return i >= 0 && i < NumColumns }
func validCell(i int) bool   { return i >= 0 && i < NumFreeCells }

// checkLocation rejects out-of-range indices so a buggy caller can never
// corrupt board invariants.
func checkLocation(loc Location) error {
	switch loc.Kind {
	case LocColumn:
		if !validColumn(loc.Idx) {
			return fmt.Errorf("%w: column %d", ErrOutOfRange, loc.Idx)
		}
	case LocFreeCell:
		if !validCell(loc.Idx) {
			return fmt.Errorf("%w: free cell %d", ErrOutOfRange, loc.Idx)
		}
	default:
		return fmt.Errorf("%w: unknown location kind %d", ErrOutOfRange, loc.Kind)
	}
	return nil
}
