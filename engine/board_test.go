package engine

import (
	"reflect"
	"testing"
)

// cardMultiset counts every card on the board, including those "virtually
// placed": foundation counters expand back into their numbered cards and
// the flower flag into the flower. Used to assert conservation.
func cardMultiset(b *Board) map[Card]int {
	counts := make(map[Card]int)
	for _, col := range b.Columns {
		for _, c := range col {
			counts[c]++
		}
	}
	for _, fc := range b.FreeCells {
		if c, ok := fc.HeldCard(); ok {
			counts[c]++
		}
		if fc.Kind == CellLocked {
			counts[DragonOf(fc.LockSuit)] += DragonsPerSuit
		}
	}
	for suit := uint8(0); suit < NumSuits; suit++ {
		for v := uint8(1); v <= b.Foundations[suit]; v++ {
			counts[Numbered(suit, v)]++
		}
	}
	if b.FlowerPlaced {
		counts[Flower]++
	}
	return counts
}

// deckMultiset is the reference multiset of a full deck.
func deckMultiset() map[Card]int {
	counts := make(map[Card]int)
	for _, c := range FullDeck() {
		counts[c]++
	}
	return counts
}

// assertConserved fails the test if the board's card multiset deviates from
// the dealt deck.
func assertConserved(t *testing.T, b *Board) {
	t.Helper()
	if got, want := cardMultiset(b), deckMultiset(); !reflect.DeepEqual(got, want) {
		t.Errorf("card multiset diverged from the dealt deck:\ngot  %v\nwant %v", got, want)
	}
}

// TestNewBoardDeal verifies round-robin distribution: 5 cards per column in
// input order, empty cells, zero foundations.
func TestNewBoardDeal(t *testing.T) {
	deck := FullDeck()
	b, err := NewBoard(deck)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}

	for col := 0; col < NumColumns; col++ {
		if len(b.Columns[col]) != 5 {
			t.Errorf("column %d length = %d, want 5", col, len(b.Columns[col]))
		}
	}
	// Round-robin: deck[i] lands in column i%8 at depth i/8.
	for i, c := range deck {
		if got := b.Columns[i%NumColumns][i/NumColumns]; got != c {
			t.Errorf("deck[%d]: placed %s, want %s", i, got, c)
		}
	}
	for slot, fc := range b.FreeCells {
		if !fc.IsEmpty() {
			t.Errorf("free cell %d not empty after deal", slot)
		}
	}
	for suit, f := range b.Foundations {
		if f != 0 {
			t.Errorf("foundation %d = %d, want 0", suit, f)
		}
	}
	if b.FlowerPlaced {
		t.Error("flower placed after deal")
	}
	assertConserved(t, b)
}

// TestNewBoardRejectsBadDecks verifies deal validation.
func TestNewBoardRejectsBadDecks(t *testing.T) {
	short := FullDeck()[:39]
	if _, err := NewBoard(short); err == nil {
		t.Error("NewBoard accepted a 39-card deck")
	}

	// Right length, wrong composition: duplicate a numbered card over the flower.
	dup := FullDeck()
	dup[len(dup)-1] = Numbered(SuitRed, 1)
	if _, err := NewBoard(dup); err == nil {
		t.Error("NewBoard accepted a deck with a duplicated card")
	}
}

// TestDealSeededDeterministic verifies that equal seeds produce identical
// boards and different seeds (almost surely) do not.
func TestDealSeededDeterministic(t *testing.T) {
	b1 := DealSeeded(42)
	b2 := DealSeeded(42)
	if !reflect.DeepEqual(b1, b2) {
		t.Error("same seed produced different boards")
	}

	b3 := DealSeeded(43)
	if reflect.DeepEqual(b1, b3) {
		t.Error("different seeds produced identical boards")
	}
	assertConserved(t, b1)
	assertConserved(t, b3)
}

// TestDealSeededZero verifies seed 0 is corrected rather than degenerate.
func TestDealSeededZero(t *testing.T) {
	b := DealSeeded(0)
	assertConserved(t, b)
	if reflect.DeepEqual(b.Columns, func() [NumColumns][]Card {
		fresh, _ := NewBoard(FullDeck())
		return fresh.Columns
	}()) {
		t.Error("seed 0 dealt an unshuffled deck")
	}
}

// TestCloneIndependence verifies a clone shares no state with its source.
func TestCloneIndependence(t *testing.T) {
	b := DealSeeded(7)
	clone := b.Clone()

	if !reflect.DeepEqual(b, clone) {
		t.Fatal("clone differs from source")
	}

	// Mutate the clone through legal primitives; the source must not move.
	snapshot := b.Clone()
	clone.Columns[0] = clone.Columns[0][:len(clone.Columns[0])-1]
	clone.FreeCells[0] = FreeCell{Kind: CellCard, Card: Numbered(SuitRed, 1)}
	clone.Foundations[0] = 3
	clone.FlowerPlaced = true

	if !reflect.DeepEqual(b, snapshot) {
		t.Error("mutating a clone changed the source board")
	}
}

// TestCardAt verifies location resolution over columns and cells.
func TestCardAt(t *testing.T) {
	var b Board
	b.Columns[2] = []Card{Numbered(SuitRed, 3), Numbered(SuitGreen, 2)}
	b.FreeCells[1] = FreeCell{Kind: CellCard, Card: DragonOf(SuitBlack)}
	b.FreeCells[2] = FreeCell{Kind: CellLocked, LockSuit: SuitRed}

	if c, ok := b.CardAt(Column(2)); !ok || c != Numbered(SuitGreen, 2) {
		t.Errorf("CardAt(Column(2)) = %v, %v; want G2, true", c, ok)
	}
	if _, ok := b.CardAt(Column(0)); ok {
		t.Error("CardAt on empty column reported a card")
	}
	if c, ok := b.CardAt(Cell(1)); !ok || c != DragonOf(SuitBlack) {
		t.Errorf("CardAt(Cell(1)) = %v, %v; want BD, true", c, ok)
	}
	if _, ok := b.CardAt(Cell(2)); ok {
		t.Error("CardAt on a locked cell reported a card")
	}
	if _, ok := b.CardAt(Column(99)); ok {
		t.Error("CardAt accepted an out-of-range column")
	}
	if _, ok := b.CardAt(Cell(-1)); ok {
		t.Error("CardAt accepted a negative cell index")
	}
}
