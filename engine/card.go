package engine

import "strconv"

// Suit constants — packed into the upper 4 bits of Card.
const (
	SuitRed   uint8 = 0
	SuitGreen uint8 = 1
	SuitBlack uint8 = 2

	// suitNone is the pseudo-suit carried only by the flower.
	suitNone uint8 = 3
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = value.
// Numbered cards carry values 1–9; dragons carry valueDragon; the flower
// is the single card under suitNone.
type Card uint8

// valueDragon marks a dragon in the value bits.
const valueDragon uint8 = 10

// Flower is the unique suit-less flower card.
const Flower Card = Card(suitNone << 4)

// Numbered constructs the numbered card of suit with value v (1–9).
func Numbered(suit, v uint8) Card {
	return Card(suit<<4 | v&0x0F)
}

// DragonOf constructs the dragon card of the given suit. All four dragons
// of a suit are indistinguishable, so they share one encoding.
func DragonOf(suit uint8) Card {
	return Card(suit<<4 | valueDragon)
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Value returns the value bits (lower 4). Only meaningful for numbered cards.
func (c Card) Value() uint8 { return uint8(c) & 0x0F }

// IsNumbered reports whether c is a numbered card (value 1–9 of a real suit).
func (c Card) IsNumbered() bool {
	v := c.Value()
	return c.Suit() < NumSuits && v >= 1 && v <= MaxValue
}

// IsDragon reports whether c is a dragon of any suit.
func (c Card) IsDragon() bool {
	return c.Suit() < NumSuits && c.Value() == valueDragon
}

// IsFlower reports whether c is the flower.
func (c Card) IsFlower() bool { return c == Flower }

// CanStackOn reports whether c may be placed on top of target in the
// tableau: both must be numbered, suits must differ, and c's value must be
// exactly one below target's. Every other pairing is false. This predicate
// is the sole rule governing tableau stacking.
func (c Card) CanStackOn(target Card) bool {
	if !c.IsNumbered() || !target.IsNumbered() {
		return false
	}
	return c.Suit() != target.Suit() && c.Value()+1 == target.Value()
}

// SuitSymbol returns the single-character symbol used in CLI rendering.
func SuitSymbol(suit uint8) string {
	switch suit {
	case SuitRed:
		return "R"
	case SuitGreen:
		return "G"
	case SuitBlack:
		return "B"
	}
	return "?"
}

// SuitName returns the full suit name.
func SuitName(suit uint8) string {
	switch suit {
	case SuitRed:
		return "Red"
	case SuitGreen:
		return "Green"
	case SuitBlack:
		return "Black"
	}
	return "Unknown"
}

// Label returns the short display label: "R5", "GD", "FL".
func (c Card) Label() string {
	switch {
	case c.IsFlower():
		return "FL"
	case c.IsDragon():
		return SuitSymbol(c.Suit()) + "D"
	case c.IsNumbered():
		return SuitSymbol(c.Suit()) + strconv.Itoa(int(c.Value()))
	}
	return "??"
}

func (c Card) String() string { return c.Label() }

// FullDeck returns the 40-card deck in canonical order: for each suit the
// numbered cards 1–9 followed by four dragons, then the flower.
func FullDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for suit := uint8(0); suit < NumSuits; suit++ {
		for v := uint8(1); v <= MaxValue; v++ {
			deck = append(deck, Numbered(suit, v))
		}
		for i := 0; i < DragonsPerSuit; i++ {
			deck = append(deck, DragonOf(suit))
		}
	}
	return append(deck, Flower)
}
