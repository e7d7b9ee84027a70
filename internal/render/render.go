// Package render draws the board for a terminal. The engine is read, never
// mutated; swapping in a TUI later only means another Renderer.
package render

import (
	"fmt"
	"io"
	"strings"

	"szsol/engine"
)

// Renderer abstracts the presentation layer the game loop talks to.
type Renderer interface {
	// Render draws the full board.
	Render(b *engine.Board)
	// Prompt writes the input prompt.
	Prompt()
	// Info displays an informational message.
	Info(msg string)
	// Error displays an error message.
	Error(msg string)
	// Help displays the help panel.
	Help()
	// Win displays the win screen.
	Win()
}

// CLI renders with ANSI colors to an injected writer.
type CLI struct {
	out   io.Writer
	color bool
}

// NewCLI returns a color renderer writing to out.
func NewCLI(out io.Writer) *CLI {
	return &CLI{out: out, color: true}
}

// NewPlainCLI returns a renderer without color codes, for pipes and tests.
func NewPlainCLI(out io.Writer) *CLI {
	return &CLI{out: out}
}

func (r *CLI) paint(code, s string) string {
	if !r.color {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (r *CLI) suitPaint(suit uint8, s string) string {
	switch suit {
	case engine.SuitRed:
		return r.paint("31", s)
	case engine.SuitGreen:
		return r.paint("32", s)
	case engine.SuitBlack:
		return r.paint("90", s)
	}
	return s
}

func (r *CLI) cardStr(c engine.Card) string {
	if c.IsFlower() {
		return r.paint("35", c.Label())
	}
	return r.suitPaint(c.Suit(), c.Label())
}

func (r *CLI) cellStr(fc engine.FreeCell) string {
	switch fc.Kind {
	case engine.CellCard:
		return "[" + r.cardStr(fc.Card) + "]"
	case engine.CellLocked:
		return "[" + r.suitPaint(fc.LockSuit, "XXX") + "]"
	}
	return "   "
}

// Render draws the free-cell/flower/foundation row followed by the tableau,
// row-major with column indices across the top.
func (r *CLI) Render(b *engine.Board) {
	var sb strings.Builder

	sb.WriteString("\n  FREE CELLS:  ")
	for i, fc := range b.FreeCells {
		fmt.Fprintf(&sb, "%d: %s  ", i, r.cellStr(fc))
	}

	if b.FlowerPlaced {
		sb.WriteString("  FLOWER: [" + r.paint("35", "FL") + "]  ")
	} else {
		sb.WriteString("  FLOWER: [  ]  ")
	}

	sb.WriteString("  FOUND: ")
	for suit := uint8(0); suit < engine.NumSuits; suit++ {
		v := b.Foundations[suit]
		if v == 0 {
			fmt.Fprintf(&sb, "%s[--] ", engine.SuitSymbol(suit))
		} else {
			fmt.Fprintf(&sb, "%s[%s] ", engine.SuitSymbol(suit), r.cardStr(engine.Numbered(suit, v)))
		}
	}
	sb.WriteString("\n\n  COL:   ")
	for i := 0; i < engine.NumColumns; i++ {
		fmt.Fprintf(&sb, "  %2d  ", i)
	}
	sb.WriteByte('\n')

	maxLen := 0
	for _, col := range b.Columns {
		if len(col) > maxLen {
			maxLen = len(col)
		}
	}
	for row := 0; row < maxLen; row++ {
		fmt.Fprintf(&sb, "  %3d:   ", row)
		for _, col := range b.Columns {
			if row < len(col) {
				fmt.Fprintf(&sb, " [%s] ", r.cardStr(col[row]))
			} else {
				sb.WriteString("  ..  ")
			}
		}
		sb.WriteByte('\n')
	}
	if maxLen == 0 {
		sb.WriteString("  (all columns empty)\n")
	}
	sb.WriteByte('\n')

	io.WriteString(r.out, sb.String())
}

func (r *CLI) Prompt() {
	io.WriteString(r.out, "> ")
}

func (r *CLI) Info(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", r.paint("36", "[INFO]"), msg)
}

func (r *CLI) Error(msg string) {
	fmt.Fprintf(r.out, "%s %s\n", r.paint("31", "[ERR ]"), msg)
}

func (r *CLI) Help() {
	io.WriteString(r.out, helpText)
}

func (r *CLI) Win() {
	io.WriteString(r.out, r.paint("33", winBanner))
	io.WriteString(r.out, "\n  Congratulations! You solved it!  Type 'new' for another game.\n\n")
}

const helpText = `
  GOAL: move all numbered cards (1-9) to the foundation and clear the tableau.

  CARDS: 3 suits (Red/Green/Black), each with numbered cards 1-9 and four
  dragons (RD/GD/BD), plus one flower card (FL) shared across all suits.

  RULES:
    - Stack on columns: different suit, value one lower.
      e.g. R5 can go on G6 or B6, but not R6.
    - Foundations build up by suit: R1 -> R2 -> ... -> R9.
    - 3 free cells, each holds one card temporarily.
    - The flower goes to the flower slot (automatic when exposed).
    - Four same-suit dragons merge when all are exposed, permanently
      locking one free cell.

  COMMANDS (case-insensitive):
    cc  <src> <dst>       move top card: column -> column
    cc  <src>:<N> <dst>   move a stack of N+1 cards from the top
    cf  <col> <cell>      move top card: column -> free cell
    fc  <cell> <col>      move card: free cell -> column
    ctf <col>             move top card: column -> foundation
    ftf <cell>            move card: free cell -> foundation
    dragon r|g|b          merge all four exposed dragons
    undo                  undo the last move
    new                   deal a new game
    quit                  exit
    help | h | ?          show this help

  Example: cc 4:2 7 moves the top 3 cards of column 4 onto column 7.
  Safe cards are moved to the foundation automatically.

`

const winBanner = `
  __          ______  _   _ _
  \ \        / / __ \| \ | | |
   \ \  /\  / / |  | |  \| | |
    \ \/  \/ /| |  | | . ` + "`" + ` | |
     \  /\  / | |__| | |\  |_|
      \/  \/   \____/|_| \_(_)
`
