// Package command parses player input lines into shell commands.
//
// Syntax (case-insensitive):
//
//	cc <src> <dst>            move top card column → column
//	cc <src>:<depth> <dst>    move a stack; depth counts from the top (0 = top card)
//	cf <col> <cell>           move column top → free cell
//	fc <cell> <col>           move free cell → column
//	ctf <col>                 move column top → foundation
//	ftf <cell>                move free cell → foundation
//	dragon r|g|b              merge the four exposed dragons of a suit
//	undo | u                  undo the last move
//	new | n                   deal a new game
//	quit | q | exit           quit
//	help | h | ?              show help
package command

import (
	"fmt"
	"strconv"
	"strings"

	"szsol/engine"
)

// Kind enumerates the player commands.
type Kind uint8

const (
	ColumnToColumn Kind = iota
	ColumnToFreeCell
	FreeCellToColumn
	ColumnToFoundation
	FreeCellToFoundation
	MergeDragons
	Undo
	NewGame
	Quit
	Help
)

// Command is one parsed player instruction. Src/Dst are column or cell
// indices depending on Kind; Depth is counted from the top of the source
// column (0 = top card only); Suit is set for MergeDragons.
type Command struct {
	Kind  Kind
	Src   int
	Dst   int
	Depth int
	Suit  uint8
}

// Parse turns a single input line into a Command. Indices are range-checked
// here so the game loop only ever sees addressable slots.
func Parse(input string) (Command, error) {
	tokens := strings.Fields(strings.TrimSpace(input))
	if len(tokens) == 0 {
		return Command{}, fmt.Errorf("empty input")
	}

	switch strings.ToLower(tokens[0]) {
	case "cc":
		if len(tokens) < 3 {
			return Command{}, fmt.Errorf("usage: cc <src[:depth]> <dst>")
		}
		dst, err := parseColumn(tokens[2])
		if err != nil {
			return Command{}, err
		}
		src := tokens[1]
		depth := 0
		if colPart, depthPart, found := strings.Cut(src, ":"); found {
			src = colPart
			depth, err = strconv.Atoi(depthPart)
			if err != nil || depth < 0 {
				return Command{}, fmt.Errorf("%q is not a valid stack depth", depthPart)
			}
		}
		srcCol, err := parseColumn(src)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: ColumnToColumn, Src: srcCol, Depth: depth, Dst: dst}, nil

	case "cf":
		if len(tokens) < 3 {
			return Command{}, fmt.Errorf("usage: cf <src_col> <cell>")
		}
		col, err := parseColumn(tokens[1])
		if err != nil {
			return Command{}, err
		}
		cell, err := parseCell(tokens[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: ColumnToFreeCell, Src: col, Dst: cell}, nil

	case "fc":
		if len(tokens) < 3 {
			return Command{}, fmt.Errorf("usage: fc <cell> <dst_col>")
		}
		cell, err := parseCell(tokens[1])
		if err != nil {
			return Command{}, err
		}
		col, err := parseColumn(tokens[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: FreeCellToColumn, Src: cell, Dst: col}, nil

	case "ctf":
		if len(tokens) < 2 {
			return Command{}, fmt.Errorf("usage: ctf <src_col>")
		}
		col, err := parseColumn(tokens[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: ColumnToFoundation, Src: col}, nil

	case "ftf":
		if len(tokens) < 2 {
			return Command{}, fmt.Errorf("usage: ftf <cell>")
		}
		cell, err := parseCell(tokens[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: FreeCellToFoundation, Src: cell}, nil

	case "dragon", "dr":
		if len(tokens) < 2 {
			return Command{}, fmt.Errorf("usage: dragon r|g|b")
		}
		suit, err := parseSuit(tokens[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: MergeDragons, Suit: suit}, nil

	case "undo", "u":
		return Command{Kind: Undo}, nil
	case "new", "n":
		return Command{Kind: NewGame}, nil
	case "quit", "q", "exit":
		return Command{Kind: Quit}, nil
	case "help", "h", "?":
		return Command{Kind: Help}, nil
	}

	return Command{}, fmt.Errorf("unknown command %q; type 'help' for help", tokens[0])
}

func parseColumn(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid column index", s)
	}
	if n < 0 || n >= engine.NumColumns {
		return 0, fmt.Errorf("column index %d out of range (0-%d)", n, engine.NumColumns-1)
	}
	return n, nil
}

func parseCell(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid free-cell index", s)
	}
	if n < 0 || n >= engine.NumFreeCells {
		return 0, fmt.Errorf("free-cell index %d out of range (0-%d)", n, engine.NumFreeCells-1)
	}
	return n, nil
}

func parseSuit(s string) (uint8, error) {
	switch strings.ToLower(s) {
	case "r", "red":
		return engine.SuitRed, nil
	case "g", "green":
		return engine.SuitGreen, nil
	case "b", "black":
		return engine.SuitBlack, nil
	}
	return 0, fmt.Errorf("%q is not a valid suit; use r, g, or b", s)
}
