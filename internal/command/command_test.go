package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"szsol/engine"
)

func TestParseMoves(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{"column to column", "cc 4 7", Command{Kind: ColumnToColumn, Src: 4, Dst: 7}},
		{"column to column with depth", "cc 4:2 7", Command{Kind: ColumnToColumn, Src: 4, Depth: 2, Dst: 7}},
		{"uppercase verb", "CC 0 1", Command{Kind: ColumnToColumn, Src: 0, Dst: 1}},
		{"column to free cell", "cf 3 1", Command{Kind: ColumnToFreeCell, Src: 3, Dst: 1}},
		{"free cell to column", "fc 2 5", Command{Kind: FreeCellToColumn, Src: 2, Dst: 5}},
		{"column to foundation", "ctf 6", Command{Kind: ColumnToFoundation, Src: 6}},
		{"free cell to foundation", "ftf 0", Command{Kind: FreeCellToFoundation, Src: 0}},
		{"dragon long", "dragon g", Command{Kind: MergeDragons, Suit: engine.SuitGreen}},
		{"dragon short verb", "dr red", Command{Kind: MergeDragons, Suit: engine.SuitRed}},
		{"dragon black", "dragon B", Command{Kind: MergeDragons, Suit: engine.SuitBlack}},
		{"surrounding whitespace", "  cc 1 2  ", Command{Kind: ColumnToColumn, Src: 1, Dst: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseControlCommands(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"undo", Undo}, {"u", Undo},
		{"new", NewGame}, {"n", NewGame},
		{"quit", Quit}, {"q", Quit}, {"exit", Quit},
		{"help", Help}, {"h", Help}, {"?", Help},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got.Kind, "input %q", tt.input)
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"frobnicate",
		"cc",
		"cc 1",
		"cc 8 0",      // column out of range
		"cc -1 0",     // negative column
		"cc 1:x 0",    // bad depth
		"cc 1:-2 0",   // negative depth
		"cf 0 3",      // cell out of range
		"fc 3 0",      // cell out of range
		"ctf",
		"ctf nine",
		"ftf",
		"dragon",
		"dragon purple",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		assert.Error(t, err, "input %q", in)
	}
}
