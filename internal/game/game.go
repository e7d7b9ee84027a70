// Package game drives one interactive solitaire session. It owns the
// authoritative board and translates parsed commands into engine calls,
// relaying results to the renderer and persisting progress to the optional
// history store.
package game

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"szsol/engine"
	"szsol/internal/command"
	"szsol/internal/history"
	"szsol/internal/render"
)

// Game is a single interactive session.
type Game struct {
	ID   uuid.UUID
	Seed uint64

	board    *engine.Board
	renderer render.Renderer
	undo     *history.UndoStack
	store    *history.Store // nil disables persistence
	rec      *history.Record
	log      logrus.FieldLogger
}

// New deals a seeded board and prepares a session. store may be nil.
func New(seed uint64, r render.Renderer, store *history.Store, log logrus.FieldLogger) *Game {
	g := &Game{
		ID:       uuid.New(),
		renderer: r,
		undo:     history.NewUndoStack(0),
		store:    store,
		log:      log,
	}
	g.deal(seed)
	return g
}

// Resume continues a previously stored session. store may be nil if the
// record was loaded elsewhere.
func Resume(rec *history.Record, r render.Renderer, store *history.Store, log logrus.FieldLogger) (*Game, error) {
	if rec.Board == nil {
		return nil, fmt.Errorf("record %s has no snapshot to resume", rec.ID)
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("record %s has a malformed id: %w", rec.ID, err)
	}
	return &Game{
		ID:       id,
		Seed:     rec.Seed,
		board:    rec.Board.Clone(),
		renderer: r,
		undo:     history.NewUndoStack(0),
		store:    store,
		rec:      rec,
		log:      log,
	}, nil
}

// Board exposes the current board for inspection. Callers must not mutate.
func (g *Game) Board() *engine.Board { return g.board }

// deal replaces the board with a fresh seeded deal and opens a new record.
func (g *Game) deal(seed uint64) {
	g.Seed = seed
	g.board = engine.DealSeeded(seed)
	g.undo.Clear()
	g.rec = history.NewRecord(seed)
	g.rec.ID = g.ID.String()
	g.log.WithFields(logrus.Fields{"game": g.ID, "seed": seed}).Info("dealt new board")
}

// Run reads commands from in until quit or EOF. Safe cards auto-advance on
// deal and again after every command.
func (g *Game) Run(in io.Reader) error {
	if n := g.board.AutoMove(); n > 0 {
		g.renderer.Info(fmt.Sprintf("Auto-moved %d card(s) to foundation.", n))
	}
	g.persist()
	g.renderer.Render(g.board)

	scanner := bufio.NewScanner(in)
	for {
		g.renderer.Prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}

		cmd, err := command.Parse(scanner.Text())
		if err != nil {
			g.renderer.Error(err.Error())
			continue
		}

		if quit := g.Handle(cmd); quit {
			return nil
		}

		if n := g.board.AutoMove(); n > 0 {
			g.renderer.Info(fmt.Sprintf("Auto-moved %d card(s) to foundation.", n))
		}
		g.persist()

		if g.board.IsWon() {
			g.finishRecord(true)
			g.renderer.Win()
		}
		g.renderer.Render(g.board)
	}
}

// Handle applies one parsed command. Returns true when the session should
// end. Mutating commands push an undo snapshot first and roll it back when
// the engine rejects the move.
func (g *Game) Handle(cmd command.Command) bool {
	switch cmd.Kind {
	case command.Quit:
		g.renderer.Info("Thanks for playing. Goodbye!")
		return true

	case command.Help:
		g.renderer.Help()

	case command.NewGame:
		g.finishRecord(false)
		g.ID = uuid.New()
		g.deal(RandomSeed())
		g.renderer.Info("A new game has been dealt.")

	case command.Undo:
		if prev, ok := g.undo.Pop(); ok {
			g.board = prev
			g.renderer.Info("Undo successful.")
		} else {
			g.renderer.Error("Nothing to undo.")
		}

	case command.ColumnToColumn:
		g.undo.Push(g.board)
		colLen := len(g.board.Columns[cmd.Src])
		if colLen == 0 {
			g.renderer.Error("Source column is empty.")
			g.undo.Drop()
			return false
		}
		// The shell addresses stacks by depth from the top; the engine
		// wants the absolute start index.
		start := colLen - 1 - cmd.Depth
		if start < 0 {
			start = 0
		}
		g.tryMove(g.board.MoveStack(cmd.Src, start, cmd.Dst))

	case command.ColumnToFreeCell:
		g.undo.Push(g.board)
		g.tryMove(g.board.MoveCard(engine.Column(cmd.Src), engine.Cell(cmd.Dst)))

	case command.FreeCellToColumn:
		g.undo.Push(g.board)
		g.tryMove(g.board.MoveCard(engine.Cell(cmd.Src), engine.Column(cmd.Dst)))

	case command.ColumnToFoundation:
		g.undo.Push(g.board)
		g.tryMove(g.board.MoveToFoundation(engine.Column(cmd.Src)))

	case command.FreeCellToFoundation:
		g.undo.Push(g.board)
		g.tryMove(g.board.MoveToFoundation(engine.Cell(cmd.Src)))

	case command.MergeDragons:
		g.undo.Push(g.board)
		g.tryMove(g.board.MergeDragons(cmd.Suit))
	}
	return false
}

// tryMove reports an engine rejection and rolls back the pre-move snapshot.
func (g *Game) tryMove(err error) {
	if err != nil {
		g.renderer.Error(err.Error())
		g.undo.Drop()
	}
}

// persist saves the current snapshot into the active record.
func (g *Game) persist() {
	if g.store == nil {
		return
	}
	g.rec.Board = g.board.Clone()
	if err := g.store.Save(g.rec); err != nil {
		g.log.WithError(err).WithField("game", g.ID).Warn("failed to persist game record")
	}
}

// finishRecord closes the active record, marking the outcome.
func (g *Game) finishRecord(won bool) {
	if g.rec.EndedAt != 0 {
		return
	}
	g.rec.Won = won
	g.rec.EndedAt = time.Now().Unix()
	if g.store != nil {
		g.rec.Board = g.board.Clone()
		if err := g.store.Save(g.rec); err != nil {
			g.log.WithError(err).WithField("game", g.ID).Warn("failed to close game record")
		}
	}
	if won {
		g.log.WithFields(logrus.Fields{"game": g.ID, "seed": g.Seed}).Info("game won")
	}
}

// RandomSeed returns a non-zero seed from the OS entropy pool.
func RandomSeed() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	s := binary.LittleEndian.Uint64(b[:])
	if s == 0 {
		s = 1
	}
	return s
}
