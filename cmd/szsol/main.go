// Command szsol plays three-suit free-cell solitaire in the terminal.
//
// Configuration comes from the environment (optionally via a .env file):
//
//	SZSOL_LOG_LEVEL  logrus level, default "info"
//	SZSOL_DATA_DIR   directory for the history database, default under the
//	                 user config dir
//
// The -seed flag deals a reproducible board; -resume continues the most
// recent unfinished game instead of dealing.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"szsol/internal/game"
	"szsol/internal/history"
	"szsol/internal/render"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(getEnv("SZSOL_LOG_LEVEL", "info")); err == nil {
		log.SetLevel(lvl)
	}

	seedFlag := flag.Uint64("seed", 0, "seed for a reproducible deal (0 = random)")
	resume := flag.Bool("resume", false, "resume the most recent unfinished game")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	var renderer render.Renderer
	if *noColor {
		renderer = render.NewPlainCLI(os.Stdout)
	} else {
		renderer = render.NewCLI(os.Stdout)
	}

	store, err := history.Open(storePath(), history.DefaultKey)
	if err != nil {
		log.WithError(err).Warn("history store unavailable; playing without persistence")
		store = nil
	} else {
		defer store.Close()
	}

	g, err := newSession(*seedFlag, *resume, renderer, store, log)
	if err != nil {
		log.WithError(err).Fatal("could not start a session")
	}

	if err := g.Run(os.Stdin); err != nil {
		log.WithError(err).Fatal("session ended abnormally")
	}
}

// newSession resumes the latest unfinished game when asked (falling back to
// a fresh deal when none exists), otherwise deals by seed.
func newSession(seed uint64, resume bool, r render.Renderer, store *history.Store, log *logrus.Logger) (*game.Game, error) {
	if resume && store != nil {
		rec, err := store.LatestUnfinished()
		switch {
		case err == nil:
			return game.Resume(rec, r, store, log)
		case errors.Is(err, sql.ErrNoRows):
			log.Info("no unfinished game to resume; dealing fresh")
		default:
			return nil, err
		}
	}
	if seed == 0 {
		seed = game.RandomSeed()
	}
	return game.New(seed, r, store, log), nil
}

// storePath resolves the history database location, creating the directory.
func storePath() string {
	dir := os.Getenv("SZSOL_DATA_DIR")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		dir = filepath.Join(base, "szsol")
	}
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "history.db")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
