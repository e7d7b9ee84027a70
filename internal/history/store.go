package history

import (
	"crypto/hmac"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"

	"szsol/engine"
)

// ErrTampered is returned when a stored snapshot fails MAC verification.
var ErrTampered = errors.New("history record signature mismatch")

// DefaultKey signs snapshots so casual save-file edits are detected. The
// key ships with the binary; this is tamper evidence, not secrecy.
var DefaultKey = []byte("szsol_secret_key_123_do_not_cheat")

// Record is one stored game session. Board is the latest snapshot and is
// nil once none was saved or the stored one failed verification.
type Record struct {
	ID        string
	Seed      uint64
	StartedAt int64
	EndedAt   int64 // 0 while in progress
	Won       bool
	Board     *engine.Board
}

// NewRecord starts a record for a fresh deal.
func NewRecord(seed uint64) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Seed:      seed,
		StartedAt: time.Now().Unix(),
	}
}

// Store persists game records in a single SQLite file. Snapshots are JSON
// blobs signed with a keyed BLAKE2b MAC; loads verify before trusting.
type Store struct {
	db  *sql.DB
	key []byte
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	seed       INTEGER NOT NULL,
	started_at INTEGER NOT NULL,
	ended_at   INTEGER NOT NULL DEFAULT 0,
	won        INTEGER NOT NULL DEFAULT 0,
	snapshot   BLOB,
	sig        BLOB
);
`

// Open opens (or creates) the store at path and applies the schema.
func Open(path string, key []byte) (*Store, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("history store needs a signing key")
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db, key: key}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// sign computes the keyed BLAKE2b MAC of payload.
func (s *Store) sign(payload []byte) []byte {
	mac, err := blake2b.New256(s.key)
	if err != nil {
		// Only possible with an oversized key; Open validated ours.
		panic(err)
	}
	mac.Write(payload)
	return mac.Sum(nil)
}

// Save upserts rec, snapshotting rec.Board when present.
func (s *Store) Save(rec *Record) error {
	var snap, sig []byte
	if rec.Board != nil {
		var err error
		snap, err = json.Marshal(rec.Board)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		sig = s.sign(snap)
	}

	won := 0
	if rec.Won {
		won = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO games (id, seed, started_at, ended_at, won, snapshot, sig)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ended_at = excluded.ended_at,
			won      = excluded.won,
			snapshot = excluded.snapshot,
			sig      = excluded.sig`,
		rec.ID, int64(rec.Seed), rec.StartedAt, rec.EndedAt, won, snap, sig)
	if err != nil {
		return fmt.Errorf("save record %s: %w", rec.ID, err)
	}
	return nil
}

// Load fetches a record by id. A snapshot whose signature does not verify
// yields ErrTampered; the caller decides whether to keep the bare record.
func (s *Store) Load(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, started_at, ended_at, won, snapshot, sig FROM games WHERE id = ?`, id)
	return scanRecord(row, s.key)
}

// LatestUnfinished returns the most recently started record with no end
// time, for resume. Records with tampered snapshots are skipped.
func (s *Store) LatestUnfinished() (*Record, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, started_at, ended_at, won, snapshot, sig
		 FROM games WHERE ended_at = 0 ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query unfinished records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows, s.key)
		if errors.Is(err, ErrTampered) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, sql.ErrNoRows
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, key []byte) (*Record, error) {
	var (
		rec  Record
		seed int64
		won  int
		snap []byte
		sig  []byte
	)
	if err := row.Scan(&rec.ID, &seed, &rec.StartedAt, &rec.EndedAt, &won, &snap, &sig); err != nil {
		return nil, err
	}
	rec.Seed = uint64(seed)
	rec.Won = won != 0

	if len(snap) > 0 {
		mac, err := blake2b.New256(key)
		if err != nil {
			return nil, err
		}
		mac.Write(snap)
		if !hmac.Equal(mac.Sum(nil), sig) {
			return &rec, fmt.Errorf("%w: record %s", ErrTampered, rec.ID)
		}
		var b engine.Board
		if err := json.Unmarshal(snap, &b); err != nil {
			return nil, fmt.Errorf("decode snapshot for %s: %w", rec.ID, err)
		}
		rec.Board = &b
	}
	return &rec, nil
}
