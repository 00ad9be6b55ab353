// Package history keeps an append-only SQLite log of finished rounds.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"bitsense/internal/logging"
	"bitsense/internal/round"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Entry is one recorded round.
type Entry struct {
	ID            int64
	RoundID       uuid.UUID
	SessionID     uuid.UUID
	Mode          round.Direction
	Source        round.Base
	Target        round.Base
	BitWidth      int
	Value         uint64
	Status        round.Status
	Correct       bool
	Elapsed       time.Duration
	TimeLimit     time.Duration
	BitsPerSecond float64
	CreatedAt     time.Time
}

// Conversion names the direction actually played, e.g. "bin2hex".
func (e Entry) Conversion() string {
	return conversion(e.Source)
}

// Prompt renders the value as it was shown to the player.
func (e Entry) Prompt() string {
	ch := round.Challenge{Source: e.Source, Target: e.Target, Value: e.Value, BitWidth: e.BitWidth}
	return ch.Display()
}

// Answer renders the expected answer.
func (e Entry) Answer() string {
	ch := round.Challenge{Source: e.Source, Target: e.Target, Value: e.Value, BitWidth: e.BitWidth}
	return ch.TargetRepresentation()
}

// WidthSummary aggregates rounds of one width and conversion.
type WidthSummary struct {
	BitWidth          int
	Conversion        string
	Attempts          int
	Correct           int
	BestBitsPerSecond float64
	AvgBitsPerSecond  float64
	AvgElapsed        time.Duration
}

// Accuracy is the fraction of attempts answered correctly.
func (w WidthSummary) Accuracy() float64 {
	if w.Attempts == 0 {
		return 0
	}
	return float64(w.Correct) / float64(w.Attempts)
}

// Store is a SQLite-backed round log.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	path   string
	clock  clockwork.Clock
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp new entries.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Open opens (creating if needed) the history database at path.
func Open(path string, opts ...Option) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryHistory, "history.Open")
	defer timer.Stop()

	if path == "" {
		return nil, fmt.Errorf("history path required")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every pooled connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	logging.History("History store opened at %s", path)
	return s, nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// appendThreshold is how long an insert may hold up the UI loop before it is
// logged as slow.
const appendThreshold = 50 * time.Millisecond

// Append records a finished round.
func (s *Store) Append(ctx context.Context, sessionID uuid.UUID, res round.Result) error {
	timer := logging.StartTimer(logging.CategoryHistory, "Append")
	defer timer.StopWithThreshold(appendThreshold)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	ch := res.Challenge
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (round_id, session_id, mode, source, target, bit_width, value,
			status, correct, elapsed_ms, time_limit_ms, bits_per_second, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RoundID.String(), sessionID.String(), res.Config.Direction.String(),
		ch.Source.String(), ch.Target.String(), ch.BitWidth, strconv.FormatUint(ch.Value, 16),
		res.Status.String(), boolInt(res.Correct), res.Elapsed.Milliseconds(), res.Config.TimeLimit.Milliseconds(),
		res.BitsPerSecond, s.clock.Now().UnixMilli(),
	)
	if err != nil {
		logging.HistoryError("Failed to append round %s: %v", res.RoundID, err)
		return fmt.Errorf("failed to append round: %w", err)
	}
	logging.HistoryDebug("Appended round %s (session=%s status=%s)", res.RoundID, sessionID, res.Status)
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	timer := logging.StartTimer(logging.CategoryHistory, "Recent")
	defer timer.Stop()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, round_id, session_id, mode, source, target, bit_width, value,
			status, correct, elapsed_ms, time_limit_ms, bits_per_second, created_at
		 FROM rounds
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent rounds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded rounds.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rounds").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rounds: %w", err)
	}
	return n, nil
}

// Summary aggregates all rounds by bit width and conversion.
func (s *Store) Summary(ctx context.Context) ([]WidthSummary, error) {
	timer := logging.StartTimer(logging.CategoryHistory, "Summary")
	defer timer.Stop()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT bit_width, source,
			COUNT(*),
			COALESCE(SUM(correct), 0),
			COALESCE(MAX(CASE WHEN correct = 1 THEN bits_per_second END), 0),
			COALESCE(AVG(CASE WHEN correct = 1 THEN bits_per_second END), 0),
			COALESCE(AVG(CASE WHEN correct = 1 THEN elapsed_ms END), 0)
		 FROM rounds
		 GROUP BY bit_width, source
		 ORDER BY bit_width, source`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize rounds: %w", err)
	}
	defer rows.Close()

	var out []WidthSummary
	for rows.Next() {
		var (
			w         WidthSummary
			source    string
			avgMillis float64
		)
		if err := rows.Scan(&w.BitWidth, &source, &w.Attempts, &w.Correct,
			&w.BestBitsPerSecond, &w.AvgBitsPerSecond, &avgMillis); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		b, err := parseBase(source)
		if err != nil {
			return nil, err
		}
		w.Conversion = conversion(b)
		w.AvgElapsed = time.Duration(avgMillis * float64(time.Millisecond))
		out = append(out, w)
	}
	return out, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e                    Entry
		roundID, sessionID   string
		mode, source, target string
		value, status        string
		elapsedMs, limitMs   int64
		createdMs            int64
	)
	if err := row.Scan(&e.ID, &roundID, &sessionID, &mode, &source, &target, &e.BitWidth, &value,
		&status, &e.Correct, &elapsedMs, &limitMs, &e.BitsPerSecond, &createdMs); err != nil {
		return Entry{}, fmt.Errorf("failed to scan round: %w", err)
	}

	var err error
	if e.RoundID, err = uuid.Parse(roundID); err != nil {
		return Entry{}, fmt.Errorf("bad round id %q: %w", roundID, err)
	}
	if e.SessionID, err = uuid.Parse(sessionID); err != nil {
		return Entry{}, fmt.Errorf("bad session id %q: %w", sessionID, err)
	}
	if e.Mode, err = round.ParseDirection(mode); err != nil {
		return Entry{}, err
	}
	if e.Source, err = parseBase(source); err != nil {
		return Entry{}, err
	}
	if e.Target, err = parseBase(target); err != nil {
		return Entry{}, err
	}
	if e.Value, err = strconv.ParseUint(value, 16, 64); err != nil {
		return Entry{}, fmt.Errorf("bad value %q: %w", value, err)
	}
	if e.Status, err = parseStatus(status); err != nil {
		return Entry{}, err
	}
	e.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	e.TimeLimit = time.Duration(limitMs) * time.Millisecond
	e.CreatedAt = time.UnixMilli(createdMs)
	return e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func conversion(source round.Base) string {
	if source == round.Binary {
		return round.BinToHex.String()
	}
	return round.HexToBin.String()
}

func parseBase(s string) (round.Base, error) {
	switch s {
	case round.Binary.String():
		return round.Binary, nil
	case round.Hex.String():
		return round.Hex, nil
	}
	return 0, fmt.Errorf("unknown base %q", s)
}

func parseStatus(s string) (round.Status, error) {
	for _, st := range []round.Status{round.Pending, round.Running, round.Succeeded, round.TimedOut, round.Aborted} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}
