package history

import (
	"database/sql"
	"errors"
	"fmt"

	"bitsense/internal/logging"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("history store closed")

// Schema versions:
// v1: rounds table
// v2: time_limit_ms column
const CurrentSchemaVersion = 2

const roundsTable = `
CREATE TABLE IF NOT EXISTS rounds (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	round_id TEXT NOT NULL UNIQUE,
	session_id TEXT NOT NULL,
	mode TEXT NOT NULL,
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	bit_width INTEGER NOT NULL,
	value TEXT NOT NULL,
	status TEXT NOT NULL,
	correct INTEGER NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	bits_per_second REAL NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id);
CREATE INDEX IF NOT EXISTS idx_rounds_created ON rounds(created_at);
`

// column is a column added after v1.
type column struct {
	Table string
	Name  string
	Def   string
}

var addedColumns = []column{
	{"rounds", "time_limit_ms", "INTEGER NOT NULL DEFAULT 0"},
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(roundsTable); err != nil {
		return fmt.Errorf("failed to create rounds table: %w", err)
	}
	for _, c := range addedColumns {
		if columnExists(db, c.Table, c.Name) {
			continue
		}
		logging.History("Adding column %s.%s", c.Table, c.Name)
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.Table, c.Name, c.Def)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", c.Table, c.Name, err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", CurrentSchemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

// SchemaVersion reports the stored schema version.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&v)
	return v, err
}

func columnExists(db *sql.DB, table, name string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid        int
			colName    string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultVal, &pk); err != nil {
			return false
		}
		if colName == name {
			return true
		}
	}
	return false
}
