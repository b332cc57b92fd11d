package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	session TEXT NOT NULL,
	line    TEXT NOT NULL,
	at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_at ON history(at);
`

// Store persists submitted lines across sessions in a sqlite database.
// Each open store is tagged with a fresh session id so interleaved
// sessions remain distinguishable in the log.
type Store struct {
	db      *sql.DB
	session string
}

// OpenStore opens (creating if needed) the history database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &Store{db: db, session: uuid.NewString()}, nil
}

// Session returns the id tagging lines appended through this store.
func (s *Store) Session() string {
	return s.session
}

// Append records a submitted line.
func (s *Store) Append(line string) error {
	_, err := s.db.Exec(
		"INSERT INTO history (session, line, at) VALUES (?, ?, ?)",
		s.session, line, time.Now())
	if err != nil {
		return fmt.Errorf("appending history line: %w", err)
	}
	return nil
}

// Load returns up to n of the most recently recorded lines, oldest
// first, suitable for seeding a History ring.
func (s *Store) Load(n int) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT line FROM history ORDER BY id DESC LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scanning history line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	// Newest-first from the query; callers want chronological order.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
