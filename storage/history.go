// Package storage provides the SQLite-backed history store.
//
// Information Hiding:
// - Schema creation and SQL details encapsulated
// - The database file is opened and closed per logical operation, so
//   no file lock is held across the process lifetime; durability is
//   the engine's job, not reimplemented here

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrEmptyHistory is returned by read and delete operations when the
// store holds no records. Clear never returns it.
var ErrEmptyHistory = errors.New("history is empty")

// Exchange is one persisted question/answer pair. Immutable once
// written except for whole-record deletion.
type Exchange struct {
	ID        int64
	Question  string
	Answer    string
	Timestamp int64
}

// Time returns the exchange timestamp as UTC time.
func (e Exchange) Time() time.Time {
	return time.Unix(e.Timestamp, 0).UTC()
}

const schema = `CREATE TABLE IF NOT EXISTS exchanges (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	timestamp INTEGER NOT NULL
)`

// HistoryStore is a durable append-only log of exchanges. It holds
// only the database path; every operation opens its own connection.
type HistoryStore struct {
	path string
}

// Open creates a history store at the given path, creating parent
// directories and the schema if absent. Safe to call every process
// start.
func Open(path string) (*HistoryStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	s := &HistoryStore{path: path}
	if err := s.withDB(func(db *sql.DB) error {
		_, err := db.Exec(schema)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// withDB opens the database for a single logical operation and closes
// it when the operation finishes.
func (s *HistoryStore) withDB(fn func(*sql.DB) error) error {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()
	return fn(db)
}

// Path returns the database file location.
func (s *HistoryStore) Path() string {
	return s.path
}

// Insert appends a new exchange with the current timestamp. The answer
// is stored with surrounding whitespace stripped; the question is
// stored verbatim.
func (s *HistoryStore) Insert(ctx context.Context, question, answer string) error {
	return s.withDB(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			"INSERT INTO exchanges (question, answer, timestamp) VALUES (?, ?, ?)",
			question, strings.TrimSpace(answer), time.Now().Unix())
		if err != nil {
			return fmt.Errorf("failed to insert exchange: %w", err)
		}
		return nil
	})
}

// All returns every exchange, oldest first by timestamp with ties
// broken by insertion order. Returns ErrEmptyHistory when none exist.
func (s *HistoryStore) All(ctx context.Context) ([]Exchange, error) {
	var exchanges []Exchange
	err := s.withDB(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			"SELECT id, question, answer, timestamp FROM exchanges ORDER BY timestamp ASC, id ASC")
		if err != nil {
			return fmt.Errorf("failed to query exchanges: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var e Exchange
			if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.Timestamp); err != nil {
				return fmt.Errorf("failed to scan exchange: %w", err)
			}
			exchanges = append(exchanges, e)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating exchanges: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(exchanges) == 0 {
		return nil, ErrEmptyHistory
	}
	return exchanges, nil
}

// Last returns the most recent exchange by timestamp, ties broken by
// highest id. Returns ErrEmptyHistory when none exist.
func (s *HistoryStore) Last(ctx context.Context) (Exchange, error) {
	var e Exchange
	err := s.withDB(func(db *sql.DB) error {
		row := db.QueryRowContext(ctx,
			"SELECT id, question, answer, timestamp FROM exchanges ORDER BY timestamp DESC, id DESC LIMIT 1")
		if err := row.Scan(&e.ID, &e.Question, &e.Answer, &e.Timestamp); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrEmptyHistory
			}
			return fmt.Errorf("failed to query last exchange: %w", err)
		}
		return nil
	})
	if err != nil {
		return Exchange{}, err
	}
	return e, nil
}

// DeleteLast removes exactly the exchange Last would return. Returns
// ErrEmptyHistory when none exist.
func (s *HistoryStore) DeleteLast(ctx context.Context) error {
	return s.withDB(func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, `DELETE FROM exchanges WHERE id IN (
			SELECT id FROM exchanges ORDER BY timestamp DESC, id DESC LIMIT 1)`)
		if err != nil {
			return fmt.Errorf("failed to delete last exchange: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count deleted rows: %w", err)
		}
		if n == 0 {
			return ErrEmptyHistory
		}
		return nil
	})
}

// Clear removes every exchange. Succeeds on an empty store.
func (s *HistoryStore) Clear(ctx context.Context) error {
	return s.withDB(func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, "DELETE FROM exchanges"); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		return nil
	})
}
