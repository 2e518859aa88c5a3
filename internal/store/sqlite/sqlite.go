package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pairpad/pairpad-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id         TEXT PRIMARY KEY,
	code       TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements store.RoomStore for SQLite.
type SQLiteStore struct {
	db *sql.DB

	// Schema provisioning is deferred until first use. Multiple first-time
	// callers may race to trigger it, so the flag is mutex-guarded; a failed
	// attempt leaves the flag unset so the next caller retries.
	initMu      sync.Mutex
	initialized bool
}

// New creates a new SQLite store.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite works best with a single connection; it also serializes
	// concurrent writes to the same row for us.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ensureSchema provisions the rooms table on first use.
func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.initialized {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	s.initialized = true
	return nil
}

// CreateRoom allocates a new room with empty code and persists it.
func (s *SQLiteStore) CreateRoom(ctx context.Context) (*store.Room, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	room := &store.Room{
		ID:        uuid.NewString(),
		Code:      "",
		UpdatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO rooms (id, code, updated_at)
		VALUES (?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, room.ID, room.Code, room.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}

	return room, nil
}

// GetRoom retrieves a room by ID.
func (s *SQLiteStore) GetRoom(ctx context.Context, id string) (*store.Room, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, code, updated_at
		FROM rooms
		WHERE id = ?
	`
	var room store.Room
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID,
		&room.Code,
		&room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRoomNotFound
		}
		return nil, fmt.Errorf("query room: %w", err)
	}

	return &room, nil
}

// UpdateRoomCode overwrites the room's code and refreshes its timestamp.
func (s *SQLiteStore) UpdateRoomCode(ctx context.Context, id, code string) (*store.Room, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query := `
		UPDATE rooms
		SET code = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query, code, now, id)
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, store.ErrRoomNotFound
	}

	return &store.Room{ID: id, Code: code, UpdatedAt: now}, nil
}
