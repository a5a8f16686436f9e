package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vidyasagar/spanav/internal/history"
)

// ErrNoSession is returned by Load when nothing has been saved yet.
var ErrNoSession = errors.New("storage: no saved session")

// SessionStore persists the session history stack so a later run can
// resume where the previous one stopped.
type SessionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSessionStore creates a session store using the given database.
func NewSessionStore(db *DB, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{db: db.conn, logger: logger}
}

// Save replaces the stored stack with snap.
func (ss *SessionStore) Save(snap history.Snapshot) error {
	if !snap.Valid() {
		return fmt.Errorf("saving session: invalid snapshot (%d entries, index %d)", len(snap.Entries), snap.Index)
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM session_entries`); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO session_entries (position, pathname, search, hash, state, key) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, loc := range snap.Entries {
		state := ss.encodeState(loc)
		if _, err := stmt.Exec(i, loc.Pathname, loc.Search, loc.Hash, state, loc.Key); err != nil {
			return fmt.Errorf("inserting entry %d: %w", i, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO session_meta (id, current_index, action, saved_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET current_index = excluded.current_index,
		     action = excluded.action, saved_at = excluded.saved_at`,
		snap.Index, string(snap.Action), time.Now().UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("writing session meta: %w", err)
	}

	return tx.Commit()
}

// Load returns the stored stack, or ErrNoSession.
func (ss *SessionStore) Load() (history.Snapshot, error) {
	var snap history.Snapshot
	var action string
	err := ss.db.QueryRow(`SELECT current_index, action FROM session_meta WHERE id = 1`).Scan(&snap.Index, &action)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Snapshot{}, ErrNoSession
	}
	if err != nil {
		return history.Snapshot{}, fmt.Errorf("reading session meta: %w", err)
	}
	snap.Action = history.Action(action)

	rows, err := ss.db.Query(
		`SELECT pathname, search, hash, state, key FROM session_entries ORDER BY position`,
	)
	if err != nil {
		return history.Snapshot{}, fmt.Errorf("reading entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var loc history.Location
		var state []byte
		if err := rows.Scan(&loc.Pathname, &loc.Search, &loc.Hash, &state, &loc.Key); err != nil {
			return history.Snapshot{}, fmt.Errorf("scanning entry: %w", err)
		}
		loc.State = ss.decodeState(loc.Key, state)
		snap.Entries = append(snap.Entries, loc)
	}
	if err := rows.Err(); err != nil {
		return history.Snapshot{}, fmt.Errorf("reading entries: %w", err)
	}

	if !snap.Valid() {
		return history.Snapshot{}, ErrNoSession
	}
	return snap, nil
}

// Clear deletes the stored stack.
func (ss *SessionStore) Clear() error {
	for _, table := range []string{"session_entries", "session_meta"} {
		if _, err := ss.db.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// encodeState packs a location's state. State that cannot be serialized is
// opaque to storage and is not persisted.
func (ss *SessionStore) encodeState(loc history.Location) []byte {
	if loc.State == nil {
		return nil
	}
	b, err := msgpack.Marshal(loc.State)
	if err != nil {
		ss.logger.Debug("location state not persisted", "key", loc.Key, "error", err)
		return nil
	}
	return b
}

func (ss *SessionStore) decodeState(key string, b []byte) any {
	if len(b) == 0 {
		return nil
	}
	var v any
	if err := msgpack.Unmarshal(b, &v); err != nil {
		ss.logger.Warn("dropping unreadable location state", "key", key, "error", err)
		return nil
	}
	return v
}
