// Package store persists finished conversation turns to a local SQLite
// database so prompts, answers, and status timelines survive restarts.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // pure-Go SQLite driver, registers as "sqlite"

	"ponder/internal/logging"
	"ponder/internal/session"
	"ponder/internal/status"
)

// ========== History Store ==========

// HistoryStore is a SQLite-backed archive of completed turns. One row per
// turn: the prompt, both text streams, the final status line, and the
// phase timeline serialized as JSON.
type HistoryStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// NewHistoryStore opens (or creates) the turn archive at path.
// Pass ":memory:" for an ephemeral store.
func NewHistoryStore(path string) (*HistoryStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewHistoryStore")
	defer timer.Stop()

	// Ensure directory exists. For ":memory:" Dir is "." and this is a no-op.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// A single connection keeps writes serialized and makes ":memory:"
	// behave as one database instead of one per pooled connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &HistoryStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("History store ready at %s", path)
	return s, nil
}

// initialize creates the required tables.
func (s *HistoryStore) initialize() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS turns (
			id TEXT PRIMARY KEY,
			prompt TEXT NOT NULL,
			reasoning TEXT,
			answer TEXT,
			status_text TEXT,
			phase TEXT,
			provider TEXT,
			model TEXT,
			timeline_json TEXT,
			started_at DATETIME NOT NULL,
			finished_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_started ON turns(started_at)`,
	}

	for _, stmt := range tables {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize history schema: %w", err)
		}
	}
	return nil
}

// ========== Writes ==========

// SaveTurn inserts a turn, replacing any prior row with the same ID so a
// turn can be saved mid-stream and again once finished.
func (s *HistoryStore) SaveTurn(t session.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		return fmt.Errorf("turn has no ID")
	}

	timeline, err := json.Marshal(t.Timeline)
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}

	var finished sql.NullTime
	if !t.FinishedAt.IsZero() {
		finished = sql.NullTime{Time: t.FinishedAt, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO turns
			(id, prompt, reasoning, answer, status_text, phase, provider, model, timeline_json, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Prompt, t.Reasoning, t.Answer, t.StatusText,
		t.Phase.String(), t.Provider, t.Model, string(timeline), t.StartedAt, finished)
	if err != nil {
		return fmt.Errorf("failed to save turn %s: %w", t.ID, err)
	}

	logging.StoreDebug("Saved turn %s (phase=%s, %d timeline events)", t.ID, t.Phase, len(t.Timeline))
	return nil
}

// Clear deletes every archived turn.
func (s *HistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM turns`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	logging.Store("History cleared")
	return nil
}

// ========== Reads ==========

const turnColumns = `id, prompt, reasoning, answer, status_text, phase, provider, model, timeline_json, started_at, finished_at`

// GetTurn fetches one turn by ID.
func (s *HistoryStore) GetTurn(id string) (*session.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+turnColumns+` FROM turns WHERE id = ?`, id)
	t, err := scanTurn(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("turn %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load turn %s: %w", id, err)
	}
	return t, nil
}

// FindTurn resolves a turn by ID or unique ID prefix, so CLI users can paste
// the short form the list command prints.
func (s *HistoryStore) FindTurn(idPrefix string) (*session.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT `+turnColumns+`
		FROM turns WHERE id LIKE ? ORDER BY started_at DESC LIMIT 2`, idPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to find turn %s: %w", idPrefix, err)
	}
	defer rows.Close()

	turns, err := collectTurns(rows)
	if err != nil {
		return nil, err
	}
	switch len(turns) {
	case 0:
		return nil, fmt.Errorf("turn %s not found", idPrefix)
	case 1:
		return &turns[0], nil
	default:
		return nil, fmt.Errorf("turn id %q is ambiguous", idPrefix)
	}
}

// RecentTurns returns up to limit turns, newest first.
func (s *HistoryStore) RecentTurns(limit int) ([]session.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT `+turnColumns+`
		FROM turns ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	return collectTurns(rows)
}

// SearchTurns returns turns whose prompt or answer contains the query,
// newest first. Matching is case-insensitive substring search.
func (s *HistoryStore) SearchTurns(query string, limit int) ([]session.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(query) + "%"

	rows, err := s.db.Query(`
		SELECT `+turnColumns+`
		FROM turns
		WHERE LOWER(prompt) LIKE ? OR LOWER(answer) LIKE ?
		ORDER BY started_at DESC LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search turns: %w", err)
	}
	defer rows.Close()

	return collectTurns(rows)
}

// CountTurns reports how many turns are archived.
func (s *HistoryStore) CountTurns() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM turns`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTurn(row rowScanner) (*session.Turn, error) {
	var (
		t         session.Turn
		phaseName string
		timeline  string
		finished  sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Prompt, &t.Reasoning, &t.Answer, &t.StatusText,
		&phaseName, &t.Provider, &t.Model, &timeline, &t.StartedAt, &finished); err != nil {
		return nil, err
	}
	t.Phase = status.ParsePhase(phaseName)
	if finished.Valid {
		t.FinishedAt = finished.Time
	}
	if timeline != "" && timeline != "null" {
		if err := json.Unmarshal([]byte(timeline), &t.Timeline); err != nil {
			return nil, fmt.Errorf("failed to decode timeline: %w", err)
		}
	}
	return &t, nil
}

func collectTurns(rows *sql.Rows) ([]session.Turn, error) {
	var turns []session.Turn
	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			logging.StoreError("Skipping unreadable turn row: %v", err)
			continue
		}
		turns = append(turns, *t)
	}
	return turns, rows.Err()
}

// ========== Lifecycle ==========

// Path returns the database location.
func (s *HistoryStore) Path() string {
	return s.dbPath
}

// Close releases the underlying database handle.
func (s *HistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
