package tabview

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	// Register the pure-Go sqlite driver under the name "sqlite".
	_ "modernc.org/sqlite"
)

// Snapshot is the persisted subset of view state restored across sessions.
// It is stored independent of any specific header shape and applied
// defensively against whatever table is currently loaded.
type Snapshot struct {
	// PageSize is the preferred rows-per-page.
	PageSize int `json:"page_size"`
	// Visibility is the preferred column visibility sequence. Entries
	// whose index exceeds the current header length are ignored on
	// restore, never applied.
	Visibility []bool `json:"visibility"`
	// Sort is the preferred sort key, or nil.
	Sort *SortKey `json:"sort,omitempty"`
}

// KV is the durable key-value collaborator preferences persist through.
// Implementations must be origin-scoped and need no size guarantee beyond
// "small JSON blob".
type KV interface {
	// Get returns the stored value and whether the key existed.
	Get(key string) (string, bool, error)
	// Set stores the value under the key, replacing any previous value.
	Set(key, value string) error
}

// PreferenceStore persists and restores snapshots through a KV under a
// fixed namespace key. Corrupt or unreadable snapshots are treated as
// absent: preference failures are never surfaced to the caller.
type PreferenceStore struct {
	kv  KV
	key string
}

// NewPreferenceStore creates a preference store scoped to the given
// namespace (the "origin" in browser terms).
func NewPreferenceStore(kv KV, namespace string) *PreferenceStore {
	return &PreferenceStore{kv: kv, key: "tabview:prefs:" + namespace}
}

// Save persists the snapshot. A marshalling or storage failure is returned
// for observability but callers are free to ignore it; the engine itself
// always does.
func (ps *PreferenceStore) Save(snapshot Snapshot) error {
	blob, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode preference snapshot: %w", err)
	}
	if err := ps.kv.Set(ps.key, string(blob)); err != nil {
		return fmt.Errorf("failed to store preference snapshot: %w", err)
	}
	return nil
}

// Load restores the snapshot. The second result is false when no snapshot
// exists, or when the stored one is corrupt or unreadable: a bad snapshot
// downgrades to "no snapshot", never to an error.
func (ps *PreferenceStore) Load() (Snapshot, bool) {
	blob, ok, err := ps.kv.Get(ps.key)
	if err != nil || !ok {
		return Snapshot{}, false
	}
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(blob), &snapshot); err != nil {
		return Snapshot{}, false
	}
	return snapshot, true
}

// applySnapshot overlays a snapshot onto a view state defensively:
// visibility entries beyond the current header length are ignored, a sort
// column outside the header is dropped, and a non-positive page size is
// ignored.
func applySnapshot(state *ViewState, snapshot Snapshot, columns int) {
	if snapshot.PageSize > 0 {
		state.PageSize = snapshot.PageSize
	}
	for i, visible := range snapshot.Visibility {
		if i >= columns {
			break
		}
		state.Visibility[i] = visible
	}
	if snapshot.Sort != nil && snapshot.Sort.Column >= 0 && snapshot.Sort.Column < columns {
		key := *snapshot.Sort
		state.Sort = &key
	}
}

// snapshotFromState extracts the persisted subset of a view state.
func snapshotFromState(state ViewState) Snapshot {
	snapshot := Snapshot{
		PageSize:   state.PageSize,
		Visibility: append([]bool(nil), state.Visibility...),
	}
	if state.Sort != nil {
		key := *state.Sort
		snapshot.Sort = &key
	}
	return snapshot
}

// MemoryKV is an in-memory KV for tests and ephemeral sessions.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// SQLiteKV is a durable KV backed by a single-table SQLite database in the
// user's profile directory. It survives process restarts.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV opens (or creates) the preference database at path.
func NewSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize preference database: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

// Get implements KV.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference: %w", err)
	}
	return value, true, nil
}

// Set implements KV.
func (s *SQLiteKV) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write preference: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
