package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Storage keys, one JSON document per collection.
const (
	keySessions     = "sessions"
	keyTasks        = "tasks"
	keyRoutines     = "routines"
	keyCompletions  = "routine_completions"
	keySettings     = "settings"
	keyRecentTopics = "recent_topics"
)

// Store owns the six entity collections. All reads hand out copies;
// callers persist changes by calling the matching save method.
type Store struct {
	kv  KV
	now func() time.Time
}

// New opens (or creates) the store at dbPath.
func New(dbPath string) (*Store, error) {
	kv, err := openKV(dbPath)
	if err != nil {
		return nil, err
	}
	return NewWithKV(kv), nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// NewWithKV wraps an existing backend, letting tests substitute a fake.
func NewWithKV(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

func (s *Store) Close() error {
	return s.kv.Close()
}

// readJSON returns the document at key, or def when the key is missing.
// A value that fails to parse also yields def: one corrupt key must not
// take the whole application down.
func readJSON[T any](s *Store, key string, def T) (T, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return def, err
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def, nil
	}
	return v, nil
}

func writeJSON(s *Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.kv.Set(key, string(data))
}
