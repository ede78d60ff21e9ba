package tetris

import (
	"strconv"
	"sync"
)

// Preference keys written by the session.
const (
	PrefHighScore = "high_score"
	PrefMuted     = "muted"
)

// Prefs is a small key/value store for preferences that outlive a
// session. Implementations may fail; the session ignores write errors and
// keeps running on its in-memory values.
type Prefs interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemoryPrefs is a Prefs kept in process memory.
type MemoryPrefs struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryPrefs returns an empty in-memory store.
func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{values: make(map[string]string)}
}

// Get implements Prefs.
func (m *MemoryPrefs) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements Prefs.
func (m *MemoryPrefs) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func loadInt(p Prefs, key string) int {
	v, ok := p.Get(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func loadBool(p Prefs, key string) bool {
	v, ok := p.Get(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
