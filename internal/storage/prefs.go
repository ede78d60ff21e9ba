package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetPref returns the stored value for key.
func (s *Store) GetPref(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read pref %q: %w", key, err)
	}
	return value, true, nil
}

// SetPref inserts or replaces the value for key.
func (s *Store) SetPref(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write pref %q: %w", key, err)
	}
	return nil
}

// Prefs is a view of the prefs table scoped to one namespace, e.g. a
// player name, so SSH users keep separate high scores and mute flags. It
// satisfies the engine's preference store interface.
type Prefs struct {
	store     *Store
	namespace string

	// OnError, when set, receives read failures, which Get otherwise
	// reports as a missing key.
	OnError func(error)
}

// Prefs returns the namespaced preference view.
func (s *Store) Prefs(namespace string) *Prefs {
	return &Prefs{store: s, namespace: namespace}
}

func (p *Prefs) key(k string) string {
	if p.namespace == "" {
		return k
	}
	return p.namespace + "/" + k
}

// Get returns the value for key in this namespace.
func (p *Prefs) Get(key string) (string, bool) {
	v, ok, err := p.store.GetPref(p.key(key))
	if err != nil {
		if p.OnError != nil {
			p.OnError(err)
		}
		return "", false
	}
	return v, ok
}

// Set stores the value for key in this namespace.
func (p *Prefs) Set(key, value string) error {
	return p.store.SetPref(p.key(key), value)
}
