package tui

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/storage"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// fallbackPrefs keeps every value in memory and mirrors writes to the
// database. Storage failures are logged once and the session carries on
// with the in-memory copy.
type fallbackPrefs struct {
	mu     sync.Mutex
	mem    *tetris.MemoryPrefs
	db     *storage.Prefs
	logger *log.Logger
	failed bool
}

// NewPrefs returns the preference store for a player. A nil store gives
// in-memory preferences that last for the process.
func NewPrefs(store *storage.Store, player string, logger *log.Logger) tetris.Prefs {
	if store == nil {
		return tetris.NewMemoryPrefs()
	}
	if logger == nil {
		logger = log.Default()
	}
	p := &fallbackPrefs{
		mem:    tetris.NewMemoryPrefs(),
		db:     store.Prefs(player),
		logger: logger,
	}
	p.db.OnError = p.report
	return p
}

func (p *fallbackPrefs) report(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failed {
		return
	}
	p.failed = true
	p.logger.Warn("preferences unavailable, keeping them in memory", "error", err)
}

func (p *fallbackPrefs) Get(key string) (string, bool) {
	if v, ok := p.mem.Get(key); ok {
		return v, true
	}
	v, ok := p.db.Get(key)
	if ok {
		//nolint:errcheck // memory store never fails
		p.mem.Set(key, v)
	}
	return v, ok
}

func (p *fallbackPrefs) Set(key, value string) error {
	//nolint:errcheck // memory store never fails
	p.mem.Set(key, value)
	if err := p.db.Set(key, value); err != nil {
		p.report(err)
	}
	return nil
}
