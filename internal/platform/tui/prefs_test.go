package tui

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/storage"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

func TestNewPrefsWithoutStore(t *testing.T) {
	p := NewPrefs(nil, "ann", nil)
	_, ok := p.(*tetris.MemoryPrefs)
	assert.True(t, ok)
}

func TestPrefsPersistPerPlayer(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	defer store.Close()

	ann := NewPrefs(store, "ann", nil)
	require.NoError(t, ann.Set(tetris.PrefHighScore, "1200"))

	again := NewPrefs(store, "ann", nil)
	v, ok := again.Get(tetris.PrefHighScore)
	require.True(t, ok)
	assert.Equal(t, "1200", v)

	_, ok = NewPrefs(store, "bob", nil).Get(tetris.PrefHighScore)
	assert.False(t, ok)
}

func TestPrefsFallBackToMemory(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)

	var buf bytes.Buffer
	p := NewPrefs(store, "ann", log.New(&buf))
	require.NoError(t, store.Close())

	assert.NoError(t, p.Set(tetris.PrefMuted, "true"))
	assert.NoError(t, p.Set(tetris.PrefHighScore, "50"))

	v, ok := p.Get(tetris.PrefMuted)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	_, ok = p.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("preferences unavailable")), "failure is logged once")
}
