package watchlist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AddRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")

	m, err := NewManager(path, nil)
	require.NoError(t, err)

	added, err := m.Add("aapl")
	require.NoError(t, err)
	assert.True(t, added)

	// Duplicate adds are no-ops, case-insensitively.
	added, err = m.Add("AAPL")
	require.NoError(t, err)
	assert.False(t, added)

	_, err = m.Add("MSFT")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, m.Symbols())

	removed, err := m.Remove("aapl")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = m.Remove("TSLA")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, []string{"MSFT"}, m.Symbols())
}

func TestManager_PersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")

	m, err := NewManager(path, []string{"AAPL", "MSFT"})
	require.NoError(t, err)

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m.MarkAnalyzed("AAPL", at)

	reloaded, err := NewManager(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, reloaded.Symbols())

	entries := reloaded.Entries()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].LastAnalyzedAt.Equal(at))
	assert.True(t, entries[1].LastAnalyzedAt.IsZero())
}

func TestManager_SeedOnlyWhenFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")

	m, err := NewManager(path, []string{"AAPL"})
	require.NoError(t, err)
	_, err = m.Remove("AAPL")
	require.NoError(t, err)

	// Seed must not resurrect removed symbols on restart.
	reloaded, err := NewManager(path, []string{"AAPL"})
	require.NoError(t, err)
	assert.Empty(t, reloaded.Symbols())
}
