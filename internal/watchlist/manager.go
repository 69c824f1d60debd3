package watchlist

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"StockAnalyzer/internal/model"
)

// Manager handles the tracked-symbol set with concurrency safety. State is
// written through to disk on every mutation.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchlistState
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
// Seed symbols are applied only when no state file exists yet, so removals
// survive restarts.
func NewManager(filePath string, seed []string) (*Manager, error) {
	_, statErr := os.Stat(filePath)
	fresh := os.IsNotExist(statErr)

	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}

	m := &Manager{state: state, filePath: filePath}
	if fresh && len(seed) > 0 {
		now := time.Now()
		for _, s := range seed {
			if s = normalize(s); s != "" && !m.contains(s) {
				m.state.Entries = append(m.state.Entries, model.WatchlistEntry{Symbol: s, AddedAt: now})
			}
		}
	}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (m *Manager) contains(symbol string) bool {
	for _, e := range m.state.Entries {
		if e.Symbol == symbol {
			return true
		}
	}
	return false
}

// Add tracks a new symbol. Adding an already-tracked symbol is a no-op and
// reports false.
func (m *Manager) Add(symbol string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbol = normalize(symbol)
	if symbol == "" || m.contains(symbol) {
		return false, nil
	}
	m.state.Entries = append(m.state.Entries, model.WatchlistEntry{Symbol: symbol, AddedAt: time.Now()})
	return true, m.save()
}

// Remove stops tracking a symbol and reports whether it was tracked.
func (m *Manager) Remove(symbol string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbol = normalize(symbol)
	for i, e := range m.state.Entries {
		if e.Symbol == symbol {
			m.state.Entries = append(m.state.Entries[:i], m.state.Entries[i+1:]...)
			return true, m.save()
		}
	}
	return false, nil
}

// Symbols returns the tracked symbols in insertion order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbols := make([]string, len(m.state.Entries))
	for i, e := range m.state.Entries {
		symbols[i] = e.Symbol
	}
	return symbols
}

// Entries returns a copy of the tracked entries.
func (m *Manager) Entries() []model.WatchlistEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.WatchlistEntry(nil), m.state.Entries...)
}

// MarkAnalyzed stamps a symbol's last successful analysis time.
func (m *Manager) MarkAnalyzed(symbol string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbol = normalize(symbol)
	for i := range m.state.Entries {
		if m.state.Entries[i].Symbol == symbol {
			m.state.Entries[i].LastAnalyzedAt = at
			if err := m.save(); err != nil {
				log.Printf("[ERROR] failed to save watchlist: %v", err)
			}
			return
		}
	}
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
