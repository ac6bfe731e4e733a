package dictionary

import (
	"slices"
	"time"
)

// Kind tells what a recorded search looked for.
type Kind string

const (
	KindWord       Kind = "word"
	KindDefinition Kind = "definition"
)

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	Kind  Kind      `yaml:"kind" json:"kind"`
	Query string    `yaml:"query" json:"query"`
	At    time.Time `yaml:"at" json:"at"`
}

func (h HistoryEntry) String() string {
	switch h.Kind {
	case KindDefinition:
		return "Definition: " + h.Query
	default:
		return "Slang word: " + h.Query
	}
}

// History returns the recorded searches, oldest first.
func (d *Dictionary) History() []HistoryEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.history)
}

// ClearHistory forgets every recorded search.
func (d *Dictionary) ClearHistory() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = nil
}

// record appends a search to the history. Callers hold the write lock.
func (d *Dictionary) record(kind Kind, query string) {
	d.history = append(d.history, HistoryEntry{Kind: kind, Query: query, At: d.now()})
	if d.historyLimit > 0 && len(d.history) > d.historyLimit {
		d.history = slices.Clone(d.history[len(d.history)-d.historyLimit:])
	}
}
