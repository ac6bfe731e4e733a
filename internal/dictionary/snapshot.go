package dictionary

import "slices"

// Snapshot is the persistent state of a Dictionary.
type Snapshot struct {
	Entries  map[string][]string `yaml:"entries"`
	Original map[string][]string `yaml:"original"`
	History  []HistoryEntry      `yaml:"history,omitempty"`
}

// Snapshot returns a copy of the dictionary state.
func (d *Dictionary) Snapshot() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return &Snapshot{
		Entries:  cloneEntries(d.entries),
		Original: cloneEntries(d.original),
		History:  slices.Clone(d.history),
	}
}

// Restore replaces the dictionary state with s and rebuilds the index. A
// snapshot without an original set uses its entries as the original.
func (d *Dictionary) Restore(s *Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = cloneEntries(s.Entries)
	if s.Original != nil {
		d.original = cloneEntries(s.Original)
	} else {
		d.original = cloneEntries(s.Entries)
	}
	d.history = slices.Clone(s.History)
	d.rebuildIndex()
}
