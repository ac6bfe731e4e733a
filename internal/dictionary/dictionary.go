// Package dictionary keeps the word → definitions mapping of a slang
// dictionary together with its search history and a trie index of its words.
//
// The trie has no removal operation, so every change that drops or renames a
// word rebuilds the index from the current word set. All access goes through
// the Dictionary's lock; the index is never shared.
package dictionary

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"

	trie "github.com/sarthakjha889/slang-trie"
	"github.com/sarthakjha889/slang-trie/internal/slangfile"
)

var (
	ErrNotFound        = errors.New("word not found")
	ErrExists          = errors.New("word already exists")
	ErrInvalid         = errors.New("word and definition must not be empty")
	ErrIndexOutOfRange = errors.New("definition index out of range")
	ErrEmpty           = errors.New("dictionary is empty")
)

// AddMode decides what Add does with a word that is already present.
type AddMode int

const (
	// AddNew refuses existing words.
	AddNew AddMode = iota
	// AddOverwrite replaces the definitions of an existing word.
	AddOverwrite
	// AddDuplicate appends the definition to an existing word.
	AddDuplicate
)

// ParseAddMode maps "new", "overwrite" and "duplicate" to an AddMode. The empty
// string is AddNew.
func ParseAddMode(s string) (AddMode, error) {
	switch strings.ToLower(s) {
	case "", "new":
		return AddNew, nil
	case "overwrite":
		return AddOverwrite, nil
	case "duplicate":
		return AddDuplicate, nil
	}
	return AddNew, fmt.Errorf("unknown add mode %q", s)
}

// Dictionary is safe for concurrent use.
type Dictionary struct {
	mu       sync.RWMutex
	entries  map[string][]string
	original map[string][]string
	history  []HistoryEntry
	index    *trie.Trie

	newIndex     func() *trie.Trie
	rand         *rand.Rand
	now          func() time.Time
	historyLimit int
}

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithRand sets the source used by Random.
func WithRand(r *rand.Rand) Option {
	return func(d *Dictionary) { d.rand = r }
}

// WithClock sets the clock used to stamp history entries.
func WithClock(now func() time.Time) Option {
	return func(d *Dictionary) { d.now = now }
}

// WithHistoryLimit keeps at most limit history entries, dropping the oldest.
// Zero keeps everything.
func WithHistoryLimit(limit int) Option {
	return func(d *Dictionary) { d.historyLimit = limit }
}

// WithIndex sets the constructor used for every index rebuild, for example to
// make completion case insensitive.
func WithIndex(newIndex func() *trie.Trie) Option {
	return func(d *Dictionary) { d.newIndex = newIndex }
}

// New creates an empty dictionary.
func New(opts ...Option) *Dictionary {
	d := &Dictionary{
		entries:  make(map[string][]string),
		original: make(map[string][]string),
		newIndex: trie.New,
		rand:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.index = d.newIndex()
	return d
}

// Load replaces both the current and the original word sets with entries.
func (d *Dictionary) Load(entries []slangfile.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = make(map[string][]string, len(entries))
	for _, e := range entries {
		d.entries[e.Word] = slices.Clone(e.Definitions)
	}
	d.original = cloneEntries(d.entries)
	d.rebuildIndex()
	log.Info().Int("words", len(d.entries)).Msg("Dictionary loaded")
}

// Lookup returns the definitions of word and records the search.
func (d *Dictionary) Lookup(word string) ([]string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record(KindWord, word)
	defs, ok := d.entries[word]
	return slices.Clone(defs), ok
}

// Definitions returns the definitions of word without recording a search.
func (d *Dictionary) Definitions(word string) ([]string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	defs, ok := d.entries[word]
	return slices.Clone(defs), ok
}

// Contains reports whether the index holds word.
func (d *Dictionary) Contains(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.Search(word)
}

// Complete returns the words starting with prefix in index order. An empty
// prefix returns every word.
func (d *Dictionary) Complete(prefix string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.SearchByPrefix(prefix)
}

// Words returns every word in index order.
func (d *Dictionary) Words() []string {
	return d.Complete("")
}

// SearchByDefinition returns the sorted words having a definition that
// contains keyword, ignoring case. The search is recorded.
func (d *Dictionary) SearchByDefinition(keyword string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.record(KindDefinition, keyword)
	folder := cases.Fold()
	needle := folder.String(keyword)
	words := []string{}
	for word, defs := range d.entries {
		for _, def := range defs {
			if strings.Contains(folder.String(def), needle) {
				words = append(words, word)
				break
			}
		}
	}
	slices.Sort(words)
	return words
}

// Add adds word with a single definition. What happens to an existing word
// depends on mode.
func (d *Dictionary) Add(word, definition string, mode AddMode) error {
	if word == "" || definition == "" {
		return ErrInvalid
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	defs, exists := d.entries[word]
	switch {
	case !exists:
		d.entries[word] = []string{definition}
		if err := d.index.Insert(word); err != nil {
			log.Warn().Err(err).Str("word", word).Msg("Word left out of index")
		}
	case mode == AddOverwrite:
		d.entries[word] = []string{definition}
	case mode == AddDuplicate:
		d.entries[word] = append(defs, definition)
	default:
		return fmt.Errorf("%w: %q", ErrExists, word)
	}
	return nil
}

// AddDefinition appends definition to an existing word.
func (d *Dictionary) AddDefinition(word, definition string) error {
	if definition == "" {
		return ErrInvalid
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	defs, ok := d.entries[word]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, word)
	}
	d.entries[word] = append(defs, definition)
	return nil
}

// EditDefinition replaces the definition at index, counting from zero.
func (d *Dictionary) EditDefinition(word string, index int, definition string) error {
	if definition == "" {
		return ErrInvalid
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	defs, ok := d.entries[word]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, word)
	}
	if index < 0 || index >= len(defs) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(defs))
	}
	defs[index] = definition
	return nil
}

// Rename moves the definitions of word to newWord.
func (d *Dictionary) Rename(word, newWord string) error {
	if newWord == "" {
		return ErrInvalid
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	defs, ok := d.entries[word]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, word)
	}
	if word == newWord {
		return nil
	}
	if _, taken := d.entries[newWord]; taken {
		return fmt.Errorf("%w: %q", ErrExists, newWord)
	}
	delete(d.entries, word)
	d.entries[newWord] = defs
	d.rebuildIndex()
	return nil
}

// Delete removes word.
func (d *Dictionary) Delete(word string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.entries[word]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, word)
	}
	delete(d.entries, word)
	d.rebuildIndex()
	return nil
}

// Reset restores the word set loaded last.
func (d *Dictionary) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = cloneEntries(d.original)
	d.rebuildIndex()
	log.Info().Int("words", len(d.entries)).Msg("Dictionary reset to original")
}

// Random returns a random word and its definitions.
func (d *Dictionary) Random() (string, []string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.entries) == 0 {
		return "", nil, ErrEmpty
	}
	words := slices.Sorted(maps.Keys(d.entries))
	word := words[d.rand.IntN(len(words))]
	return word, slices.Clone(d.entries[word]), nil
}

// Entries returns every word with its definitions, sorted by word.
func (d *Dictionary) Entries() []slangfile.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entries := make([]slangfile.Entry, 0, len(d.entries))
	for _, word := range slices.Sorted(maps.Keys(d.entries)) {
		entries = append(entries, slangfile.Entry{Word: word, Definitions: slices.Clone(d.entries[word])})
	}
	return entries
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// rebuildIndex replaces the index with one built from the current words.
// Callers hold the write lock.
func (d *Dictionary) rebuildIndex() {
	index := d.newIndex()
	for _, word := range slices.Sorted(maps.Keys(d.entries)) {
		if err := index.Insert(word); err != nil {
			log.Warn().Err(err).Str("word", word).Msg("Word left out of index")
		}
	}
	d.index = index
	log.Debug().Int("words", index.Len()).Msg("Rebuilt word index")
}

func cloneEntries(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for word, defs := range src {
		dst[word] = slices.Clone(defs)
	}
	return dst
}
