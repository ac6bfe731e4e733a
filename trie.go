package trie

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrSymbolOutOfRange is returned when a word holds a symbol above the
	// Trie's alphabet bound.
	ErrSymbolOutOfRange = errors.New("symbol out of alphabet range")
	// ErrInvalidEncoding is returned when a word is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8")
)

// SymbolError reports a word rejected by Insert. Offset is the byte offset of
// the offending symbol within the index key.
type SymbolError struct {
	Word   string
	Offset int
	Symbol rune
	Err    error
}

func (e *SymbolError) Error() string {
	if errors.Is(e.Err, ErrInvalidEncoding) {
		return fmt.Sprintf("trie: %q: %v at byte %d", e.Word, e.Err, e.Offset)
	}
	return fmt.Sprintf("trie: %q: %v: %U at byte %d", e.Word, e.Err, e.Symbol, e.Offset)
}

func (e *SymbolError) Unwrap() error { return e.Err }

// Trie is a prefix index over a set of words. It records the original string of
// every insertion at the node its key ends on, so inserting a word twice makes
// it come back twice from SearchByPrefix.
//
// A Trie is not safe for concurrent use. Insert mutates nodes without locking;
// callers that share a Trie must serialise writers against readers.
type Trie struct {
	root                      *node
	normalised, caseSensitive bool
	// maxSymbol bounds the alphabet when bounded is set.
	bounded   bool
	maxSymbol rune
	size      int
}

// New creates a new empty trie. By default keys are the words themselves: case
// sensitive, not normalised, over the full Unicode alphabet.
func New() *Trie {
	t := new(Trie)
	t.root = newNode()
	t.WithoutNormalisation()
	t.CaseSensitive()
	t.WithoutAlphabet()
	return t
}

// WithNormalisation makes the Trie strip diacritics from keys, so that Jurg
// finds Jürgen. Recorded words keep their accents.
func (t *Trie) WithNormalisation() *Trie {
	t.normalised = true
	return t
}

// WithoutNormalisation makes the Trie key words exactly as given.
func (t *Trie) WithoutNormalisation() *Trie {
	t.normalised = false
	return t
}

// CaseSensitive makes the Trie distinguish LOL from lol.
func (t *Trie) CaseSensitive() *Trie {
	t.caseSensitive = true
	return t
}

// CaseInsensitive makes the Trie case fold keys. Case variants of a word then
// share a terminal node and come back in the order they were inserted.
func (t *Trie) CaseInsensitive() *Trie {
	t.caseSensitive = false
	return t
}

// WithAlphabet bounds the symbols the Trie accepts to [0, max]. Insert rejects
// words holding anything above max with ErrSymbolOutOfRange.
func (t *Trie) WithAlphabet(max rune) *Trie {
	t.bounded = true
	t.maxSymbol = max
	return t
}

// WithoutAlphabet lets the Trie accept every Unicode code point.
func (t *Trie) WithoutAlphabet() *Trie {
	t.bounded = false
	t.maxSymbol = 0
	return t
}

// Len returns the number of recorded words, counting repeated insertions.
func (t *Trie) Len() int { return t.size }

// Insert adds word to the Trie. An empty word is ignored. A word that is not
// valid UTF-8, or that holds a symbol outside the alphabet, is rejected with a
// *SymbolError and leaves the Trie untouched.
func (t *Trie) Insert(word string) error {
	if len(word) == 0 {
		return nil
	}
	key, err := t.key(word)
	if err != nil {
		return err
	}
	if len(key) == 0 {
		return nil
	}
	if err := t.checkAlphabet(word, key); err != nil {
		return err
	}
	current := t.root
	for _, symbol := range key {
		if !current.hasChild(symbol) {
			current.setChild(symbol, newNode())
		}
		current, _ = current.child(symbol)
	}
	current.markTerminal()
	current.recordWord(word)
	t.size++
	return nil
}

// InsertAll inserts every word. Rejected words do not stop the rest; their
// errors are joined in the result.
func (t *Trie) InsertAll(words ...string) error {
	var errs []error
	for _, word := range words {
		if err := t.Insert(word); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Search reports whether word itself was inserted. A word that is only a prefix
// of inserted words is not found.
func (t *Trie) Search(word string) bool {
	n, ok := t.resolve(word)
	return ok && n.isTerminal()
}

// SearchByPrefix returns every recorded word whose key starts with prefix. An
// empty prefix returns every word. Words are ordered by a pre-order walk that
// visits children in ascending symbol order; words sharing a node keep their
// insertion order.
func (t *Trie) SearchByPrefix(prefix string) []string {
	results := slices.Collect(t.Walk(prefix))
	if results == nil {
		return []string{}
	}
	return results
}

// Walk yields the words SearchByPrefix would return, one at a time. The walk
// keeps its own stack, so deep tries do not grow the goroutine stack.
func (t *Trie) Walk(prefix string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start, ok := t.resolve(prefix)
		if !ok {
			return
		}
		walk(start, yield)
	}
}

// frame is a node on the walk stack with the cursor of the next child symbol to
// visit.
type frame struct {
	n       *node
	symbols []rune
	next    int
}

func walk(start *node, yield func(string) bool) {
	if !emit(start, yield) {
		return
	}
	stack := []frame{{n: start, symbols: start.symbols()}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.symbols) {
			stack = stack[:len(stack)-1]
			continue
		}
		child, _ := top.n.child(top.symbols[top.next])
		top.next++
		if !emit(child, yield) {
			return
		}
		stack = append(stack, frame{n: child, symbols: child.symbols()})
	}
}

func emit(n *node, yield func(string) bool) bool {
	if !n.isTerminal() {
		return true
	}
	for _, word := range n.recorded() {
		if !yield(word) {
			return false
		}
	}
	return true
}

// resolve walks from the root along the key of s and returns the node it ends
// on. The empty string resolves to the root.
func (t *Trie) resolve(s string) (*node, bool) {
	if !utf8.ValidString(s) {
		return nil, false
	}
	key, err := t.key(s)
	if err != nil {
		return nil, false
	}
	current := t.root
	for _, symbol := range key {
		next, ok := current.child(symbol)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// key maps a word to the symbols it is stored under, according to the Trie's
// normalisation and case settings.
func (t *Trie) key(word string) (string, error) {
	for i := 0; i < len(word); {
		r, size := utf8.DecodeRuneInString(word[i:])
		if r == utf8.RuneError && size == 1 {
			return "", &SymbolError{Word: word, Offset: i, Symbol: r, Err: ErrInvalidEncoding}
		}
		i += size
	}
	if t.normalised {
		transformer := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		normal, _, err := transform.String(transformer, word)
		if err != nil {
			return "", fmt.Errorf("trie: normalise %q: %w", word, err)
		}
		word = normal
	}
	if !t.caseSensitive {
		word = cases.Fold().String(word)
	}
	return word, nil
}

func (t *Trie) checkAlphabet(word, key string) error {
	if !t.bounded {
		return nil
	}
	for offset, symbol := range key {
		if symbol > t.maxSymbol {
			return &SymbolError{Word: word, Offset: offset, Symbol: symbol, Err: ErrSymbolOutOfRange}
		}
	}
	return nil
}
