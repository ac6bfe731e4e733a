// Package quiz builds multiple choice questions from a dictionary.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// DefaultOptions is the number of choices a question offers when the
// dictionary is large enough.
const DefaultOptions = 4

// ErrNotEnoughWords is returned when fewer than two distinct choices can be
// offered.
var ErrNotEnoughWords = errors.New("not enough words for a quiz")

// Source is what questions are drawn from.
type Source interface {
	Random() (string, []string, error)
	Words() []string
	Definitions(word string) ([]string, bool)
}

// Kind is the type of a question.
type Kind string

const (
	// GuessDefinition shows a word and asks for its definition.
	GuessDefinition Kind = "definition"
	// GuessWord shows a definition and asks for its word.
	GuessWord Kind = "word"
)

// ParseKind validates a question kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case GuessDefinition, GuessWord:
		return k, nil
	}
	return "", fmt.Errorf("unknown quiz kind %q", s)
}

// Question is a multiple choice question. Answer indexes Options.
type Question struct {
	Kind    Kind     `json:"kind"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// Check reports whether choice, an index into Options, is the answer.
func (q *Question) Check(choice int) bool {
	return choice == q.Answer
}

// Correct returns the text of the right option.
func (q *Question) Correct() string {
	return q.Options[q.Answer]
}

// Generator draws questions from a Source. It is not safe for concurrent use.
type Generator struct {
	src     Source
	rand    *rand.Rand
	options int
}

// NewGenerator returns a Generator offering up to options choices per
// question. Values below two fall back to DefaultOptions.
func NewGenerator(src Source, r *rand.Rand, options int) *Generator {
	if options < 2 {
		options = DefaultOptions
	}
	return &Generator{src: src, rand: r, options: options}
}

// Next returns a question of the given kind.
func (g *Generator) Next(kind Kind) (*Question, error) {
	switch kind {
	case GuessDefinition:
		return g.GuessDefinition()
	case GuessWord:
		return g.GuessWord()
	}
	return nil, fmt.Errorf("unknown quiz kind %q", kind)
}

// GuessDefinition picks a random word; the choices are its first definition
// and the first definitions of other words.
func (g *Generator) GuessDefinition() (*Question, error) {
	word, defs, err := g.src.Random()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: %q has no definitions", ErrNotEnoughWords, word)
	}
	correct := defs[0]
	var candidates []string
	for _, other := range g.src.Words() {
		if other == word {
			continue
		}
		if otherDefs, ok := g.src.Definitions(other); ok && len(otherDefs) > 0 {
			candidates = append(candidates, otherDefs[0])
		}
	}
	return g.build(GuessDefinition, word, correct, candidates)
}

// GuessWord picks a random word and shows its first definition; the choices
// are that word and other words. Words sharing the shown definition are left
// out, so only one choice is right.
func (g *Generator) GuessWord() (*Question, error) {
	word, defs, err := g.src.Random()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: %q has no definitions", ErrNotEnoughWords, word)
	}
	var candidates []string
	for _, other := range g.src.Words() {
		if other == word {
			continue
		}
		if otherDefs, ok := g.src.Definitions(other); ok && len(otherDefs) > 0 && otherDefs[0] == defs[0] {
			continue
		}
		candidates = append(candidates, other)
	}
	return g.build(GuessWord, defs[0], word, candidates)
}

func (g *Generator) build(kind Kind, prompt, correct string, candidates []string) (*Question, error) {
	g.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	options := []string{correct}
	for _, c := range candidates {
		if len(options) == g.options {
			break
		}
		if !slices.Contains(options, c) {
			options = append(options, c)
		}
	}
	if len(options) < 2 {
		return nil, ErrNotEnoughWords
	}
	g.rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return &Question{
		Kind:    kind,
		Prompt:  prompt,
		Options: options,
		Answer:  slices.Index(options, correct),
	}, nil
}
