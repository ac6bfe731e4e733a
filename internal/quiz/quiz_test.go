package quiz

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarthakjha889/slang-trie/internal/dictionary"
	"github.com/sarthakjha889/slang-trie/internal/slangfile"
)

func newSource(t *testing.T, entries ...slangfile.Entry) *dictionary.Dictionary {
	t.Helper()
	d := dictionary.New(dictionary.WithRand(rand.New(rand.NewPCG(3, 4))))
	d.Load(entries)
	return d
}

var entries = []slangfile.Entry{
	{Word: "lol", Definitions: []string{"laugh out loud", "lots of love"}},
	{Word: "lmao", Definitions: []string{"laughing my ass off"}},
	{Word: "brb", Definitions: []string{"be right back"}},
	{Word: "smh", Definitions: []string{"shaking my head"}},
	{Word: "afk", Definitions: []string{"away from keyboard"}},
}

func TestGuessDefinition(t *testing.T) {
	src := newSource(t, entries...)
	g := NewGenerator(src, rand.New(rand.NewPCG(5, 6)), 4)

	for i := 0; i < 20; i++ {
		q, err := g.GuessDefinition()
		require.NoError(t, err)
		assert.Equal(t, GuessDefinition, q.Kind)
		assert.Len(t, q.Options, 4)

		defs, ok := src.Definitions(q.Prompt)
		require.True(t, ok)
		assert.Equal(t, defs[0], q.Correct())
		assert.True(t, q.Check(q.Answer))
		assert.False(t, q.Check((q.Answer+1)%len(q.Options)))
		assertDistinct(t, q.Options)
	}
}

func TestGuessWord(t *testing.T) {
	src := newSource(t, entries...)
	g := NewGenerator(src, rand.New(rand.NewPCG(7, 8)), 3)

	for i := 0; i < 20; i++ {
		q, err := g.Next(GuessWord)
		require.NoError(t, err)
		assert.Equal(t, GuessWord, q.Kind)
		assert.Len(t, q.Options, 3)

		defs, ok := src.Definitions(q.Correct())
		require.True(t, ok)
		assert.Equal(t, defs[0], q.Prompt)
		assertDistinct(t, q.Options)
	}
}

func TestSmallDictionaries(t *testing.T) {
	t.Run("Options shrink", func(t *testing.T) {
		src := newSource(t, entries[:2]...)
		q, err := NewGenerator(src, rand.New(rand.NewPCG(1, 1)), 4).GuessWord()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"lol", "lmao"}, q.Options)
	})

	t.Run("Single word", func(t *testing.T) {
		src := newSource(t, entries[0])
		_, err := NewGenerator(src, rand.New(rand.NewPCG(1, 1)), 4).GuessDefinition()
		assert.ErrorIs(t, err, ErrNotEnoughWords)
	})

	t.Run("Shared definitions", func(t *testing.T) {
		src := newSource(t,
			slangfile.Entry{Word: "gg", Definitions: []string{"good game"}},
			slangfile.Entry{Word: "GG", Definitions: []string{"good game"}},
		)
		_, err := NewGenerator(src, rand.New(rand.NewPCG(1, 1)), 4).GuessDefinition()
		assert.ErrorIs(t, err, ErrNotEnoughWords)

		_, err = NewGenerator(src, rand.New(rand.NewPCG(1, 1)), 4).GuessWord()
		assert.ErrorIs(t, err, ErrNotEnoughWords)
	})

	t.Run("Words sharing the prompt are not offered", func(t *testing.T) {
		src := newSource(t,
			slangfile.Entry{Word: "gg", Definitions: []string{"good game"}},
			slangfile.Entry{Word: "GG", Definitions: []string{"good game"}},
			slangfile.Entry{Word: "brb", Definitions: []string{"be right back"}},
		)
		g := NewGenerator(src, rand.New(rand.NewPCG(2, 3)), 4)
		for i := 0; i < 20; i++ {
			q, err := g.GuessWord()
			require.NoError(t, err)
			if q.Prompt == "good game" {
				assert.Len(t, q.Options, 2)
				assert.Contains(t, q.Options, "brb")
			} else {
				assert.ElementsMatch(t, []string{"brb", "GG", "gg"}, q.Options)
			}
		}
	})

	t.Run("Empty", func(t *testing.T) {
		src := newSource(t)
		_, err := NewGenerator(src, rand.New(rand.NewPCG(1, 1)), 4).GuessWord()
		assert.ErrorIs(t, err, dictionary.ErrEmpty)
	})
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("word")
	require.NoError(t, err)
	assert.Equal(t, GuessWord, k)
	_, err = ParseKind("riddle")
	assert.Error(t, err)
	_, err = NewGenerator(newSource(t, entries...), rand.New(rand.NewPCG(1, 1)), 0).Next("riddle")
	assert.Error(t, err)
}

func assertDistinct(t *testing.T, options []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, o := range options {
		assert.False(t, seen[o], "duplicate option %q", o)
		seen[o] = true
	}
}
