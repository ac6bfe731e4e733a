package dictionary

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trie "github.com/sarthakjha889/slang-trie"
	"github.com/sarthakjha889/slang-trie/internal/slangfile"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestDictionary(t *testing.T, opts ...Option) *Dictionary {
	t.Helper()
	opts = append([]Option{
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(func() time.Time { return fixedTime }),
	}, opts...)
	d := New(opts...)
	d.Load([]slangfile.Entry{
		{Word: "lol", Definitions: []string{"laugh out loud", "lots of love"}},
		{Word: "lmao", Definitions: []string{"laughing my ass off"}},
		{Word: "brb", Definitions: []string{"be right back"}},
		{Word: "smh", Definitions: []string{"Shaking my head"}},
	})
	return d
}

func TestLookup(t *testing.T) {
	d := newTestDictionary(t)

	defs, ok := d.Lookup("lol")
	assert.True(t, ok)
	assert.Equal(t, []string{"laugh out loud", "lots of love"}, defs)

	_, ok = d.Lookup("rofl")
	assert.False(t, ok)

	defs[0] = "changed"
	again, _ := d.Definitions("lol")
	assert.Equal(t, "laugh out loud", again[0])

	assert.Equal(t, []HistoryEntry{
		{Kind: KindWord, Query: "lol", At: fixedTime},
		{Kind: KindWord, Query: "rofl", At: fixedTime},
	}, d.History())
}

func TestCompleteAndContains(t *testing.T) {
	d := newTestDictionary(t)

	assert.Equal(t, []string{"lmao", "lol"}, d.Complete("l"))
	assert.Equal(t, []string{"brb", "lmao", "lol", "smh"}, d.Words())
	assert.Empty(t, d.Complete("x"))
	assert.True(t, d.Contains("lol"))
	assert.False(t, d.Contains("lo"))
	assert.Empty(t, d.History())
}

func TestSearchByDefinition(t *testing.T) {
	d := newTestDictionary(t)

	assert.Equal(t, []string{"lmao", "lol"}, d.SearchByDefinition("LAUGH"))
	assert.Equal(t, []string{"smh"}, d.SearchByDefinition("shaking"))
	assert.Empty(t, d.SearchByDefinition("nothing like this"))

	history := d.History()
	require.Len(t, history, 3)
	assert.Equal(t, "Definition: LAUGH", history[0].String())
}

func TestAdd(t *testing.T) {
	t.Run("New word is indexed", func(t *testing.T) {
		d := newTestDictionary(t)
		require.NoError(t, d.Add("lit", "exciting", AddNew))
		assert.Equal(t, []string{"lit", "lmao", "lol"}, d.Complete("l"))
		assert.Equal(t, 5, d.Len())
	})

	t.Run("Existing word is refused", func(t *testing.T) {
		d := newTestDictionary(t)
		assert.ErrorIs(t, d.Add("lol", "x", AddNew), ErrExists)
	})

	t.Run("Overwrite", func(t *testing.T) {
		d := newTestDictionary(t)
		require.NoError(t, d.Add("lol", "league of legends", AddOverwrite))
		defs, _ := d.Definitions("lol")
		assert.Equal(t, []string{"league of legends"}, defs)
		assert.Equal(t, []string{"lmao", "lol"}, d.Complete("l"))
	})

	t.Run("Duplicate", func(t *testing.T) {
		d := newTestDictionary(t)
		require.NoError(t, d.Add("lol", "league of legends", AddDuplicate))
		defs, _ := d.Definitions("lol")
		assert.Equal(t, []string{"laugh out loud", "lots of love", "league of legends"}, defs)
	})

	t.Run("Empty input", func(t *testing.T) {
		d := newTestDictionary(t)
		assert.ErrorIs(t, d.Add("", "x", AddNew), ErrInvalid)
		assert.ErrorIs(t, d.Add("x", "", AddNew), ErrInvalid)
	})

	t.Run("Parse mode", func(t *testing.T) {
		mode, err := ParseAddMode("Duplicate")
		require.NoError(t, err)
		assert.Equal(t, AddDuplicate, mode)
		mode, err = ParseAddMode("")
		require.NoError(t, err)
		assert.Equal(t, AddNew, mode)
		_, err = ParseAddMode("merge")
		assert.Error(t, err)
	})
}

func TestEditDefinitions(t *testing.T) {
	d := newTestDictionary(t)

	require.NoError(t, d.AddDefinition("brb", "bathroom break"))
	require.NoError(t, d.EditDefinition("brb", 1, "bio break"))
	defs, _ := d.Definitions("brb")
	assert.Equal(t, []string{"be right back", "bio break"}, defs)

	assert.ErrorIs(t, d.AddDefinition("rofl", "x"), ErrNotFound)
	assert.ErrorIs(t, d.EditDefinition("rofl", 0, "x"), ErrNotFound)
	assert.ErrorIs(t, d.EditDefinition("brb", 2, "x"), ErrIndexOutOfRange)
	assert.ErrorIs(t, d.EditDefinition("brb", -1, "x"), ErrIndexOutOfRange)
}

func TestRenameAndDeleteRebuildIndex(t *testing.T) {
	d := newTestDictionary(t)

	require.NoError(t, d.Rename("lol", "lul"))
	assert.False(t, d.Contains("lol"))
	assert.True(t, d.Contains("lul"))
	assert.Equal(t, []string{"lmao", "lul"}, d.Complete("l"))
	defs, ok := d.Definitions("lul")
	assert.True(t, ok)
	assert.Equal(t, []string{"laugh out loud", "lots of love"}, defs)

	assert.ErrorIs(t, d.Rename("lol", "x"), ErrNotFound)
	assert.ErrorIs(t, d.Rename("lul", "brb"), ErrExists)
	assert.NoError(t, d.Rename("brb", "brb"))

	require.NoError(t, d.Delete("lmao"))
	assert.Equal(t, []string{"lul"}, d.Complete("l"))
	assert.ErrorIs(t, d.Delete("lmao"), ErrNotFound)
}

func TestReset(t *testing.T) {
	d := newTestDictionary(t)
	require.NoError(t, d.Delete("lol"))
	require.NoError(t, d.Add("yeet", "throw", AddNew))
	require.NoError(t, d.EditDefinition("brb", 0, "changed"))

	d.Reset()
	assert.Equal(t, []string{"brb", "lmao", "lol", "smh"}, d.Words())
	defs, _ := d.Definitions("brb")
	assert.Equal(t, []string{"be right back"}, defs)
}

func TestRandom(t *testing.T) {
	d := newTestDictionary(t)
	word, defs, err := d.Random()
	require.NoError(t, err)
	expected, ok := d.Definitions(word)
	require.True(t, ok)
	assert.Equal(t, expected, defs)

	empty := New()
	_, _, err = empty.Random()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestHistory(t *testing.T) {
	d := newTestDictionary(t, WithHistoryLimit(2))
	d.Lookup("a")
	d.Lookup("b")
	d.SearchByDefinition("c")

	history := d.History()
	require.Len(t, history, 2)
	assert.Equal(t, "Slang word: b", history[0].String())
	assert.Equal(t, "Definition: c", history[1].String())

	d.ClearHistory()
	assert.Empty(t, d.History())
}

func TestCaseInsensitiveIndex(t *testing.T) {
	d := newTestDictionary(t, WithIndex(func() *trie.Trie { return trie.New().CaseInsensitive() }))
	require.NoError(t, d.Add("LOL", "shouting", AddNew))
	assert.Equal(t, []string{"lol", "LOL"}, d.Complete("LO"))
	assert.True(t, d.Contains("Lol"))
}

func TestSnapshotRestore(t *testing.T) {
	d := newTestDictionary(t)
	require.NoError(t, d.Delete("smh"))
	d.Lookup("lol")

	snap := d.Snapshot()
	assert.Len(t, snap.Entries, 3)
	assert.Len(t, snap.Original, 4)
	require.Len(t, snap.History, 1)

	restored := New()
	restored.Restore(snap)
	assert.Equal(t, []string{"brb", "lmao", "lol"}, restored.Words())
	assert.Equal(t, snap.History, restored.History())
	restored.Reset()
	assert.Equal(t, 4, restored.Len())

	noOriginal := New()
	noOriginal.Restore(&Snapshot{Entries: map[string][]string{"afk": {"away"}}})
	noOriginal.Reset()
	assert.Equal(t, []string{"afk"}, noOriginal.Words())
}

func TestEntries(t *testing.T) {
	d := newTestDictionary(t)
	entries := d.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, slangfile.Entry{Word: "brb", Definitions: []string{"be right back"}}, entries[0])
}

func TestConcurrentAccess(t *testing.T) {
	d := newTestDictionary(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if i%2 == 0 {
					_ = d.Add("w"+string(rune('a'+j%26)), "x", AddDuplicate)
					_ = d.Delete("w" + string(rune('a'+(j+1)%26)))
				} else {
					d.Complete("w")
					d.Contains("lol")
					d.Lookup("lol")
				}
			}
		}(i)
	}
	wg.Wait()
	assert.True(t, d.Contains("lol"))
}
