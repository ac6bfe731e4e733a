package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	trie "github.com/sarthakjha889/slang-trie"
	"github.com/sarthakjha889/slang-trie/internal/config"
	"github.com/sarthakjha889/slang-trie/internal/dictionary"
	"github.com/sarthakjha889/slang-trie/internal/logger"
	"github.com/sarthakjha889/slang-trie/internal/quiz"
	"github.com/sarthakjha889/slang-trie/internal/slangfile"
	"github.com/sarthakjha889/slang-trie/internal/store"
)

type app struct {
	cfg   *config.Config
	dict  *dictionary.Dictionary
	store *store.FileStore
	quiz  *quiz.Generator
	in    io.Reader
	out   io.Writer
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Log)
	return openApp(cfg, os.Stdin, os.Stdout)
}

// openApp builds the dictionary from the saved snapshot, or from the slang
// list on first run.
func openApp(cfg *config.Config, in io.Reader, out io.Writer) (*app, error) {
	seed := uint64(time.Now().UnixNano())
	dict := dictionary.New(
		dictionary.WithRand(rand.New(rand.NewPCG(seed, seed>>1))),
		dictionary.WithHistoryLimit(cfg.History.Limit),
		dictionary.WithIndex(indexFactory(cfg.Index)),
	)
	a := &app{
		cfg:   cfg,
		dict:  dict,
		store: store.NewFileStore(cfg.Data.Snapshot),
		quiz:  quiz.NewGenerator(dict, rand.New(rand.NewPCG(seed+1, seed)), cfg.Quiz.Options),
		in:    in,
		out:   out,
	}

	snap, err := a.store.Load()
	switch {
	case err == nil:
		dict.Restore(snap)
		log.Info().Str("snapshot", a.store.Path()).Int("words", dict.Len()).Msg("Dictionary restored")
		return a, nil
	case !errors.Is(err, store.ErrNoSnapshot):
		return nil, err
	}

	log.Info().Str("source", cfg.Data.Source).Msg("No snapshot yet, loading slang list")
	res, err := slangfile.ReadFile(cfg.Data.Source)
	if err != nil {
		return nil, err
	}
	if res.Duplicates > 0 {
		log.Info().Int("duplicates", res.Duplicates).Msg("Merged duplicate slang words")
	}
	dict.Load(res.Entries)
	if err := a.save(); err != nil {
		return nil, err
	}
	return a, nil
}

func indexFactory(cfg config.IndexConfig) func() *trie.Trie {
	return func() *trie.Trie {
		t := trie.New()
		if cfg.MaxSymbol > 0 {
			t.WithAlphabet(cfg.MaxSymbol)
		}
		if cfg.CaseInsensitive {
			t.CaseInsensitive()
		}
		if cfg.Normalise {
			t.WithNormalisation()
		}
		return t
	}
}

func (a *app) save() error {
	if err := a.store.Save(a.dict.Snapshot()); err != nil {
		return fmt.Errorf("save dictionary: %w", err)
	}
	return nil
}
