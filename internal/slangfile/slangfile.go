// Package slangfile reads and writes the flat slang list format: one entry per
// line, the word and its definitions separated by a backtick, definitions
// separated by pipes.
//
//	Slag`Meaning
//	lol`laugh out loud| lots of love
package slangfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	wordSeparator       = "`"
	definitionSeparator = "|"
	headerMarker        = "Slag"
	header              = "Slag`Meaning"
	maxLineSize         = 1 << 20
)

// Entry is a word and its definitions.
type Entry struct {
	Word        string
	Definitions []string
}

// Result is the outcome of parsing a slang list. Entries keep the order in
// which words first appear.
type Result struct {
	Entries []Entry
	// Duplicates counts lines whose word had already been seen; their
	// definitions were merged into the first entry.
	Duplicates int
}

// ReadFile reads and parses the slang list at path, decoding it to UTF-8
// first.
func ReadFile(path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slang file: %w", err)
	}
	text, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Parse(strings.NewReader(text))
}

// Parse reads a slang list from r. Blank lines, lines without a backtick and a
// leading header line are skipped. A word listed more than once gets the
// definitions it did not have yet appended.
func Parse(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	res := &Result{}
	positions := make(map[string]int)
	first := true
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if first {
			first = false
			if strings.Contains(line, headerMarker) {
				continue
			}
		}

		word, rest, ok := strings.Cut(line, wordSeparator)
		if !ok {
			log.Debug().Int("line", lineNo).Msg("Skipping line without separator")
			continue
		}
		word = strings.TrimSpace(word)
		defs := splitDefinitions(rest)
		if word == "" || len(defs) == 0 {
			log.Debug().Int("line", lineNo).Str("word", word).Msg("Skipping incomplete entry")
			continue
		}

		pos, seen := positions[word]
		if !seen {
			positions[word] = len(res.Entries)
			res.Entries = append(res.Entries, Entry{Word: word, Definitions: defs})
			continue
		}
		res.Duplicates++
		existing := &res.Entries[pos]
		for _, def := range defs {
			if !slices.Contains(existing.Definitions, def) {
				existing.Definitions = append(existing.Definitions, def)
			}
		}
		log.Debug().
			Int("line", lineNo).
			Str("word", word).
			Int("definitions", len(defs)).
			Msg("Merged duplicate word")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan slang list: %w", err)
	}
	return res, nil
}

func splitDefinitions(s string) []string {
	parts := strings.Split(s, definitionSeparator)
	defs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			defs = append(defs, p)
		}
	}
	return defs
}

// Write writes entries in the slang list format, header first.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	for _, e := range entries {
		line := e.Word + wordSeparator + strings.Join(e.Definitions, definitionSeparator+" ")
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
