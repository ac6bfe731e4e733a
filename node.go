package trie

import (
	"maps"
	"slices"
)

// node is a vertex of a Trie. children maps a symbol to the node reached by it;
// a missing key means there is no transition. If terminal is set, words holds
// every original string whose key ends here, in insertion order.
type node struct {
	children map[rune]*node
	terminal bool
	words    []string
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// child returns the node reached by symbol, if any.
func (n *node) child(symbol rune) (*node, bool) {
	c, ok := n.children[symbol]
	return c, ok
}

// setChild installs or replaces the child for symbol.
func (n *node) setChild(symbol rune, c *node) {
	n.children[symbol] = c
}

func (n *node) hasChild(symbol rune) bool {
	_, ok := n.children[symbol]
	return ok
}

func (n *node) markTerminal() { n.terminal = true }

func (n *node) isTerminal() bool { return n.terminal }

// recordWord appends word without checking for an equal entry, so inserting the
// same string twice records it twice.
func (n *node) recordWord(word string) {
	n.words = append(n.words, word)
}

func (n *node) recorded() []string { return n.words }

// symbols returns the child symbols in ascending order.
func (n *node) symbols() []rune {
	return slices.Sorted(maps.Keys(n.children))
}
