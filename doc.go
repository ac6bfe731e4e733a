/*
Package trie provides a prefix index over a set of words. It answers exact
membership and prefix enumeration queries, returning the original strings that
were inserted in a stable, ascending symbol order.

Keys can optionally be case folded or stripped of diacritics, and the alphabet
can be bounded, but the index never edits the words it returns.
*/
package trie
