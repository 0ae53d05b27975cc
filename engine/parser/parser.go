// Package parser splits raw player input into meaningful tokens and matches
// the leading token against the known command vocabulary.
// Intentionally dumb: no NLP, just lowercasing, stopword removal and
// first-match-wins scanning in declaration order.
package parser

import (
	"strings"

	"github.com/avolpe/maniero/types"
)

// Stopwords is a case-insensitive set of words the tokenizer discards.
type Stopwords map[string]bool

// NewStopwords builds a stopword set from a word list.
func NewStopwords(words []string) Stopwords {
	set := make(Stopwords, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

// Contains reports whether the word is a stopword.
func (s Stopwords) Contains(word string) bool {
	return s[strings.ToLower(word)]
}

// Tokenize splits input on whitespace, lowercases every word and drops
// stopwords. Empty or all-stopword input yields an empty slice; callers
// must treat that as "no intent".
func Tokenize(input string, stop Stopwords) []string {
	var tokens []string
	for _, w := range strings.Fields(input) {
		w = strings.ToLower(w)
		if stop.Contains(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// MatchCommand scans commands in declaration order and returns the first
// whose canonical name or alias set matches the word. Returns nil if no
// command matches ("not understood" is a caller decision).
func MatchCommand(word string, commands []types.Command) *types.Command {
	for i := range commands {
		if commands[i].Matches(word) {
			return &commands[i]
		}
	}
	return nil
}
