// Package lingo provides the linguistic analysis the query heuristics rely
// on: part-of-speech classification plus gerund and plural derivation with
// deterministic suffix fallbacks.
package lingo

import (
	"strings"
	"sync"
)

// Analysis is the part-of-speech classification of a single word. IsNoun is
// a fallback reading: it is only set when the word is neither a verb nor an
// adjective.
type Analysis struct {
	IsVerb      bool
	IsAdjective bool
	IsNoun      bool
}

// Analyzer is a pluggable linguistic backend. Gerund and Plural may report
// no result, in which case the deterministic suffix fallbacks apply.
type Analyzer interface {
	Classify(text string) Analysis
	Gerund(text string) (string, bool)
	Plural(text string) (string, bool)
}

var (
	defaultOnce     sync.Once
	defaultAnalyzer Analyzer
)

// Default returns the process-wide analyzer. Initialization is lazy and
// happens at most once.
func Default() Analyzer {
	defaultOnce.Do(func() {
		defaultAnalyzer = newProseAnalyzer()
	})
	return defaultAnalyzer
}

// GerundOf derives the "-ing" form of word, preferring the analyzer's
// conjugation and falling back to suffix rules.
func GerundOf(a Analyzer, word string) string {
	if g, ok := a.Gerund(word); ok && g != "" {
		return g
	}

	switch {
	case strings.HasSuffix(word, "ie"):
		return word[:len(word)-2] + "ying"
	case strings.HasSuffix(word, "e") && len(word) > 2:
		return word[:len(word)-1] + "ing"
	case strings.HasSuffix(word, "c"):
		return word + "king"
	}
	return word + "ing"
}

// PluralOf derives the plural form of word, preferring the analyzer's
// morphology and falling back to suffix rules.
func PluralOf(a Analyzer, word string) string {
	if p, ok := a.Plural(word); ok && p != "" {
		return p
	}

	if strings.HasSuffix(word, "y") && !vowelBeforeFinalY(word) {
		return word[:len(word)-1] + "ies"
	}
	for _, suffix := range []string{"s", "x", "z", "sh", "ch"} {
		if strings.HasSuffix(word, suffix) {
			return word + "es"
		}
	}
	return word + "s"
}

func vowelBeforeFinalY(word string) bool {
	if len(word) < 2 {
		return false
	}
	return strings.ContainsRune("aeiou", rune(word[len(word)-2]))
}
