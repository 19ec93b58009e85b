// Package syllable splits headwords into display syllables for the typing
// panel. Splitting is heuristic: vowel clusters with their trailing
// consonants, falling back to the whole word when the clusters do not
// reassemble it.
package syllable

import (
	"regexp"
	"strings"
	"sync"
)

var (
	nonAlphabetic = regexp.MustCompile(`[^a-zA-Z']`)
	vowelCluster  = regexp.MustCompile(`[aeiouy]+[^aeiouy]*`)
)

// Normalize strips a raw headword down to its letters and apostrophes,
// lower-cased.
func Normalize(raw string) string {
	return nonAlphabetic.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "")
}

type Splitter struct {
	mu        sync.Mutex
	memo      map[string][]string
	overrides map[string][]string
}

func NewSplitter() *Splitter {
	return &Splitter{
		memo:      make(map[string][]string),
		overrides: make(map[string][]string),
	}
}

// Override pins the split for a word the heuristic gets wrong.
func (s *Splitter) Override(word string, parts []string) {
	word = Normalize(word)
	if word == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[word] = parts
	delete(s.memo, word)
}

// Split returns the syllables of word, memoized. Empty normalized input
// yields nil.
func (s *Splitter) Split(word string) []string {
	normalized := Normalize(word)
	if normalized == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if parts, ok := s.overrides[normalized]; ok {
		return parts
	}
	if parts, ok := s.memo[normalized]; ok {
		return parts
	}

	parts := splitFallback(normalized)
	s.memo[normalized] = parts
	return parts
}

// ClearCache drops all memoized splits; overrides survive.
func (s *Splitter) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memo = make(map[string][]string)
}

func splitFallback(word string) []string {
	matches := vowelCluster.FindAllString(word, -1)
	if len(matches) > 0 && strings.Join(matches, "") == word {
		return matches
	}
	return []string{word}
}
