package lingo

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// proseAnalyzer classifies words with the prose POS tagger. The tagger
// carries no conjugation or pluralization tables, so Gerund and Plural
// always defer to the suffix fallbacks.
type proseAnalyzer struct{}

func newProseAnalyzer() proseAnalyzer {
	return proseAnalyzer{}
}

func (proseAnalyzer) Classify(text string) Analysis {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return Analysis{}
	}

	var verb, adjective, noun bool
	for _, tok := range doc.Tokens() {
		switch {
		case strings.HasPrefix(tok.Tag, "VB"):
			verb = true
		case strings.HasPrefix(tok.Tag, "JJ"):
			adjective = true
		case strings.HasPrefix(tok.Tag, "NN"):
			noun = true
		}
	}

	return Analysis{
		IsVerb:      verb,
		IsAdjective: adjective,
		IsNoun:      !verb && !adjective && noun,
	}
}

func (proseAnalyzer) Gerund(string) (string, bool) {
	return "", false
}

func (proseAnalyzer) Plural(string) (string, bool) {
	return "", false
}
