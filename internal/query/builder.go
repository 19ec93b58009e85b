// Package query derives image search queries from a vocabulary word.
package query

import (
	"strings"

	"github.com/kanekanefy/qwerty-learner/internal/lingo"
	"github.com/kanekanefy/qwerty-learner/internal/model"
)

// MaxQueries caps the candidate list; attempts against the provider are
// capped separately by the resolver.
const MaxQueries = 8

type Builder struct {
	analyzer lingo.Analyzer
}

func NewBuilder(analyzer lingo.Analyzer) *Builder {
	if analyzer == nil {
		analyzer = lingo.Default()
	}
	return &Builder{analyzer: analyzer}
}

// Build returns an ordered, deduplicated list of up to MaxQueries search
// strings for the word. An empty normalized word yields nil, which callers
// must treat as "no illustration possible".
//
// A bare word, especially one picked from a translated vocabulary list, is
// often too ambiguous for an image search to return anything useful, so the
// list mixes part-of-speech specific phrasings with contexts inferred from
// the word's translations.
func (b *Builder) Build(word model.Word) []string {
	base := strings.ToLower(strings.TrimSpace(word.Name))
	if base == "" {
		return nil
	}

	cls := b.analyzer.Classify(base)

	var queries []string
	seen := make(map[string]struct{})
	add := func(q string) {
		if q == "" {
			return
		}
		if _, ok := seen[q]; ok {
			return
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}

	add(base + " realistic photo")
	add(base + " detailed shot")

	if cls.IsNoun {
		add("photo of " + base)
		add(base + " close up")
		add(lingo.PluralOf(b.analyzer, base) + " in real life")
	}

	if cls.IsVerb {
		gerund := lingo.GerundOf(b.analyzer, base)
		add("person " + gerund)
		add("people " + gerund)
		add(gerund + " action")
		add(gerund + " in real life")
	}

	if cls.IsAdjective {
		add(base + " scene")
		add(base + " background")
		add(base + " person")
	}

	for _, context := range translationContexts(word.Trans) {
		add(base + " " + context)
		add(context)
	}

	add(base + " educational illustration")

	if len(queries) > MaxQueries {
		queries = queries[:MaxQueries]
	}
	return queries
}
