package query

import (
	"testing"

	"github.com/kanekanefy/qwerty-learner/internal/lingo"
	"github.com/kanekanefy/qwerty-learner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAnalyzer struct {
	analysis lingo.Analysis
}

func (f fixedAnalyzer) Classify(string) lingo.Analysis { return f.analysis }

func (f fixedAnalyzer) Gerund(string) (string, bool) { return "", false }

func (f fixedAnalyzer) Plural(string) (string, bool) { return "", false }

func TestBuild_EmptyWord(t *testing.T) {
	b := NewBuilder(fixedAnalyzer{})

	assert.Nil(t, b.Build(model.Word{Name: ""}))
	assert.Nil(t, b.Build(model.Word{Name: "   "}))
}

func TestBuild_Noun(t *testing.T) {
	b := NewBuilder(fixedAnalyzer{analysis: lingo.Analysis{IsNoun: true}})

	queries := b.Build(model.Word{Name: "Company"})
	assert.Equal(t, []string{
		"company realistic photo",
		"company detailed shot",
		"photo of company",
		"company close up",
		"companies in real life",
		"company educational illustration",
	}, queries)
}

func TestBuild_Verb(t *testing.T) {
	b := NewBuilder(fixedAnalyzer{analysis: lingo.Analysis{IsVerb: true}})

	queries := b.Build(model.Word{Name: "analyze"})
	assert.Equal(t, []string{
		"analyze realistic photo",
		"analyze detailed shot",
		"person analyzing",
		"people analyzing",
		"analyzing action",
		"analyzing in real life",
		"analyze educational illustration",
	}, queries)
}

func TestBuild_Adjective(t *testing.T) {
	b := NewBuilder(fixedAnalyzer{analysis: lingo.Analysis{IsAdjective: true}})

	queries := b.Build(model.Word{Name: "remote"})
	assert.Equal(t, []string{
		"remote realistic photo",
		"remote detailed shot",
		"remote scene",
		"remote background",
		"remote person",
		"remote educational illustration",
	}, queries)
}

func TestBuild_TranslationContexts(t *testing.T) {
	b := NewBuilder(fixedAnalyzer{})

	queries := b.Build(model.Word{Name: "cancel", Trans: []string{"取消，撤销"}})
	assert.Equal(t, []string{
		"cancel realistic photo",
		"cancel detailed shot",
		"cancel cancellation notice",
		"cancellation notice",
		"cancel person cancelling meeting",
		"person cancelling meeting",
		"cancel educational illustration",
	}, queries)
}

func TestBuild_CapAndUniqueness(t *testing.T) {
	// A verb with translation matches produces more than MaxQueries raw
	// candidates; the cap and dedup must hold.
	b := NewBuilder(fixedAnalyzer{analysis: lingo.Analysis{IsVerb: true}})

	queries := b.Build(model.Word{Name: "discourage", Trans: []string{"劝阻", "阻止"}})
	require.LessOrEqual(t, len(queries), MaxQueries)

	seen := make(map[string]struct{})
	for _, q := range queries {
		_, dup := seen[q]
		assert.False(t, dup, "duplicate query %q", q)
		seen[q] = struct{}{}
	}
}

func TestTranslationContexts_NoMatch(t *testing.T) {
	assert.Empty(t, translationContexts([]string{"无关内容"}))
	assert.Empty(t, translationContexts(nil))
}

func TestTranslationContexts_MultipleRules(t *testing.T) {
	contexts := translationContexts([]string{"政府的分析"})
	assert.Equal(t, []string{
		"government meeting",
		"parliament session",
		"data analysis",
		"scientist analysing data",
	}, contexts)
}
