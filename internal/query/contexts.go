package query

import "strings"

// contextRule maps translation substrings to search contexts that pin down
// the word's semantic category. Matching is plain substring search over the
// concatenated translations; the table is hand-curated and intentionally
// small.
type contextRule struct {
	patterns []string
	contexts []string
}

var translationRules = []contextRule{
	{[]string{"取消", "撤销", "作废"}, []string{"cancellation notice", "person cancelling meeting"}},
	{[]string{"爆炸", "炸药", "燃烧"}, []string{"controlled explosion", "fireworks explosion"}},
	{[]string{"政府", "统治", "治理", "政治"}, []string{"government meeting", "parliament session"}},
	{[]string{"分析", "解析", "分解"}, []string{"data analysis", "scientist analysing data"}},
	{[]string{"众多", "群众", "很多人", "人群"}, []string{"crowd of people", "busy city crowd"}},
	{[]string{"污染", "雾霾", "污水"}, []string{"city pollution", "industrial pollution"}},
	{[]string{"工资", "薪", "报酬"}, []string{"office payroll", "business finance office"}},
	{[]string{"遥远", "偏僻", "孤立"}, []string{"remote landscape", "isolated cabin"}},
	{[]string{"劝阻", "阻止", "制止"}, []string{"teacher discouraging student", "stop sign action"}},
	{[]string{"类似", "相似", "相像"}, []string{"look alike people", "matching objects"}},
	{[]string{"工具", "机器", "设备"}, []string{"industrial equipment", "workshop tools"}},
}

func (r contextRule) matches(text string) bool {
	for _, p := range r.patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func translationContexts(translations []string) []string {
	if len(translations) == 0 {
		return nil
	}
	text := strings.Join(translations, "")

	var contexts []string
	seen := make(map[string]struct{})
	for _, rule := range translationRules {
		if !rule.matches(text) {
			continue
		}
		for _, context := range rule.contexts {
			if _, ok := seen[context]; ok {
				continue
			}
			seen[context] = struct{}{}
			contexts = append(contexts, context)
		}
	}
	return contexts
}
