package safety

import "regexp"

// Classifier decides whether free text may enter or leave the generation
// pipeline. The shipped implementation is pattern based; a learned
// classifier can replace it without touching call sites.
type Classifier interface {
	IsAllowed(text string) bool
}

type category struct {
	label    string
	patterns []*regexp.Regexp
}

// Filter rejects text matching a fixed, ordered rule set. The deployed
// vocabulary is French; the mechanism is language-agnostic.
type Filter struct {
	categories []category
}

// Rule set mirrors what the product ships: each entry is a category label
// and its raw patterns. Matching is case-insensitive and word-boundary
// based where the pattern says so.
var ruleSet = []struct {
	label    string
	patterns []string
}{
	{"violence", []string{`(?i)\b(violent|tuer|meurtre|mort|sang)\b`}},
	{"sexual", []string{`(?i)\b(sexe|sexuel|nudité)\b`}},
	{"substances", []string{`(?i)\b(drogue|alcool)\b`}},
	{"weapons", []string{`(?i)\b(arme|fusil|pistolet)\b`}},
	{"prompt-injection", []string{
		`(?i)ignore\s+(les\s+)?instructions`,
		`(?i)system\s*:\s*`,
	}},
}

func NewFilter() *Filter {
	f := &Filter{categories: make([]category, 0, len(ruleSet))}
	for _, r := range ruleSet {
		c := category{label: r.label, patterns: make([]*regexp.Regexp, 0, len(r.patterns))}
		for _, p := range r.patterns {
			c.patterns = append(c.patterns, regexp.MustCompile(p))
		}
		f.categories = append(f.categories, c)
	}
	return f
}

// IsAllowed reports whether text matches none of the blocked categories.
// The empty string is always allowed. Same input, same verdict: the filter
// holds no state.
func (f *Filter) IsAllowed(text string) bool {
	_, blocked := f.Match(text)
	return !blocked
}

// Match returns the label of the first category the text violates.
func (f *Filter) Match(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, c := range f.categories {
		for _, re := range c.patterns {
			if re.MatchString(text) {
				return c.label, true
			}
		}
	}
	return "", false
}
