package compiler

import (
	"sort"

	"github.com/KromDaniel/flexgen/syntax"
)

// AnalysisResult describes a compiled pattern without running it.
type AnalysisResult struct {
	// FeatureLabels are derived from pattern structure (sorted alphabetically)
	FeatureLabels []string `json:"feature_labels"`

	// Automaton shape
	Nodes        int `json:"nodes"`
	ContentEdges int `json:"content_edges"`
	EpsilonEdges int `json:"epsilon_edges"`

	// LiteralPrefix is the text every match starts with, possibly empty.
	LiteralPrefix string `json:"literal_prefix"`

	// HasCatastrophicRisk is set for nested quantifiers, where the number of
	// paths explored by Run can grow exponentially with the input.
	HasCatastrophicRisk bool `json:"has_catastrophic_risk"`
}

// AnalyzePattern compiles pattern and reports its features and automaton
// shape. It returns the compile error for an invalid pattern.
func AnalyzePattern(pattern string, maxNodes int) (*AnalysisResult, error) {
	items, err := syntax.Tokens(pattern)
	if err != nil {
		return nil, err
	}
	nfa, err := Compile(Config{Pattern: pattern, MaxNodes: maxNodes}, struct{}{})
	if err != nil {
		return nil, err
	}

	content, epsilon := countEdges(nfa)
	return &AnalysisResult{
		FeatureLabels:       deriveFeatureLabels(pattern, items),
		Nodes:               nfa.Len(),
		ContentEdges:        content,
		EpsilonEdges:        epsilon,
		LiteralPrefix:       LiteralPrefix(nfa),
		HasCatastrophicRisk: hasNestedQuantifiers(items),
	}, nil
}

// deriveFeatureLabels extracts feature labels from the pattern items.
// Labels are sorted alphabetically.
func deriveFeatureLabels(pattern string, items []syntax.Item) []string {
	set := make(map[string]bool)
	for _, it := range items {
		switch it.Kind {
		case syntax.Pipe:
			set["Alternation"] = true
		case syntax.SmallD, syntax.LargeD:
			set["CharClass"] = true
		case syntax.ParenL:
			set["Group"] = true
		case syntax.Any:
			set["Wildcard"] = true
		case syntax.Star, syntax.Plus, syntax.Question, syntax.BraceL:
			set["Quantifiers"] = true
		}
		if _, ok := it.Literal(); ok && it.Kind != syntax.Char && it.Kind != syntax.Digit {
			set["Escape"] = true
		}
		if it.Kind == syntax.Star || it.Kind == syntax.Plus {
			set["Unbounded"] = true
		}
	}
	if hasMultibyte(pattern) {
		set["Multibyte"] = true
	}
	if hasUnboundedCount(items) {
		set["Unbounded"] = true
	}

	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	if len(labels) == 0 {
		labels = append(labels, "Simple")
	}
	sort.Strings(labels)
	return labels
}

// hasUnboundedCount reports a {m,} suffix.
func hasUnboundedCount(items []syntax.Item) bool {
	for i := 1; i < len(items); i++ {
		if items[i].Kind == syntax.BraceR && items[i-1].Kind == syntax.Char && items[i-1].Char == ',' {
			return true
		}
	}
	return false
}
