package flexgen

import (
	"github.com/KromDaniel/flexgen/internal/compiler"
)

// AnalysisResult contains the results of pattern analysis without code generation.
type AnalysisResult = compiler.AnalysisResult

// Analyze compiles pattern and reports its features and automaton shape.
// This function validates that the pattern is valid and returns an error if not.
//
// Example:
//
//	result, err := flexgen.Analyze(`(a*)*b`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.FeatureLabels)       // [Group Quantifiers Unbounded]
//	fmt.Println(result.HasCatastrophicRisk) // true
func Analyze(pattern string) (*AnalysisResult, error) {
	return AnalyzeWithMaxNodes(pattern, 0)
}

// AnalyzeWithMaxNodes is Analyze with a custom node limit (0 = use the default limit).
func AnalyzeWithMaxNodes(pattern string, maxNodes int) (*AnalysisResult, error) {
	return compiler.AnalyzePattern(pattern, maxNodes)
}
