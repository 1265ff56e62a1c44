package flexgen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KromDaniel/flexgen/automaton"
	"github.com/KromDaniel/flexgen/internal/compiler"
	"github.com/KromDaniel/flexgen/syntax"
	"github.com/coregx/ahocorasick"
)

// Set matches an input against many patterns at once. Node 0 of the
// combined automaton forks by epsilon into every pattern and each pattern
// keeps its own terminal, so Run reports exactly the markers of the
// patterns that matched.
//
// When every pattern starts with a mandatory literal, an Aho-Corasick
// automaton over those literals rejects inputs that contain none of them
// before the NFA is walked.
//
// Add must not be called concurrently with other methods. Run, Scan and
// Longest are safe for concurrent use.
type Set[T any] struct {
	opts     options
	nfa      *Automaton[T]
	patterns []string
	prefixes []string
	// prefilter is nil when some pattern has no literal prefix, or a prefix
	// holding U+FFFD, which stands for any invalid byte of the pattern.
	prefilter *ahocorasick.Automaton
}

// NewSet returns an empty set.
func NewSet[T any](opts ...Option) *Set[T] {
	return &Set[T]{
		opts: buildOptions(opts),
		nfa:  automaton.Empty[syntax.Item, T](),
	}
}

// Add compiles pattern and adds it to the set with terminal as its marker.
// On error the set is unchanged.
func (s *Set[T]) Add(pattern string, terminal T) error {
	nfa, err := compiler.Compile(s.opts.config(pattern), terminal)
	if err != nil {
		return fmt.Errorf("pattern %d: %w", len(s.patterns), err)
	}
	prefix := LiteralPrefix(nfa)

	s.nfa.Concat(0, nfa)
	s.patterns = append(s.patterns, pattern)
	s.prefixes = append(s.prefixes, prefix)
	s.buildPrefilter()

	s.opts.logger.Log("Set: added %q as pattern %d, literal prefix %q, %d nodes total",
		pattern, len(s.patterns)-1, prefix, s.nfa.Len())
	return nil
}

func (s *Set[T]) buildPrefilter() {
	s.prefilter = nil
	builder := ahocorasick.NewBuilder()
	for _, p := range s.prefixes {
		if p == "" || strings.ContainsRune(p, utf8.RuneError) {
			return
		}
		builder.AddPattern([]byte(p))
	}
	auto, err := builder.Build()
	if err != nil {
		s.opts.logger.Log("Set: prefilter disabled: %v", err)
		return
	}
	s.prefilter = auto
}

// rejects reports whether the prefilter rules out any match on input.
func (s *Set[T]) rejects(input string) bool {
	if len(s.patterns) == 0 {
		return true
	}
	return s.prefilter != nil && !s.prefilter.IsMatch([]byte(input))
}

// Len returns the number of patterns.
func (s *Set[T]) Len() int {
	return len(s.patterns)
}

// Patterns returns the source patterns in the order they were added.
func (s *Set[T]) Patterns() []string {
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Filtered reports whether the literal prefilter is active.
func (s *Set[T]) Filtered() bool {
	return s.prefilter != nil
}

// Run returns the terminals of every pattern matching the whole input, once
// per accepting path, in the order the patterns were added.
func (s *Set[T]) Run(input string) []T {
	if s.rejects(input) {
		return nil
	}
	return s.nfa.Run(input)
}

// Scan reports every (terminal, prefix length) pair for the prefixes of
// input accepted by some pattern.
func (s *Set[T]) Scan(input string) []Match[T] {
	if s.rejects(input) {
		return nil
	}
	return s.nfa.Scan(input)
}

// Longest returns the match consuming the most runes of input. Among
// matches of equal length the pattern added first wins.
func (s *Set[T]) Longest(input string) (Match[T], bool) {
	var best Match[T]
	found := false
	for _, m := range s.Scan(input) {
		if !found || m.End > best.End {
			best, found = m, true
		}
	}
	return best, found
}

// Automaton returns the combined automaton. It must not be modified.
func (s *Set[T]) Automaton() *Automaton[T] {
	return s.nfa
}

// LiteralPrefix returns the literal text every string accepted by nfa
// starts with, possibly empty.
func LiteralPrefix[T any](nfa *Automaton[T]) string {
	return compiler.LiteralPrefix(nfa)
}
