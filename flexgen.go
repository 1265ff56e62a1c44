// Package flexgen compiles small regular expressions into non-deterministic
// finite automata and runs them against input strings.
//
// A compiled pattern carries a caller supplied terminal marker of any type.
// Running the automaton returns the marker once for every path that matches
// the whole input, so a single Automaton, or a Set built from many patterns,
// reports which pattern matched without any further bookkeeping.
//
// Supported syntax: literals, '.', \d, \D, grouping with ( ), alternation
// with |, the quantifiers *, +, ? and the counted forms {m}, {m,} and {m,n}.
// Special characters are made literal with a backslash.
package flexgen

import (
	"fmt"
	"io"

	"github.com/KromDaniel/flexgen/automaton"
	"github.com/KromDaniel/flexgen/internal/compiler"
	"github.com/KromDaniel/flexgen/syntax"
)

// Automaton is a compiled pattern.
type Automaton[T any] = automaton.Automaton[syntax.Item, T]

// Match is a terminal reached after consuming the first End runes of an input.
type Match[T any] = automaton.Match[T]

// DefaultMaxNodes is the node limit applied to each compiled pattern.
const DefaultMaxNodes = compiler.DefaultMaxNodes

// Option configures compilation.
type Option func(*options)

type options struct {
	logger   *compiler.Logger
	maxNodes int
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) config(pattern string) compiler.Config {
	return compiler.Config{
		Pattern:  pattern,
		MaxNodes: o.maxNodes,
		Logger:   o.logger,
	}
}

// WithVerbose writes a trace of the parse and the resulting automaton to w.
func WithVerbose(w io.Writer) Option {
	return func(o *options) {
		o.logger = compiler.NewLoggerTo(w)
	}
}

// WithMaxNodes limits the size of a compiled pattern. Patterns whose
// repetitions would unroll beyond n nodes fail with syntax.ErrTooLarge.
func WithMaxNodes(n int) Option {
	return func(o *options) {
		o.maxNodes = n
	}
}

// Compile compiles pattern into an automaton whose accepting node carries
// terminal. Errors are *syntax.Error values.
func Compile[T any](pattern string, terminal T, opts ...Option) (*Automaton[T], error) {
	o := buildOptions(opts)
	return compiler.Compile(o.config(pattern), terminal)
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile[T any](pattern string, terminal T, opts ...Option) *Automaton[T] {
	nfa, err := Compile(pattern, terminal, opts...)
	if err != nil {
		panic(fmt.Sprintf("flexgen: Compile(%q): %v", pattern, err))
	}
	return nfa
}

// Regex is a single compiled pattern. It is safe for concurrent use.
type Regex[T any] struct {
	pattern  string
	terminal T
	nfa      *Automaton[T]
}

// New compiles pattern into a Regex reporting terminal on a match.
func New[T any](pattern string, terminal T, opts ...Option) (*Regex[T], error) {
	nfa, err := Compile(pattern, terminal, opts...)
	if err != nil {
		return nil, err
	}
	return &Regex[T]{pattern: pattern, terminal: terminal, nfa: nfa}, nil
}

// Match reports whether the whole input matches.
func (re *Regex[T]) Match(input string) bool {
	return len(re.nfa.Run(input)) > 0
}

// Run returns the terminal once per accepting path over the whole input.
func (re *Regex[T]) Run(input string) []T {
	return re.nfa.Run(input)
}

// Scan reports a match for every prefix of input the pattern accepts.
func (re *Regex[T]) Scan(input string) []Match[T] {
	return re.nfa.Scan(input)
}

// Terminal returns the marker reported on a match.
func (re *Regex[T]) Terminal() T {
	return re.terminal
}

// Automaton returns the compiled automaton. It must not be modified.
func (re *Regex[T]) Automaton() *Automaton[T] {
	return re.nfa
}

// String returns the source pattern.
func (re *Regex[T]) String() string {
	return re.pattern
}
