// Package compiler implements the pattern parser and the expansion of
// parsed patterns into automata.
package compiler

import (
	"fmt"

	"github.com/KromDaniel/flexgen/automaton"
	"github.com/KromDaniel/flexgen/syntax"
)

// DefaultMaxNodes is the node limit used when Config.MaxNodes is zero.
const DefaultMaxNodes = 10000

// NFA is an automaton over pattern items.
type NFA[T any] = automaton.Automaton[syntax.Item, T]

// Config holds the configuration for one compilation.
type Config struct {
	Pattern  string
	MaxNodes int     // Node limit for the compiled automaton (0 = use DefaultMaxNodes)
	Verbose  bool    // Enable verbose logging of parse decisions
	Logger   *Logger // Overrides Verbose when set
}

// Compiler parses a pattern by recursive descent and builds its automaton.
//
//	alt   := items ('|' items)*
//	items := rep items?
//	rep   := item suffix?
//	item  := literal | '(' alt ')'
type Compiler[T any] struct {
	config   Config
	tokens   *syntax.Tokenizer
	logger   *Logger
	maxNodes int
}

// New creates a new compiler instance.
func New[T any](config Config) *Compiler[T] {
	c := &Compiler[T]{
		config:   config,
		tokens:   syntax.NewTokenizer(config.Pattern),
		logger:   config.Logger,
		maxNodes: config.MaxNodes,
	}
	if c.logger == nil {
		c.logger = NewLogger(config.Verbose)
	}
	if c.maxNodes <= 0 {
		c.maxNodes = DefaultMaxNodes
	}
	return c
}

// Compile parses config.Pattern and marks the exit of the result with terminal.
func Compile[T any](config Config, terminal T) (*NFA[T], error) {
	nfa, err := New[T](config).Fragment()
	if err != nil {
		return nil, err
	}
	nfa.SetTerminalToLast(terminal)
	return nfa, nil
}

// Fragment parses the pattern into an automaton without terminals. Its last
// node is the exit: a path that reaches it has matched the whole pattern.
// Fragment may be called more than once.
func (c *Compiler[T]) Fragment() (*NFA[T], error) {
	c.tokens.Reset()
	c.logger.Section("Parse")
	c.logger.Log("Pattern: %q", c.config.Pattern)

	nfa, err := c.alt()
	if err != nil {
		return nil, err
	}
	_, ok, err := c.tokens.Next()
	if err != nil {
		return nil, err
	}
	if ok {
		// alt only stops early on an unmatched ')'.
		return nil, c.errorHere(syntax.ErrUnexpectedParen, "")
	}

	if c.logger.Enabled() {
		c.logger.Dump("Result", fmt.Sprintf("Nodes: %d\n%s", nfa.Len(), nfa))
	}
	return nfa, nil
}

// alt parses one or more '|' separated branches. A single branch is
// returned as is; several are joined with automaton.Union.
func (c *Compiler[T]) alt() (*NFA[T], error) {
	var branches []*NFA[T]
	for {
		frag, err := c.items()
		if err != nil {
			return nil, err
		}
		branches = append(branches, frag)

		item, ok, err := c.tokens.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if item.Kind != syntax.Pipe {
			c.tokens.Back()
			break
		}
	}
	if len(branches) == 1 {
		return branches[0], nil
	}

	size := 2
	for _, b := range branches {
		size += b.Len()
	}
	if size > c.maxNodes {
		return nil, c.errorAt(syntax.ErrTooLarge, "", c.tokens.Offset())
	}
	c.logger.Log("Alternation of %d branches", len(branches))
	return automaton.Union(branches...), nil
}

// items parses a sequence of reps and chains them left to right. An empty
// sequence yields a single empty node.
func (c *Compiler[T]) items() (*NFA[T], error) {
	var out *NFA[T]
	for {
		frag, ok, err := c.rep()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if out == nil {
			out = frag
			continue
		}
		if out.Len()+frag.Len() > c.maxNodes {
			return nil, c.errorAt(syntax.ErrTooLarge, "", c.tokens.Offset())
		}
		out.ConcatTail(frag)
	}
	if out == nil {
		return automaton.Empty[syntax.Item, T](), nil
	}
	return out, nil
}

// rep parses one item and its optional repetition suffix.
func (c *Compiler[T]) rep() (*NFA[T], bool, error) {
	frag, ok, err := c.item()
	if err != nil || !ok {
		return nil, ok, err
	}

	item, ok, err := c.tokens.Next()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return frag, true, nil
	}
	if !item.IsQuantifier() {
		c.tokens.Back()
		return frag, true, nil
	}

	start := c.tokens.Offset()
	r, err := c.suffix(item)
	if err != nil {
		return nil, false, err
	}
	if err := r.Validate(); err != nil {
		return nil, false, c.errorAt(err, "", start)
	}
	if r.Nodes(copyLen(frag)) > c.maxNodes {
		return nil, false, c.errorAt(syntax.ErrTooLarge, "", start)
	}
	out := Repeat(frag, r)
	c.logger.Log("Repeat %s over %d nodes -> %d nodes", r, frag.Len(), out.Len())

	// A second quantifier has nothing left to repeat.
	next, ok, err := c.tokens.Next()
	if err != nil {
		return nil, false, err
	}
	if ok {
		if next.IsQuantifier() {
			return nil, false, c.errorHere(syntax.ErrMissingRepeatArgument, "")
		}
		c.tokens.Back()
	}
	return out, true, nil
}

// item parses a single literal or a parenthesized group. ok is false when
// the next item ends the current sequence: end of input, '|' or ')'.
func (c *Compiler[T]) item() (*NFA[T], bool, error) {
	item, ok, err := c.tokens.Next()
	if err != nil || !ok {
		return nil, false, err
	}

	switch item.Kind {
	case syntax.ParenR, syntax.Pipe:
		c.tokens.Back()
		return nil, false, nil
	case syntax.ParenL:
		open := c.tokens.Offset()
		frag, err := c.alt()
		if err != nil {
			return nil, false, err
		}
		closing, ok, err := c.tokens.Next()
		if err != nil {
			return nil, false, err
		}
		if !ok || closing.Kind != syntax.ParenR {
			return nil, false, c.errorAt(syntax.ErrMissingParen, ")", open)
		}
		return frag, true, nil
	case syntax.Star, syntax.Plus, syntax.Question, syntax.BraceL:
		return nil, false, c.errorHere(syntax.ErrMissingRepeatArgument, "")
	case syntax.BraceR:
		return nil, false, c.errorHere(syntax.ErrInvalidRepeat, "{ before }")
	case syntax.BracketL, syntax.BracketR:
		return nil, false, c.errorHere(syntax.ErrUnsupported, `\[ or \] for a literal bracket`)
	}
	return automaton.FromContent[syntax.Item, T](item), true, nil
}

// suffix converts a quantifier item, reading the rest of a counted
// repetition when item is '{'.
func (c *Compiler[T]) suffix(item syntax.Item) (RepConfig, error) {
	switch item.Kind {
	case syntax.Star:
		return RepStar, nil
	case syntax.Plus:
		return RepPlus, nil
	case syntax.Question:
		return RepQuestion, nil
	}

	lo, err := c.number()
	if err != nil {
		return RepConfig{}, err
	}
	next, ok, err := c.tokens.Next()
	if err != nil {
		return RepConfig{}, err
	}
	switch {
	case ok && next.Kind == syntax.BraceR:
		return Exactly(lo), nil
	case ok && next.Kind == syntax.Char && next.Char == ',':
	default:
		return RepConfig{}, c.errorAfter(syntax.ErrInvalidRepeat, ", or }", ok)
	}

	next, ok, err = c.tokens.Next()
	if err != nil {
		return RepConfig{}, err
	}
	if ok && next.Kind == syntax.BraceR {
		return AtLeast(lo), nil
	}
	if ok {
		c.tokens.Back()
	}
	hi, err := c.number()
	if err != nil {
		return RepConfig{}, err
	}
	next, ok, err = c.tokens.Next()
	if err != nil {
		return RepConfig{}, err
	}
	if !ok || next.Kind != syntax.BraceR {
		return RepConfig{}, c.errorAfter(syntax.ErrInvalidRepeat, "}", ok)
	}
	return Between(lo, hi), nil
}

// number reads one or more digit items as a decimal count.
func (c *Compiler[T]) number() (int, error) {
	n, digits := 0, 0
	start := c.tokens.Pos()
	for {
		item, ok, err := c.tokens.Next()
		if err != nil {
			return 0, err
		}
		if !ok || item.Kind != syntax.Digit {
			if ok {
				c.tokens.Back()
			}
			break
		}
		n = n*10 + item.Digit
		digits++
		if n > c.maxNodes {
			return 0, c.errorAt(syntax.ErrTooLarge, "", start)
		}
	}
	if digits == 0 {
		return 0, c.errorAt(syntax.ErrInvalidRepeat, "digit", c.tokens.Pos())
	}
	return n, nil
}

func (c *Compiler[T]) errorAt(err error, expected string, pos int) error {
	return &syntax.Error{
		Pattern:  c.config.Pattern,
		Pos:      pos,
		Err:      err,
		Expected: expected,
	}
}

// errorHere reports err at the offset of the item just returned by the tokenizer.
func (c *Compiler[T]) errorHere(err error, expected string) error {
	return c.errorAt(err, expected, c.tokens.Offset())
}

// errorAfter reports err at the unexpected item, or at the end of the
// pattern when the input ran out.
func (c *Compiler[T]) errorAfter(err error, expected string, ok bool) error {
	if !ok {
		return c.errorAt(err, expected, len(c.config.Pattern))
	}
	return c.errorHere(err, expected)
}
