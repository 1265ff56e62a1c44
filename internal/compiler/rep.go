package compiler

import (
	"fmt"

	"github.com/KromDaniel/flexgen/automaton"
	"github.com/KromDaniel/flexgen/syntax"
)

// RepConfig describes one repetition suffix. When Bounded is false Max is
// ignored and any number of repeats from Min upwards is accepted.
type RepConfig struct {
	Min     int
	Max     int
	Bounded bool
}

// Shorthand suffixes.
var (
	RepStar     = RepConfig{Min: 0}
	RepPlus     = RepConfig{Min: 1}
	RepQuestion = RepConfig{Min: 0, Max: 1, Bounded: true}
)

// Exactly returns {n}.
func Exactly(n int) RepConfig {
	return RepConfig{Min: n, Max: n, Bounded: true}
}

// AtLeast returns {n,}.
func AtLeast(n int) RepConfig {
	return RepConfig{Min: n}
}

// Between returns {m,n}.
func Between(m, n int) RepConfig {
	return RepConfig{Min: m, Max: n, Bounded: true}
}

// String renders the configuration in counted form.
func (r RepConfig) String() string {
	switch {
	case !r.Bounded:
		return fmt.Sprintf("{%d,}", r.Min)
	case r.Min == r.Max:
		return fmt.Sprintf("{%d}", r.Min)
	default:
		return fmt.Sprintf("{%d,%d}", r.Min, r.Max)
	}
}

// Validate reports ErrInvalidRepeatRange for negative counts or Max < Min.
func (r RepConfig) Validate() error {
	if r.Min < 0 || (r.Bounded && r.Max < r.Min) {
		return syntax.ErrInvalidRepeatRange
	}
	return nil
}

// copies is the number of unrolled fragment copies.
func (r RepConfig) copies() int {
	switch {
	case r.Bounded:
		return r.Max
	case r.Min == 0:
		return 1
	default:
		return r.Min
	}
}

// Nodes returns the size of the automaton Repeat builds when one unrolled
// copy has size nodes. A copy is the fragment plus the entry and exit
// nodes isolate adds.
func (r RepConfig) Nodes(size int) int {
	if r.Bounded && r.Max == 0 {
		return 1
	}
	return r.copies() * size
}

// Repeat expands frag according to r. The fragment is unrolled into
// r.copies() sequential copies; node point(j) is the start of copy j and
// point(copies) the exit of the last one.
//
//   - {m,n}, m < n: epsilon point(j) -> point(n) for every j in [m, n)
//   - {m}: no extra edge
//   - {m,}, m >= 1: epsilon point(m) -> point(m-1)
//   - {0,}: epsilon point(0) -> point(1) and point(1) -> point(0)
//
// The edges above only touch the ends of a copy, so each copy is first
// isolated: node 0 must have no incoming edge and the last node no
// outgoing edge. Otherwise a path could leave a copy halfway through an
// inner loop, as in (a*b)?.
//
// {0} yields Empty(). frag is left untouched. r must be valid.
func Repeat[C automaton.Symbol, T any](frag *automaton.Automaton[C, T], r RepConfig) *automaton.Automaton[C, T] {
	if r.Bounded && r.Max == 0 {
		return automaton.Empty[C, T]()
	}
	body := isolate(frag)
	n := r.copies()
	base := body.Len()
	point := func(j int) int {
		if j == n {
			return n*base - 1
		}
		return j * base
	}

	out := automaton.New[C, T]()
	out.ConcatTailN(body, n)

	switch {
	case r.Bounded:
		for j := r.Min; j < r.Max; j++ {
			out.AddEpsilon(point(j), point(n))
		}
	case r.Min == 0:
		out.AddEpsilon(point(0), point(1))
		out.AddEpsilon(point(1), point(0))
	default:
		out.AddEpsilon(point(r.Min), point(r.Min-1))
	}
	return out
}

// openEnds reports whether some edge of frag leads back into node 0 and
// whether its last node has outgoing edges.
func openEnds[C automaton.Symbol, T any](frag *automaton.Automaton[C, T]) (entry, exit bool) {
	if frag.Len() == 0 {
		return false, false
	}
	for i := 0; i < frag.Len(); i++ {
		for _, e := range frag.Node(i).Edges() {
			if !e.State.IsTerminal() && e.Target == 0 {
				entry = true
			}
		}
	}
	return entry, frag.Node(frag.Len()-1).Len() > 0
}

// copyLen returns the number of nodes of one copy unrolled by Repeat.
func copyLen[C automaton.Symbol, T any](frag *automaton.Automaton[C, T]) int {
	entry, exit := openEnds(frag)
	n := frag.Len()
	if entry {
		n++
	}
	if exit {
		n++
	}
	return n
}

// isolate returns a copy of frag with a fresh entry node and a fresh exit
// node added where its own ends are part of a loop.
func isolate[C automaton.Symbol, T any](frag *automaton.Automaton[C, T]) *automaton.Automaton[C, T] {
	entry, exit := openEnds(frag)
	out := frag.Clone()
	if entry {
		wrapped := automaton.Empty[C, T]()
		wrapped.ConcatTail(out)
		out = wrapped
	}
	if exit {
		out.Push(automaton.Node[C, T]{})
		out.AddEpsilon(out.Len()-2, out.Len()-1)
	}
	return out
}
