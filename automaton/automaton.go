// Package automaton provides an index-addressed non-deterministic finite
// automaton.
//
// An Automaton is an arena of nodes. Node 0 is the start node and every edge
// refers to its target by position in the arena, so merging two automata
// means shifting the indices of the appended one by the length of the
// receiving one. Edges carry a State which is one of Content (consume one
// character accepted by a Symbol), Terminal (accept, carrying a caller
// supplied marker) or Epsilon (consume nothing).
//
// The package is generic over the content symbol C and the terminal marker T.
package automaton

import (
	"fmt"
	"strings"
)

// NoTarget is the target stored on terminal edges. Terminal edges have no
// successor and their target is never dereferenced.
const NoTarget = -1

// Symbol is the content carried by Content states.
type Symbol interface {
	Matches(r rune) bool
}

// StateKind identifies the variant of a State.
type StateKind uint8

const (
	// StateContent consumes one input character matching its symbol.
	StateContent StateKind = iota
	// StateTerminal accepts and carries a terminal marker.
	StateTerminal
	// StateEpsilon consumes no input.
	StateEpsilon
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateContent:
		return "Content"
	case StateTerminal:
		return "Terminal"
	case StateEpsilon:
		return "Epsilon"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State is a tagged union over Content, Terminal and Epsilon.
// Only the field matching kind is meaningful.
type State[C Symbol, T any] struct {
	kind     StateKind
	content  C
	terminal T
}

// Content returns a content state for c.
func Content[C Symbol, T any](c C) State[C, T] {
	return State[C, T]{kind: StateContent, content: c}
}

// Terminal returns a terminal state carrying t.
func Terminal[C Symbol, T any](t T) State[C, T] {
	return State[C, T]{kind: StateTerminal, terminal: t}
}

// Epsilon returns an epsilon state.
func Epsilon[C Symbol, T any]() State[C, T] {
	return State[C, T]{kind: StateEpsilon}
}

// Kind returns the variant of the state.
func (s State[C, T]) Kind() StateKind { return s.kind }

// IsContent reports whether s is a content state.
func (s State[C, T]) IsContent() bool { return s.kind == StateContent }

// IsTerminal reports whether s is a terminal state.
func (s State[C, T]) IsTerminal() bool { return s.kind == StateTerminal }

// IsEpsilon reports whether s is an epsilon state.
func (s State[C, T]) IsEpsilon() bool { return s.kind == StateEpsilon }

// Content returns the symbol of a content state.
func (s State[C, T]) Content() (C, bool) {
	if s.kind != StateContent {
		var zero C
		return zero, false
	}
	return s.content, true
}

// Terminal returns the marker of a terminal state.
func (s State[C, T]) Terminal() (T, bool) {
	if s.kind != StateTerminal {
		var zero T
		return zero, false
	}
	return s.terminal, true
}

// String returns a human-readable representation of the state
func (s State[C, T]) String() string {
	switch s.kind {
	case StateContent:
		return fmt.Sprintf("Content(%v)", s.content)
	case StateTerminal:
		return fmt.Sprintf("Terminal(%v)", s.terminal)
	default:
		return "Epsilon"
	}
}

// Edge is a transition to the node at Target.
type Edge[C Symbol, T any] struct {
	State  State[C, T]
	Target int
}

// Node is an ordered list of outgoing edges. Several edges may carry the
// same state; that is where the non-determinism lives.
type Node[C Symbol, T any] struct {
	edges []Edge[C, T]
}

// AddTransition appends an edge.
func (n *Node[C, T]) AddTransition(s State[C, T], target int) {
	if s.kind == StateTerminal {
		target = NoTarget
	}
	n.edges = append(n.edges, Edge[C, T]{State: s, Target: target})
}

// AddContent appends a content edge.
func (n *Node[C, T]) AddContent(c C, target int) {
	n.AddTransition(Content[C, T](c), target)
}

// AddEpsilon appends an epsilon edge.
func (n *Node[C, T]) AddEpsilon(target int) {
	n.AddTransition(Epsilon[C, T](), target)
}

// AddTerminal appends a terminal edge.
func (n *Node[C, T]) AddTerminal(t T) {
	n.AddTransition(Terminal[C, T](t), NoTarget)
}

// Edges returns the node's edges. The slice must not be modified.
func (n *Node[C, T]) Edges() []Edge[C, T] {
	return n.edges
}

// Len returns the number of edges.
func (n *Node[C, T]) Len() int {
	return len(n.edges)
}

// Terminals returns the markers of the node's terminal edges.
func (n *Node[C, T]) Terminals() []T {
	var out []T
	for _, e := range n.edges {
		if e.State.kind == StateTerminal {
			out = append(out, e.State.terminal)
		}
	}
	return out
}

// Next returns the targets of content edges that accept r.
func (n *Node[C, T]) Next(r rune) []int {
	var out []int
	for _, e := range n.edges {
		if e.State.kind == StateContent && e.State.content.Matches(r) {
			out = append(out, e.Target)
		}
	}
	return out
}

// incrementAllIndex shifts every non-terminal target by inc.
func (n *Node[C, T]) incrementAllIndex(inc int) {
	for i := range n.edges {
		if n.edges[i].State.kind != StateTerminal {
			n.edges[i].Target += inc
		}
	}
}

func (n Node[C, T]) clone() Node[C, T] {
	if n.edges == nil {
		return Node[C, T]{}
	}
	edges := make([]Edge[C, T], len(n.edges))
	copy(edges, n.edges)
	return Node[C, T]{edges: edges}
}

// IndexError reports access to a node position outside the automaton, or
// an edge whose target lies outside it. It signals a bug in the code
// building the automaton rather than bad user input.
type IndexError struct {
	Index int
	Len   int
	// Node is the node holding the bad edge, -1 for a direct access.
	Node int
}

// Error implements the error interface
func (e *IndexError) Error() string {
	if e.Node >= 0 {
		return fmt.Sprintf("automaton: node %d has edge to %d, out of range [0,%d)", e.Node, e.Index, e.Len)
	}
	return fmt.Sprintf("automaton: index %d out of range [0,%d)", e.Index, e.Len)
}

// Automaton is an ordered arena of nodes; node 0 is the start node.
// An Automaton is mutated only while it is being built. Once built it is
// never modified by the execution methods and may be shared between
// goroutines.
type Automaton[C Symbol, T any] struct {
	nodes []Node[C, T]
}

// New returns an automaton with no nodes.
func New[C Symbol, T any]() *Automaton[C, T] {
	return &Automaton[C, T]{}
}

// Empty returns a single-node automaton that accepts the empty string once
// a terminal is attached to its only node.
func Empty[C Symbol, T any]() *Automaton[C, T] {
	a := New[C, T]()
	a.Push(Node[C, T]{})
	return a
}

// FromContent returns the two-node automaton 0 --c--> 1.
func FromContent[C Symbol, T any](c C) *Automaton[C, T] {
	a := New[C, T]()
	var start Node[C, T]
	start.AddContent(c, 1)
	a.Push(start)
	a.Push(Node[C, T]{})
	return a
}

// FromTerminal returns a single-node automaton whose node carries t.
func FromTerminal[C Symbol, T any](t T) *Automaton[C, T] {
	a := New[C, T]()
	var n Node[C, T]
	n.AddTerminal(t)
	a.Push(n)
	return a
}

// Push appends a node.
func (a *Automaton[C, T]) Push(n Node[C, T]) {
	a.nodes = append(a.nodes, n)
}

// Len returns the number of nodes.
func (a *Automaton[C, T]) Len() int {
	return len(a.nodes)
}

// Node returns node i. It panics with an *IndexError if i is out of range.
func (a *Automaton[C, T]) Node(i int) *Node[C, T] {
	n, err := a.Lookup(i)
	if err != nil {
		panic(err)
	}
	return n
}

// Lookup returns node i, or an *IndexError if i is out of range.
func (a *Automaton[C, T]) Lookup(i int) (*Node[C, T], error) {
	if i < 0 || i >= len(a.nodes) {
		return nil, &IndexError{Index: i, Len: len(a.nodes), Node: -1}
	}
	return &a.nodes[i], nil
}

// AddTransition adds an edge from node idx.
func (a *Automaton[C, T]) AddTransition(idx int, s State[C, T], target int) {
	a.Node(idx).AddTransition(s, target)
}

// AddContent adds a content edge from node idx.
func (a *Automaton[C, T]) AddContent(idx int, c C, target int) {
	a.Node(idx).AddContent(c, target)
}

// AddEpsilon adds an epsilon edge from node idx.
func (a *Automaton[C, T]) AddEpsilon(idx, target int) {
	a.Node(idx).AddEpsilon(target)
}

// AddTerminal adds a terminal edge to node idx.
func (a *Automaton[C, T]) AddTerminal(idx int, t T) {
	a.Node(idx).AddTerminal(t)
}

// SetTerminalToLast marks the last node as accepting with t.
func (a *Automaton[C, T]) SetTerminalToLast(t T) {
	if len(a.nodes) == 0 {
		panic(&IndexError{Index: 0, Len: 0, Node: -1})
	}
	a.AddTerminal(len(a.nodes)-1, t)
}

// IncrementAllIndex adds inc to every non-terminal target. It is used
// before appending a to another automaton of length inc.
func (a *Automaton[C, T]) IncrementAllIndex(inc int) {
	for i := range a.nodes {
		a.nodes[i].incrementAllIndex(inc)
	}
}

// Append moves all of other's nodes onto the end of a, leaving other
// empty. The caller must already have shifted other by a.Len().
func (a *Automaton[C, T]) Append(other *Automaton[C, T]) {
	a.nodes = append(a.nodes, other.nodes...)
	other.nodes = nil
}

// Clone returns a deep copy of a.
func (a *Automaton[C, T]) Clone() *Automaton[C, T] {
	out := &Automaton[C, T]{nodes: make([]Node[C, T], len(a.nodes))}
	for i, n := range a.nodes {
		out.nodes[i] = n.clone()
	}
	return out
}

// Validate checks that every non-terminal edge targets a node inside the
// automaton and that terminal edges carry NoTarget.
func (a *Automaton[C, T]) Validate() error {
	for i, n := range a.nodes {
		for _, e := range n.edges {
			if e.State.kind == StateTerminal {
				if e.Target != NoTarget {
					return &IndexError{Index: e.Target, Len: len(a.nodes), Node: i}
				}
				continue
			}
			if e.Target < 0 || e.Target >= len(a.nodes) {
				return &IndexError{Index: e.Target, Len: len(a.nodes), Node: i}
			}
		}
	}
	return nil
}

// String dumps the automaton one node per line.
func (a *Automaton[C, T]) String() string {
	var sb strings.Builder
	for i, n := range a.nodes {
		fmt.Fprintf(&sb, "%d:", i)
		for _, e := range n.edges {
			if e.State.kind == StateTerminal {
				fmt.Fprintf(&sb, " %v", e.State)
				continue
			}
			fmt.Fprintf(&sb, " %v->%d", e.State, e.Target)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
