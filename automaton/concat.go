package automaton

// Concat splices frag after node src.
//
// The indices inside frag are shifted by the current length of a, an
// epsilon edge is added from src to the node that was frag's node 0, and
// frag's nodes are appended. a.Len() grows by exactly frag.Len(). frag is
// consumed and left empty.
//
//	src ... [a nodes] | ε(src -> len) | [frag nodes shifted by len]
func (a *Automaton[C, T]) Concat(src int, frag *Automaton[C, T]) {
	if src < 0 || src >= len(a.nodes) {
		panic(&IndexError{Index: src, Len: len(a.nodes), Node: -1})
	}
	if frag.Len() == 0 {
		return
	}
	currentLen := a.Len()
	frag.IncrementAllIndex(currentLen)
	a.AddEpsilon(src, currentLen)
	a.Append(frag)
}

// ConcatTail splices frag after the last node. On an empty automaton the
// fragment is adopted as is.
func (a *Automaton[C, T]) ConcatTail(frag *Automaton[C, T]) {
	if a.Len() == 0 {
		a.Append(frag)
		return
	}
	a.Concat(a.Len()-1, frag)
}

// ConcatTailN chains n independent copies of frag after the last node.
// frag itself is left untouched.
func (a *Automaton[C, T]) ConcatTailN(frag *Automaton[C, T], n int) {
	for i := 0; i < n; i++ {
		a.ConcatTail(frag.Clone())
	}
}

// Union returns an automaton accepting what any of the branches accepts.
//
// Node 0 forks by epsilon into each branch, and the last node of every
// branch is joined by epsilon into a fresh shared exit node, which becomes
// the last node of the result. The branches are consumed.
func Union[C Symbol, T any](branches ...*Automaton[C, T]) *Automaton[C, T] {
	out := Empty[C, T]()
	exits := make([]int, 0, len(branches))
	for _, b := range branches {
		if b.Len() == 0 {
			exits = append(exits, 0)
			continue
		}
		out.Concat(0, b)
		exits = append(exits, out.Len()-1)
	}
	out.Push(Node[C, T]{})
	exit := out.Len() - 1
	for _, e := range exits {
		out.AddEpsilon(e, exit)
	}
	return out
}
