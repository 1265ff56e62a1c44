package automaton

import "errors"

// ErrStepLimit is returned by RunLimited when the walk exceeds its step budget.
var ErrStepLimit = errors.New("automaton: step limit exceeded")

// Match is a terminal reached after consuming the first End runes of the input.
type Match[T any] struct {
	Terminal T
	End      int
}

// walker enumerates the paths through an automaton for one input.
type walker[C Symbol, T any] struct {
	a     *Automaton[C, T]
	input []rune
	// prefixes reports terminals at every position instead of only at the end.
	prefixes bool
	maxSteps int
	steps    int
	matches  []Match[T]
	err      error
}

// Run walks the automaton over input and returns the terminal of every path
// that consumes the whole input, in discovery order. Terminals reached by
// independent paths are all reported, so the result may hold duplicates.
func (a *Automaton[C, T]) Run(input string) []T {
	w := walker[C, T]{a: a, input: []rune(input)}
	w.start()
	return w.terminals()
}

// RunLimited is Run with a budget of maxSteps visited nodes. When the budget
// is exhausted it returns the terminals found so far and ErrStepLimit.
// A maxSteps of zero or less means no limit.
func (a *Automaton[C, T]) RunLimited(input string, maxSteps int) ([]T, error) {
	w := walker[C, T]{a: a, input: []rune(input), maxSteps: maxSteps}
	w.start()
	return w.terminals(), w.err
}

// Scan walks the automaton over input and reports every terminal reached
// after each prefix of the input, including the empty prefix. End is
// measured in runes.
func (a *Automaton[C, T]) Scan(input string) []Match[T] {
	w := walker[C, T]{a: a, input: []rune(input), prefixes: true}
	w.start()
	return w.matches
}

func (w *walker[C, T]) start() {
	if w.a.Len() == 0 {
		return
	}
	w.walk(0, 0, []int{0})
}

func (w *walker[C, T]) terminals() []T {
	if len(w.matches) == 0 {
		return nil
	}
	out := make([]T, len(w.matches))
	for i, m := range w.matches {
		out[i] = m.Terminal
	}
	return out
}

// walk explores node idx at input position pos. seg holds the nodes
// entered through epsilon edges since the last consumed character; an
// epsilon edge back into seg would loop without consuming input and is
// skipped.
func (w *walker[C, T]) walk(idx, pos int, seg []int) {
	if w.err != nil {
		return
	}
	w.steps++
	if w.maxSteps > 0 && w.steps > w.maxSteps {
		w.err = ErrStepLimit
		return
	}

	for _, e := range w.a.nodes[idx].edges {
		switch e.State.kind {
		case StateTerminal:
			if w.prefixes || pos == len(w.input) {
				w.matches = append(w.matches, Match[T]{Terminal: e.State.terminal, End: pos})
			}
		case StateEpsilon:
			if contains(seg, e.Target) {
				continue
			}
			w.walk(e.Target, pos, append(seg, e.Target))
		case StateContent:
			if pos < len(w.input) && e.State.content.Matches(w.input[pos]) {
				w.walk(e.Target, pos+1, []int{e.Target})
			}
		}
	}
}

func contains(seg []int, idx int) bool {
	for _, i := range seg {
		if i == idx {
			return true
		}
	}
	return false
}
