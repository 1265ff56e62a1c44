package compiler

import (
	"unicode/utf8"

	"github.com/KromDaniel/flexgen/syntax"
)

// LiteralPrefix returns the literal text every string accepted by nfa
// starts with. It follows the chain of nodes with a single outgoing edge
// from node 0 and stops at the first branch, wildcard or terminal.
func LiteralPrefix[T any](nfa *NFA[T]) string {
	var prefix []rune
	idx := 0
	for steps := 0; steps < nfa.Len(); steps++ {
		edges := nfa.Node(idx).Edges()
		if len(edges) != 1 {
			break
		}
		e := edges[0]
		if e.State.IsEpsilon() {
			idx = e.Target
			continue
		}
		item, ok := e.State.Content()
		if !ok {
			break
		}
		r, ok := item.Literal()
		if !ok {
			break
		}
		prefix = append(prefix, r)
		idx = e.Target
	}
	return string(prefix)
}

// countEdges returns the number of content and epsilon edges in nfa.
func countEdges[T any](nfa *NFA[T]) (content, epsilon int) {
	for i := 0; i < nfa.Len(); i++ {
		for _, e := range nfa.Node(i).Edges() {
			switch {
			case e.State.IsContent():
				content++
			case e.State.IsEpsilon():
				epsilon++
			}
		}
	}
	return content, epsilon
}

// hasNestedQuantifiers reports whether a quantified group itself contains
// a quantifier, as in (a*)* or (ab+){2}. Such patterns can reach the same
// node by many paths and make Run report a terminal many times.
func hasNestedQuantifiers(items []syntax.Item) bool {
	var groups []bool // whether each open group holds a quantifier
	closedQuantified := false
	afterClose := false
	for _, it := range items {
		switch {
		case it.Kind == syntax.ParenL:
			groups = append(groups, false)
		case it.Kind == syntax.ParenR:
			if len(groups) == 0 {
				return false
			}
			closedQuantified = groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			if closedQuantified && len(groups) > 0 {
				groups[len(groups)-1] = true
			}
			afterClose = true
			continue
		case it.IsQuantifier():
			if afterClose && closedQuantified {
				return true
			}
			if len(groups) > 0 {
				groups[len(groups)-1] = true
			}
		}
		afterClose = false
	}
	return false
}

func hasMultibyte(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] >= utf8.RuneSelf {
			return true
		}
	}
	return false
}
