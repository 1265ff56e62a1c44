package automaton

import (
	"errors"
	"reflect"
	"testing"
)

// sym is a test symbol matching a single rune; '.' matches anything.
type sym rune

func (s sym) Matches(r rune) bool {
	return s == '.' || rune(s) == r
}

type testNFA = Automaton[sym, string]
type testNode = Node[sym, string]

func contentNode(c sym, target int) testNode {
	var n testNode
	n.AddContent(c, target)
	return n
}

func epsilonNode(target int) testNode {
	var n testNode
	n.AddEpsilon(target)
	return n
}

func terminalNode(t string) testNode {
	var n testNode
	n.AddTerminal(t)
	return n
}

func build(nodes ...testNode) *testNFA {
	a := New[sym, string]()
	for _, n := range nodes {
		a.Push(n)
	}
	return a
}

func TestStateAccessors(t *testing.T) {
	c := Content[sym, string]('a')
	if !c.IsContent() || c.IsTerminal() || c.IsEpsilon() {
		t.Errorf("content state kind = %v", c.Kind())
	}
	if got, ok := c.Content(); !ok || got != 'a' {
		t.Errorf("Content() = %v, %v", got, ok)
	}
	if _, ok := c.Terminal(); ok {
		t.Error("content state returned a terminal")
	}

	term := Terminal[sym, string]("T")
	if got, ok := term.Terminal(); !ok || got != "T" {
		t.Errorf("Terminal() = %v, %v", got, ok)
	}
	if _, ok := term.Content(); ok {
		t.Error("terminal state returned content")
	}

	eps := Epsilon[sym, string]()
	if !eps.IsEpsilon() {
		t.Errorf("epsilon state kind = %v", eps.Kind())
	}
}

func TestNodeAddTerminalUsesNoTarget(t *testing.T) {
	var n testNode
	n.AddTransition(Terminal[sym, string]("T"), 7)
	if got := n.Edges()[0].Target; got != NoTarget {
		t.Errorf("terminal target = %d, want NoTarget", got)
	}
}

func TestNodeCollect(t *testing.T) {
	var n testNode
	n.AddContent('a', 1)
	n.AddContent('b', 100)
	n.AddContent('a', 200)
	n.AddEpsilon(3)
	n.AddTerminal("T")

	if got, want := n.Next('a'), []int{1, 200}; !reflect.DeepEqual(got, want) {
		t.Errorf("Next('a') = %v, want %v", got, want)
	}
	if got := n.Next('c'); got != nil {
		t.Errorf("Next('c') = %v, want nil", got)
	}
	if got, want := n.Terminals(), []string{"T"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Terminals() = %v, want %v", got, want)
	}
}

func TestFromContent(t *testing.T) {
	want := build(contentNode('a', 1), testNode{})
	if got := FromContent[sym, string]('a'); !reflect.DeepEqual(got, want) {
		t.Errorf("FromContent('a') =\n%v\nwant\n%v", got, want)
	}
}

func TestFromTerminal(t *testing.T) {
	want := build(terminalNode("T"))
	if got := FromTerminal[sym, string]("T"); !reflect.DeepEqual(got, want) {
		t.Errorf("FromTerminal = %v, want %v", got, want)
	}
}

func TestIncrementAllIndex(t *testing.T) {
	n := contentNode('a', 1)
	n.AddEpsilon(2)
	n.AddTerminal("T")
	a := build(n)
	a.IncrementAllIndex(2)

	edges := a.Node(0).Edges()
	if edges[0].Target != 3 || edges[1].Target != 4 {
		t.Errorf("shifted targets = %d, %d, want 3, 4", edges[0].Target, edges[1].Target)
	}
	if edges[2].Target != NoTarget {
		t.Errorf("terminal target = %d, want NoTarget", edges[2].Target)
	}
}

func TestAppendEmptiesOther(t *testing.T) {
	a := build(testNode{})
	b := build(testNode{}, testNode{})
	a.Append(b)
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}
	if b.Len() != 0 {
		t.Errorf("appended automaton still holds %d nodes", b.Len())
	}
}

func TestSetTerminalToLast(t *testing.T) {
	a := build(contentNode('q', 1), testNode{})
	a.SetTerminalToLast("T")
	want := build(contentNode('q', 1), terminalNode("T"))
	if !reflect.DeepEqual(a, want) {
		t.Errorf("got\n%v\nwant\n%v", a, want)
	}
}

func TestNodeOutOfRange(t *testing.T) {
	a := build(testNode{})

	if _, err := a.Lookup(1); err == nil {
		t.Fatal("Lookup(1) succeeded on a one-node automaton")
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("Node(5) panic = %v, want error", r)
		}
		var ierr *IndexError
		if !errors.As(err, &ierr) || ierr.Index != 5 || ierr.Len != 1 {
			t.Errorf("panic value = %v", err)
		}
	}()
	a.Node(5)
}

func TestValidate(t *testing.T) {
	good := build(contentNode('a', 1), terminalNode("T"))
	if err := good.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	bad := build(contentNode('a', 2), testNode{})
	err := bad.Validate()
	var ierr *IndexError
	if !errors.As(err, &ierr) {
		t.Fatalf("Validate() = %v, want *IndexError", err)
	}
	if ierr.Node != 0 || ierr.Index != 2 {
		t.Errorf("IndexError = %+v", ierr)
	}
}

func TestClone(t *testing.T) {
	a := build(contentNode('a', 1), testNode{})
	c := a.Clone()
	c.AddEpsilon(1, 0)
	if a.Node(1).Len() != 0 {
		t.Error("mutating the clone changed the original")
	}
}

func TestString(t *testing.T) {
	a := build(contentNode('a', 1), terminalNode("T"))
	want := "0: Content(97)->1\n1: Terminal(T)\n"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
