package revtree

import (
	"fmt"

	"github.com/parsekit/revtree/config"
)

// NodeKind tags the four variants a Tree may take (§3). Only Rule nodes
// own children; Terminal and Error nodes own exactly one Symbol; a
// Pattern node owns a Pattern and appears only inside the pattern
// matcher's own tree, never inside the output of parsing a concrete
// tree format.
type NodeKind int8

const (
	RuleKind NodeKind = iota
	TerminalKind
	ErrorKind
	PatternKind
)

func (k NodeKind) String() string {
	switch k {
	case RuleKind:
		return "rule"
	case TerminalKind:
		return "terminal"
	case ErrorKind:
		return "error"
	case PatternKind:
		return "pattern"
	default:
		return fmt.Sprintf("NodeKind(%d)", int8(k))
	}
}

// Tree is a node in the tagged tree structure of §3. Trees are
// immutable once constructed; the parent link is a non-owning
// back-reference established at construction time, never used to free
// the parent. A root marked with SetRoot is its own parent; a node that
// was never attached has a nil parent and is also treated as a root.
type Tree struct {
	kind     NodeKind
	index    int // rule id (Rule/Pattern) or token type (Terminal/Error)
	symbol   Symbol
	pattern  *Pattern
	children []*Tree
	parent   *Tree
}

// NewTerminal returns a detached Terminal node for token type typ,
// carrying sym as its Symbol.
func NewTerminal(typ int, sym Symbol) *Tree {
	return &Tree{kind: TerminalKind, index: typ, symbol: sym}
}

// NewError returns a detached Error node for token type typ, carrying
// sym as its Symbol. Error nodes mark a recovery/error token.
func NewError(typ int, sym Symbol) *Tree {
	return &Tree{kind: ErrorKind, index: typ, symbol: sym}
}

// NewPatternNode returns a detached Pattern node for rule id ruleID,
// wrapping pat. Pattern nodes never appear in the output of parsing a
// concrete tree format (§3); they are produced only by the pattern
// formatter (revtree/pattern) when assembling a matcher's template tree.
func NewPatternNode(ruleID int, pat *Pattern) *Tree {
	return &Tree{kind: PatternKind, index: ruleID, pattern: pat}
}

// NewRule attaches children (in order) under a new Rule node for rule
// id ruleID and returns it, or an InvariantError if any child is
// already attached elsewhere. With config.PanicOnInvariantViolation set,
// it panics instead of returning the error (§7: invariant violations
// inside constructed trees are programmer errors).
func NewRule(ruleID int, children ...*Tree) (*Tree, error) {
	for _, c := range children {
		if c.parent != nil {
			err := &InvariantError{Msg: fmt.Sprintf("child %s already has a parent, cannot attach to rule %d", c.kind, ruleID)}
			if config.PanicOnInvariantViolation() {
				panic(err)
			}
			return nil, err
		}
	}
	n := &Tree{kind: RuleKind, index: ruleID, children: append([]*Tree(nil), children...)}
	for _, c := range n.children {
		c.parent = n
	}
	return n, nil
}

// MustNewRule is NewRule, panicking on error. Intended for tests and
// builders that already guarantee detached children.
func MustNewRule(ruleID int, children ...*Tree) *Tree {
	n, err := NewRule(ruleID, children...)
	if err != nil {
		panic(err)
	}
	return n
}

// SetRoot marks t as the root of its tree: t's parent becomes itself.
// It is an InvariantError (or a panic, per config) to call SetRoot on a
// node that already has a parent other than itself.
func SetRoot(t *Tree) error {
	if t.parent != nil && t.parent != t {
		err := &InvariantError{Msg: "cannot make an already-attached node the root"}
		if config.PanicOnInvariantViolation() {
			panic(err)
		}
		return err
	}
	t.parent = t
	return nil
}

// Kind returns the node's variant tag.
func (t *Tree) Kind() NodeKind { return t.kind }

// Index returns the rule id (Rule/Pattern nodes) or token type
// (Terminal/Error nodes).
func (t *Tree) Index() int { return t.index }

// Symbol returns the node's Symbol. Only meaningful for Terminal/Error
// nodes; zero value otherwise.
func (t *Tree) Symbol() Symbol { return t.symbol }

// Pattern returns the node's Pattern. Only meaningful for Pattern
// nodes; nil otherwise.
func (t *Tree) Pattern() *Pattern { return t.pattern }

// Children returns the node's children. Only Rule nodes have any.
func (t *Tree) Children() []*Tree { return t.children }

// Parent returns the node's enclosing node: t itself for a root marked
// with SetRoot, nil for a node that was never attached.
func (t *Tree) Parent() *Tree { return t.parent }

// IsRoot reports whether t is its own parent or has no parent.
func (t *Tree) IsRoot() bool { return t.parent == t || t.parent == nil }

// Depth returns the number of parent hops from t to the root.
func (t *Tree) Depth() int {
	d := 0
	for n := t; !n.IsRoot(); n = n.parent {
		d++
	}
	return d
}

// Height returns the maximum depth of any descendant terminal/error
// leaf, minus t's own depth. A leaf (Terminal, Error or childless Rule)
// has height 0.
func (t *Tree) Height() int {
	if len(t.children) == 0 {
		return 0
	}
	max := 0
	for _, c := range t.children {
		if h := c.Height() + 1; h > max {
			max = h
		}
	}
	return max
}

// Walk visits t and every descendant in pre-order, calling visit(node)
// for each. Walk does not stop early; visit returning false only skips
// that node's children.
func (t *Tree) Walk(visit func(*Tree) bool) {
	if t == nil {
		return
	}
	if !visit(t) {
		return
	}
	for _, c := range t.children {
		c.Walk(visit)
	}
}

func (t *Tree) String() string {
	switch t.kind {
	case RuleKind:
		return fmt.Sprintf("Rule(%d, %d children)", t.index, len(t.children))
	case TerminalKind:
		return fmt.Sprintf("Terminal(%d, %q)", t.index, t.symbol.Text)
	case ErrorKind:
		return fmt.Sprintf("Error(%d, %q)", t.index, t.symbol.Text)
	case PatternKind:
		return fmt.Sprintf("Pattern(%d)", t.index)
	default:
		return "Tree(?)"
	}
}
