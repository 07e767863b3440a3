package pattern

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/revtree"
)

func tracer() tracing.Trace {
	return tracing.Select("revtree.pattern")
}

// MatchResult is one successful match of a Pattern against a tree node
// (§4.5): the node itself plus every label bound while matching it.
type MatchResult struct {
	Node     *revtree.Tree
	Bindings map[string]*revtree.Tree
}

// Stats counts matcher activity across a FindAll call, a supplemented
// feature (§9) useful for judging how effective a memoized search was.
type Stats struct {
	NodesVisited int
	AttemptsMade int
	CacheHits    int
}

// Matcher matches a Pattern against tree nodes using fields as the
// symbol-field equalizer (§4.5): two Concrete elements' symbols are
// compared only on the fields fields mentions, so a formatter that
// never prints e.g. Start/Stop offsets makes the matcher tolerant of
// offset drift.
type Matcher struct {
	Fields revtree.FieldSet
	Stats  Stats

	cache *treeset.Set
}

// NewMatcher returns a Matcher using fields as its symbol equalizer.
func NewMatcher(fields revtree.FieldSet) *Matcher {
	return &Matcher{
		Fields: fields,
		cache:  treeset.NewWith(utils.StringComparator),
	}
}

// memoKey hashes the (pattern, node) identity pair being attempted,
// grounded on the teacher's lr/earley item+state hashing via
// structhash (earley.go's hash(item, stateno)). Tree and Pattern carry
// only unexported fields, which structhash cannot see through, so the
// hashed struct captures pointer identity instead of field content —
// exactly what memoization needs, since FindAll only ever asks "have I
// already tried this exact pattern object against this exact node
// pointer" within one walk.
func memoKey(pat *revtree.Pattern, node *revtree.Tree) string {
	key, err := structhash.Hash(struct {
		Pat  string
		Node string
	}{Pat: fmt.Sprintf("%p", pat), Node: fmt.Sprintf("%p", node)}, 1)
	if err != nil {
		panic(err)
	}
	return key
}

// Match reports whether pat matches node's children, binding every
// labeled hole along the way. A Rule node matches when its children
// align pairwise with pat's elements; a Terminal/Error node only
// matches a pattern with zero elements.
func (m *Matcher) Match(pat *revtree.Pattern, node *revtree.Tree) (bool, map[string]*revtree.Tree) {
	bindings := map[string]*revtree.Tree{}
	ok := m.match(pat, node, bindings)
	if !ok {
		return false, nil
	}
	return true, bindings
}

func (m *Matcher) match(pat *revtree.Pattern, node *revtree.Tree, bindings map[string]*revtree.Tree) bool {
	m.Stats.AttemptsMade++
	if node.Kind() != revtree.RuleKind {
		// Only Rule nodes own children to match a pattern body
		// against; a leaf only "matches" the empty pattern.
		return pat.Len() == 0
	}
	children := node.Children()
	if pat.Len() != len(children) {
		return false
	}
	for i, elem := range pat.Elements {
		child := children[i]
		if !m.matchElement(elem, child, bindings) {
			return false
		}
	}
	return true
}

func (m *Matcher) matchElement(elem revtree.PatternElement, child *revtree.Tree, bindings map[string]*revtree.Tree) bool {
	switch elem.Kind {
	case revtree.ConcreteElement:
		if child.Kind() != revtree.TerminalKind && child.Kind() != revtree.ErrorKind {
			return false
		}
		if !m.Fields.Equal(elem.Symbol, child.Symbol()) {
			return false
		}
	case revtree.TokenHoleElement:
		if child.Kind() != revtree.TerminalKind && child.Kind() != revtree.ErrorKind {
			return false
		}
		if child.Index() != elem.TokenType {
			return false
		}
		if elem.Label != "" {
			bindings[elem.Label] = child
		}
	case revtree.RuleHoleElement:
		if child.Kind() != revtree.RuleKind || child.Index() != elem.RuleID {
			return false
		}
		if elem.Nested != nil && !m.match(elem.Nested, child, bindings) {
			return false
		}
		if elem.Label != "" {
			bindings[elem.Label] = child
		}
	}
	return true
}

// FindAll walks root in pre-order and reports every node whose children
// match pat, skipping nodes already attempted with the same pattern
// object during this walk (tracked via memoKey). Stats and the memo
// cache are reset at the start of each call.
func (m *Matcher) FindAll(pat *revtree.Pattern, root *revtree.Tree) []MatchResult {
	m.Stats = Stats{}
	m.cache = treeset.NewWith(utils.StringComparator)
	var results []MatchResult
	root.Walk(func(node *revtree.Tree) bool {
		m.Stats.NodesVisited++
		key := memoKey(pat, node)
		if m.cache.Contains(key) {
			m.Stats.CacheHits++
			return true
		}
		m.cache.Add(key)
		if ok, bindings := m.Match(pat, node); ok {
			results = append(results, MatchResult{Node: node, Bindings: bindings})
		}
		return true
	})
	tracer().Debugf("FindAll: visited=%d attempts=%d hits=%d matches=%d",
		m.Stats.NodesVisited, m.Stats.AttemptsMade, m.Stats.CacheHits, len(results))
	return results
}
