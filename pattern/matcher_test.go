package pattern_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/pattern"
)

type testRecognizer struct {
	names []string
	vocab testVocab
}

func (r testRecognizer) Vocabulary() revtree.Vocabulary { return r.vocab }
func (r testRecognizer) RuleNames() []string            { return r.names }

type testVocab struct {
	symbolic map[int]string
	max      int
}

func (v testVocab) LiteralName(int) (string, bool)   { return "", false }
func (v testVocab) SymbolicName(t int) (string, bool) { s, ok := v.symbolic[t]; return s, ok }
func (v testVocab) MaxTokenType() int                 { return v.max }

func TestMatchConcreteChildren(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.pattern")
	defer teardown()

	a := revtree.NewTerminal(1, revtree.NewSymbol().WithType(1).WithText("a"))
	b := revtree.NewTerminal(2, revtree.NewSymbol().WithType(2).WithText("b"))
	root := revtree.MustNewRule(0, a, b)

	pat := revtree.NewPattern(
		revtree.Concrete(revtree.NewSymbol().WithType(1).WithText("a")),
		revtree.TokenHole(2, "second"),
	)

	m := pattern.NewMatcher(revtree.FieldType.With(revtree.FieldText))
	ok, bindings := m.Match(pat, root)
	if !ok {
		t.Fatalf("expected match to succeed")
	}
	if bindings["second"] != b {
		t.Errorf("expected 'second' bound to b, got %v", bindings["second"])
	}
}

func TestFindAllCountsVisitedNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.pattern")
	defer teardown()

	a := revtree.NewTerminal(1, revtree.NewSymbol().WithType(1).WithText("x"))
	inner := revtree.MustNewRule(1, a)
	b := revtree.NewTerminal(1, revtree.NewSymbol().WithType(1).WithText("y"))
	root := revtree.MustNewRule(0, inner, b)

	pat := revtree.NewPattern(revtree.TokenHole(1, ""))
	m := pattern.NewMatcher(revtree.FieldType)
	results := m.FindAll(pat, root)
	if len(results) != 1 {
		t.Fatalf("expected 1 match (inner's single terminal child), got %d", len(results))
	}
	if m.Stats.NodesVisited != 4 {
		t.Errorf("expected 4 nodes visited (root, inner, a, b), got %d", m.Stats.NodesVisited)
	}
}

func TestPatternFormatterRoundtrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.pattern")
	defer teardown()

	rec := testRecognizer{
		names: []string{"expr", "term"},
		vocab: testVocab{symbolic: map[int]string{1: "PLUS"}, max: 1},
	}
	pf := pattern.New(rec, nil)
	node, n, err := pf.ParseNode("<expr>(<left:term/> <PLUS> <right:term/>)")
	if err != nil {
		t.Fatalf("ParseNode: %v", err)
	}
	if n != len("<expr>(<left:term/> <PLUS> <right:term/>)") {
		t.Errorf("expected full consumption, consumed %d", n)
	}
	if node.Kind() != revtree.PatternKind || node.Index() != 0 {
		t.Errorf("unexpected node: %v", node)
	}
	out, err := pf.FormatNode(node)
	if err != nil {
		t.Fatalf("FormatNode: %v", err)
	}
	t.Logf("formatted: %q", out)
	// With a recognizer configured, rule holes are rendered by name
	// without the trailing '/' marker.
	if out != "<expr>(<left:term> <PLUS> <right:term>)" {
		t.Errorf("roundtrip mismatch, got %q", out)
	}
}
