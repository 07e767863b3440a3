package treefmt_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/treefmt"
)

type testRecognizer struct {
	names []string
}

func (r testRecognizer) Vocabulary() revtree.Vocabulary { return nil }
func (r testRecognizer) RuleNames() []string            { return r.names }

type testVocab struct {
	symbolic map[int]string
	max      int
}

func (v testVocab) LiteralName(int) (string, bool)    { return "", false }
func (v testVocab) SymbolicName(t int) (string, bool) { s, ok := v.symbolic[t]; return s, ok }
func (v testVocab) MaxTokenType() int                 { return v.max }

func TestSimpleTreeRoundtrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.treefmt")
	defer teardown()

	rec := testRecognizer{names: []string{"expr"}}
	vocab := testVocab{symbolic: map[int]string{1: "A", 2: "B"}, max: 2}
	a := revtree.NewTerminal(1, revtree.NewSymbol().WithType(1).WithText("a"))
	b := revtree.NewTerminal(2, revtree.NewSymbol().WithType(2).WithText("b"))
	root := revtree.MustNewRule(0, a, b)

	tf := treefmt.Simple().WithRecognizer(rec).WithVocabulary(vocab)
	out, err := tf.Format(root)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	t.Logf("formatted: %q", out)
	if out != "(expr (A 'a') (B 'b'))" {
		t.Errorf("expected %q, got %q", "(expr (A 'a') (B 'b'))", out)
	}

	got, err := tf.Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Kind() != revtree.RuleKind || len(got.Children()) != 2 {
		t.Errorf("unexpected parse result: %v", got)
	}
	if got.Children()[0].Symbol().Text != "a" || got.Children()[1].Symbol().Text != "b" {
		t.Errorf("children text mismatch: %v", got.Children())
	}
}

func TestIndentedFormatOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.treefmt")
	defer teardown()

	rec := testRecognizer{names: []string{"expr"}}
	vocab := testVocab{symbolic: map[int]string{1: "A"}, max: 1}
	a := revtree.NewTerminal(1, revtree.NewSymbol().WithType(1).WithText("a"))
	root := revtree.MustNewRule(0, a)

	tf := treefmt.Indented("  ").WithRecognizer(rec).WithVocabulary(vocab)
	out, err := tf.Format(root)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	t.Logf("formatted:\n%s", out)
	if out == "" {
		t.Errorf("expected non-empty indented output")
	}
}
