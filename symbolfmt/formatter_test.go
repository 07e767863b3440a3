package symbolfmt_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/symbolfmt"
)

type testVocab struct {
	symbolic map[int]string
	literal  map[int]string
	max      int
}

func (v testVocab) LiteralName(t int) (string, bool)  { s, ok := v.literal[t]; return s, ok }
func (v testVocab) SymbolicName(t int) (string, bool) { s, ok := v.symbolic[t]; return s, ok }
func (v testVocab) MaxTokenType() int                 { return v.max }

func TestSimpleRoundtrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.symbolfmt")
	defer teardown()

	vocab := testVocab{symbolic: map[int]string{7: "TOK"}, max: 7}
	fm := symbolfmt.Simple().WithVocabulary(vocab)
	sym := revtree.NewSymbol().WithType(7).WithText("hello")
	out, err := fm.Format(sym)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	t.Logf("formatted: %q", out)
	if out != "(TOK 'hello')" {
		t.Errorf("expected %q, got %q", "(TOK 'hello')", out)
	}
	got, err := fm.Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Type != sym.Type || got.Text != sym.Text {
		t.Errorf("roundtrip mismatch: got %v, want type=%d text=%q", got, sym.Type, sym.Text)
	}
}

// TestSimpleLiteralToken exercises SIMPLE's second alternative: a
// vocabulary entry with only a literal name renders bare and quoted,
// never duplicated and never parenthesized (§8).
func TestSimpleLiteralToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.symbolfmt")
	defer teardown()

	vocab := testVocab{literal: map[int]string{1: "'='"}, max: 1}
	fm := symbolfmt.Simple().WithVocabulary(vocab)
	sym := revtree.NewSymbol().WithType(1).WithText("=")
	out, err := fm.Format(sym)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != "'='" {
		t.Errorf("expected %q, got %q", "'='", out)
	}
	got, err := fm.Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Type != 1 || got.Text != "=" {
		t.Errorf("roundtrip mismatch: got %v", got)
	}
}

// TestSimpleListRoundtrip exercises the §8 worked example end to end:
// a vocabulary with both symbolic and literal-only types, formatted
// and reparsed as a whitespace-separated list with sequential indices.
func TestSimpleListRoundtrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.symbolfmt")
	defer teardown()

	const idType, eqType, intType = 1, 2, 3
	vocab := testVocab{
		symbolic: map[int]string{idType: "ID", intType: "INT"},
		literal:  map[int]string{eqType: "'='"},
		max:      intType,
	}
	fm, err := symbolfmt.SimpleWithEOF()
	if err != nil {
		t.Fatalf("SimpleWithEOF: %v", err)
	}
	fm = fm.WithVocabulary(vocab)

	symbols := []revtree.Symbol{
		revtree.NewSymbol().WithType(idType).WithText("x"),
		revtree.NewSymbol().WithType(eqType).WithText("="),
		revtree.NewSymbol().WithType(intType).WithText("5"),
		revtree.EOFSymbol(),
	}
	var rendered string
	for i, sym := range symbols {
		out, err := fm.Format(sym)
		if err != nil {
			t.Fatalf("Format(%d): %v", i, err)
		}
		if i > 0 {
			rendered += " "
		}
		rendered += out
	}
	if rendered != "(ID 'x') '=' (INT '5') EOF" {
		t.Errorf("expected %q, got %q", "(ID 'x') '=' (INT '5') EOF", rendered)
	}

	got, err := fm.ParseList(rendered)
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 symbols, got %d", len(got))
	}
	wantTypes := []int{idType, eqType, intType, revtree.EOFType}
	wantTexts := []string{"x", "=", "5", "<EOF>"}
	for i, sym := range got {
		if sym.Type != wantTypes[i] || sym.Text != wantTexts[i] {
			t.Errorf("symbol %d: got type=%d text=%q, want type=%d text=%q", i, sym.Type, sym.Text, wantTypes[i], wantTexts[i])
		}
		if sym.Index != i {
			t.Errorf("symbol %d: expected sequential index %d, got %d", i, i, sym.Index)
		}
	}
}

func TestANTLRRoundtrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.symbolfmt")
	defer teardown()

	fm := symbolfmt.ANTLR()
	sym := revtree.NewSymbol().WithType(3).WithText("foo").WithIndex(2).WithSpan(10, 12).WithPosition(1, 5)
	out, err := fm.Format(sym)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	t.Logf("formatted: %q", out)
	got, err := fm.Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Type != sym.Type || got.Text != sym.Text || got.Index != sym.Index ||
		got.Start != sym.Start || got.Stop != sym.Stop || got.Line != sym.Line || got.Position != sym.Position {
		t.Errorf("roundtrip mismatch: got %v, want %v", got, sym)
	}
}

func TestSimpleWithEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.symbolfmt")
	defer teardown()

	fm, err := symbolfmt.SimpleWithEOF()
	if err != nil {
		t.Fatalf("SimpleWithEOF: %v", err)
	}
	out, err := fm.Format(revtree.EOFSymbol())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != "EOF" {
		t.Errorf("expected %q, got %q", "EOF", out)
	}
	got, err := fm.Parse("EOF")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.IsEOF() {
		t.Errorf("expected EOF symbol, got %v", got)
	}
}

func TestSymbolicVocabulary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.symbolfmt")
	defer teardown()

	vocab := testVocab{
		symbolic: map[int]string{1: "PLUS"},
		max:      1,
	}
	fm := symbolfmt.Simple().WithVocabulary(vocab)
	sym := revtree.NewSymbol().WithType(1).WithText("+")
	out, err := fm.Format(sym)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != "(PLUS '+')" {
		t.Errorf("expected %q, got %q", "(PLUS '+')", out)
	}
	got, err := fm.Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Type != 1 || got.Text != "+" {
		t.Errorf("roundtrip mismatch: got %v", got)
	}
}

func TestStrictFieldFailsOnDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.symbolfmt")
	defer teardown()

	b := symbolfmt.NewBuilder().AppendPattern("N")
	fm, err := symbolfmt.New(b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sym := revtree.NewSymbol()
	if _, err := fm.Format(sym); err == nil {
		t.Errorf("expected strict field to fail formatting a default index")
	}
}

func TestBuilderRejectsNestedOptional(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.symbolfmt")
	defer teardown()

	b := symbolfmt.NewBuilder().AppendPattern("[x[x]]")
	if b.Err() == nil {
		t.Errorf("expected a build error for nested optional groups")
	}
}

func TestParseListConcatenated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.symbolfmt")
	defer teardown()

	b := symbolfmt.NewBuilder().AppendPattern("\\[@N,B:E=\\'X\\',<I>,R:P\\]")
	fm, err := symbolfmt.New(b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a := revtree.NewSymbol().WithType(1).WithText("a").WithIndex(0).WithSpan(0, 0).WithPosition(1, 0)
	bSym := revtree.NewSymbol().WithType(2).WithText("b").WithIndex(1).WithSpan(1, 1).WithPosition(1, 1)
	out1, _ := fm.Format(a)
	out2, _ := fm.Format(bSym)
	syms, err := fm.ParseList(out1 + out2)
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(syms) != 2 || syms[0].Text != "a" || syms[1].Text != "b" {
		t.Errorf("ParseList mismatch: %v", syms)
	}
}
