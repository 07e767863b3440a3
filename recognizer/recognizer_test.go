package recognizer_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/recognizer"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

func TestMapVocabulary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.recognizer")
	defer teardown()

	v := recognizer.NewMapVocabulary().Put(1, "PLUS", "+").Put(2, "NUM", "")
	if name, ok := v.SymbolicName(1); !ok || name != "PLUS" {
		t.Errorf("expected SymbolicName(1)=PLUS, got %q, %v", name, ok)
	}
	if lit, ok := v.LiteralName(1); !ok || lit != "+" {
		t.Errorf("expected LiteralName(1)=+, got %q, %v", lit, ok)
	}
	if _, ok := v.LiteralName(2); ok {
		t.Errorf("expected no literal name for 2")
	}
	if v.MaxTokenType() != 2 {
		t.Errorf("expected MaxTokenType()=2, got %d", v.MaxTokenType())
	}
}

var inputStrings = []string{
	"1",
	"1+12",
	"1,22,333",
}

var tokenCounts = []int{1, 3, 5}

const numTokenID = 3

func TestLexAdapter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.recognizer")
	defer teardown()

	literals := []string{"+", ","}
	tokenIDs := map[string]int{"+": 1, ",": 2}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[0-9]+`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return s.Token(numTokenID, string(m.Bytes), m), nil
		})
	}
	lm, err := recognizer.NewLexAdapter(init, literals, nil, tokenIDs)
	if err != nil {
		t.Fatalf("NewLexAdapter: %v", err)
	}
	for i, input := range inputStrings {
		scanner, err := lm.Scanner(input)
		if err != nil {
			t.Fatalf("Scanner(%q): %v", input, err)
		}
		count := 0
		for {
			sym := scanner.NextSymbol()
			if sym.IsEOF() {
				break
			}
			t.Logf(" %4d | %8s", sym.Type, sym.Text)
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("input #%d (%q): expected %d tokens, got %d", i, input, tokenCounts[i], count)
		}
	}
}

func TestMapRecognizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "revtree.recognizer")
	defer teardown()

	v := recognizer.NewMapVocabulary().Put(1, "PLUS", "+")
	rec := recognizer.NewMapRecognizer(v, "expr", "term")
	if len(rec.RuleNames()) != 2 || rec.RuleNames()[1] != "term" {
		t.Errorf("unexpected rule names: %v", rec.RuleNames())
	}
	var _ revtree.Recognizer = rec
}
