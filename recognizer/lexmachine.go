package recognizer

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/revtree"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

func tracer() tracing.Trace {
	return tracing.Select("revtree.recognizer")
}

// unknownLine is passed to Symbol.WithPosition's line argument: a
// lexmachine.Token carries column offsets but no line number, so line
// tracking stays unset rather than fabricating one.
const unknownLine = -1

// LexAdapter wraps a github.com/timtadh/lexmachine DFA-based lexer,
// consolidating the teacher's two near-duplicate adapters
// (lr/scanner/lexmachine.go and lr/scanner/lexmach/lexmachine.go) into
// one, emitting revtree.Symbol instead of a gorgo.Token.
type LexAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLexAdapter builds a lexer recognizing literals ('+', ';', …) and
// keywords ("if", "for", …), each mapped to its token type by
// tokenIDs, with any additional rules installed by init before
// compiling the DFA.
func NewLexAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIDs map[string]int) (*LexAdapter, error) {
	adapter := &LexAdapter{Lexer: lexmachine.NewLexer()}
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), makeAction(lit, tokenIDs[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), makeAction(name, tokenIDs[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

func makeAction(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// LexScanner scans an input string into a sequence of revtree.Symbol
// values, one lexmachine.Token at a time.
type LexScanner struct {
	scanner *lexmachine.Scanner
	onError func(error)
}

// Scanner creates a LexScanner over input.
func (lm *LexAdapter) Scanner(input string) (*LexScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LexScanner{scanner: s, onError: func(e error) { tracer().Errorf("scanner error: %v", e) }}, nil
}

// SetErrorHandler installs h as the handler invoked on unconsumed
// input, replacing the default error-logging handler.
func (ls *LexScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = func(e error) { tracer().Errorf("scanner error: %v", e) }
	}
	ls.onError = h
}

// NextSymbol returns the next revtree.Symbol, or revtree.EOFSymbol()
// once the input is exhausted.
func (ls *LexScanner) NextSymbol() revtree.Symbol {
	tok, err, eof := ls.scanner.Next()
	for err != nil {
		ls.onError(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			ls.scanner.TC = ui.FailTC
		}
		tok, err, eof = ls.scanner.Next()
	}
	if eof {
		return revtree.EOFSymbol()
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token: %v", token)
	// lexmachine.Token carries StartColumn/EndColumn but no line number
	// (the teacher's lr/scanner adapters never read one either), so the
	// symbol's Line stays at its unset default and only Position/Span
	// are filled in from attested fields.
	return revtree.NewSymbol().
		WithType(token.Type).
		WithText(string(token.Lexeme)).
		WithSpan(token.StartColumn, token.EndColumn).
		WithPosition(unknownLine, token.StartColumn)
}

// All drains the scanner into a slice of symbols, stopping at EOF
// without including it.
func (ls *LexScanner) All() []revtree.Symbol {
	var out []revtree.Symbol
	for {
		sym := ls.NextSymbol()
		if sym.IsEOF() {
			return out
		}
		out = append(out, sym)
	}
}
