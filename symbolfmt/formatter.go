package symbolfmt

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/kernel"
)

func tracer() tracing.Trace {
	return tracing.Select("revtree.symbolfmt")
}

// Formatter is a reversible symbol formatter (§4.2): one or more
// alternative fragment sequences, tried in order. The first variant
// that succeeds wins, both when formatting and when parsing.
type Formatter struct {
	variants []kernel.Fragment[Context]
	fields   revtree.FieldSet
	vocab    revtree.Vocabulary
	rec      revtree.Recognizer
}

// New returns a Formatter with a single variant built from b.
func New(b *Builder) (*Formatter, error) {
	f, fields, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Formatter{variants: []kernel.Fragment[Context]{f}, fields: fields}, nil
}

// NewAlternatives returns a Formatter trying each builder's variant in
// order, the fields reported being the union of every variant's
// (§4.5: a matcher using this formatter tolerates noise in any field
// any variant might omit).
func NewAlternatives(builders ...*Builder) (*Formatter, error) {
	fm := &Formatter{}
	for _, b := range builders {
		f, fields, err := b.Build()
		if err != nil {
			return nil, err
		}
		fm.variants = append(fm.variants, f)
		fm.fields = fm.fields.With(fields)
	}
	return fm, nil
}

// WithVocabulary returns a copy of f that consults vocab for symbolic
// and literal type names.
func (f *Formatter) WithVocabulary(vocab revtree.Vocabulary) *Formatter {
	g := *f
	g.vocab = vocab
	return &g
}

// WithRecognizer returns a copy of f that consults rec for rule names.
func (f *Formatter) WithRecognizer(rec revtree.Recognizer) *Formatter {
	g := *f
	g.rec = rec
	return &g
}

// FieldSet reports which Symbol fields this formatter's fragments may
// print, across all its variants, for use by the pattern matcher's
// symbol-field equalizer (§4.5).
func (f *Formatter) FieldSet() revtree.FieldSet {
	return f.fields
}

// Format renders sym using the first variant that succeeds.
func (f *Formatter) Format(sym revtree.Symbol) (string, error) {
	ctx := newContext(kernel.NewErrorLog(), f.vocab, f.rec)
	ctx.FormatSrc = &sym
	for _, v := range f.variants {
		buf := &kernel.Buffer{}
		if v.Format(ctx, buf) {
			return buf.String(), nil
		}
	}
	return "", &revtree.FormatError{Msg: "no variant applied to symbol " + sym.String()}
}

// Parse parses sym from the start of text using the first variant that
// succeeds; it is an error if that variant leaves any input unconsumed.
func (f *Formatter) Parse(text string) (revtree.Symbol, error) {
	sym, n, err := f.parseAt(text, 0)
	if err != nil {
		return revtree.Symbol{}, err
	}
	if n != len(text) {
		return revtree.Symbol{}, &revtree.ParseError{Input: text, Index: n, Messages: []string{"unconsumed trailing input"}}
	}
	return sym, nil
}

// parseAt attempts every variant starting at pos, returning the parsed
// symbol and the position just past it. On total failure it returns the
// furthest-progress diagnostic across every variant tried.
func (f *Formatter) parseAt(text string, pos int) (revtree.Symbol, int, error) {
	errlog := kernel.NewErrorLog()
	for _, v := range f.variants {
		ctx := newContext(errlog, f.vocab, f.rec)
		r := v.Parse(ctx, text, pos)
		if !kernel.IsFail(r) {
			return ctx.Sym, r, nil
		}
	}
	return revtree.Symbol{}, 0, &revtree.ParseError{
		Input:    text,
		Index:    errlog.MaxPos,
		Messages: errlog.Messages,
	}
}

// peekAt is like parseAt but non-mutating: it returns the position just
// past the symbol, or a failure, without building the symbol.
func (f *Formatter) peekAt(text string, pos int) int {
	errlog := kernel.NewErrorLog()
	for _, v := range f.variants {
		ctx := newContext(errlog, f.vocab, f.rec)
		r := v.Peek(ctx, text, pos)
		if !kernel.IsFail(r) {
			return r
		}
	}
	return kernel.Fail(pos)
}

// ParseList parses zero or more symbol renderings separated by
// arbitrary whitespace, consuming the entire string (§4.2, §6.2). A
// parsed symbol whose format did not supply an index (it is left at
// its default, -1) is assigned the next sequential index instead.
func (f *Formatter) ParseList(text string) ([]revtree.Symbol, error) {
	var out []revtree.Symbol
	pos := 0
	for {
		pos = skipWhitespace(text, pos)
		if pos >= len(text) {
			break
		}
		sym, n, err := f.parseAt(text, pos)
		if err != nil {
			return out, err
		}
		if n == pos {
			tracer().Errorf("symbolfmt: ParseList stalled at %d, aborting", pos)
			return out, &revtree.ParseError{Input: text, Index: pos, Messages: []string{"empty match, would loop forever"}}
		}
		if sym.Index == IndexField.defaultValue() {
			sym.Index = len(out)
		}
		out = append(out, sym)
		pos = n
	}
	return out, nil
}

func skipWhitespace(text string, pos int) int {
	p := pos
	for p < len(text) && (text[p] == ' ' || text[p] == '\t' || text[p] == '\n' || text[p] == '\r') {
		p++
	}
	return p
}
