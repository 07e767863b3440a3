package symbolfmt

import (
	"fmt"

	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/kernel"
)

// Builder accumulates fragments for a single formatter variant and
// tracks which Symbol fields they touch, so the resulting Formatter can
// report its FieldSet to the pattern matcher (§4.5) without having to
// introspect the fragment tree afterwards.
type Builder struct {
	frags  []kernel.Fragment[Context]
	fields revtree.FieldSet
	err    *revtree.BuildError
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) fail(pattern string, pos int, msg string) {
	if b.err == nil {
		b.err = &revtree.BuildError{Pattern: pattern, Pos: pos, Msg: msg}
	}
}

// Err returns the first build error encountered, if any.
func (b *Builder) Err() error {
	if b.err == nil {
		return nil
	}
	return b.err
}

// Append adds a fragment built by hand (for cases the pattern-letter
// language in AppendPattern cannot express) and records the fields it
// touches.
func (b *Builder) Append(f kernel.Fragment[Context], touches revtree.FieldSet) *Builder {
	b.frags = append(b.frags, f)
	b.fields = b.fields.With(touches)
	return b
}

func fieldsOf(f kernel.Fragment[Context]) revtree.FieldSet {
	switch f.(type) {
	case TypeField, SymbolicType, CompositeType, EOF:
		return revtree.FieldType
	case LiteralType:
		// LiteralType.Parse also recovers Text from the vocabulary's
		// literal name (e.g. "'+'" -> "+"), so it touches both fields.
		return revtree.FieldType.With(revtree.FieldText)
	case *Text:
		return revtree.FieldText
	case IntField:
		return f.(IntField).Kind.fieldBit()
	default:
		return 0
	}
}

// AppendPattern compiles pattern (a compact pattern-letter string, §4.2)
// and appends the resulting fragments. Recognized letters:
//
//	I           type, as a decimal integer
//	s / S       symbolic name; s fails if the vocabulary has none, S is
//	            the symbolic-first composite (falls back to literal
//	            name, then the decimal integer type)
//	l / L       literal name; l fails if the vocabulary has none, L is
//	            the literal-first composite (falls back to symbolic
//	            name, then the decimal integer type)
//	x / X       the symbol's text (non-greedy); x raw, X escaped
//	N / n       index; uppercase N is strict
//	B / b       start offset; strict/non-strict
//	E / e       stop offset; strict/non-strict
//	C / c       channel; strict/non-strict
//	P / p       position (column); strict/non-strict
//	R / r       line; strict/non-strict
//	[...]       an optional group wrapping the fragments compiled from
//	            the enclosed pattern substring; optional groups may not
//	            nest
//	'...'       a literal string, '' inside the quotes denotes a literal
//	            quote character
//	\<c>        a single literal character c, escaping it out of the
//	            pattern-letter alphabet
//	<space>     whitespace: a run of one or more pattern-string space
//	            characters becomes a single Whitespace fragment holding
//	            that exact run as its canonical Format text
//	other chars taken literally, one Literal fragment per maximal run
//
// There is no pattern letter for EOF; a formatter wanting an EOF
// alternative appends the EOF{} fragment by hand via Append.
func (b *Builder) AppendPattern(pattern string) *Builder {
	b.appendPatternRange(pattern, 0, len(pattern), false)
	return b
}

func (b *Builder) appendPatternRange(pattern string, start, end int, insideOptional bool) {
	i := start
	for i < end {
		c := pattern[i]
		switch {
		case c == '[':
			if insideOptional {
				b.fail(pattern, i, "optional groups may not nest")
				return
			}
			depth := 1
			j := i + 1
			for j < end && depth > 0 {
				switch pattern[j] {
				case '[':
					depth++
				case ']':
					depth--
				}
				if depth > 0 {
					j++
				}
			}
			if depth != 0 {
				b.fail(pattern, i, "unclosed '['")
				return
			}
			inner := NewBuilder()
			inner.appendPatternRange(pattern, i+1, j, true)
			if inner.err != nil {
				b.err = inner.err
				return
			}
			b.frags = append(b.frags, kernel.Optional[Context]{Inner: kernel.Sequence[Context](inner.frags)})
			b.fields = b.fields.With(inner.fields)
			i = j + 1

		case c == '\'':
			j := i + 1
			var lit []byte
			for j < end {
				if pattern[j] == '\'' {
					if j+1 < end && pattern[j+1] == '\'' {
						lit = append(lit, '\'')
						j += 2
						continue
					}
					break
				}
				lit = append(lit, pattern[j])
				j++
			}
			if j >= end {
				b.fail(pattern, i, "unclosed quote")
				return
			}
			b.frags = append(b.frags, Literal{Text: string(lit)})
			i = j + 1

		case c == '\\':
			if i+1 >= end {
				b.fail(pattern, i, "dangling escape")
				return
			}
			b.frags = append(b.frags, Literal{Text: string(pattern[i+1])})
			i += 2

		case c == ' ' || c == '\t':
			j := i
			for j < end && (pattern[j] == ' ' || pattern[j] == '\t') {
				j++
			}
			b.frags = append(b.frags, Whitespace{Text: pattern[i:j]})
			i = j

		case c == 'I':
			f := TypeField{}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		case c == 's' || c == 'S':
			var f kernel.Fragment[Context]
			if c == 'S' {
				f = CompositeType{Format_: SymbolicFirstFormat}
			} else {
				f = SymbolicType{}
			}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		case c == 'l' || c == 'L':
			var f kernel.Fragment[Context]
			if c == 'L' {
				f = CompositeType{Format_: LiteralFirstFormat}
			} else {
				f = LiteralType{}
			}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		case c == 'x' || c == 'X':
			var f *Text
			if c == 'X' {
				f = &Text{Opt: escapedTextOption}
			} else {
				f = &Text{}
			}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		case c == 'N' || c == 'n':
			f := IntField{Kind: IndexField, Strict: c == 'N'}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		case c == 'B' || c == 'b':
			f := IntField{Kind: StartField, Strict: c == 'B'}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		case c == 'E' || c == 'e':
			f := IntField{Kind: StopField, Strict: c == 'E'}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		case c == 'C' || c == 'c':
			f := IntField{Kind: ChannelField, Strict: c == 'C'}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		case c == 'P' || c == 'p':
			f := IntField{Kind: PositionField, Strict: c == 'P'}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		case c == 'R' || c == 'r':
			f := IntField{Kind: LineField, Strict: c == 'R'}
			b.frags = append(b.frags, f)
			b.fields = b.fields.With(fieldsOf(f))
			i++

		default:
			j := i
			for j < end && !isSpecial(pattern[j]) {
				j++
			}
			if j == i {
				j = i + 1
			}
			b.frags = append(b.frags, Literal{Text: pattern[i:j]})
			i = j
		}
	}
}

func isSpecial(c byte) bool {
	switch c {
	case '[', ']', '\'', '\\', ' ', '\t',
		'I', 's', 'S', 'l', 'L', 'x', 'X',
		'N', 'n', 'B', 'b', 'E', 'e', 'C', 'c', 'P', 'p', 'R', 'r':
		return true
	}
	return false
}

// wireSuccessors assigns each Text fragment at the top level of frags
// the fragments that follow it, so its non-greedy Parse can discover
// where to stop (§4.2). Only top-level Text fragments are wired;
// Text nested inside an Optional group is left with no successors and
// consumes to end of input, a documented simplification (§9).
func wireSuccessors(frags []kernel.Fragment[Context]) {
	for i, f := range frags {
		if sa, ok := f.(successorAware); ok {
			sa.setSuccessors(append([]kernel.Fragment[Context](nil), frags[i+1:]...))
		}
	}
}

// Build finalizes the builder into a Formatter variant: a Sequence over
// the accumulated fragments, with successor-wiring applied.
func (b *Builder) Build() (kernel.Fragment[Context], revtree.FieldSet, error) {
	if b.err != nil {
		return nil, 0, b.err
	}
	wireSuccessors(b.frags)
	return kernel.Sequence[Context](b.frags), b.fields, nil
}

// MustBuild is Build, panicking on a build error — for predefined
// formatters where the pattern string is a compile-time constant known
// to be well-formed.
func (b *Builder) MustBuild() (kernel.Fragment[Context], revtree.FieldSet) {
	f, fields, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("symbolfmt: %v", err))
	}
	return f, fields
}
