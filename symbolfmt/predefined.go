package symbolfmt

import (
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/kernel"
)

// channelClause builds the optional ",channel=<c>"-style clause shared
// by ANTLR and SIMPLE: a strict channel field, wrapped so the whole
// clause (prefix included) is omitted when channel equals its default
// (§4.2, §4.3).
func channelClause(prefix string) kernel.Fragment[Context] {
	return kernel.Optional[Context]{Inner: kernel.Sequence[Context]{
		Literal{Text: prefix},
		IntField{Kind: ChannelField, Strict: true},
	}}
}

// ANTLR returns the predefined formatter rendering
// "[@index,start:stop='text',<type>[,channel=c],line:position]", ANTLR's
// own token-debug format (§4.2, §4.3), printing every field except
// channel, which is omitted when it equals its default.
func ANTLR() *Formatter {
	b := NewBuilder().
		AppendPattern("\\[@N,B:E=\\'X\\',<I>").
		Append(channelClause(",channel="), revtree.FieldChannel).
		AppendPattern(",R:P\\]")
	f, err := New(b)
	if err != nil {
		panic(err)
	}
	return f
}

// ANTLRSymbolic is ANTLR but renders the type as its symbolic name
// where the vocabulary has one, falling back to the literal name, and
// finally to the integer type (§4.3).
func ANTLRSymbolic() *Formatter {
	b := NewBuilder().
		AppendPattern("\\[@N,B:E=\\'X\\',<S>").
		Append(channelClause(",channel="), revtree.FieldChannel).
		AppendPattern(",R:P\\]")
	f, err := New(b)
	if err != nil {
		panic(err)
	}
	return f
}

// Simple returns the predefined SIMPLE formatter (§4.2, §4.3): three
// alternatives tried in order —
//
//	EOF literal;
//	a bare literal token, '<literal>'[:<channel>];
//	a parenthesized symbolic token, (<symbolic>[:<channel>] '<escaped-text>').
func Simple() *Formatter {
	f, err := simpleFormatter()
	if err != nil {
		panic(err)
	}
	return f
}

// SimpleWithEOF is Simple, kept as a separate constructor that reports
// a build error instead of panicking, for callers assembling a
// formatter at runtime rather than from a compile-time-constant
// pattern (§4.3).
func SimpleWithEOF() (*Formatter, error) {
	return simpleFormatter()
}

func simpleFormatter() (*Formatter, error) {
	eofB := NewBuilder().Append(EOF{}, revtree.FieldType)

	literalB := NewBuilder().
		AppendPattern("l").
		Append(channelClause(":"), revtree.FieldChannel)

	symbolicB := NewBuilder().
		AppendPattern("(s").
		Append(channelClause(":"), revtree.FieldChannel).
		AppendPattern(" \\'X\\'").
		Append(Literal{Text: ")"}, 0)

	return NewAlternatives(eofB, literalB, symbolicB)
}
