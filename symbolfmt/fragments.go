package symbolfmt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/kernel"
)

// --- Literal -----------------------------------------------------------

// Literal matches a fixed string exactly.
type Literal struct {
	Text string
}

func (l Literal) Format(ctx *Context, buf *kernel.Buffer) bool {
	buf.WriteString(l.Text)
	return true
}

func (l Literal) Parse(ctx *Context, text string, pos int) int {
	if strings.HasPrefix(text[pos:], l.Text) {
		return pos + len(l.Text)
	}
	ctx.Err.Record(pos, fmt.Sprintf("expected literal %q", l.Text))
	return kernel.Fail(pos)
}

func (l Literal) Peek(ctx *Context, text string, pos int) int {
	if strings.HasPrefix(text[pos:], l.Text) {
		return pos + len(l.Text)
	}
	return kernel.Fail(pos)
}

// --- Whitespace ----------------------------------------------------------

// Whitespace formats a fixed whitespace string and parses any run of
// whitespace characters, possibly empty. A Whitespace fragment must not
// be immediately followed by a literal whose first character is itself
// whitespace (§4.2) — the builder is responsible for not constructing
// such a sequence.
type Whitespace struct {
	Text string // must contain only whitespace characters
}

func (w Whitespace) Format(ctx *Context, buf *kernel.Buffer) bool {
	buf.WriteString(w.Text)
	return true
}

func (w Whitespace) Parse(ctx *Context, text string, pos int) int {
	p := pos
	for p < len(text) && unicode.IsSpace(rune(text[p])) {
		p++
	}
	return p
}

func (w Whitespace) Peek(ctx *Context, text string, pos int) int {
	return w.Parse(ctx, text, pos)
}

// --- EOF -------------------------------------------------------------

// EOF formats the literal "EOF" iff the symbol's type is
// revtree.EOFType, and parses it, setting type=-1, text="<EOF>".
type EOF struct{}

const eofLiteral = "EOF"

func (EOF) Format(ctx *Context, buf *kernel.Buffer) bool {
	if ctx.FormatSrc.Type != revtree.EOFType {
		return false
	}
	buf.WriteString(eofLiteral)
	return true
}

func (EOF) Parse(ctx *Context, text string, pos int) int {
	if strings.HasPrefix(text[pos:], eofLiteral) {
		ctx.Sym.Type = revtree.EOFType
		ctx.Sym.Text = "<EOF>"
		return pos + len(eofLiteral)
	}
	ctx.Err.Record(pos, "expected EOF")
	return kernel.Fail(pos)
}

func (e EOF) Peek(ctx *Context, text string, pos int) int {
	if strings.HasPrefix(text[pos:], eofLiteral) {
		return pos + len(eofLiteral)
	}
	return kernel.Fail(pos)
}

// --- Integer fields (index/start/stop/channel/line/position) -----------

// IntFieldKind identifies one of the six integer Symbol fields the
// pattern language's N/n, B/b, E/e, C/c, P/p, R/r letters address.
type IntFieldKind int8

const (
	IndexField IntFieldKind = iota
	StartField
	StopField
	ChannelField
	PositionField
	LineField
)

func (k IntFieldKind) get(s revtree.Symbol) int {
	switch k {
	case IndexField:
		return s.Index
	case StartField:
		return s.Start
	case StopField:
		return s.Stop
	case ChannelField:
		return s.Channel
	case PositionField:
		return s.Position
	case LineField:
		return s.Line
	}
	return 0
}

func (k IntFieldKind) set(s *revtree.Symbol, v int) {
	switch k {
	case IndexField:
		s.Index = v
	case StartField:
		s.Start = v
	case StopField:
		s.Stop = v
	case ChannelField:
		s.Channel = v
	case PositionField:
		s.Position = v
	case LineField:
		s.Line = v
	}
}

func (k IntFieldKind) defaultValue() int {
	switch k {
	case ChannelField:
		return 0
	default:
		return -1
	}
}

func (k IntFieldKind) fieldBit() revtree.FieldSet {
	switch k {
	case IndexField:
		return revtree.FieldIndex
	case StartField:
		return revtree.FieldStart
	case StopField:
		return revtree.FieldStop
	case ChannelField:
		return revtree.FieldChannel
	case PositionField:
		return revtree.FieldPosition
	case LineField:
		return revtree.FieldLine
	}
	return 0
}

// IntField formats/parses one integer field. Strict refuses to format
// when the field equals its default.
type IntField struct {
	Kind   IntFieldKind
	Strict bool
}

func (f IntField) Format(ctx *Context, buf *kernel.Buffer) bool {
	v := f.Kind.get(*ctx.FormatSrc)
	if f.Strict && v == f.Kind.defaultValue() {
		return false
	}
	buf.WriteString(strconv.Itoa(v))
	return true
}

func (f IntField) Parse(ctx *Context, text string, pos int) int {
	p := pos
	if p < len(text) && text[p] == '-' {
		p++
	}
	start := p
	for p < len(text) && text[p] >= '0' && text[p] <= '9' {
		p++
	}
	if p == start {
		ctx.Err.Record(pos, "expected an integer")
		return kernel.Fail(pos)
	}
	v, err := strconv.Atoi(text[pos:p])
	if err != nil {
		ctx.Err.Record(pos, "expected an integer")
		return kernel.Fail(pos)
	}
	f.Kind.set(&ctx.Sym, v)
	return p
}

func (f IntField) Peek(ctx *Context, text string, pos int) int {
	p := pos
	if p < len(text) && text[p] == '-' {
		p++
	}
	start := p
	for p < len(text) && text[p] >= '0' && text[p] <= '9' {
		p++
	}
	if p == start {
		return kernel.Fail(pos)
	}
	return p
}

// --- TypeField (pattern letter 'I': the type as a plain integer) -------

// TypeField formats/parses the Symbol's Type field as a decimal
// integer, unconditionally (there is no strict variant for 'I').
type TypeField struct{}

func (TypeField) Format(ctx *Context, buf *kernel.Buffer) bool {
	buf.WriteString(strconv.Itoa(ctx.FormatSrc.Type))
	return true
}

func (TypeField) Parse(ctx *Context, text string, pos int) int {
	p := pos
	if p < len(text) && text[p] == '-' {
		p++
	}
	start := p
	for p < len(text) && text[p] >= '0' && text[p] <= '9' {
		p++
	}
	if p == start {
		ctx.Err.Record(pos, "expected a token type")
		return kernel.Fail(pos)
	}
	v, err := strconv.Atoi(text[pos:p])
	if err != nil {
		ctx.Err.Record(pos, "expected a token type")
		return kernel.Fail(pos)
	}
	ctx.Sym.Type = v
	return p
}

func (f TypeField) Peek(ctx *Context, text string, pos int) int {
	p := pos
	if p < len(text) && text[p] == '-' {
		p++
	}
	start := p
	for p < len(text) && text[p] >= '0' && text[p] <= '9' {
		p++
	}
	if p == start {
		return kernel.Fail(pos)
	}
	return p
}

// --- Symbolic / literal type names --------------------------------------

// SymbolicType formats vocabulary.SymbolicName(type) and parses by
// scanning all symbolic names for the longest prefix of the input that
// equals one.
type SymbolicType struct{}

func (SymbolicType) Format(ctx *Context, buf *kernel.Buffer) bool {
	if ctx.Vocab == nil {
		return false
	}
	name, ok := ctx.Vocab.SymbolicName(ctx.FormatSrc.Type)
	if !ok {
		return false
	}
	buf.WriteString(name)
	return true
}

func (SymbolicType) Parse(ctx *Context, text string, pos int) int {
	typ, n, ok := longestNameMatch(ctx.Vocab, text[pos:], (revtree.Vocabulary).SymbolicName)
	if !ok {
		ctx.Err.Record(pos, "expected a symbolic token name")
		return kernel.Fail(pos)
	}
	ctx.Sym.Type = typ
	return pos + n
}

func (SymbolicType) Peek(ctx *Context, text string, pos int) int {
	_, n, ok := longestNameMatch(ctx.Vocab, text[pos:], (revtree.Vocabulary).SymbolicName)
	if !ok {
		return kernel.Fail(pos)
	}
	return pos + n
}

// LiteralType formats vocabulary.LiteralName(type) (conventionally
// including surrounding quote characters) and parses symmetrically to
// SymbolicType.
type LiteralType struct{}

func (LiteralType) Format(ctx *Context, buf *kernel.Buffer) bool {
	if ctx.Vocab == nil {
		return false
	}
	name, ok := ctx.Vocab.LiteralName(ctx.FormatSrc.Type)
	if !ok {
		return false
	}
	buf.WriteString(name)
	return true
}

func (LiteralType) Parse(ctx *Context, text string, pos int) int {
	typ, n, ok := longestNameMatch(ctx.Vocab, text[pos:], (revtree.Vocabulary).LiteralName)
	if !ok {
		ctx.Err.Record(pos, "expected a literal token name")
		return kernel.Fail(pos)
	}
	ctx.Sym.Type = typ
	if name, has := ctx.Vocab.LiteralName(typ); has {
		ctx.Sym.Text = unquoteLiteralName(name)
	}
	return pos + n
}

// unquoteLiteralName strips a single layer of matching quote
// characters from name, the convention LiteralName follows (e.g.
// "'+'" -> "+"); a name with no such wrapping is returned unchanged.
func unquoteLiteralName(name string) string {
	if len(name) >= 2 {
		first, last := name[0], name[len(name)-1]
		if (first == '\'' || first == '"') && first == last {
			return name[1 : len(name)-1]
		}
	}
	return name
}

func (LiteralType) Peek(ctx *Context, text string, pos int) int {
	_, n, ok := longestNameMatch(ctx.Vocab, text[pos:], (revtree.Vocabulary).LiteralName)
	if !ok {
		return kernel.Fail(pos)
	}
	return pos + n
}

func longestNameMatch(vocab revtree.Vocabulary, input string, nameOf func(revtree.Vocabulary, int) (string, bool)) (typ int, length int, ok bool) {
	if vocab == nil {
		return 0, 0, false
	}
	bestLen := -1
	for t := 0; t <= vocab.MaxTokenType(); t++ {
		name, has := nameOf(vocab, t)
		if !has || name == "" {
			continue
		}
		if strings.HasPrefix(input, name) && len(name) > bestLen {
			typ, bestLen, ok = t, len(name), true
		}
	}
	return typ, bestLen, ok
}

// --- Composite type ------------------------------------------------------

// TypeFormat selects the attempt order among a composite type
// fragment's component fragments; the first variant that succeeds wins.
type TypeFormat int8

const (
	IntegerFormat TypeFormat = iota
	SymbolicFormat
	LiteralFormat
	SymbolicFirstFormat
	LiteralFirstFormat
)

// CompositeType tries its component fragments in the order TypeFormat
// selects.
type CompositeType struct {
	Format_ TypeFormat
}

func (c CompositeType) order() []kernel.Fragment[Context] {
	switch c.Format_ {
	case IntegerFormat:
		return []kernel.Fragment[Context]{TypeField{}}
	case SymbolicFormat:
		return []kernel.Fragment[Context]{SymbolicType{}}
	case LiteralFormat:
		return []kernel.Fragment[Context]{LiteralType{}}
	case SymbolicFirstFormat:
		return []kernel.Fragment[Context]{SymbolicType{}, LiteralType{}, TypeField{}}
	case LiteralFirstFormat:
		return []kernel.Fragment[Context]{LiteralType{}, SymbolicType{}, TypeField{}}
	}
	return nil
}

func (c CompositeType) Format(ctx *Context, buf *kernel.Buffer) bool {
	for _, f := range c.order() {
		start := buf.Len()
		if f.Format(ctx, buf) {
			return true
		}
		buf.Truncate(start)
	}
	return false
}

func (c CompositeType) Parse(ctx *Context, text string, pos int) int {
	var furthest int = kernel.Fail(pos)
	for _, f := range c.order() {
		r := f.Parse(ctx, text, pos)
		if !kernel.IsFail(r) {
			return r
		}
		if kernel.FailPos(r) >= kernel.FailPos(furthest) {
			furthest = r
		}
	}
	return furthest
}

func (c CompositeType) Peek(ctx *Context, text string, pos int) int {
	for _, f := range c.order() {
		r := f.Peek(ctx, text, pos)
		if !kernel.IsFail(r) {
			return r
		}
	}
	return kernel.Fail(pos)
}

// --- Text ----------------------------------------------------------------

// escapedTextOption is the TextOption behind the pattern language's
// 'X' letter and the predefined ANTLR/SIMPLE formatters' escaped-text
// fields (§4.2): backslash-escaped, with \n denoting a literal
// newline.
var escapedTextOption = TextOption{
	EscapeChar: '\\',
	Escape:     map[byte]byte{'n': '\n'},
}

// TextOption configures a Text fragment's escape handling.
type TextOption struct {
	EscapeChar byte
	// Escape maps the character following EscapeChar to the literal
	// character it denotes, e.g. 'n' -> '\n'.
	Escape map[byte]byte
	// Default is emitted when formatting empty text, and recognized on
	// parse as denoting empty text. Empty string disables the feature.
	Default string
}

// Text is the non-greedy text fragment (§4.2). Formatting emits the
// escape encoding; parsing unescapes. successors is set by the builder
// from the fragments that follow this one in the enclosing top-level
// sequence; nil means "no successor; consume to end of input".
type Text struct {
	Opt        TextOption
	successors []kernel.Fragment[Context]
}

func (t *Text) setSuccessors(succ []kernel.Fragment[Context]) { t.successors = succ }

func (t *Text) escape(s string) string {
	if s == "" && t.Opt.Default != "" {
		return t.Opt.Default
	}
	if t.Opt.EscapeChar == 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		escaped := false
		for lit, plain := range t.Opt.Escape {
			if plain == c {
				b.WriteByte(t.Opt.EscapeChar)
				b.WriteByte(lit)
				escaped = true
				break
			}
		}
		if !escaped {
			if c == t.Opt.EscapeChar {
				b.WriteByte(t.Opt.EscapeChar)
				b.WriteByte(t.Opt.EscapeChar)
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

func (t *Text) Format(ctx *Context, buf *kernel.Buffer) bool {
	buf.WriteString(t.escape(ctx.FormatSrc.Text))
	return true
}

// unescape decodes the run of text starting at pos up to (not
// including) end, honoring escape sequences.
func (t *Text) unescape(text string, pos, end int) string {
	if t.Opt.EscapeChar == 0 {
		return text[pos:end]
	}
	var b strings.Builder
	for i := pos; i < end; i++ {
		c := text[i]
		if c == t.Opt.EscapeChar && i+1 < end {
			next := text[i+1]
			if plain, ok := t.Opt.Escape[next]; ok {
				b.WriteByte(plain)
			} else {
				b.WriteByte(next)
			}
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// breakPosition scans forward from pos looking for the earliest offset
// at which a successor would peek a non-empty match, honoring escape
// sequences (an escape start is never treated as a candidate break and
// consumes two characters at once).
func (t *Text) breakPosition(ctx *Context, text string, pos int) int {
	p := pos
	for p <= len(text) {
		if t.Opt.EscapeChar != 0 && p+1 < len(text) && text[p] == t.Opt.EscapeChar {
			p += 2
			continue
		}
		if len(t.successors) > 0 {
			for _, succ := range t.successors {
				r := succ.Peek(ctx, text, p)
				if !kernel.IsFail(r) && r > p {
					return p
				}
			}
		}
		if p == len(text) {
			break
		}
		p++
	}
	return len(text)
}

func (t *Text) Parse(ctx *Context, text string, pos int) int {
	end := t.breakPosition(ctx, text, pos)
	raw := t.unescape(text, pos, end)
	if raw == t.Opt.Default && t.Opt.Default != "" {
		raw = ""
	}
	ctx.Sym.Text = raw
	return end
}

func (t *Text) Peek(ctx *Context, text string, pos int) int {
	end := t.breakPosition(ctx, text, pos)
	return end
}
