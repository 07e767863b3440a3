package treefmt

import (
	"strings"
	"unicode"

	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/kernel"
)

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
	ctx.Err.Record(pos, "expected "+l.Text)
	return kernel.Fail(pos)
}

func (l Literal) Peek(ctx *Context, text string, pos int) int {
	if strings.HasPrefix(text[pos:], l.Text) {
		return pos + len(l.Text)
	}
	return kernel.Fail(pos)
}

// Whitespace formats a fixed whitespace run and parses any run of
// whitespace, possibly empty.
type Whitespace struct {
	Text string
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

// Symbol delegates to the Context's symbol formatter, operating on the
// node's own Symbol (§4.4: Terminal/Error nodes carry a Symbol).
type Symbol struct{}

func (Symbol) Format(ctx *Context, buf *kernel.Buffer) bool {
	if ctx.SymFmt == nil {
		return false
	}
	s, err := ctx.SymFmt.Format(ctx.FormatSrc.Symbol())
	if err != nil {
		return false
	}
	buf.WriteString(s)
	return true
}

func (Symbol) Parse(ctx *Context, text string, pos int) int {
	if ctx.SymFmt == nil {
		ctx.Err.Record(pos, "no symbol formatter configured")
		return kernel.Fail(pos)
	}
	// The symbol formatter's public Parse only accepts a complete
	// string, so symbolParseAt feeds it successively longer prefixes
	// of the remaining text and keeps the shortest one that parses.
	sym, n, err := symbolParseAt(ctx, text, pos)
	if err != nil {
		ctx.Err.Record(pos, err.Error())
		return kernel.Fail(pos)
	}
	if ctx.Built == nil {
		ctx.Built = revtree.NewTerminal(sym.Type, sym)
	}
	return n
}

func (Symbol) Peek(ctx *Context, text string, pos int) int {
	if ctx.SymFmt == nil {
		return kernel.Fail(pos)
	}
	_, n, err := symbolParseAt(ctx, text, pos)
	if err != nil {
		return kernel.Fail(pos)
	}
	return n
}

// symbolParseAt parses one symbol starting at pos through the public,
// full-string Parse of symbolfmt.Formatter: it finds the shortest prefix
// of text[pos:] that parses as a complete symbol and returns the
// position just past it. A formatter whose rendering ends in a literal
// delimiter (such as SIMPLE's ')' or ANTLR's ']') lands on exactly the
// symbol's text.
func symbolParseAt(ctx *Context, text string, pos int) (revtree.Symbol, int, error) {
	var err error = &revtree.ParseError{Input: text, Index: pos, Messages: []string{"expected a symbol"}}
	for end := pos + 1; end <= len(text); end++ {
		sym, perr := ctx.SymFmt.Parse(text[pos:end])
		if perr == nil {
			return sym, end, nil
		}
		err = perr
	}
	return revtree.Symbol{}, 0, err
}

// indexOfNextDelimiter finds where the next structural delimiter
// (opening or closing paren, whitespace) occurs; RuleName uses it to
// find the end of a rule name.
func indexOfNextDelimiter(s string) int {
	for i, r := range s {
		if r == ')' || r == '(' || unicode.IsSpace(r) {
			return i
		}
	}
	return len(s)
}

// RuleName formats/parses a rule's name via the Context's Recognizer.
type RuleName struct{}

func (RuleName) Format(ctx *Context, buf *kernel.Buffer) bool {
	if ctx.Recognizer == nil {
		return false
	}
	name, ok := revtree.RuleName(ctx.Recognizer, ctx.FormatSrc.Index())
	if !ok {
		return false
	}
	buf.WriteString(name)
	return true
}

func (RuleName) Parse(ctx *Context, text string, pos int) int {
	if ctx.Recognizer == nil {
		ctx.Err.Record(pos, "no recognizer configured")
		return kernel.Fail(pos)
	}
	end := indexOfNextDelimiter(text[pos:]) + pos
	name := text[pos:end]
	id, ok := revtree.RuleID(ctx.Recognizer, name)
	if !ok {
		ctx.Err.Record(pos, "unknown rule name "+name)
		return kernel.Fail(pos)
	}
	ctx.RuleID = id
	return end
}

func (r RuleName) Peek(ctx *Context, text string, pos int) int {
	if ctx.Recognizer == nil {
		return kernel.Fail(pos)
	}
	end := indexOfNextDelimiter(text[pos:]) + pos
	if _, ok := revtree.RuleID(ctx.Recognizer, text[pos:end]); !ok {
		return kernel.Fail(pos)
	}
	return end
}

// Children formats/parses a Rule node's children, separated by Sep,
// recursing through the Node fragment for each child.
type Children struct {
	Sep  kernel.Fragment[Context]
	Node kernel.Fragment[Context]
}

func (c Children) Format(ctx *Context, buf *kernel.Buffer) bool {
	parent := ctx.FormatSrc
	for i, child := range parent.Children() {
		if i > 0 {
			if !c.Sep.Format(ctx, buf) {
				return false
			}
		}
		childCtx := *ctx
		childCtx.FormatSrc = child
		if !c.Node.Format(&childCtx, buf) {
			return false
		}
	}
	return true
}

func (c Children) Parse(ctx *Context, text string, pos int) int {
	var children []*revtree.Tree
	p := pos
	for {
		childCtx := *ctx
		childCtx.Built = nil
		r := c.Node.Parse(&childCtx, text, p)
		if kernel.IsFail(r) || r == p {
			// r == p: a child matched with zero progress (an empty
			// text fragment at a delimiter); treat it as "no more
			// children" rather than looping forever.
			break
		}
		if childCtx.Built != nil {
			children = append(children, childCtx.Built)
		}
		p = r
		sepR := c.Sep.Parse(ctx, text, p)
		if kernel.IsFail(sepR) {
			break
		}
		p = sepR
	}
	ctx.Built, _ = revtree.NewRule(ctx.RuleID, children...)
	return p
}

func (c Children) Peek(ctx *Context, text string, pos int) int {
	// Parse on a copy with its own error log, so ctx is left untouched.
	cp := *ctx
	cp.Err = kernel.NewErrorLog()
	return c.Parse(&cp, text, pos)
}

// Pattern formats/parses the nested pattern body of a Pattern node,
// delegating text rendering of each pattern element to the ambient
// pattern-element renderer installed by the caller (kept minimal here;
// full pattern-string syntax lives in package pattern).
type Pattern struct {
	Render func(*revtree.Pattern) (string, error)
	Parse_ func(string) (*revtree.Pattern, int, error)
}

func (p Pattern) Format(ctx *Context, buf *kernel.Buffer) bool {
	if p.Render == nil || ctx.FormatSrc.Pattern() == nil {
		return false
	}
	s, err := p.Render(ctx.FormatSrc.Pattern())
	if err != nil {
		return false
	}
	buf.WriteString(s)
	return true
}

func (p Pattern) Parse(ctx *Context, text string, pos int) int {
	if p.Parse_ == nil {
		ctx.Err.Record(pos, "no pattern parser configured")
		return kernel.Fail(pos)
	}
	pat, n, err := p.Parse_(text[pos:])
	if err != nil {
		ctx.Err.Record(pos, err.Error())
		return kernel.Fail(pos)
	}
	ctx.Built = revtree.NewPatternNode(ctx.RuleID, pat)
	return pos + n
}

func (p Pattern) Peek(ctx *Context, text string, pos int) int {
	if p.Parse_ == nil {
		return kernel.Fail(pos)
	}
	_, n, err := p.Parse_(text[pos:])
	if err != nil {
		return kernel.Fail(pos)
	}
	return pos + n
}
