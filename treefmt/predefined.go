package treefmt

import (
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/kernel"
	"github.com/parsekit/revtree/symbolfmt"
)

// Simple returns the predefined tree formatter rendering a Rule node as
// "(rule-name child child ...)" and a Terminal/Error node via the
// SIMPLE symbol formatter (§4.4, §4.3).
func Simple() *TreeFormatter {
	leaf := symbolfmt.Simple()
	tf := New(leaf)
	tf.For(revtree.TerminalKind, Symbol{})
	tf.For(revtree.ErrorKind, Symbol{})
	tf.For(revtree.RuleKind, kernel.Sequence[Context]{
		Literal{Text: "("},
		RuleName{},
		Whitespace{Text: " "},
		Children{Sep: Whitespace{Text: " "}, Node: ruleAwareNode(tf)},
		Literal{Text: ")"},
	})
	return tf
}

// ruleAwareNode returns a fragment that dispatches to tf's registered
// variant matching whatever node kind the recursive parse/format call
// is actually looking at; Children uses it for each child slot.
func ruleAwareNode(tf *TreeFormatter) kernel.Fragment[Context] {
	return dispatchFragment{tf: tf}
}

// dispatchFragment routes Format to the variant matching FormatSrc's
// kind, and tries every registered variant in turn for Parse/Peek,
// mirroring TreeFormatter.Format/Parse one recursion level down.
type dispatchFragment struct {
	tf *TreeFormatter
}

func (d dispatchFragment) Format(ctx *Context, buf *kernel.Buffer) bool {
	for i := len(d.tf.variants) - 1; i >= 0; i-- {
		v := d.tf.variants[i]
		if v.kind != ctx.FormatSrc.Kind() {
			continue
		}
		start := buf.Len()
		if v.frag.Format(ctx, buf) {
			return true
		}
		buf.Truncate(start)
	}
	return false
}

func (d dispatchFragment) Parse(ctx *Context, text string, pos int) int {
	for _, v := range d.tf.variants {
		childCtx := *ctx
		childCtx.Built = nil
		r := v.frag.Parse(&childCtx, text, pos)
		if !kernel.IsFail(r) {
			ctx.Built = childCtx.Built
			ctx.RuleID = childCtx.RuleID
			return r
		}
	}
	return kernel.Fail(pos)
}

func (d dispatchFragment) Peek(ctx *Context, text string, pos int) int {
	for _, v := range d.tf.variants {
		childCtx := *ctx
		r := v.frag.Peek(&childCtx, text, pos)
		if !kernel.IsFail(r) {
			return r
		}
	}
	return kernel.Fail(pos)
}

// ANTLR returns the predefined tree formatter following ANTLR's
// parenthesized rule-tree dump: "(ruleName tok1 tok2 (ruleName2 ...))",
// with tokens rendered via symbolfmt.ANTLR (§4.4, §4.3).
func ANTLR() *TreeFormatter {
	leaf := symbolfmt.ANTLR()
	tf := New(leaf)
	tf.For(revtree.TerminalKind, Symbol{})
	tf.For(revtree.ErrorKind, Symbol{})
	tf.For(revtree.RuleKind, kernel.Sequence[Context]{
		Literal{Text: "("},
		RuleName{},
		Whitespace{Text: " "},
		Children{Sep: Whitespace{Text: " "}, Node: ruleAwareNode(tf)},
		Literal{Text: ")"},
	})
	return tf
}

// Indented returns the predefined tree formatter that lays a tree out
// one node per line, indented by depth with the given unit string
// (e.g. two spaces or a tab), in the style common to debug tree dumps
// (§4.4). Parsing the indented form back is intentionally unsupported:
// indentation alone does not disambiguate sibling boundaries without
// also tracking a stack, which the predefined formatter does not do;
// callers needing a round-trippable layout should use Simple or ANTLR.
func Indented(unit string) *TreeFormatter {
	leaf := symbolfmt.Simple()
	tf := New(leaf)
	return tf.withIndentUnit(unit)
}

func (tf *TreeFormatter) withIndentUnit(unit string) *TreeFormatter {
	tf.For(revtree.TerminalKind, Symbol{})
	tf.For(revtree.ErrorKind, Symbol{})
	tf.For(revtree.RuleKind, indentedRule{unit: unit, tf: tf})
	return tf
}

// indentedRule formats a Rule node and its children one per line,
// indented by depth*unit; it does not implement Parse.
type indentedRule struct {
	unit string
	tf   *TreeFormatter
}

func (r indentedRule) Format(ctx *Context, buf *kernel.Buffer) bool {
	return r.formatAt(ctx, buf, ctx.FormatSrc, ctx.FormatSrc.Depth())
}

func (r indentedRule) formatAt(ctx *Context, buf *kernel.Buffer, node *revtree.Tree, depth int) bool {
	for i := 0; i < depth; i++ {
		buf.WriteString(r.unit)
	}
	if node.Kind() != revtree.RuleKind {
		childCtx := *ctx
		childCtx.FormatSrc = node
		return dispatchFragment{tf: r.tf}.Format(&childCtx, buf)
	}
	name, _ := revtree.RuleName(ctx.Recognizer, node.Index())
	buf.WriteString(name)
	buf.WriteString("\n")
	for _, child := range node.Children() {
		if !r.formatAt(ctx, buf, child, depth+1) {
			return false
		}
		buf.WriteString("\n")
	}
	return true
}

func (r indentedRule) Parse(ctx *Context, text string, pos int) int {
	ctx.Err.Record(pos, "indented tree formatter does not support parsing")
	return kernel.Fail(pos)
}

func (r indentedRule) Peek(ctx *Context, text string, pos int) int {
	return kernel.Fail(pos)
}
