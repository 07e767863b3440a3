/*
Package treefmt implements the reversible tree formatter (§4.4): a
TreeFormatter renders a *revtree.Tree to text and parses that text back
into an equivalent tree, dispatching per node kind (Rule/Terminal/Error/
Pattern) to a kind-specific fragment, and recursing into a Rule node's
children through a separator-aware Children fragment.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package treefmt

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/kernel"
	"github.com/parsekit/revtree/symbolfmt"
)

func tracer() tracing.Trace {
	return tracing.Select("revtree.treefmt")
}

// Context is the parse/format context for the tree formatter. A fresh
// Context is created per Format/Parse call and threaded down through
// every recursive child-formatting step.
type Context struct {
	Err        *kernel.ErrorLog
	Vocab      revtree.Vocabulary
	Recognizer revtree.Recognizer
	SymFmt     *symbolfmt.Formatter

	// FormatSrc is the tree node currently being formatted; nil during
	// Parse.
	FormatSrc *revtree.Tree

	// Built accumulates the node produced by the most recent successful
	// Parse of a node-kind fragment, consumed by the enclosing Children
	// fragment.
	Built *revtree.Tree

	// RuleID is the rule index to assign a Rule or Pattern node being
	// parsed; set by the RuleName fragment from the rule name it parses,
	// and read by Children and Pattern when they build the node.
	RuleID int
}

func newContext(errlog *kernel.ErrorLog, vocab revtree.Vocabulary, rec revtree.Recognizer, symFmt *symbolfmt.Formatter) *Context {
	return &Context{Err: errlog, Vocab: vocab, Recognizer: rec, SymFmt: symFmt}
}
