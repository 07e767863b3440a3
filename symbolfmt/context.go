package symbolfmt

import (
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/kernel"
)

// Context is the parse/format context for the symbol formatter (§4.2).
// A fresh Context is created per Format/Parse call; it is never shared
// across calls.
type Context struct {
	Err        *kernel.ErrorLog
	Vocab      revtree.Vocabulary
	Recognizer revtree.Recognizer

	// Sym accumulates field values during Format (read-only source
	// value) and during Parse (write-only destination), per fragment.
	Sym revtree.Symbol

	// FormatSrc is the Symbol being formatted; nil during Parse.
	FormatSrc *revtree.Symbol
}

func newContext(errlog *kernel.ErrorLog, vocab revtree.Vocabulary, rec revtree.Recognizer) *Context {
	return &Context{
		Err:        errlog,
		Vocab:      vocab,
		Recognizer: rec,
		Sym:        revtree.NewSymbol(),
	}
}

// successorAware is implemented by fragments whose non-greedy Parse
// needs to know what comes after them in the enclosing top-level
// sequence (§4.2 text fragment).
type successorAware interface {
	setSuccessors(succ []kernel.Fragment[Context])
}
