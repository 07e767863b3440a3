package treefmt

import (
	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/kernel"
	"github.com/parsekit/revtree/symbolfmt"
)

// variant bundles the fragment used for one NodeKind together with the
// kind it applies to.
type variant struct {
	kind revtree.NodeKind
	frag kernel.Fragment[Context]
}

// TreeFormatter is a reversible tree formatter (§4.4): one fragment per
// NodeKind (Rule/Terminal/Error/Pattern), dispatched on the node being
// formatted, or tried in turn when parsing since the text alone does
// not carry an explicit kind tag.
type TreeFormatter struct {
	variants []variant
	symFmt   *symbolfmt.Formatter
	vocab    revtree.Vocabulary
	rec      revtree.Recognizer
}

// New returns a TreeFormatter with no variants registered; use For to
// add one per NodeKind before use.
func New(symFmt *symbolfmt.Formatter) *TreeFormatter {
	return &TreeFormatter{symFmt: symFmt}
}

// For registers frag as the fragment used to format/parse nodes of
// kind. Later registrations for the same kind take precedence when
// formatting (the most specific/last one wins) but all are tried, in
// registration order, when parsing.
func (tf *TreeFormatter) For(kind revtree.NodeKind, frag kernel.Fragment[Context]) *TreeFormatter {
	tf.variants = append(tf.variants, variant{kind: kind, frag: frag})
	return tf
}

// WithVocabulary returns a copy of tf that consults vocab for symbolic
// and literal type names, propagated to its symbol formatter too.
func (tf *TreeFormatter) WithVocabulary(vocab revtree.Vocabulary) *TreeFormatter {
	g := *tf
	g.vocab = vocab
	if g.symFmt != nil {
		g.symFmt = g.symFmt.WithVocabulary(vocab)
	}
	return &g
}

// WithRecognizer returns a copy of tf that consults rec for rule names.
func (tf *TreeFormatter) WithRecognizer(rec revtree.Recognizer) *TreeFormatter {
	g := *tf
	g.rec = rec
	if g.symFmt != nil {
		g.symFmt = g.symFmt.WithRecognizer(rec)
	}
	return &g
}

func (tf *TreeFormatter) newContext(errlog *kernel.ErrorLog) *Context {
	return newContext(errlog, tf.vocab, tf.rec, tf.symFmt)
}

// Format renders node by dispatching to the fragment registered for
// its NodeKind, formatting it and every descendant recursively.
func (tf *TreeFormatter) Format(node *revtree.Tree) (string, error) {
	ctx := tf.newContext(kernel.NewErrorLog())
	ctx.FormatSrc = node
	for i := len(tf.variants) - 1; i >= 0; i-- {
		v := tf.variants[i]
		if v.kind != node.Kind() {
			continue
		}
		buf := &kernel.Buffer{}
		if v.frag.Format(ctx, buf) {
			return buf.String(), nil
		}
	}
	return "", &revtree.FormatError{Msg: "no registered variant formatted a node of kind " + node.Kind().String()}
}

// Parse parses a tree from the start of text, trying every registered
// variant in order and requiring the whole string to be consumed.
func (tf *TreeFormatter) Parse(text string) (*revtree.Tree, error) {
	errlog := kernel.NewErrorLog()
	for _, v := range tf.variants {
		ctx := tf.newContext(errlog)
		r := v.frag.Parse(ctx, text, 0)
		if kernel.IsFail(r) {
			continue
		}
		if r != len(text) {
			continue
		}
		if ctx.Built != nil {
			return ctx.Built, nil
		}
		return ctx.FormatSrc, nil
	}
	return nil, &revtree.ParseError{Input: text, Index: errlog.MaxPos, Messages: errlog.Messages}
}
