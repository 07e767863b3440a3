package pattern

import (
	"strings"
	"unicode"

	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/symbolfmt"
)

// PatternFormatter parses and renders tree pattern strings (§6.3). A
// pattern's own grammar is recursive ("<rule>(<hole> 'lit' <rule2>(...))")
// and does not fit the kernel's flat, non-recursive Sequence/Optional
// combinators, so it is implemented as a direct recursive-descent
// parser/printer pair instead, in the style of the teacher's own
// hand-written recursive-descent bits of lr/earley.
type PatternFormatter struct {
	Recognizer revtree.Recognizer
	Leaf       *symbolfmt.Formatter // formats/parses a ConcreteElement's Symbol
}

// New returns a PatternFormatter using leaf to render/parse concrete
// symbol text and rec to resolve rule/token names.
func New(rec revtree.Recognizer, leaf *symbolfmt.Formatter) *PatternFormatter {
	return &PatternFormatter{Recognizer: rec, Leaf: leaf}
}

// ParseNode parses a full "<rule-name>(pattern-body)" pattern node from
// the start of text and returns the resulting *revtree.Tree (a
// PatternKind node) plus the number of bytes consumed.
func (pf *PatternFormatter) ParseNode(text string) (*revtree.Tree, int, error) {
	p := skipSpace(text, 0)
	if p >= len(text) || text[p] != '<' {
		return nil, 0, &revtree.BuildError{Pattern: text, Pos: p, Msg: "expected '<'"}
	}
	p++
	nameStart := p
	for p < len(text) && text[p] != '>' {
		p++
	}
	if p >= len(text) {
		return nil, 0, &revtree.BuildError{Pattern: text, Pos: nameStart, Msg: "unclosed '<'"}
	}
	name := text[nameStart:p]
	p++ // consume '>'
	ruleID, ok := revtree.RuleID(pf.Recognizer, name)
	if !ok {
		return nil, 0, &revtree.BuildError{Pattern: text, Pos: nameStart, Msg: "unknown rule name " + name}
	}
	p = skipSpace(text, p)
	if p >= len(text) || text[p] != '(' {
		return nil, 0, &revtree.BuildError{Pattern: text, Pos: p, Msg: "expected '(' opening pattern body"}
	}
	p++
	body, n, err := pf.parseBody(text, p)
	if err != nil {
		return nil, 0, err
	}
	p = n
	p = skipSpace(text, p)
	if p >= len(text) || text[p] != ')' {
		return nil, 0, &revtree.BuildError{Pattern: text, Pos: p, Msg: "expected ')' closing pattern body"}
	}
	p++
	return revtree.NewPatternNode(ruleID, body), p, nil
}

// Parse parses a standalone pattern body (no enclosing "<rule>(...)"),
// the form used to match a rule's children directly.
func (pf *PatternFormatter) Parse(text string) (*revtree.Pattern, error) {
	pat, n, err := pf.parseBody(text, 0)
	if err != nil {
		return nil, err
	}
	n = skipSpace(text, n)
	if n != len(text) {
		return nil, &revtree.ParseError{Input: text, Index: n, Messages: []string{"unconsumed trailing input"}}
	}
	return pat, nil
}

func (pf *PatternFormatter) parseBody(text string, pos int) (*revtree.Pattern, int, error) {
	var elems []revtree.PatternElement
	p := skipSpace(text, pos)
	for p < len(text) && text[p] != ')' {
		elem, n, err := pf.parseElement(text, p)
		if err != nil {
			return nil, 0, err
		}
		elems = append(elems, elem)
		p = skipSpace(text, n)
	}
	return revtree.NewPattern(elems...), p, nil
}

func (pf *PatternFormatter) parseElement(text string, pos int) (revtree.PatternElement, int, error) {
	if text[pos] == '<' {
		return pf.parseHole(text, pos)
	}
	return pf.parseConcrete(text, pos)
}

func (pf *PatternFormatter) parseHole(text string, pos int) (revtree.PatternElement, int, error) {
	p := pos + 1
	start := p
	for p < len(text) && text[p] != '>' && text[p] != '/' {
		p++
	}
	if p >= len(text) {
		return revtree.PatternElement{}, 0, &revtree.BuildError{Pattern: text, Pos: start, Msg: "unclosed hole"}
	}
	raw := text[start:p]
	selfClosing := false
	if p < len(text) && text[p] == '/' {
		selfClosing = true
		p++
	}
	if p >= len(text) || text[p] != '>' {
		return revtree.PatternElement{}, 0, &revtree.BuildError{Pattern: text, Pos: p, Msg: "expected '>' closing hole"}
	}
	p++ // consume '>'

	label, name := "", raw
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		label, name = raw[:i], raw[i+1:]
	}

	if isTokenName(name) {
		typ, ok := tokenType(pf.Recognizer, name)
		if !ok {
			return revtree.PatternElement{}, 0, &revtree.BuildError{Pattern: text, Pos: start, Msg: "unknown token name " + name}
		}
		return revtree.TokenHole(typ, label), p, nil
	}

	ruleID, ok := revtree.RuleID(pf.Recognizer, name)
	if !ok {
		return revtree.PatternElement{}, 0, &revtree.BuildError{Pattern: text, Pos: start, Msg: "unknown rule name " + name}
	}
	if selfClosing {
		return revtree.RuleHole(ruleID, label, nil), p, nil
	}
	p = skipSpace(text, p)
	if p < len(text) && text[p] == '(' {
		nested, n, err := pf.parseBody(text, p+1)
		if err != nil {
			return revtree.PatternElement{}, 0, err
		}
		p = skipSpace(text, n)
		if p >= len(text) || text[p] != ')' {
			return revtree.PatternElement{}, 0, &revtree.BuildError{Pattern: text, Pos: p, Msg: "expected ')' closing nested pattern"}
		}
		p++
		return revtree.RuleHole(ruleID, label, nested), p, nil
	}
	return revtree.RuleHole(ruleID, label, nil), p, nil
}

func (pf *PatternFormatter) parseConcrete(text string, pos int) (revtree.PatternElement, int, error) {
	end := pos
	for end < len(text) && text[end] != ')' && !unicode.IsSpace(rune(text[end])) && text[end] != '<' {
		end++
	}
	if pf.Leaf == nil {
		return revtree.PatternElement{}, 0, &revtree.BuildError{Pattern: text, Pos: pos, Msg: "no leaf symbol formatter configured"}
	}
	sym, err := pf.Leaf.Parse(text[pos:end])
	if err != nil {
		return revtree.PatternElement{}, 0, err
	}
	return revtree.Concrete(sym), end, nil
}

func isTokenName(name string) bool {
	for _, r := range name {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return name != ""
}

func tokenType(rec revtree.Recognizer, name string) (int, bool) {
	if rec == nil || rec.Vocabulary() == nil {
		return 0, false
	}
	vocab := rec.Vocabulary()
	for t := 0; t <= vocab.MaxTokenType(); t++ {
		if n, ok := vocab.SymbolicName(t); ok && n == name {
			return t, true
		}
	}
	return 0, false
}

func skipSpace(text string, pos int) int {
	p := pos
	for p < len(text) && unicode.IsSpace(rune(text[p])) {
		p++
	}
	return p
}

// FormatNode renders node, a PatternKind tree, back to its
// "<rule-name>(pattern-body)" text.
func (pf *PatternFormatter) FormatNode(node *revtree.Tree) (string, error) {
	name, ok := revtree.RuleName(pf.Recognizer, node.Index())
	if !ok {
		return "", &revtree.FormatError{Msg: "unknown rule id in pattern node"}
	}
	body, err := pf.Format(node.Pattern())
	if err != nil {
		return "", err
	}
	return "<" + name + ">(" + body + ")", nil
}

// Format renders pat's elements back to a pattern-body string.
func (pf *PatternFormatter) Format(pat *revtree.Pattern) (string, error) {
	var b strings.Builder
	for i, e := range pat.Elements {
		if i > 0 {
			b.WriteString(" ")
		}
		s, err := pf.formatElement(e)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (pf *PatternFormatter) formatElement(e revtree.PatternElement) (string, error) {
	switch e.Kind {
	case revtree.ConcreteElement:
		if pf.Leaf == nil {
			return "", &revtree.FormatError{Msg: "no leaf symbol formatter configured"}
		}
		return pf.Leaf.Format(e.Symbol)
	case revtree.TokenHoleElement:
		name, ok := "", false
		if pf.Recognizer != nil && pf.Recognizer.Vocabulary() != nil {
			name, ok = pf.Recognizer.Vocabulary().SymbolicName(e.TokenType)
		}
		if !ok {
			return "", &revtree.FormatError{Msg: "unknown token type in pattern"}
		}
		return "<" + labelPrefix(e.Label) + name + ">", nil
	case revtree.RuleHoleElement:
		name, ok := revtree.RuleName(pf.Recognizer, e.RuleID)
		if !ok {
			return "", &revtree.FormatError{Msg: "unknown rule id in pattern"}
		}
		slash := ""
		if pf.Recognizer == nil {
			slash = "/"
		}
		if e.Nested == nil {
			return "<" + labelPrefix(e.Label) + name + slash + ">", nil
		}
		body, err := pf.Format(e.Nested)
		if err != nil {
			return "", err
		}
		return "<" + labelPrefix(e.Label) + name + slash + ">(" + body + ")", nil
	}
	return "", &revtree.FormatError{Msg: "unknown pattern element kind"}
}

func labelPrefix(label string) string {
	if label == "" {
		return ""
	}
	return label + ":"
}
