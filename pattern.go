package revtree

// Pattern is a list of pattern elements matched pairwise against the
// children of a Rule node (§3, §4.5). A Pattern may be standalone or
// nested as the body of a Pattern tree node.
type Pattern struct {
	Elements []PatternElement
}

// NewPattern returns a Pattern over elems.
func NewPattern(elems ...PatternElement) *Pattern {
	return &Pattern{Elements: append([]PatternElement(nil), elems...)}
}

// Len returns the number of elements.
func (p *Pattern) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Elements)
}

// ElementKind tags the three kinds of PatternElement.
type ElementKind int8

const (
	// ConcreteElement matches a tree terminal literally, by type and
	// text (via the ambient symbol-field equalizer).
	ConcreteElement ElementKind = iota
	// RuleHoleElement matches any Rule node whose index equals RuleID.
	RuleHoleElement
	// TokenHoleElement matches any Terminal or Error node whose type
	// equals TokenType.
	TokenHoleElement
)

// PatternElement is one element of a Pattern: a concrete terminal to
// match literally, a rule hole, or a token hole.
type PatternElement struct {
	Kind ElementKind

	// ConcreteElement:
	Symbol Symbol // type+text to match literally

	// RuleHoleElement / TokenHoleElement:
	RuleID    int    // valid when Kind == RuleHoleElement
	TokenType int    // valid when Kind == TokenHoleElement
	Label     string // "" for an unlabeled hole

	// RuleHoleElement only: a nested pattern matching the held rule's
	// own children, for the `<rule-name>(pattern-body)` form of §6.3.
	// Nil means "match any children".
	Nested *Pattern
}

// Concrete returns a ConcreteElement matching sym literally against a
// Terminal node, or an Error node carrying an equal symbol (§9 Open
// Questions: Error is treated as Terminal for matching purposes since
// the pattern language has no syntax distinguishing the two).
func Concrete(sym Symbol) PatternElement {
	return PatternElement{Kind: ConcreteElement, Symbol: sym}
}

// RuleHole returns an (optionally labeled, optionally nested) rule
// hole matching any Rule node with index ruleID.
func RuleHole(ruleID int, label string, nested *Pattern) PatternElement {
	return PatternElement{Kind: RuleHoleElement, RuleID: ruleID, Label: label, Nested: nested}
}

// TokenHole returns an (optionally labeled) token hole matching any
// Terminal or Error node with type tokenType.
func TokenHole(tokenType int, label string) PatternElement {
	return PatternElement{Kind: TokenHoleElement, TokenType: tokenType, Label: label}
}
