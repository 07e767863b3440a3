package revtree

import "strconv"

// Vocabulary is a read-only map from integer token type to optional
// literal and symbolic names, plus the highest token type in use.
// Implementations must not mutate themselves once embedded in a
// formatter (§5 shared-resource policy).
type Vocabulary interface {
	// LiteralName returns the canonical literal form of a token type,
	// conventionally including surrounding quote characters (e.g. "'+'"),
	// and false if the type has none.
	LiteralName(typ int) (string, bool)
	// SymbolicName returns the identifier-like name of a token type
	// (e.g. "ID"), and false if the type has none.
	SymbolicName(typ int) (string, bool)
	// MaxTokenType returns the highest token type value known.
	MaxTokenType() int
}

// Recognizer bundles a Vocabulary with a rule-name table. It is the
// only collaborator the formatters consume from an embedded lexer/
// parser runtime (§6.1); everything else that runtime provides is
// irrelevant to this module.
type Recognizer interface {
	Vocabulary() Vocabulary
	// RuleNames returns rule-id -> name, ordered by rule-id.
	RuleNames() []string
}

// RuleName returns the name of rule id under r, or its decimal index
// if r is nil (§6.4: names degrade to decimal indices when no
// recognizer is available). It returns false if id is negative.
func RuleName(r Recognizer, id int) (string, bool) {
	if id < 0 {
		return "", false
	}
	if r == nil {
		return strconv.Itoa(id), true
	}
	names := r.RuleNames()
	if id >= len(names) {
		return "", false
	}
	return names[id], true
}

// RuleID returns the rule id whose name is the longest matching prefix
// of name among r's rule names, and false if none matches. "Longest
// matching" resolves names that are themselves prefixes of other names
// (§4.4 tie-break).
func RuleID(r Recognizer, name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	best, bestLen, found := -1, -1, false
	for id, n := range r.RuleNames() {
		if n == "" {
			continue
		}
		if len(name) >= len(n) && name[:len(n)] == n && len(n) > bestLen {
			best, bestLen, found = id, len(n), true
		}
	}
	return best, found
}
