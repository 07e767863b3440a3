package recognizer

import "github.com/parsekit/revtree"

// MapVocabulary is a plain in-memory revtree.Vocabulary, grounded on
// the teacher's lr/scanner.GoTokenizer default-implementation pattern
// of a small map-backed lookup rather than a generated table.
type MapVocabulary struct {
	Symbolic map[int]string
	Literal  map[int]string
	Max      int
}

// NewMapVocabulary returns an empty MapVocabulary ready for Put calls.
func NewMapVocabulary() *MapVocabulary {
	return &MapVocabulary{Symbolic: map[int]string{}, Literal: map[int]string{}}
}

// Put registers typ's symbolic and/or literal name (either may be
// empty to mean "none") and extends Max if needed.
func (v *MapVocabulary) Put(typ int, symbolic, literal string) *MapVocabulary {
	if symbolic != "" {
		v.Symbolic[typ] = symbolic
	}
	if literal != "" {
		v.Literal[typ] = literal
	}
	if typ > v.Max {
		v.Max = typ
	}
	return v
}

func (v *MapVocabulary) SymbolicName(typ int) (string, bool) { s, ok := v.Symbolic[typ]; return s, ok }
func (v *MapVocabulary) LiteralName(typ int) (string, bool)  { s, ok := v.Literal[typ]; return s, ok }
func (v *MapVocabulary) MaxTokenType() int                   { return v.Max }

// MapRecognizer is a plain in-memory revtree.Recognizer pairing a
// MapVocabulary with an ordered rule-name list.
type MapRecognizer struct {
	Vocab *MapVocabulary
	Names []string
}

// NewMapRecognizer returns a MapRecognizer over vocab and names, where
// names[i] is the name of rule id i.
func NewMapRecognizer(vocab *MapVocabulary, names ...string) *MapRecognizer {
	return &MapRecognizer{Vocab: vocab, Names: names}
}

func (r *MapRecognizer) Vocabulary() revtree.Vocabulary { return r.Vocab }
func (r *MapRecognizer) RuleNames() []string            { return r.Names }
