package revtree

import "fmt"

// EOFType is the Symbol.Type value reserved for end-of-input.
const EOFType = -1

// defaultIndex, defaultOffset and defaultChannel are the zero values a
// Symbol field takes when a formatter's fragments do not mention that
// field during parsing (§3 of the spec this module implements).
const (
	defaultType    = 0
	defaultIndex   = -1
	defaultOffset  = -1
	defaultChannel = 0
	defaultLine    = -1
	defaultPos     = -1
)

// Symbol is an immutable lexical token record. It carries no owning
// relationship to any stream and is freely copyable.
type Symbol struct {
	Type     int    // -1 denotes EOF, 0 is the invalid/default type
	Text     string // raw text; escape policy is controlled by the formatter
	Index    int    // position in the emitted token stream, -1 if unset
	Start    int    // inclusive source offset, -1 if unset
	Stop     int    // inclusive source offset, -1 if unset
	Channel  int    // 0 is the default channel, non-zero is hidden/auxiliary
	Line     int    // 1-based line number, -1 if unset
	Position int    // 0-based column within line, -1 if unset
}

// NewSymbol returns a Symbol with every field defaulted per §3, ready to
// be customized with the With… builder methods.
func NewSymbol() Symbol {
	return Symbol{
		Type:     defaultType,
		Index:    defaultIndex,
		Start:    defaultOffset,
		Stop:     defaultOffset,
		Channel:  defaultChannel,
		Line:     defaultLine,
		Position: defaultPos,
	}
}

// EOFSymbol returns the canonical end-of-input symbol.
func EOFSymbol() Symbol {
	s := NewSymbol()
	s.Type = EOFType
	s.Text = "<EOF>"
	return s
}

// IsEOF reports whether s denotes end-of-input.
func (s Symbol) IsEOF() bool {
	return s.Type == EOFType
}

// WithType returns a copy of s with Type set.
func (s Symbol) WithType(t int) Symbol {
	s.Type = t
	return s
}

// WithText returns a copy of s with Text set.
func (s Symbol) WithText(text string) Symbol {
	s.Text = text
	return s
}

// WithIndex returns a copy of s with Index set.
func (s Symbol) WithIndex(i int) Symbol {
	s.Index = i
	return s
}

// WithSpan returns a copy of s with Start and Stop set.
func (s Symbol) WithSpan(start, stop int) Symbol {
	s.Start, s.Stop = start, stop
	return s
}

// WithChannel returns a copy of s with Channel set.
func (s Symbol) WithChannel(ch int) Symbol {
	s.Channel = ch
	return s
}

// WithPosition returns a copy of s with Line and Position set.
func (s Symbol) WithPosition(line, pos int) Symbol {
	s.Line, s.Position = line, pos
	return s
}

func (s Symbol) String() string {
	return fmt.Sprintf("Symbol{type=%d text=%q index=%d start=%d stop=%d channel=%d line=%d pos=%d}",
		s.Type, s.Text, s.Index, s.Start, s.Stop, s.Channel, s.Line, s.Position)
}

// FieldSet is a bitset of Symbol fields a formatter may print, used by
// the pattern matcher's symbol-field equalizer (§4.5) to decide which
// fields of two symbols must agree for a match.
type FieldSet uint16

// The bits of FieldSet, one per Symbol field.
const (
	FieldType FieldSet = 1 << iota
	FieldText
	FieldIndex
	FieldStart
	FieldStop
	FieldChannel
	FieldLine
	FieldPosition
)

// Has reports whether fs contains field.
func (fs FieldSet) Has(field FieldSet) bool {
	return fs&field != 0
}

// With returns fs with field added.
func (fs FieldSet) With(field FieldSet) FieldSet {
	return fs | field
}

// Equal reports whether a and b agree on every field mentioned in fs.
// Fields fs does not mention are ignored, which is what makes matching
// tolerant of position/index noise by default (§4.5).
func (fs FieldSet) Equal(a, b Symbol) bool {
	if fs.Has(FieldType) && a.Type != b.Type {
		return false
	}
	if fs.Has(FieldText) && a.Text != b.Text {
		return false
	}
	if fs.Has(FieldIndex) && a.Index != b.Index {
		return false
	}
	if fs.Has(FieldStart) && a.Start != b.Start {
		return false
	}
	if fs.Has(FieldStop) && a.Stop != b.Stop {
		return false
	}
	if fs.Has(FieldChannel) && a.Channel != b.Channel {
		return false
	}
	if fs.Has(FieldLine) && a.Line != b.Line {
		return false
	}
	if fs.Has(FieldPosition) && a.Position != b.Position {
		return false
	}
	return true
}
