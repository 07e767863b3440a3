/*
Package kernel implements the uniform printer/parser fragment contract
(§4.1): a unit that can append characters to a buffer given a format
context, or consume characters from an input given a parse context,
with a non-consuming peek for lookahead. Sequencing and an optional-
group wrapper compose fragments.

The kernel is generic over the context type C a concrete formatter
needs (the symbol formatter's field-accumulator, the node formatter's
per-variant accumulator, …) — the idiomatic replacement for the source
language's curiously-recurring generic pattern (§9).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package kernel

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("revtree.kernel")
}

// Fail encodes a parse/peek failure at position p as its bitwise
// complement, per §4.1's "new position, or the bitwise complement of
// the failing position" convention.
func Fail(p int) int { return ^p }

// IsFail reports whether pos denotes a failure (a negative value).
func IsFail(pos int) bool { return pos < 0 }

// FailPos recovers the failing position from a negative pos returned
// by Parse/Peek. Calling it on a non-negative pos is a programmer error.
func FailPos(pos int) int { return ^pos }

// Fragment is the uniform printer/parser unit (§4.1), generic over the
// context type a concrete formatter accumulates bindings into.
type Fragment[C any] interface {
	// Format appends zero or more characters to buf and returns true,
	// or returns false to signal inapplicability, leaving buf for the
	// caller to truncate back to its pre-call length.
	Format(ctx *C, buf *Buffer) bool
	// Parse consumes characters from text starting at pos and returns
	// the new position on success, or Fail(pos) on failure — recording
	// a message into ctx's error log at the failing position.
	Parse(ctx *C, text string, pos int) int
	// Peek behaves like Parse but MUST NOT mutate ctx. Used by
	// non-greedy fragments to discover where a successor would match.
	Peek(ctx *C, text string, pos int) int
}

// Buffer is an append-only byte buffer supporting truncation back to an
// earlier length, the primitive a Sequence needs to recover from a
// failed child (§4.1).
type Buffer struct {
	b []byte
}

// Len returns the number of bytes written so far.
func (buf *Buffer) Len() int { return len(buf.b) }

// WriteString appends s.
func (buf *Buffer) WriteString(s string) { buf.b = append(buf.b, s...) }

// Truncate discards everything written after byte offset n.
func (buf *Buffer) Truncate(n int) { buf.b = buf.b[:n] }

// String returns the buffer's contents.
func (buf *Buffer) String() string { return string(buf.b) }

// ErrorLog accumulates the furthest parse-failure position seen and
// every message recorded at that position (§4.1 error accumulation): a
// failure at a position at or past the current maximum updates the
// record; a failure at a lower position is discarded; ties append.
type ErrorLog struct {
	MaxPos   int
	Messages []string
}

// NewErrorLog returns an ErrorLog ready to record failures starting at
// any position, including 0.
func NewErrorLog() *ErrorLog {
	return &ErrorLog{MaxPos: -1}
}

// Record folds a failure at pos with message msg into the log.
func (e *ErrorLog) Record(pos int, msg string) {
	switch {
	case pos > e.MaxPos:
		e.MaxPos = pos
		e.Messages = []string{msg}
	case pos == e.MaxPos:
		e.Messages = append(e.Messages, msg)
	default:
		tracer().Debugf("discarding error at %d (furthest is %d): %s", pos, e.MaxPos, msg)
	}
}

// Reset clears the log, used when an alternative formatter commits to
// a winning variant and its competitors' diagnostics no longer apply.
func (e *ErrorLog) Reset() {
	e.MaxPos = -1
	e.Messages = nil
}

// Sequence runs a fixed list of fragments in order. On format, any
// child's failure propagates after truncating buf back to the
// sequence's own entry length. On parse/peek, any child's failure
// propagates immediately (its negative result IS the sequence's
// result, so the failing position is unaltered).
type Sequence[C any] []Fragment[C]

var _ Fragment[struct{}] = Sequence[struct{}](nil)

func (s Sequence[C]) Format(ctx *C, buf *Buffer) bool {
	start := buf.Len()
	for _, f := range s {
		if !f.Format(ctx, buf) {
			buf.Truncate(start)
			return false
		}
	}
	return true
}

func (s Sequence[C]) Parse(ctx *C, text string, pos int) int {
	cur := pos
	for _, f := range s {
		r := f.Parse(ctx, text, cur)
		if IsFail(r) {
			return r
		}
		cur = r
	}
	return cur
}

func (s Sequence[C]) Peek(ctx *C, text string, pos int) int {
	cur := pos
	for _, f := range s {
		r := f.Peek(ctx, text, cur)
		if IsFail(r) {
			return r
		}
		cur = r
	}
	return cur
}

// Optional wraps a fragment so that its failure is swallowed: format
// rewinds buf and reports success with an empty contribution; parse
// and peek rewind the position and report success at the entry
// position. Optionals may not nest — wrapping an Optional in another
// Optional is redundant and the second layer is never reached because
// the inner one never fails.
type Optional[C any] struct {
	Inner Fragment[C]
}

var _ Fragment[struct{}] = Optional[struct{}]{}

func (o Optional[C]) Format(ctx *C, buf *Buffer) bool {
	start := buf.Len()
	if !o.Inner.Format(ctx, buf) {
		buf.Truncate(start)
	}
	return true
}

func (o Optional[C]) Parse(ctx *C, text string, pos int) int {
	r := o.Inner.Parse(ctx, text, pos)
	if IsFail(r) {
		return pos
	}
	return r
}

func (o Optional[C]) Peek(ctx *C, text string, pos int) int {
	r := o.Inner.Peek(ctx, text, pos)
	if IsFail(r) {
		return pos
	}
	return r
}
