package revtree

import "fmt"

// BuildError reports a malformed pattern string given to a formatter
// builder (unclosed quote, nested optional, dangling escape). It is
// unrecoverable for that formatter and is raised synchronously from
// the builder call that encountered it (§7).
type BuildError struct {
	Pattern string // the offending pattern-letter string
	Pos     int    // byte offset within Pattern where the error was detected
	Msg     string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed at index %d of pattern %q: %s", e.Pos, e.Pattern, e.Msg)
}

// FormatError reports that no formatter variant produced output —
// e.g. a strict field was at its default value, or a required
// vocabulary was absent (§7).
type FormatError struct {
	// Rendered is the best-effort rendering of the offending value
	// produced before the failing fragment, for diagnostics.
	Rendered string
	Msg      string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format failed after %q: %s", e.Rendered, e.Msg)
}

// ParseError reports a top-level parse failure: the topmost parse call
// returned a negative position, or input remained unconsumed (§6.5,
// §7). It carries the furthest-progress position and every competing
// diagnostic at that position.
type ParseError struct {
	Input    string
	Index    int
	Messages []string
}

func (e *ParseError) Error() string {
	s := fmt.Sprintf("Parse failed at index %d:\n", e.Index)
	for _, m := range e.Messages {
		s += m + "\n"
	}
	s += "\n" + MarkAt(e.Input, e.Index)
	return s
}

// MarkAt renders input with a ">>" marker inserted immediately before
// index (§6.5). An index at or beyond len(input) appends the marker at
// the end.
func MarkAt(input string, index int) string {
	if index < 0 {
		index = 0
	}
	if index > len(input) {
		index = len(input)
	}
	return input[:index] + ">>" + input[index:]
}

// InvariantError reports a violated structural invariant of the tree
// data model (§3, §7). Callers that want post-mortem debugging instead
// of an error return can set config.PanicOnInvariantViolation, in which
// case this type is panicked rather than returned.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Msg
}
