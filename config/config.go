/*
Package config wraps the handful of global flags revtree consults, the
way the teacher package wraps `gconf.GetBool("panic-on-parser-stuck")`
in lr/earley/parsetree.go.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package config

import "github.com/npillmayer/schuko/gconf"

// PanicOnInvariantViolationKey is the gconf flag name consulted by the
// tree constructors before returning an InvariantError (NewRule given a
// child that already has a parent, SetRoot on an attached node).
// Defaults to false: violations are returned as errors.
const PanicOnInvariantViolationKey = "panic-on-invariant-violation"

// PanicOnInvariantViolation reports whether tree constructors should
// panic (for post-mortem debugging) rather than return an error when a
// structural invariant is violated.
func PanicOnInvariantViolation() bool {
	return gconf.GetBool(PanicOnInvariantViolationKey)
}
