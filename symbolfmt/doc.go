/*
Package symbolfmt implements the reversible symbol formatter (§4.2): a
Formatter renders a revtree.Symbol to text and parses that text back
into an equal symbol (modulo fields the formatter never prints), built
from a compact pattern-letter string compiled by Builder.AppendPattern,
or by hand-assembling kernel.Fragment[Context] values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package symbolfmt
