/*
Package pattern implements the tree pattern formatter and matcher
(§4.5, §6.3): a PatternFormatter parses a pattern string like
"<expr>(<left:expr> '+' <right:expr>)" into a *revtree.Pattern and
renders one back, and Match/FindAll test a Pattern against a
*revtree.Tree, using the ambient formatter's FieldSet as the symbol
equalizer so matching tolerates whatever fields the formatter doesn't
print.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package pattern
