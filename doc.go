/*
Package revtree implements the data model shared by the reversible
formatters and the tree pattern matcher used to test parser generator
grammars: lexical Symbols, tagged tree nodes (rule/terminal/error/
pattern), and tree Patterns with typed, labeled holes.

Package structure:

■ revtree: this package. Symbol, Vocabulary/Recognizer contracts, the
Tree node variants, Pattern values, and the error taxonomy.

■ revtree/kernel: the printer/parser fragment kernel (format/parse/peek,
sequencing, optional groups, furthest-progress error accumulation),
generic over the context type a concrete formatter needs.

■ revtree/symbolfmt: the symbol formatter — fragments for an eight-field
token record plus the compact pattern-letter language, and the
predefined ANTLR-style and SIMPLE formatters.

■ revtree/treefmt: the node formatter and the tree formatter driver,
plus the predefined ANTLR-style, SIMPLE and INDENTED tree formatters.

■ revtree/pattern: the tree-pattern formatter and the matcher (Match,
FindAll).

■ revtree/recognizer: a small reference Recognizer/Vocabulary and a
lexmachine-backed lexer adapter, so the toolkit can be exercised without
a generated grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package revtree
