/*
Package recognizer provides ready-made revtree.Vocabulary/Recognizer
implementations: MapVocabulary, a plain in-memory table for tests and
small grammars, and LexAdapter, a github.com/timtadh/lexmachine-backed
scanner that turns lexmachine's token stream into revtree.Symbol values
(§6.1: this module treats an embedded lexer/parser runtime as an
external collaborator it only needs a Vocabulary/Recognizer view of).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package recognizer
