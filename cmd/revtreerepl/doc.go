/*
Command revtreerepl is an interactive sandbox for trying reversible
formatters and tree patterns against a small demo grammar: parse tree
text, format it back with Simple/ANTLR/Indented, and match patterns
against it, without writing a Go test for every experiment.

Adapted from the teacher's terex/terexlang/trepl REPL: same
readline-driven command loop and pterm-colored output, retargeted from
s-expression evaluation to revtree's formatters and matcher.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main
