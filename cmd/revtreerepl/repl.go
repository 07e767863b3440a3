package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/parsekit/revtree"
	"github.com/parsekit/revtree/pattern"
	"github.com/parsekit/revtree/recognizer"
	"github.com/parsekit/revtree/symbolfmt"
	"github.com/parsekit/revtree/treefmt"
)

// Demo token types, just enough to build small trees by hand from the
// REPL without wiring an actual lexer/parser; the demo rule names are
// given in demoRecognizer.
const (
	tokNUM = iota + 1
	tokPLUS
	tokMINUS
)

func tracer() tracing.Trace {
	return tracing.Select("revtree.repl")
}

func demoVocabulary() *recognizer.MapVocabulary {
	return recognizer.NewMapVocabulary().
		Put(tokNUM, "NUM", "").
		Put(tokPLUS, "PLUS", "+").
		Put(tokMINUS, "MINUS", "-")
}

func demoRecognizer() *recognizer.MapRecognizer {
	return recognizer.NewMapRecognizer(demoVocabulary(), "expr", "term")
}

// main starts an interactive CLI ("revtreerepl"), where users may enter
// tree-text for one of the predefined reversible tree formatters, have
// it parsed into a *revtree.Tree, then format it back or match patterns
// against it. It is intended as a sandbox for trying out formatter and
// pattern strings while developing a grammar's vocabulary, not as a
// general-purpose tool.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to revtreerepl")
	pterm.Info.Println(`Commands: :parse <text>  :fmt simple|antlr|indented  :match <pattern>  :quit`)

	rec := demoRecognizer()
	intp := &Intp{
		rec:    rec,
		mode:   "simple",
		simple: treefmt.Simple().WithRecognizer(rec).WithVocabulary(rec.Vocabulary()),
		antlr:  treefmt.ANTLR().WithRecognizer(rec).WithVocabulary(rec.Vocabulary()),
		dented: treefmt.Indented("  ").WithRecognizer(rec).WithVocabulary(rec.Vocabulary()),
		pf:     pattern.New(rec, symbolfmt.Simple().WithVocabulary(rec.Vocabulary())),
	}

	repl, err := readline.New("revtree> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	tracer().Infof("Quit with <ctrl>D or :quit")
	intp.REPL(repl)
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp holds the REPL's state: the demo recognizer, the currently
// parsed tree, and the three predefined tree formatters plus a pattern
// formatter, all wired to the same recognizer/vocabulary.
type Intp struct {
	rec  *recognizer.MapRecognizer
	mode string
	tree *revtree.Tree

	simple *treefmt.TreeFormatter
	antlr  *treefmt.TreeFormatter
	dented *treefmt.TreeFormatter
	pf     *pattern.PatternFormatter
}

func (intp *Intp) current() *treefmt.TreeFormatter {
	switch intp.mode {
	case "antlr":
		return intp.antlr
	case "indented":
		return intp.dented
	default:
		return intp.simple
	}
}

// REPL reads lines until EOF or a :quit command, dispatching each
// non-empty line to Eval.
func (intp *Intp) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF or ctrl-C
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Eval dispatches one REPL line to a command, printing its result or
// error via pterm.
func (intp *Intp) Eval(line string) (quit bool) {
	cmd, rest := splitCommand(line)
	switch cmd {
	case ":quit", ":q":
		return true
	case ":parse":
		intp.cmdParse(rest)
	case ":fmt":
		intp.cmdFmt(rest)
	case ":match":
		intp.cmdMatch(rest)
	default:
		pterm.Error.Println("unknown command, try :parse, :fmt, :match, or :quit")
	}
	return false
}

func splitCommand(line string) (cmd, rest string) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func (intp *Intp) cmdParse(text string) {
	if text == "" {
		pterm.Error.Println("usage: :parse <tree-text>")
		return
	}
	tree, err := intp.current().Parse(text)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	intp.tree = tree
	pterm.Info.Println("parsed ok")
}

func (intp *Intp) cmdFmt(arg string) {
	if arg == "" {
		if intp.tree == nil {
			pterm.Error.Println("no tree parsed yet, try :parse first")
			return
		}
		out, err := intp.current().Format(intp.tree)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		pterm.Info.Println(out)
		return
	}
	switch arg {
	case "simple", "antlr", "indented":
		intp.mode = arg
		pterm.Info.Println("switched to " + arg)
	default:
		pterm.Error.Println("usage: :fmt [simple|antlr|indented]")
	}
}

func (intp *Intp) cmdMatch(patText string) {
	if intp.tree == nil {
		pterm.Error.Println("no tree parsed yet, try :parse first")
		return
	}
	if patText == "" {
		pterm.Error.Println("usage: :match <rule>(<pattern-body>)")
		return
	}
	node, n, err := intp.pf.ParseNode(patText)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if n != len(patText) {
		pterm.Error.Println(fmt.Sprintf("trailing input after pattern: %q", patText[n:]))
		return
	}
	pat := node.Pattern()
	m := pattern.NewMatcher(revtree.FieldType | revtree.FieldText)
	results := m.FindAll(pat, intp.tree)
	pterm.Info.Println(fmt.Sprintf("%d match(es), visited=%d attempts=%d",
		len(results), m.Stats.NodesVisited, m.Stats.AttemptsMade))
	for i, r := range results {
		out, _ := intp.current().Format(r.Node)
		pterm.Info.Println(fmt.Sprintf("  [%d] %s bindings=%v", i, out, intp.bindingTexts(r.Bindings)))
	}
}

func (intp *Intp) bindingTexts(bindings map[string]*revtree.Tree) map[string]string {
	out := make(map[string]string, len(bindings))
	for label, node := range bindings {
		if node.Kind() == revtree.TerminalKind || node.Kind() == revtree.ErrorKind {
			out[label] = node.Symbol().Text
			continue
		}
		name, _ := revtree.RuleName(intp.rec, node.Index())
		out[label] = name
	}
	return out
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
