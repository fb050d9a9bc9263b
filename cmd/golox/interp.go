package main

import (
	"fmt"
	"io"

	"github.com/aledsdavies/golox/pkgs/ast"
	"github.com/aledsdavies/golox/pkgs/diagnostics"
	"github.com/aledsdavies/golox/pkgs/evaluator"
	"github.com/aledsdavies/golox/pkgs/lexer"
	"github.com/aledsdavies/golox/pkgs/parser"
)

type interpreter = evaluator.Interpreter
type sink = diagnostics.Sink

// stdoutPrinter adapts an io.Writer to evaluator.Printer, writing one
// line per `print` call as spec.md §6 requires.
type stdoutPrinter struct{ w io.Writer }

func (p stdoutPrinter) Println(s string) { fmt.Fprintln(p.w, s) }

func newInterpreter(stdout io.Writer) *interpreter {
	return evaluator.New(stdoutPrinter{w: stdout})
}

func newSink(stderr io.Writer) *sink {
	return diagnostics.New(stderr)
}

// parseSource scans and parses source, reporting diagnostics into
// sink. ok is always true (an empty program yields a nil slice and is
// still ok); syntax errors are signaled through sink.HadError, not
// through ok, so a partially-recovered program can still be inspected.
func parseSource(source string, s *sink) (stmts []ast.Stmt, ok bool) {
	lx := lexer.New(source, s)
	stmts = parser.New(lx.ScanTokens(), s).ParseProgram()
	return stmts, true
}
