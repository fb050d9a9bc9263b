// Command golox is the golox driver: a REPL, a one-shot file runner,
// and a file-watching convenience runner. Grounded on the teacher's
// cmd/devcmd/main.go (explicit exit-code constants, read-file-then-
// process shape), upgraded from hand-rolled flag parsing to
// cobra.Command since the teacher's own go.mod already requires cobra
// (used directly by the sibling opal CLI and referenced from
// pkgs/engine.go's generated-CLI templates) — see SPEC_FULL.md §9.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes per spec.md §6.
const (
	exitSuccess      = 0
	exitUsageError   = 1
	exitIOError      = 2
	exitParseError   = 65
	exitRuntimeError = 70
)

func main() {
	root := newRootCommand(os.Stdout, os.Stderr, os.Stdin)
	if err := root.Execute(); err != nil {
		// cobra has already printed the error; just set the exit code.
		os.Exit(exitUsageError)
	}
}

func newRootCommand(stdout, stderr io.Writer, stdin io.Reader) *cobra.Command {
	root := &cobra.Command{
		Use:           "golox",
		Short:         "golox is a tree-walking interpreter for the Lox language",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(stdout, stderr, stdin)
		},
	}

	root.AddCommand(newREPLCommand(stdout, stderr, stdin))
	root.AddCommand(newRunCommand(stdout, stderr))
	root.AddCommand(newWatchCommand(stdout, stderr))

	return root
}

func newREPLCommand(stdout, stderr io.Writer, stdin io.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Lox prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(stdout, stderr, stdin)
		},
	}
}

func newRunCommand(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "run <path>",
		Short: "Run a Lox script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := runFile(args[0], stdout, stderr)
			if code != exitSuccess {
				os.Exit(code)
			}
			return nil
		},
	}
}

func runREPL(stdout, stderr io.Writer, stdin io.Reader) error {
	interp := newInterpreter(stdout)
	sink := newSink(stderr)
	scanner := bufio.NewScanner(stdin)

	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return nil
		}
		runLine(scanner.Text(), interp, sink)
		// Clear the syntax-error flag so a bad line doesn't end the
		// session (spec.md §6). Runtime errors are reported per-line
		// and likewise don't terminate the REPL.
		sink.Reset()
	}
}

func runFile(path string, stdout, stderr io.Writer) int {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file: %v\n", err)
		return exitIOError
	}

	interp := newInterpreter(stdout)
	sink := newSink(stderr)

	stmts, ok := parseSource(string(content), sink)
	if !ok || sink.HadError() {
		return exitParseError
	}

	if runtimeErr := interp.Interpret(stmts); runtimeErr != nil {
		sink.ReportRuntime(runtimeErr.Message, runtimeErr.Token.Line)
		return exitRuntimeError
	}

	return exitSuccess
}

// runLine scans+parses+interprets a single line of REPL input,
// reporting any error to sink but never returning a process exit code
// (the REPL always continues).
func runLine(line string, interp *interpreter, sink *sink) {
	stmts, ok := parseSource(line, sink)
	if !ok || sink.HadError() {
		return
	}
	if runtimeErr := interp.Interpret(stmts); runtimeErr != nil {
		sink.ReportRuntime(runtimeErr.Message, runtimeErr.Token.Line)
	}
}
