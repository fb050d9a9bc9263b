package main

import (
	"fmt"
	"io"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// newWatchCommand wires github.com/fsnotify/fsnotify into a pure
// driver-layer convenience: re-run a script whenever it changes on
// disk. This is not a language feature (spec.md's core scope is the
// scanner/parser/environment/evaluator); it is CLI sugar over the
// already-specified file-mode execution path, exercising a dependency
// the corpus's runtime module pulls in for exactly this purpose.
func newWatchCommand(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <path>",
		Short: "Re-run a Lox script each time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchFile(args[0], stdout, stderr)
		},
	}
}

func watchFile(path string, stdout, stderr io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	fmt.Fprintf(stdout, "watching %s, Ctrl-C to stop\n", path)
	runFile(path, stdout, stderr)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fmt.Fprintf(stdout, "--- %s changed, re-running ---\n", path)
				runFile(path, stdout, stderr)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(stderr, "watch error: %v\n", watchErr)
		}
	}
}
