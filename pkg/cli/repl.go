// Package cli is the host front-end: a REPL loop, a script runner,
// and stdin/file argument handling around the embeddable engine. None
// of this is part of the evaluator core — it is an external
// collaborator built on top of pkg/engine's public surface.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"minijs/internal/config"
	"minijs/internal/parser"
	"minijs/pkg/engine"
)

// Run is the CLI entry point: a filename argument runs that file; with
// no argument and a TTY stdin it runs the REPL; otherwise it reads
// stdin to EOF and evaluates it as one script. The exit code is 0 on
// success, nonzero when evaluation fails with a thrown value.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	eng := engine.New()
	if stdout != nil {
		eng.SetOut(stdout)
	}

	if len(args) > 0 {
		return runFile(eng, args[0], stderr)
	}

	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return runREPL(eng, stdin, stdout, stderr)
	}
	return runStdin(eng, stdin, stdout, stderr)
}

// diagLogger is a Go-internal diagnostic logger (file I/O failures,
// not script-level thrown values) with timestamps disabled, built
// per-call against the injected writer rather than the global log
// package so the host can redirect it.
func diagLogger(w io.Writer) *log.Logger {
	return log.New(w, "minijs: ", 0)
}

func runFile(eng *engine.Engine, path string, stderr io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		diagLogger(stderr).Print(err)
		return 1
	}
	return report(eng.Eval(string(data)), nil, stderr)
}

func runStdin(eng *engine.Engine, stdin io.Reader, stdout, stderr io.Writer) int {
	data, err := io.ReadAll(stdin)
	if err != nil {
		diagLogger(stderr).Print(err)
		return 1
	}
	return report(eng.Eval(string(data)), nil, stderr)
}

// report prints the evaluation result (to stdout when given, a nil
// stdout suppresses the success echo, as non-interactive runs do) and
// returns the process exit code. A thrown value's best-effort call
// stack, if any, follows it on stderr.
func report(res engine.Result, stdout, stderr io.Writer) int {
	if res.IsErr {
		fmt.Fprintf(stderr, "%s\n", engine.Inspect(res.Err))
		if res.Trace != "" {
			fmt.Fprint(stderr, res.Trace)
		}
		return 1
	}
	if stdout != nil {
		fmt.Fprintln(stdout, engine.Inspect(res.Value))
	}
	return 0
}

// runREPL reads lines from stdin, using parser.IsComplete to decide
// whether to prompt for a continuation line before handing the
// accumulated source to the engine.
func runREPL(eng *engine.Engine, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, cfgErr := config.LoadREPLConfig(".minijsrc.yaml")
	if cfgErr != nil {
		fmt.Fprintf(stderr, "minijs: warning: %s\n", cfgErr)
	}

	scanner := bufio.NewScanner(stdin)
	var buf strings.Builder

	fmt.Fprint(stdout, cfg.Prompt)
	for scanner.Scan() {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(scanner.Text())

		source := buf.String()
		if !parser.IsComplete(source) {
			fmt.Fprint(stdout, cfg.ContinuationPrompt)
			continue
		}

		buf.Reset()
		if strings.TrimSpace(source) != "" {
			report(eng.Eval(source), stdout, stderr)
		}
		fmt.Fprint(stdout, cfg.Prompt)
	}
	fmt.Fprintln(stdout)
	return 0
}
