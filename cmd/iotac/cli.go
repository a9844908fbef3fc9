// Package main wires the iotac front-end pipeline into a cobra CLI: a
// "dump" subcommand for inspecting the parsed tree and a "check"
// subcommand for running the full pipeline and reporting diagnostics.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/dump"
	"github.com/kpumuk/iotac-frontend/internal/source"
	"github.com/kpumuk/iotac-frontend/internal/tu"
)

const (
	exitOK          = 0
	exitDiagnostics = 1
	exitInternal    = 2
)

// exitErr carries the process exit code a failed subcommand should
// produce, so RunE can return a plain error (cobra's idiom) while main
// still exits with the right code without every command calling
// os.Exit itself.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "iotac",
		Short:         "lex, parse, resolve, and type-check an iota source file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newDumpCmd(stdin, stdout, stderr))
	root.AddCommand(newCheckCmd(stdin, stdout, stderr))
	return root
}

func newDumpCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var useStdin bool
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "parse a file and print its syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			src, uri, err := readSource(stdin, useStdin, args)
			if err != nil {
				return &exitErr{exitInternal, err}
			}
			unit := tu.Compile(src, uri)
			dump.Dump(stdout, unit.Store, unit.Root)
			printDiagnostics(stderr, unit, src)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "read source from stdin instead of a file argument")
	return cmd
}

func newCheckCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var useStdin bool
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "run the full pipeline and report diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			src, uri, err := readSource(stdin, useStdin, args)
			if err != nil {
				return &exitErr{exitInternal, err}
			}
			unit := tu.Compile(src, uri)
			printDiagnostics(stderr, unit, src)
			fmt.Fprintf(stdout, "%s: parsed %s bytes, %d diagnostic(s)\n",
				uri, humanize.Comma(int64(len(src))), unit.Sink.Len())
			if unit.HasErrors() {
				return &exitErr{exitDiagnostics, fmt.Errorf("%d diagnostic(s)", unit.Sink.Len())}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "read source from stdin instead of a file argument")
	return cmd
}

func readSource(stdin io.Reader, useStdin bool, args []string) (src []byte, uri string, err error) {
	switch {
	case useStdin && len(args) > 0:
		return nil, "", errors.New("a positional file path is not allowed with --stdin")
	case useStdin:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return b, "stdin.iota", nil
	case len(args) == 1:
		//nolint:gosec // CLI intentionally reads a user-provided file path.
		b, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return b, args[0], nil
	default:
		return nil, "", errors.New("exactly one input file path is required (or use --stdin)")
	}
}

func printDiagnostics(w io.Writer, u *tu.Unit, src []byte) {
	if u.Sink.Len() == 0 {
		return
	}
	li := source.NewLineIndex(src)
	for _, d := range u.Diagnostics() {
		diag.Print(w, u.URI, src, li, d)
	}
}
