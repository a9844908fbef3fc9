package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCmd(stdin string, args ...string) (stdout, stderr string, code int) {
	var out, errb bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out, &errb)
	root.SetArgs(args)

	exitCode := exitOK
	if err := root.Execute(); err != nil {
		fmt.Fprintln(&errb, err)
		if ee, ok := err.(*exitErr); ok {
			exitCode = ee.code
		} else {
			exitCode = exitInternal
		}
	}
	return out.String(), errb.String(), exitCode
}

func TestCheckCleanSourceExitsOK(t *testing.T) {
	t.Parallel()

	out, errb, code := runCmd("let x s32 = 1;\n", "check", "--stdin")
	require.Equal(t, exitOK, code, "stderr: %s", errb)
	require.Contains(t, out, "parsed")
	require.Contains(t, out, "0 diagnostic(s)")
}

func TestCheckUnresolvedNameExitsDiagnostics(t *testing.T) {
	t.Parallel()

	out, errb, code := runCmd("let x s32 = y;\n", "check", "--stdin")
	require.Equal(t, exitDiagnostics, code)
	require.NotEmpty(t, errb)
	require.Contains(t, out, "diagnostic(s)")
}

func TestCheckRejectsStdinWithPositionalPath(t *testing.T) {
	t.Parallel()

	_, errb, code := runCmd("", "check", "--stdin", "some/file.iota")
	require.Equal(t, exitInternal, code)
	require.Contains(t, errb, "positional file path")
}

func TestCheckReadsFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "unit.iota")
	require.NoError(t, os.WriteFile(path, []byte("let x s32 = 1;\n"), 0o600))

	out, errb, code := runCmd("", "check", path)
	require.Equal(t, exitOK, code, "stderr: %s", errb)
	require.Contains(t, out, path)
}

func TestDumpPrintsTreeShape(t *testing.T) {
	t.Parallel()

	out, _, code := runCmd("let x s32 = 1;\n", "dump", "--stdin")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "SourceFile")
	require.Contains(t, out, "VarDecl")
}

func TestCheckMissingInputIsRejected(t *testing.T) {
	t.Parallel()

	_, errb, code := runCmd("", "check")
	require.Equal(t, exitInternal, code)
	require.Contains(t, errb, "input file path")
}
