package tu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileCleanProgramHasNoDiagnostics(t *testing.T) {
	t.Parallel()

	src := `
struct Point {
  x s32,
  y s32,
}

fun sum(p Point) -> s32 {
  return p.x + p.y;
}
`
	u := Compile([]byte(src), "clean.iota")
	require.False(t, u.HasErrors(), "unexpected diagnostics: %+v", u.Diagnostics())
	require.NotNil(t, u.Arena)
}

func TestCompileAssignsDistinctUnitIDs(t *testing.T) {
	t.Parallel()

	a := Compile([]byte("let x s32 = 1;\n"), "a.iota")
	b := Compile([]byte("let x s32 = 1;\n"), "b.iota")
	require.NotEqual(t, a.ID, b.ID)
}

func TestCompileReportsUnresolvedName(t *testing.T) {
	t.Parallel()

	u := Compile([]byte("let x s32 = y;\n"), "bad.iota")
	require.True(t, u.HasErrors())
}

func TestCompileReportsTypeMismatch(t *testing.T) {
	t.Parallel()

	u := Compile([]byte(`
fun f() -> s32 {
  return true;
}
`), "mismatch.iota")
	require.True(t, u.HasErrors())
}

func TestCompilePlainLetVariableInBinaryExpr(t *testing.T) {
	t.Parallel()

	u := Compile([]byte("let x s32 = 10;\nlet y s32 = x + 1;\n"), "let_binary.iota")
	require.False(t, u.HasErrors(), "unexpected diagnostics: %+v", u.Diagnostics())
}

func TestCompilePlainLetVariableAsFieldAccessBase(t *testing.T) {
	t.Parallel()

	src := `
struct P {
  x s32,
  y s32,
}

let p = P{x = 1, y = 2};
let a = p.x;
`
	u := Compile([]byte(src), "let_field_access.iota")
	require.False(t, u.HasErrors(), "unexpected diagnostics: %+v", u.Diagnostics())
}

func TestCompileInternsRepeatedFieldNames(t *testing.T) {
	t.Parallel()

	u := Compile([]byte(`
struct A { value s32 }
struct B { value s32 }
`), "interned.iota")
	require.False(t, u.HasErrors())
	// "A", "B", "value" (twice, deduped to one entry) — 3 distinct
	// interned strings even though 4 names were declared.
	require.Equal(t, 3, u.Arena.Len())
}
