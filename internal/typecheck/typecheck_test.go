package typecheck

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kpumuk/iotac-frontend/internal/arena"
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/lexer"
	"github.com/kpumuk/iotac-frontend/internal/parser"
	"github.com/kpumuk/iotac-frontend/internal/resolve"
	"github.com/kpumuk/iotac-frontend/internal/symtab"
	"github.com/kpumuk/iotac-frontend/internal/token"
	"github.com/kpumuk/iotac-frontend/internal/types"
)

// checkSrc runs the full pipeline (lex, parse, symtab, resolve, type
// resolution, checking) over src and returns the store, root, type
// interner, and diagnostic sink, so a test can inspect a specific
// node's resolved TypeID.
func checkSrc(t *testing.T, src string) (*ast.Store, ast.NodeID, *types.Interner, *diag.Sink) {
	t.Helper()
	store := ast.NewStore()
	tys := types.New()
	sink := diag.NewSink(tys)
	lex := lexer.New([]byte(src), sink)
	root := parser.Parse(lex, store, sink)
	require.Zero(t, sink.Len())

	a := arena.New()
	sym := symtab.Build(store, root, sink, a)
	resolve.Run(store, root, sym, sink, a)

	tr := NewTypeResolver(store, tys, sink)
	tr.Run(root)
	NewChecker(store, tys, sink, tr).Run(root)

	return store, root, tys, sink
}

// A plain let-bound variable used in a binary expression must type-check
// cleanly: checkScopedIdentExpr has to see the VarDecl's TypeID, not a
// stale Invalid left on its unused Binding child.
func TestCheckPlainLetVariableInBinaryExpr(t *testing.T) {
	t.Parallel()

	src := "let x s32 = 10;\nlet y s32 = x + 1;\n"
	store, root, tys, sink := checkSrc(t, src)
	require.False(t, sink.Len() > 0, "unexpected diagnostics: %+v", sink.Diagnostics())

	decls := store.SourceFileDecls(root)
	require.Len(t, decls, 2)

	s32 := tys.Primitive(token.KwS32)
	require.Equal(t, s32, types.ID(store.Get(decls[0]).TypeID))
	require.Equal(t, s32, types.ID(store.Get(decls[1]).TypeID))

	rhs := store.VarDeclValue(decls[1])
	require.Equal(t, s32, types.ID(store.Get(rhs).TypeID))
}

// A plain let-bound struct variable used as a field-access base must
// resolve the field's type, mirroring a struct literal assigned to a
// local and then read back through a field.
func TestCheckPlainLetVariableAsFieldAccessBase(t *testing.T) {
	t.Parallel()

	src := `
struct P {
  x s32,
  y s32,
}

let p = P{x = 1, y = 2};
let a = p.x;
`
	store, root, tys, sink := checkSrc(t, src)
	require.False(t, sink.Len() > 0, "unexpected diagnostics: %+v", sink.Diagnostics())

	decls := store.SourceFileDecls(root)
	require.Len(t, decls, 3)
	aDecl := decls[2]

	s32 := tys.Primitive(token.KwS32)
	require.Equal(t, s32, types.ID(store.Get(aDecl).TypeID))

	fieldAccess := store.VarDeclValue(aDecl)
	require.Equal(t, ast.FieldAccessExpr, store.Get(fieldAccess).Kind)
	require.Equal(t, s32, types.ID(store.Get(fieldAccess).TypeID))
}

func TestCheckReportsMismatchOnDeclaredTypeConflict(t *testing.T) {
	t.Parallel()

	_, _, _, sink := checkSrc(t, "let x s32 = true;\n")
	require.NotZero(t, sink.Len())
	require.Equal(t, diag.TypeMismatch, sink.Diagnostics()[0].Code)
}

func TestCheckFuncParamFieldAccessStillWorks(t *testing.T) {
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
	_, _, _, sink := checkSrc(t, src)
	require.False(t, sink.Len() > 0, "unexpected diagnostics: %+v", sink.Diagnostics())
}
