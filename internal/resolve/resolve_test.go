package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kpumuk/iotac-frontend/internal/arena"
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/lexer"
	"github.com/kpumuk/iotac-frontend/internal/parser"
	"github.com/kpumuk/iotac-frontend/internal/symtab"
)

func compileSrc(t *testing.T, src string) (*ast.Store, ast.NodeID, *diag.Sink) {
	t.Helper()
	store := ast.NewStore()
	sink := diag.NewSink(nil)
	lex := lexer.New([]byte(src), sink)
	root := parser.Parse(lex, store, sink)
	require.Zero(t, sink.Len())
	a := arena.New()
	sym := symtab.Build(store, root, sink, a)
	Run(store, root, sym, sink, a)
	return store, root, sink
}

// A reference to a plain let-bound variable must resolve to the VarDecl
// node itself, matching the scope entry symtab.declareVarDeclBinding now
// registers — the type checker looks up the inferred type by this id.
func TestResolveScopedIdentPointsAtVarDecl(t *testing.T) {
	t.Parallel()

	src := "let x s32 = 1;\nlet y s32 = x;\n"
	store, root, sink := compileSrc(t, src)
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	require.Len(t, decls, 2)
	xDecl := decls[0]

	yValue := store.VarDeclValue(decls[1])
	require.Equal(t, ast.ScopedIdent, store.Get(yValue).Kind)
	require.Equal(t, xDecl, store.Get(yValue).ResolvesTo)
}

// let x = x; must still be rejected as an illegal self-reference now that
// the VarDecl's own id (not its Binding child's) is the guarded entry.
func TestResolveRejectsSelfReferencingVarDecl(t *testing.T) {
	t.Parallel()

	_, _, sink := compileSrc(t, "let x s32 = x;\n")
	require.NotZero(t, sink.Len())
	require.Equal(t, diag.ScopeUnresolved, sink.Diagnostics()[0].Code)
}

func TestResolveReportsUnresolvedName(t *testing.T) {
	t.Parallel()

	_, _, sink := compileSrc(t, "let x s32 = y;\n")
	require.NotZero(t, sink.Len())
	require.Equal(t, diag.ScopeUnresolved, sink.Diagnostics()[0].Code)
}

func TestResolveFuncParamReference(t *testing.T) {
	t.Parallel()

	src := "fun f(a s32) -> s32 {\n  return a;\n}\n"
	store, root, sink := compileSrc(t, src)
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	fn := decls[0]
	params := store.FuncParams(fn)
	body := store.FuncBody(fn)
	stmts := store.CompoundStmts(body)
	ret := store.ReturnValue(stmts[0])

	require.Equal(t, ast.ScopedIdent, store.Get(ret).Kind)
	require.Equal(t, params[0], store.Get(ret).ResolvesTo)
}
