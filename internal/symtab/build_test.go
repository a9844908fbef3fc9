package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kpumuk/iotac-frontend/internal/arena"
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/lexer"
	"github.com/kpumuk/iotac-frontend/internal/parser"
)

func buildSrc(t *testing.T, src string) (*ast.Store, ast.NodeID, Result) {
	t.Helper()
	store := ast.NewStore()
	sink := diag.NewSink(nil)
	lex := lexer.New([]byte(src), sink)
	root := parser.Parse(lex, store, sink)
	require.Zero(t, sink.Len())
	a := arena.New()
	return store, root, Build(store, root, sink, a)
}

// A plain let binding must register its scope entry against the VarDecl
// node itself, not its Binding child — the type checker only ever writes
// the inferred type onto the VarDecl node, so an entry pointing at the
// Binding child would leave every reference to the variable untyped.
func TestBuildPlainVarDeclRegistersOwnNode(t *testing.T) {
	t.Parallel()

	store, root, sym := buildSrc(t, "let x s32 = 1;\n")
	decls := store.SourceFileDecls(root)
	require.Len(t, decls, 1)
	varDecl := decls[0]
	require.Equal(t, ast.VarDecl, store.Get(varDecl).Kind)

	binding := store.VarDeclBinding(varDecl)
	require.NotEqual(t, ast.None, binding)

	entry := sym.Global.Lookup("x")
	require.NotNil(t, entry)
	require.Equal(t, varDecl, entry.Decl)
	require.NotEqual(t, binding, entry.Decl)
}

func TestBuildFuncParamRegistersOwnNode(t *testing.T) {
	t.Parallel()

	store, root, sym := buildSrc(t, "fun f(a s32) -> s32 {\n  return a;\n}\n")
	decls := store.SourceFileDecls(root)
	fn := decls[0]
	params := store.FuncParams(fn)
	require.Len(t, params, 1)

	fnScope := sym.Scopes[fn]
	require.NotNil(t, fnScope)
	entry := fnScope.Lookup("a")
	require.NotNil(t, entry)
	require.Equal(t, params[0], entry.Decl)
}

func TestBuildIfLetUnionTagBindingRegistersBindingNode(t *testing.T) {
	t.Parallel()

	src := "fun run(r Result) {\n  if let Ok(v) = r {\n    return;\n  }\n}\n"
	store, root, sym := buildSrc(t, src)
	decls := store.SourceFileDecls(root)
	fn := decls[0]
	body := store.FuncBody(fn)
	stmts := store.CompoundStmts(body)
	require.Len(t, stmts, 1)

	cond := store.IfCondition(stmts[0])
	binding := store.UnionTagConditionBinding(cond)
	require.NotEqual(t, ast.None, binding)

	ifScope := sym.Scopes[stmts[0]]
	require.NotNil(t, ifScope)
	entry := ifScope.Lookup("v")
	require.NotNil(t, entry)
	require.Equal(t, binding, entry.Decl)
}
