package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/dump"
	"github.com/kpumuk/iotac-frontend/internal/lexer"
)

func parseSrc(t *testing.T, src string) (*ast.Store, ast.NodeID, *diag.Sink) {
	t.Helper()
	store := ast.NewStore()
	sink := diag.NewSink(nil)
	lex := lexer.New([]byte(src), sink)
	root := Parse(lex, store, sink)
	require.NoError(t, store.Validate())
	return store, root, sink
}

func dumpString(store *ast.Store, root ast.NodeID) string {
	var b strings.Builder
	dump.Dump(&b, store, root)
	return b.String()
}

func TestParseVarDeclWithBuiltinType(t *testing.T) {
	t.Parallel()

	store, root, sink := parseSrc(t, "let x s32 = 1;\n")
	require.Zero(t, sink.Len())
	require.Equal(t, ast.SourceFile, store.Get(root).Kind)

	decls := store.SourceFileDecls(root)
	require.Len(t, decls, 1)
	require.Equal(t, ast.VarDecl, store.Get(decls[0]).Kind)

	binding := store.VarDeclBinding(decls[0])
	name, ok := store.ParamBinding(binding)
	require.True(t, ok)
	require.Equal(t, "x", string(name.Text))
}

func TestParseFuncDeclWithParamsAndReturnType(t *testing.T) {
	t.Parallel()

	store, root, sink := parseSrc(t, "fun add(a s32, b s32) -> s32 {\n  return a + b;\n}\n")
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	require.Len(t, decls, 1)
	fn := decls[0]
	require.Equal(t, ast.FuncDecl, store.Get(fn).Kind)

	params := store.FuncParams(fn)
	require.Len(t, params, 2)

	rt := store.FuncReturnType(fn)
	require.NotEqual(t, ast.None, rt)
	require.Equal(t, ast.BuiltinType, store.Get(rt).Kind)

	body := store.FuncBody(fn)
	stmts := store.CompoundStmts(body)
	require.Len(t, stmts, 1)
	require.Equal(t, ast.ReturnStmt, store.Get(stmts[0]).Kind)

	value := store.ReturnValue(stmts[0])
	require.Equal(t, ast.BinaryExpr, store.Get(value).Kind)
}

func TestParseBracedLiteralFoldsDesignator(t *testing.T) {
	t.Parallel()

	store, root, sink := parseSrc(t, "let p Point = Point{x = 1, y = 2};\n")
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	value := store.VarDeclValue(decls[0])
	require.Equal(t, ast.BracedLiteral, store.Get(value).Kind)

	typ := store.BracedLiteralType(value)
	require.NotEqual(t, ast.None, typ)
	require.Equal(t, ast.ScopedIdent, store.Get(typ).Kind)

	init := store.BracedLiteralInit(value)
	items := store.InitializerItems(init)
	require.Len(t, items, 2)
	require.Equal(t, "x", string(mustArgName(t, store, items[0])))
}

func mustArgName(t *testing.T, store *ast.Store, id ast.NodeID) []byte {
	t.Helper()
	tok, ok := store.ArgName(id)
	require.True(t, ok)
	return tok.Text
}

func TestParseInferredBracedLiteral(t *testing.T) {
	t.Parallel()

	store, root, sink := parseSrc(t, "let p Point = {1, 2};\n")
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	value := store.VarDeclValue(decls[0])
	require.Equal(t, ast.BracedLiteral, store.Get(value).Kind)
	require.Equal(t, ast.None, store.BracedLiteralType(value))
}

func TestParsePrattPrecedence(t *testing.T) {
	t.Parallel()

	// 1 + 2 * 3 should bind as 1 + (2 * 3): the BinaryExpr's right child
	// is itself a BinaryExpr, not the left.
	store, root, sink := parseSrc(t, "let x s32 = 1 + 2 * 3;\n")
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	expr := store.VarDeclValue(decls[0])
	require.Equal(t, ast.BinaryExpr, store.Get(expr).Kind)

	right := store.BinaryRight(expr)
	require.Equal(t, ast.BinaryExpr, store.Get(right).Kind)

	left := store.BinaryLeft(expr)
	require.Equal(t, ast.BasicExpr, store.Get(left).Kind)
}

func TestParseScopedIdentWithLeadingColonColon(t *testing.T) {
	t.Parallel()

	store, root, sink := parseSrc(t, "let x s32 = ::foo::bar;\n")
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	expr := store.VarDeclValue(decls[0])
	require.Equal(t, ast.ScopedIdent, store.Get(expr).Kind)

	comps := store.ScopedIdentComponents(expr)
	require.Len(t, comps, 3)
	require.Equal(t, "", string(comps[0].Text))
	require.Equal(t, "foo", string(comps[1].Text))
	require.Equal(t, "bar", string(comps[2].Text))
}

func TestParseStructDeclFields(t *testing.T) {
	t.Parallel()

	store, root, sink := parseSrc(t, "struct Point {\n  x s32,\n  y s32,\n}\n")
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	fields := store.StructFields(decls[0])
	require.Len(t, fields, 2)

	name, ok := store.FieldName(fields[0])
	require.True(t, ok)
	require.Equal(t, "x", string(name.Text))
}

func TestParseErrorDeclNamedAlternatives(t *testing.T) {
	t.Parallel()

	store, root, sink := parseSrc(t, "error IoError {\n  NotFound,\n  Timeout { retries s32 },\n}\n")
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	alts := store.ErrorAlternatives(decls[0])
	require.Len(t, alts, 2)

	timeoutFields := store.PositionalNodes(alts[1])
	require.Len(t, timeoutFields, 1)
}

func TestParseIfUnionTagCondition(t *testing.T) {
	t.Parallel()

	src := "fun run(r Result) {\n  if let Ok(v) = r {\n    return;\n  }\n}\n"
	store, root, sink := parseSrc(t, src)
	require.Zero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	body := store.FuncBody(decls[0])
	stmts := store.CompoundStmts(body)
	require.Len(t, stmts, 1)

	cond := store.IfCondition(stmts[0])
	require.Equal(t, ast.UnionTagCondition, store.Get(cond).Kind)

	binding := store.UnionTagConditionBinding(cond)
	require.NotEqual(t, ast.None, binding)
}

func TestParseRecoversFromMissingSemicolon(t *testing.T) {
	t.Parallel()

	// Missing ';' after the first statement: panic-mode recovery should
	// still surface the second declaration rather than giving up.
	src := "fun f() {\n  let x s32 = 1\n  let y s32 = 2;\n}\n"
	store, root, sink := parseSrc(t, src)
	require.NotZero(t, sink.Len())

	decls := store.SourceFileDecls(root)
	body := store.FuncBody(decls[0])
	stmts := store.CompoundStmts(body)
	require.GreaterOrEqual(t, len(stmts), 2)
}

func TestDumpGoldenForSimpleVarDecl(t *testing.T) {
	t.Parallel()

	store, root, sink := parseSrc(t, "let x s32 = 1;\n")
	require.Zero(t, sink.Len())

	got := dumpString(store, root)
	require.Contains(t, got, "SourceFile {")
	require.Contains(t, got, "VarDecl {")
	require.Contains(t, got, "'1'")
}
