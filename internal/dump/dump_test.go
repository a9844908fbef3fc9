package dump

import (
	"testing"

	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/source"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

func tok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: []byte(text)}
}

func TestDumpLeafNodeNoChildren(t *testing.T) {
	store := ast.NewStore()
	id := store.New(ast.BasicExpr, source.Span{})
	store.AddChildToken(id, "token", tok(token.IntLiteral, "10"))

	got := String(store, id)
	want := "BasicExpr {\n  token='10'\n}\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestDumpEmptyNode(t *testing.T) {
	store := ast.NewStore()
	id := store.New(ast.CompoundStmt, source.Span{})

	got := String(store, id)
	want := "CompoundStmt {}\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestDumpNamedAndPositionalChildren(t *testing.T) {
	store := ast.NewStore()
	varDecl := store.New(ast.VarDecl, source.Span{})
	binding := store.New(ast.Binding, source.Span{})
	store.AddChildToken(binding, "name", tok(token.Ident, "x"))
	store.AddChildNode(varDecl, binding, "binding")

	value := store.New(ast.BasicExpr, source.Span{})
	store.AddChildToken(value, "token", tok(token.IntLiteral, "10"))
	store.AddChildNode(varDecl, value, "value")

	got := String(store, varDecl)
	want := "VarDecl {\n" +
		"  binding:\n" +
		"    Binding {\n" +
		"      name='x'\n" +
		"    }\n" +
		"  value:\n" +
		"    BasicExpr {\n" +
		"      token='10'\n" +
		"    }\n" +
		"}\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpErrorFlagMarker(t *testing.T) {
	store := ast.NewStore()
	id := store.New(ast.ExprStmt, source.Span{})
	store.Get(id).AddFlag(ast.FlagError)

	got := String(store, id)
	want := "ExprStmt(error!) {}\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestDumpPositionalNodeChildNoExtraIndent(t *testing.T) {
	store := ast.NewStore()
	compound := store.New(ast.CompoundStmt, source.Span{})
	stmt := store.New(ast.ExprStmt, source.Span{})
	store.AddChildNode(compound, stmt, "")

	got := String(store, compound)
	want := "CompoundStmt {\n  ExprStmt {}\n}\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}
