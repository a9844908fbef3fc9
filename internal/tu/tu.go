// Package tu orchestrates one translation unit end to end: lexer,
// parser, symbol-table builder, name resolver, type resolver, and type
// checker, in that fixed order — earlier passes must complete before
// later passes start. Not itself one of the front end's named
// components, but implied by the pipeline's data-flow and needed as a
// single entry point for the CLI and tests to drive.
package tu

import (
	"github.com/google/uuid"

	"github.com/kpumuk/iotac-frontend/internal/arena"
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/lexer"
	"github.com/kpumuk/iotac-frontend/internal/parser"
	"github.com/kpumuk/iotac-frontend/internal/resolve"
	"github.com/kpumuk/iotac-frontend/internal/symtab"
	"github.com/kpumuk/iotac-frontend/internal/typecheck"
	"github.com/kpumuk/iotac-frontend/internal/types"
)

// Unit bundles every per-translation-unit resource: the node store, the
// string arena backing it, the diagnostic sink, the type interner, and
// a UUID used only for log correlation across a multi-unit run (it
// never affects parse/resolve/check semantics).
type Unit struct {
	ID     uuid.UUID
	URI    string
	Source []byte

	Arena *arena.Arena
	Store *ast.Store
	Sink  *diag.Sink
	Types *types.Interner

	Root ast.NodeID
	Sym  symtab.Result
}

// Compile runs the full pipeline over src and returns the resulting
// Unit regardless of diagnostics — every diagnostic is recoverable, so
// callers inspect Unit.Diagnostics to decide how to report or exit.
func Compile(src []byte, uri string) *Unit {
	u := &Unit{
		ID:     uuid.New(),
		URI:    uri,
		Source: src,
		Arena:  arena.New(),
		Store:  ast.NewStore(),
		Types:  types.New(),
	}
	u.Sink = diag.NewSink(u.Types)

	lex := lexer.New(src, u.Sink)
	u.Root = parser.Parse(lex, u.Store, u.Sink)

	u.Sym = symtab.Build(u.Store, u.Root, u.Sink, u.Arena)
	resolve.Run(u.Store, u.Root, u.Sym, u.Sink, u.Arena)

	tr := typecheck.NewTypeResolver(u.Store, u.Types, u.Sink)
	tr.Run(u.Root)
	typecheck.NewChecker(u.Store, u.Types, u.Sink, tr).Run(u.Root)

	return u
}

// Diagnostics returns every diagnostic recorded across all passes, in
// occurrence order.
func (u *Unit) Diagnostics() []diag.Diagnostic {
	return u.Sink.Diagnostics()
}

// HasErrors reports whether any pass reported a diagnostic.
func (u *Unit) HasErrors() bool {
	return u.Sink.Len() > 0
}
