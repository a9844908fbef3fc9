// Package symtab builds the scope graph over a parsed tree: a single
// DFS that opens a scope for every scope-owning node and inserts each
// declaration into its enclosing scope.
package symtab

import (
	"github.com/kpumuk/iotac-frontend/internal/arena"
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/scope"
)

// Result is the output of the symbol-table pass: the global scope plus
// a lookup from every scope-owning node to the Scope it opened, which
// the name resolver walks in lock-step with its own DFS.
type Result struct {
	Global *scope.Scope
	Scopes map[ast.NodeID]*scope.Scope
}

type builder struct {
	store  *ast.Store
	sink   *diag.Sink
	arena  *arena.Arena
	scopes map[ast.NodeID]*scope.Scope
}

// Build runs the symbol-table pass over the tree rooted at root (a
// SourceFile node) and returns the resulting scope graph. Every
// declared name is interned through the arena, so repeated identifiers
// (a parameter named x in a dozen functions, a field named value in
// every struct) share one backing string instead of each allocating
// its own.
func Build(store *ast.Store, root ast.NodeID, sink *diag.Sink, a *arena.Arena) Result {
	b := &builder{store: store, sink: sink, arena: a, scopes: make(map[ast.NodeID]*scope.Scope)}
	global := scope.New(root, nil)
	b.scopes[root] = global
	b.visitSourceFile(root, global)
	return Result{Global: global, Scopes: b.scopes}
}

// declare inserts name -> decl into cur, reporting the shadow
// diagnostic the first time a name is redeclared in the same scope
// (the second declaration is the one whose shadowed entry is "not
// itself a shadow").
func (b *builder) declare(cur *scope.Scope, name string, decl ast.NodeID) *scope.Entry {
	prev := cur.Lookup(name)
	e := cur.Declare(name, decl)
	if prev != nil && prev.Shadows == nil {
		b.sink.Addf(b.store.Get(decl).Span, diag.ScopeShadow, "{s} shadows a previous declaration", name)
	}
	return e
}

func (b *builder) visitSourceFile(id ast.NodeID, global *scope.Scope) {
	for _, imp := range b.store.SourceFileImports(id) {
		if tok, ok := b.store.ImportPath(imp); ok && len(tok.Text) > 0 {
			b.declare(global, b.arena.InternString(tok.Text), imp)
		}
	}
	for _, decl := range b.store.SourceFileDecls(id) {
		b.visitDecl(decl, global)
	}
}

func (b *builder) visitDecl(id ast.NodeID, cur *scope.Scope) {
	n := b.store.Get(id)
	switch n.Kind {
	case ast.VarDecl:
		b.declareVarDeclBinding(id, b.store.VarDeclBinding(id), cur)
	case ast.FuncDecl:
		b.visitFuncDecl(id, cur)
	case ast.StructDecl:
		b.visitTypeDecl(id, cur, b.visitStructBody)
	case ast.EnumDecl:
		b.visitTypeDecl(id, cur, b.visitEnumBody)
	case ast.UnionDecl:
		b.visitTypeDecl(id, cur, b.visitStructBody)
	case ast.ErrorDecl:
		b.visitTypeDecl(id, cur, b.visitErrorBody)
	}
}

func (b *builder) nameOf(id ast.NodeID) string {
	tok, ok := b.store.Name(id)
	if !ok {
		return ""
	}
	return b.arena.InternString(tok.Text)
}

// declareBinding inserts every name introduced by a (possibly
// destructuring) binding into cur, against the binding node itself —
// correct whenever there is no separate owning declaration node (an
// if-let union-tag binding, or one item of a destructuring pattern).
func (b *builder) declareBinding(id ast.NodeID, cur *scope.Scope) {
	if id == ast.None {
		return
	}
	n := b.store.Get(id)
	switch n.Kind {
	case ast.Binding:
		if tok, ok := b.store.ParamBinding(id); ok {
			b.declare(cur, b.arena.InternString(tok.Text), id)
		}
	case ast.DestructureTuple, ast.DestructureStruct, ast.DestructureUnion:
		for _, item := range b.store.PositionalNodes(id) {
			b.declareAliasedBinding(item, cur)
		}
	}
}

// declareVarDeclBinding inserts the name(s) bound by a VarDecl's
// binding into cur. A plain (non-destructuring) binding is registered
// against declID — the VarDecl node itself, not its Binding child —
// since checkVarDecl writes the variable's resolved type onto the
// VarDecl node (mirroring original_source/sem/symbol_table.c's
// exit_var_decl, which inserts &var_decl->head into the scope table).
// A destructuring pattern has no single typed node to defer to yet, so
// its items still register themselves via declareBinding.
func (b *builder) declareVarDeclBinding(declID, bindingID ast.NodeID, cur *scope.Scope) {
	if bindingID == ast.None {
		return
	}
	n := b.store.Get(bindingID)
	switch n.Kind {
	case ast.Binding:
		if tok, ok := b.store.ParamBinding(bindingID); ok {
			b.declare(cur, b.arena.InternString(tok.Text), declID)
		}
	case ast.DestructureTuple, ast.DestructureStruct, ast.DestructureUnion:
		for _, item := range b.store.PositionalNodes(bindingID) {
			b.declareAliasedBinding(item, cur)
		}
	}
}

func (b *builder) declareAliasedBinding(id ast.NodeID, cur *scope.Scope) {
	n := b.store.Get(id)
	if n.Kind == ast.AliasedBinding {
		if inner := b.store.ChildNode(id, "binding"); inner != ast.None {
			b.declareBinding(inner, cur)
			return
		}
	}
	b.declareBinding(id, cur)
}

func (b *builder) visitFuncDecl(id ast.NodeID, enclosing *scope.Scope) {
	name := b.nameOf(id)
	entry := b.declare(enclosing, name, id)
	fnScope := scope.New(id, enclosing)
	entry.Sub = fnScope
	b.scopes[id] = fnScope

	for _, p := range b.store.FuncParams(id) {
		if tok, ok := b.store.ParamBinding(p); ok {
			b.declare(fnScope, b.arena.InternString(tok.Text), p)
		}
	}

	if body := b.store.FuncBody(id); body != ast.None {
		b.visitCompoundAsBody(body, fnScope)
	}
}

type bodyVisitor func(id ast.NodeID, s *scope.Scope)

func (b *builder) visitTypeDecl(id ast.NodeID, enclosing *scope.Scope, body bodyVisitor) {
	name := b.nameOf(id)
	entry := b.declare(enclosing, name, id)
	s := scope.New(id, enclosing)
	entry.Sub = s
	b.scopes[id] = s
	body(id, s)
}

func (b *builder) visitStructBody(id ast.NodeID, s *scope.Scope) {
	if b.store.IsTupleLike(b.store.ChildNode(id, "body")) {
		return
	}
	for _, f := range b.store.StructFields(id) {
		if tok, ok := b.store.FieldName(f); ok {
			b.declare(s, b.arena.InternString(tok.Text), f)
		}
	}
}

func (b *builder) visitEnumBody(id ast.NodeID, s *scope.Scope) {
	// Enumerators are plain tokens (no own node), so the name table
	// entry points at the EnumDecl itself; the resolver and type
	// checker identify the specific alternative by name, not by node.
	for _, tok := range b.store.EnumAlternatives(id) {
		b.declare(s, b.arena.InternString(tok.Text), id)
	}
}

func (b *builder) visitErrorBody(id ast.NodeID, s *scope.Scope) {
	for _, alt := range b.store.ErrorAlternatives(id) {
		if tok, ok := b.store.FieldName(alt); ok {
			b.declare(s, b.arena.InternString(tok.Text), alt)
		}
	}
}

// visitCompoundAsBody visits a CompoundStmt that is the body of a
// function/if/while/case — it does not open its own scope, reusing s.
func (b *builder) visitCompoundAsBody(id ast.NodeID, s *scope.Scope) {
	b.scopes[id] = s
	for _, stmt := range b.store.CompoundStmts(id) {
		b.visitStmt(stmt, s)
	}
}

// visitCompoundAsStmt visits a bare `{ ... }` block appearing directly
// in a statement list: it opens its own child scope.
func (b *builder) visitCompoundAsStmt(id ast.NodeID, enclosing *scope.Scope) {
	s := scope.New(id, enclosing)
	b.scopes[id] = s
	for _, stmt := range b.store.CompoundStmts(id) {
		b.visitStmt(stmt, s)
	}
}

func (b *builder) visitStmt(id ast.NodeID, cur *scope.Scope) {
	n := b.store.Get(id)
	switch n.Kind {
	case ast.VarDecl:
		b.declareVarDeclBinding(id, b.store.VarDeclBinding(id), cur)
	case ast.CompoundStmt:
		b.visitCompoundAsStmt(id, cur)
	case ast.IfStmt:
		b.visitIfStmt(id, cur)
	case ast.WhileStmt:
		b.visitWhileStmt(id, cur)
	case ast.CaseStmt:
		b.visitCaseStmt(id, cur)
	// ReturnStmt, DeferStmt, ExprStmt, AssignStmt carry no declarations
	// and open no scope; the name resolver walks into their expression
	// children directly.
	default:
	}
}

func (b *builder) visitIfStmt(id ast.NodeID, enclosing *scope.Scope) {
	s := scope.New(id, enclosing)
	b.scopes[id] = s

	if cond := b.store.IfCondition(id); cond != ast.None {
		if b.store.Get(cond).Kind == ast.UnionTagCondition {
			if binding := b.store.UnionTagConditionBinding(cond); binding != ast.None {
				b.declareBinding(binding, s)
			}
		}
	}
	if then := b.store.IfThen(id); then != ast.None {
		b.visitCompoundAsBody(then, s)
	}
	if els := b.store.IfElse(id); els != ast.None {
		b.visitElse(els, enclosing)
	}
}

func (b *builder) visitElse(id ast.NodeID, enclosing *scope.Scope) {
	branch := b.store.ElseBranch(id)
	if branch == ast.None {
		return
	}
	switch b.store.Get(branch).Kind {
	case ast.IfStmt:
		b.visitIfStmt(branch, enclosing)
	case ast.CompoundStmt:
		s := scope.New(id, enclosing)
		b.scopes[id] = s
		b.visitCompoundAsBody(branch, s)
	}
}

func (b *builder) visitWhileStmt(id ast.NodeID, enclosing *scope.Scope) {
	s := scope.New(id, enclosing)
	b.scopes[id] = s
	if body := b.store.WhileBody(id); body != ast.None {
		b.visitCompoundAsBody(body, s)
	}
}

func (b *builder) visitCaseStmt(id ast.NodeID, enclosing *scope.Scope) {
	s := scope.New(id, enclosing)
	b.scopes[id] = s
	for _, arm := range b.store.CaseArms(id) {
		b.visitIfStmt(arm, s)
	}
}
