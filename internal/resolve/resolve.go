// Package resolve implements the name resolver: a DFS over the parsed
// tree that settles every identifier reference's resolves-to link
// against the scope graph internal/symtab built.
package resolve

import (
	"github.com/kpumuk/iotac-frontend/internal/arena"
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/scope"
	"github.com/kpumuk/iotac-frontend/internal/symtab"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

type resolver struct {
	store  *ast.Store
	sink   *diag.Sink
	arena  *arena.Arena
	scopes map[ast.NodeID]*scope.Scope

	curFn      ast.NodeID
	curVarDecl map[ast.NodeID]bool // binding ids introduced by the var decl whose RHS is in flight
}

// Run resolves every scoped-identifier node reachable from root against
// sym, reporting unresolved or illegal references to sink.
func Run(store *ast.Store, root ast.NodeID, sym symtab.Result, sink *diag.Sink, a *arena.Arena) {
	r := &resolver{store: store, sink: sink, arena: a, scopes: sym.Scopes, curFn: ast.None}
	r.visitSourceFile(root, sym.Global)
}

func (r *resolver) visitSourceFile(id ast.NodeID, global *scope.Scope) {
	for _, decl := range r.store.SourceFileDecls(id) {
		r.visitDecl(decl, global)
	}
}

func (r *resolver) visitDecl(id ast.NodeID, cur *scope.Scope) {
	switch r.store.Get(id).Kind {
	case ast.VarDecl:
		r.visitVarDecl(id, cur)
	case ast.FuncDecl:
		r.visitFuncDecl(id, cur)
	case ast.StructDecl, ast.UnionDecl:
		r.visitStructLikeDecl(id, cur)
	case ast.EnumDecl:
		// Enum alternatives are plain tokens; nothing to resolve.
	case ast.ErrorDecl:
		r.visitErrorDecl(id, cur)
	}
}

func (r *resolver) declScope(id ast.NodeID) *scope.Scope {
	s := r.scopes[id]
	if s == nil {
		return nil
	}
	return s
}

func (r *resolver) visitVarDecl(id ast.NodeID, cur *scope.Scope) {
	if typ := r.store.VarDeclType(id); typ != ast.None {
		r.walk(typ, cur)
	}
	if val := r.store.VarDeclValue(id); val != ast.None {
		prev := r.curVarDecl
		r.curVarDecl = bindingIDs(r.store, id, r.store.VarDeclBinding(id))
		r.walk(val, cur)
		r.curVarDecl = prev
	}
}

// bindingIDs collects the scope-entry Decl ids a name inside an
// initializer expression could resolve to that would count as a
// self-reference. A plain (non-destructuring) binding declares against
// declID — the VarDecl node itself, matching symtab.declareVarDeclBinding
// — while a destructuring pattern's items still declare against their
// own leaf binding node, since they have no single typed node yet.
func bindingIDs(store *ast.Store, declID, bindingID ast.NodeID) map[ast.NodeID]bool {
	out := make(map[ast.NodeID]bool)
	if bindingID == ast.None {
		return out
	}
	if store.Get(bindingID).Kind == ast.Binding {
		out[declID] = true
		return out
	}
	var collect func(ast.NodeID)
	collect = func(id ast.NodeID) {
		if id == ast.None {
			return
		}
		n := store.Get(id)
		switch n.Kind {
		case ast.Binding:
			out[id] = true
		case ast.DestructureTuple, ast.DestructureStruct, ast.DestructureUnion:
			for _, item := range store.PositionalNodes(id) {
				if b := store.ChildNode(item, "binding"); b != ast.None {
					collect(b)
				} else {
					collect(item)
				}
			}
		}
	}
	collect(bindingID)
	return out
}

func (r *resolver) visitFuncDecl(id ast.NodeID, enclosing *scope.Scope) {
	fnScope := r.declScope(id)
	if fnScope == nil {
		fnScope = enclosing
	}
	for _, p := range r.store.FuncParams(id) {
		if t := r.store.ParamType(p); t != ast.None {
			r.walk(t, enclosing)
		}
	}
	if rt := r.store.FuncReturnType(id); rt != ast.None {
		r.walk(rt, enclosing)
	}
	prevFn := r.curFn
	r.curFn = id
	if body := r.store.FuncBody(id); body != ast.None {
		r.walkStmts(body, fnScope)
	}
	r.curFn = prevFn
}

func (r *resolver) visitStructLikeDecl(id ast.NodeID, enclosing *scope.Scope) {
	s := r.declScope(id)
	if s == nil {
		s = enclosing
	}
	if r.store.IsTupleLike(r.store.ChildNode(id, "body")) {
		for _, t := range r.store.StructTupleTypes(id) {
			r.walk(t, s)
		}
		return
	}
	for _, f := range r.store.StructFields(id) {
		if t := r.store.FieldType(f); t != ast.None {
			r.walk(t, s)
		}
	}
}

func (r *resolver) visitErrorDecl(id ast.NodeID, enclosing *scope.Scope) {
	// An error alternative's only nested types are its optional fields'.
	s := r.declScope(id)
	if s == nil {
		s = enclosing
	}
	for _, alt := range r.store.ErrorAlternatives(id) {
		for _, f := range r.store.PositionalNodes(alt) {
			if t := r.store.FieldType(f); t != ast.None {
				r.walk(t, s)
			}
		}
	}
}

// walkStmts visits a CompoundStmt's statement list under scope s
// (either the scope it owns, for a bare block, or the scope of its
// owning function/if/while, for a body).
func (r *resolver) walkStmts(id ast.NodeID, s *scope.Scope) {
	for _, stmt := range r.store.CompoundStmts(id) {
		r.visitStmt(stmt, s)
	}
}

func (r *resolver) visitStmt(id ast.NodeID, cur *scope.Scope) {
	n := r.store.Get(id)
	switch n.Kind {
	case ast.VarDecl:
		r.visitVarDecl(id, cur)
	case ast.CompoundStmt:
		s := r.declScope(id)
		if s == nil {
			s = cur
		}
		r.walkStmts(id, s)
	case ast.IfStmt:
		r.visitIfStmt(id, cur)
	case ast.WhileStmt:
		s := r.declScope(id)
		if s == nil {
			s = cur
		}
		if cond := r.store.WhileCondition(id); cond != ast.None {
			r.walk(cond, s)
		}
		if body := r.store.WhileBody(id); body != ast.None {
			r.walkStmts(body, s)
		}
	case ast.CaseStmt:
		s := r.declScope(id)
		if s == nil {
			s = cur
		}
		if subj := r.store.CaseSubject(id); subj != ast.None {
			r.walk(subj, s)
		}
		for _, arm := range r.store.CaseArms(id) {
			r.visitIfStmt(arm, s)
		}
	case ast.ReturnStmt:
		if v := r.store.ReturnValue(id); v != ast.None {
			r.walk(v, cur)
		}
	case ast.DeferStmt:
		if c := r.store.DeferCall(id); c != ast.None {
			r.walk(c, cur)
		}
	case ast.ExprStmt:
		if e := r.store.ExprStmtExpr(id); e != ast.None {
			r.walk(e, cur)
		}
	case ast.AssignStmt:
		if lhs := r.store.AssignLHS(id); lhs != ast.None {
			r.walk(lhs, cur)
		}
		if rhs := r.store.AssignRHS(id); rhs != ast.None {
			r.walk(rhs, cur)
		}
	}
}

func (r *resolver) visitIfStmt(id ast.NodeID, enclosing *scope.Scope) {
	s := r.declScope(id)
	if s == nil {
		s = enclosing
	}
	if cond := r.store.IfCondition(id); cond != ast.None {
		if r.store.Get(cond).Kind == ast.UnionTagCondition {
			if subj := r.store.UnionTagConditionSubject(cond); subj != ast.None {
				r.walk(subj, enclosing)
			}
		} else {
			r.walk(cond, s)
		}
	}
	if then := r.store.IfThen(id); then != ast.None {
		r.walkStmts(then, s)
	}
	if els := r.store.IfElse(id); els != ast.None {
		branch := r.store.ElseBranch(els)
		switch {
		case branch == ast.None:
		case r.store.Get(branch).Kind == ast.IfStmt:
			r.visitIfStmt(branch, enclosing)
		default:
			es := r.declScope(els)
			if es == nil {
				es = enclosing
			}
			r.walkStmts(branch, es)
		}
	}
}

// walk generically recurses through an expression or type subtree
// under scope s, resolving every ScopedIdent node it finds. Non-scope-
// owning nodes never change s, so this single traversal serves both
// expressions and types uniformly — every identifier reference is a
// scoped-identifier node, regardless of whether it appears in an
// expression or a type position.
func (r *resolver) walk(id ast.NodeID, s *scope.Scope) {
	if id == ast.None {
		return
	}
	n := r.store.Get(id)
	if n.Kind == ast.ScopedIdent {
		r.resolveScopedIdent(id, s)
		return
	}
	for _, c := range n.Children {
		if c.Kind == ast.ChildNode {
			r.walk(c.Node, s)
		}
	}
}

func (r *resolver) resolveScopedIdent(id ast.NodeID, cur *scope.Scope) {
	comps := r.store.ScopedIdentComponents(id)
	if len(comps) == 0 {
		return
	}
	if comps[0].Kind == token.EmptyString {
		// Inferred root: the type checker resolves this against the
		// active type hint.
		return
	}

	atModuleScope := cur.IsGlobal()

	var subScope *scope.Scope
	var resolved ast.NodeID = ast.None

	for i, tok := range comps {
		name := r.arena.InternString(tok.Text)
		var head *scope.Entry
		var lookupScope *scope.Scope

		if i == 0 {
			lookupScope, head = cur.LexicalLookup(name)
		} else {
			if subScope == nil {
				r.sink.Addf(tok.Span(), diag.ScopeNotAScope, "{s} is not a scope", r.arena.InternString(comps[i-1].Text))
				return
			}
			if subScope.Owner != ast.None {
				if owner := r.store.Get(subScope.Owner); owner != nil && owner.Kind == ast.FuncDecl && subScope.Owner != r.curFn {
					r.sink.Addf(tok.Span(), diag.ScopeFunctionPiercing, "cannot access function scope outside its body")
					return
				}
			}
			head = subScope.Lookup(name)
			lookupScope = subScope
		}

		if head == nil {
			r.sink.Addf(tok.Span(), diag.ScopeUnresolved, "could not resolve name {s}", name)
			return
		}

		chosen := r.pickLegal(head, id, lookupScope, atModuleScope)
		if chosen == nil {
			r.sink.Addf(tok.Span(), diag.ScopeUnresolved, "could not resolve name {s}", name)
			return
		}
		resolved = chosen.Decl
		subScope = chosen.Sub
	}

	r.store.Get(id).ResolvesTo = resolved
}

// pickLegal walks an entry's shadow chain, returning the first entry
// the reference node may legally resolve to.
func (r *resolver) pickLegal(head *scope.Entry, ref ast.NodeID, declScope *scope.Scope, atModuleScope bool) *scope.Entry {
	refStart := r.store.Get(ref).Span.Start
	for e := head; e != nil; e = e.Shadows {
		declNode := r.store.Get(e.Decl)
		if declNode.Span.Start > refStart && !atModuleScope && !declScope.IsGlobal() {
			continue // forward reference, not at module scope, not into global scope
		}
		if r.curVarDecl != nil && r.curVarDecl[e.Decl] {
			continue // `let x = x;` — x's own binding is not yet visible in its initializer
		}
		return e
	}
	return nil
}
