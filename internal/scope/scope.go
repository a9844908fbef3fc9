// Package scope implements the lexical scope graph built by the symbol
// table pass and walked by the name resolver.
package scope

import "github.com/kpumuk/iotac-frontend/internal/ast"

// Entry records one declaration bound into a Scope's name table.
type Entry struct {
	Name    string
	Decl    ast.NodeID
	Sub     *Scope // non-nil for declarations that open a namespace
	Shadows *Entry // the previously bound entry for this name, if any
}

// Scope is a mapping from name to shadow chain, plus a link to its
// lexically enclosing scope. The Enclosing chain is acyclic by
// construction: a Scope is only ever created with an already-existing
// (or nil) enclosing scope, and no pass mutates a scope's enclosing
// pointer after creation.
type Scope struct {
	Enclosing *Scope
	Owner     ast.NodeID
	names     map[string]*Entry
}

// New creates a scope owned by owner, enclosed by parent (nil for the
// outermost, global scope).
func New(owner ast.NodeID, parent *Scope) *Scope {
	return &Scope{Enclosing: parent, Owner: owner, names: make(map[string]*Entry)}
}

// Declare inserts a new entry for name, shadowing any existing entry
// for the same name in this scope, and returns it.
func (s *Scope) Declare(name string, decl ast.NodeID) *Entry {
	e := &Entry{Name: name, Decl: decl, Shadows: s.names[name]}
	s.names[name] = e
	return e
}

// Lookup returns the most recent entry bound to name directly in this
// scope (not walking Enclosing), or nil.
func (s *Scope) Lookup(name string) *Entry {
	return s.names[name]
}

// LexicalLookup walks s and its enclosing chain, returning the nearest
// scope that has bound name and its most recent entry, or (nil, nil).
func (s *Scope) LexicalLookup(name string) (*Scope, *Entry) {
	for cur := s; cur != nil; cur = cur.Enclosing {
		if e := cur.names[name]; e != nil {
			return cur, e
		}
	}
	return nil, nil
}

// IsGlobal reports whether s has no enclosing scope.
func (s *Scope) IsGlobal() bool { return s.Enclosing == nil }
