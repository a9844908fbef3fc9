package ast

import (
	"fmt"

	"github.com/kpumuk/iotac-frontend/internal/source"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

// Store owns every Node of one parsed translation unit, indexed densely
// by NodeID: a flat node table generalized from a tree-sitter-backed
// CST's shape to a hand-built one.
type Store struct {
	nodes []Node
}

// NewStore returns an empty node store.
func NewStore() *Store {
	return &Store{}
}

// New allocates a node of the given kind at span and returns its id.
// Children are attached afterward with AddChildToken/AddChildNode,
// mirroring how a recursive-descent production builds a node's shape
// incrementally as it parses each child.
func (s *Store) New(kind Kind, span source.Span) NodeID {
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, Node{Kind: kind, Span: span, ResolvesTo: None})
	return id
}

// Get returns a pointer to the node identified by id, valid until the
// next New call (append may reallocate the backing array).
func (s *Store) Get(id NodeID) *Node {
	if id == None || int(id) < 0 || int(id) >= len(s.nodes) {
		return nil
	}
	return &s.nodes[id]
}

// Len reports how many nodes the store holds.
func (s *Store) Len() int { return len(s.nodes) }

// AddChildToken attaches a labeled (or, if name is "", positional) token
// leaf to parent.
func (s *Store) AddChildToken(parent NodeID, name string, tok token.Token) {
	n := s.Get(parent)
	if n == nil {
		return
	}
	n.Children = append(n.Children, Child{Name: name, Kind: ChildToken, Token: tok})
}

// AddChildNode attaches a labeled (or positional) subtree to parent and
// widens parent's span to cover it if child falls outside it.
func (s *Store) AddChildNode(parent, child NodeID, name string) {
	n := s.Get(parent)
	if n == nil || child == None {
		return
	}
	n.Children = append(n.Children, Child{Name: name, Kind: ChildNode, Node: child})
	if c := s.Get(child); c != nil {
		n.Span = n.Span.Union(c.Span)
	}
}

// Child looks up the first named child (token or node) of id, reporting
// ok=false if parent or attribute is absent. This is the generic
// counterpart to a pass's typed accessor (e.g. ParamBinding),
// grounded on internal/syntax/queries.go's named-child lookups.
func (s *Store) Child(id NodeID, name string) (Child, bool) {
	n := s.Get(id)
	if n == nil {
		return Child{}, false
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Child{}, false
}

// ChildNode is a convenience over Child for the common case of a
// node-shaped named attribute, returning None if absent or a token.
func (s *Store) ChildNode(id NodeID, name string) NodeID {
	c, ok := s.Child(id, name)
	if !ok || c.Kind != ChildNode {
		return None
	}
	return c.Node
}

// ChildToken is the token-shaped counterpart to ChildNode.
func (s *Store) ChildToken(id NodeID, name string) (token.Token, bool) {
	c, ok := s.Child(id, name)
	if !ok || c.Kind != ChildToken {
		return token.Token{}, false
	}
	return c.Token, true
}

// Positional returns the unnamed children of id in insertion order —
// the repeated-element lists (statements, arguments, fields, ...) that
// never need a label.
func (s *Store) Positional(id NodeID) []Child {
	n := s.Get(id)
	if n == nil {
		return nil
	}
	var out []Child
	for _, c := range n.Children {
		if c.Name == "" {
			out = append(out, c)
		}
	}
	return out
}

// PositionalNodes is Positional filtered to node-shaped children,
// returning their ids directly — the common case for a walker
// descending into a statement or declaration list.
func (s *Store) PositionalNodes(id NodeID) []NodeID {
	var out []NodeID
	for _, c := range s.Positional(id) {
		if c.Kind == ChildNode {
			out = append(out, c.Node)
		}
	}
	return out
}

// Extend widens id's span to cover extra — used after consuming a
// trailing token (a closing brace, a terminating semicolon) that isn't
// itself recorded as a named child but still belongs to the node.
func (s *Store) Extend(id NodeID, extra source.Span) {
	n := s.Get(id)
	if n == nil {
		return
	}
	n.Span = n.Span.Union(extra)
}

// Validate checks internal consistency of the store: every node-shaped
// child id must be in range and distinct from its parent (no node is
// its own child). It does not check for cycles among descendants — the
// builder never constructs one since children are always allocated
// before the parent references them.
func (s *Store) Validate() error {
	for i := range s.nodes {
		id := NodeID(i)
		for _, c := range s.nodes[i].Children {
			if c.Kind != ChildNode {
				continue
			}
			if int(c.Node) < 0 || int(c.Node) >= len(s.nodes) {
				return fmt.Errorf("ast: node %d child %q references out-of-range node %d", id, c.Name, c.Node)
			}
			if c.Node == id {
				return fmt.Errorf("ast: node %d is its own child", id)
			}
		}
	}
	return nil
}
