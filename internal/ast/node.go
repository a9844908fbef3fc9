package ast

import (
	"github.com/kpumuk/iotac-frontend/internal/source"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

// NodeID identifies a node within a single Store. The sentinel None
// (-1) never identifies a real node; 0 is the first node allocated.
type NodeID int32

// None is the sentinel "no node" identifier, used for optional children
// (e.g. a VarDecl with no explicit type annotation).
const None NodeID = -1

// Flag holds generic per-node markers. Kept deliberately small: the
// syntactic shape of a node lives in its Children, not in bits here.
type Flag uint8

const (
	// FlagError marks a node the parser built from malformed input — a
	// missing production, an unexpected token consumed for recovery, or
	// a synthesized placeholder.
	FlagError Flag = 1 << iota
	// FlagSynthesized marks a node the parser fabricated rather than
	// built directly from a token span (the CompoundStmt that wraps a
	// case arm's single statement).
	FlagSynthesized
)

// ChildKind distinguishes a token child (a leaf, carrying no further
// structure) from a node child (a subtree, carrying a NodeID).
type ChildKind uint8

const (
	ChildToken ChildKind = iota
	ChildNode
)

// Child is one labeled edge out of a Node. Exactly one of Token/Node is
// meaningful, selected by Kind. Name is the attribute label an analysis
// pass looks the child up by (e.g. "condition", "then", "else"); it is
// empty for repeated children addressed positionally (argument lists,
// statement lists).
type Child struct {
	Name  string
	Kind  ChildKind
	Token token.Token
	Node  NodeID
}

// Node is one entry in a Store's flat table.
type Node struct {
	Kind     Kind
	Span     source.Span
	Flags    Flag
	Children []Child

	// ResolvesTo and TypeID are filled in by later passes (name
	// resolution and type checking respectively); both are None/zero
	// until then. Declared on Node itself, rather than in a side table,
	// because every reference-bearing node needs at most one of each and
	// a side map would just be an indirection to the same data.
	ResolvesTo NodeID
	TypeID     int32
}

// HasFlag reports whether f is set on n.
func (n *Node) HasFlag(f Flag) bool { return n.Flags&f != 0 }

// AddFlag sets f on n.
func (n *Node) AddFlag(f Flag) { n.Flags |= f }
