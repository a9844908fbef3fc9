// Package types implements the type interner: canonical type
// identifiers assigned by structural-equality hashing, with a
// two-stage commit for forward-referenced type aliases.
package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

// ID is a dense type identifier. Invalid is the "not yet set" sentinel.
type ID int32

// Invalid is the zero ID; no real type ever interns to it, since
// New seeds the table starting at a non-zero slot.
const Invalid ID = 0

// Kind tags a type representation's shape.
type Kind uint8

const (
	Primitive Kind = iota
	Pointer
	Tuple
	Struct
	TaggedUnion
	Enum
	Alias
	Function // reserved for a future first-class function type
)

// Field is one (name, type) pair of a Struct representation, in
// declaration order.
type Field struct {
	Name string
	Type ID
}

// Repr is one interned type's structural representation.
type Repr struct {
	Kind Kind

	Prim token.Kind // Primitive: KwU8..KwBool

	Pointee ID // Pointer

	Elems []ID // Tuple, TaggedUnion (TaggedUnion's are sorted+deduped)

	Fields []Field // Struct

	Names []string // Enum, in declaration order

	AliasDecl   ast.NodeID // Alias: the declaring node
	AliasTarget ID         // Alias: Invalid until patched (forward reference)
}

// Interner is a hash table keyed by type-representation equality,
// valued by ID. A forward-referenced alias gets a provisional ID whose
// AliasTarget is Invalid, patched once its declaration is processed.
type Interner struct {
	reprs   []Repr
	byKey   map[string]ID
	aliasOf map[ast.NodeID]ID

	primitives map[token.Kind]ID
}

// New creates an interner with every primitive type pre-seeded, so
// subsequent lookups always hit the cache.
func New() *Interner {
	in := &Interner{
		reprs:      make([]Repr, 1), // slot 0 reserved for Invalid
		byKey:      make(map[string]ID),
		aliasOf:    make(map[ast.NodeID]ID),
		primitives: make(map[token.Kind]ID),
	}
	for _, k := range []token.Kind{
		token.KwU8, token.KwS8, token.KwU16, token.KwS16,
		token.KwU32, token.KwS32, token.KwU64, token.KwS64,
		token.KwF32, token.KwF64, token.KwUnit, token.KwString, token.KwBool,
	} {
		in.primitives[k] = in.intern(primKey(k), Repr{Kind: Primitive, Prim: k})
	}
	return in
}

func primKey(k token.Kind) string { return "prim:" + k.String() }

func (in *Interner) intern(key string, r Repr) ID {
	if id, ok := in.byKey[key]; ok {
		return id
	}
	id := ID(len(in.reprs))
	in.reprs = append(in.reprs, r)
	in.byKey[key] = id
	return id
}

// Get returns the representation for id, or the zero Repr if invalid.
func (in *Interner) Get(id ID) Repr {
	if id <= Invalid || int(id) >= len(in.reprs) {
		return Repr{}
	}
	return in.reprs[id]
}

// Primitive returns the interned id for a builtin scalar keyword kind.
func (in *Interner) Primitive(k token.Kind) ID { return in.primitives[k] }

// Pointer interns ptr(pointee).
func (in *Interner) Pointer(pointee ID) ID {
	return in.intern(fmt.Sprintf("ptr(%d)", pointee), Repr{Kind: Pointer, Pointee: pointee})
}

// Tuple interns tuple(ids) preserving element order.
func (in *Interner) Tuple(elems []ID) ID {
	key := "tuple(" + joinIDs(elems) + ")"
	cp := append([]ID(nil), elems...)
	return in.intern(key, Repr{Kind: Tuple, Elems: cp})
}

// StructType interns struct([(name,id),...]) preserving field order —
// field order is semantically significant (struct layout), so unlike
// TaggedUnion it is never sorted.
func (in *Interner) StructType(fields []Field) ID {
	var b strings.Builder
	b.WriteString("struct(")
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%d", f.Name, f.Type)
	}
	b.WriteByte(')')
	cp := append([]Field(nil), fields...)
	return in.intern(b.String(), Repr{Kind: Struct, Fields: cp})
}

// TaggedUnion interns tagged_union(ids), deduplicating and canonically
// ordering alternatives since the representation is unordered-but-
// deduplicated. Callers that must diagnose duplicate
// alternatives do so before calling this (the interner silently
// tolerates a dedup so a type-checked-through error still yields a
// usable type).
func (in *Interner) TaggedUnion(elems []ID) ID {
	dedup := dedupeIDs(elems)
	sort.Slice(dedup, func(i, j int) bool { return dedup[i] < dedup[j] })
	return in.intern("union("+joinIDs(dedup)+")", Repr{Kind: TaggedUnion, Elems: dedup})
}

// Enum interns enum([names]) preserving declaration order.
func (in *Interner) Enum(names []string) ID {
	cp := append([]string(nil), names...)
	return in.intern("enum("+strings.Join(names, ",")+")", Repr{Kind: Enum, Names: cp})
}

// AllocAlias returns decl's alias id, allocating a fresh provisional
// one (AliasTarget = Invalid) the first time decl is seen — the
// forward-reference path for an alias whose target hasn't been
// resolved yet.
func (in *Interner) AllocAlias(decl ast.NodeID) ID {
	if id, ok := in.aliasOf[decl]; ok {
		return id
	}
	id := ID(len(in.reprs))
	in.reprs = append(in.reprs, Repr{Kind: Alias, AliasDecl: decl, AliasTarget: Invalid})
	in.aliasOf[decl] = id
	return id
}

// PatchAlias back-patches decl's alias target once its body type is
// known. It is a no-op if decl has no allocated alias yet (the normal
// path: the type resolver always calls AllocAlias first).
func (in *Interner) PatchAlias(decl ast.NodeID, target ID) {
	id, ok := in.aliasOf[decl]
	if !ok {
		return
	}
	in.reprs[id].AliasTarget = target
}

// Dealias unfolds an alias chain until reaching a non-alias
// representation, tolerating a transient Invalid target mid-resolution
// — queries must dealias lazily during the resolver pass, before every
// alias target has settled.
func (in *Interner) Dealias(id ID) ID {
	seen := map[ID]bool{}
	for {
		r := in.Get(id)
		if r.Kind != Alias || r.AliasTarget == Invalid || seen[id] {
			return id
		}
		seen[id] = true
		id = r.AliasTarget
	}
}

// AutoDeref unfolds at most one pointer layer — deliberately distinct
// from Dealias: the two operations are never composed automatically.
func (in *Interner) AutoDeref(id ID) ID {
	r := in.Get(id)
	if r.Kind == Pointer {
		return r.Pointee
	}
	return id
}

// TypeName implements diag.TypeNamer for the {t} message substitution.
func (in *Interner) TypeName(id int) string {
	return in.name(ID(id), map[ID]bool{})
}

func (in *Interner) name(id ID, seen map[ID]bool) string {
	if id == Invalid || seen[id] {
		return "<invalid>"
	}
	seen[id] = true
	r := in.Get(id)
	switch r.Kind {
	case Primitive:
		return r.Prim.String()
	case Pointer:
		return "*" + in.name(r.Pointee, seen)
	case Tuple:
		parts := make([]string, len(r.Elems))
		for i, e := range r.Elems {
			parts[i] = in.name(e, seen)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Struct:
		parts := make([]string, len(r.Fields))
		for i, f := range r.Fields {
			parts[i] = f.Name + " " + in.name(f.Type, seen)
		}
		return "struct { " + strings.Join(parts, ", ") + " }"
	case TaggedUnion:
		parts := make([]string, len(r.Elems))
		for i, e := range r.Elems {
			parts[i] = in.name(e, seen)
		}
		return strings.Join(parts, " | ")
	case Enum:
		return "enum { " + strings.Join(r.Names, ", ") + " }"
	case Alias:
		if r.AliasTarget == Invalid {
			return "<unresolved alias>"
		}
		return in.name(r.AliasTarget, seen)
	default:
		return "<type>"
	}
}

func joinIDs(ids []ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

func dedupeIDs(ids []ID) []ID {
	seen := map[ID]bool{}
	var out []ID
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
