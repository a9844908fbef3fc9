// Package typecheck implements the type resolver and the type checker:
// the two post-order passes that turn canonicalized type syntax into
// interned type identifiers and then check every expression and
// declaration against them.
package typecheck

import (
	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/diag"
	"github.com/kpumuk/iotac-frontend/internal/types"
)

// TypeResolver assigns canonical type identifiers to every type
// expression and type-bearing declaration.
type TypeResolver struct {
	store *ast.Store
	sink  *diag.Sink
	tys   *types.Interner
}

// NewTypeResolver creates a resolver writing into tys (already seeded
// with primitives via types.New) and reporting to sink.
func NewTypeResolver(store *ast.Store, tys *types.Interner, sink *diag.Sink) *TypeResolver {
	return &TypeResolver{store: store, sink: sink, tys: tys}
}

// Run resolves every declaration reachable from root.
func (tr *TypeResolver) Run(root ast.NodeID) {
	for _, decl := range tr.store.SourceFileDecls(root) {
		tr.visitDecl(decl)
	}
}

func (tr *TypeResolver) visitDecl(id ast.NodeID) {
	switch tr.store.Get(id).Kind {
	case ast.VarDecl:
		if t := tr.store.VarDeclType(id); t != ast.None {
			tr.setNodeType(id, tr.resolveType(t))
		}
	case ast.FuncDecl:
		tr.visitFuncDecl(id)
	case ast.StructDecl:
		tr.setNodeType(id, tr.resolveTypeDecl(id))
	case ast.UnionDecl:
		tr.setNodeType(id, tr.resolveTypeDecl(id))
	case ast.EnumDecl:
		tr.setNodeType(id, tr.resolveEnumDecl(id))
	case ast.ErrorDecl:
		tr.setNodeType(id, tr.resolveErrorDecl(id))
	}
}

func (tr *TypeResolver) visitFuncDecl(id ast.NodeID) {
	for _, p := range tr.store.FuncParams(id) {
		if t := tr.store.ParamType(p); t != ast.None {
			tr.setNodeType(p, tr.resolveType(t))
		}
	}
	if rt := tr.store.FuncReturnType(id); rt != ast.None {
		tr.setNodeType(id, tr.resolveType(rt))
	} else {
		tr.setNodeType(id, tr.tys.Primitive(unitKeyword))
	}
}

// resolveTypeDecl handles StructDecl/UnionDecl: its canonical id is
// alias(decl, body-id), allocated up front so a forward reference
// elsewhere already has a stable (if provisional) id to use, then
// patched once the body is canonicalized.
func (tr *TypeResolver) resolveTypeDecl(id ast.NodeID) types.ID {
	alias := tr.tys.AllocAlias(id)
	body := tr.resolveStructBody(id)
	tr.tys.PatchAlias(id, body)
	return alias
}

func (tr *TypeResolver) resolveEnumDecl(id ast.NodeID) types.ID {
	alias := tr.tys.AllocAlias(id)
	names := make([]string, 0)
	for _, tok := range tr.store.EnumAlternatives(id) {
		names = append(names, string(tok.Text))
	}
	tr.tys.PatchAlias(id, tr.tys.Enum(names))
	return alias
}

// resolveErrorDecl models an error declaration's alternatives as a
// tagged union of per-alternative field structs — the type
// representation has no dedicated "error" variant, and an alternative
// with fields is structurally identical to a struct.
func (tr *TypeResolver) resolveErrorDecl(id ast.NodeID) types.ID {
	alias := tr.tys.AllocAlias(id)
	var alts []types.ID
	for _, alt := range tr.store.ErrorAlternatives(id) {
		alts = append(alts, tr.resolveErrorAlt(alt))
	}
	tr.tys.PatchAlias(id, tr.tys.TaggedUnion(alts))
	return alias
}

func (tr *TypeResolver) resolveErrorAlt(id ast.NodeID) types.ID {
	var fields []types.Field
	for _, f := range tr.store.PositionalNodes(id) {
		name, _ := tr.store.FieldName(f)
		fields = append(fields, types.Field{Name: string(name.Text), Type: tr.resolveType(tr.store.FieldType(f))})
	}
	return tr.tys.StructType(fields)
}

func (tr *TypeResolver) resolveStructBody(id ast.NodeID) types.ID {
	body := tr.store.ChildNode(id, "body")
	if tr.store.IsTupleLike(body) {
		var elems []types.ID
		for _, t := range tr.store.StructTupleTypes(id) {
			elems = append(elems, tr.resolveType(t))
		}
		return tr.tys.Tuple(elems)
	}
	var fields []types.Field
	for _, f := range tr.store.StructFields(id) {
		name, _ := tr.store.FieldName(f)
		fields = append(fields, types.Field{Name: string(name.Text), Type: tr.resolveType(tr.store.FieldType(f))})
	}
	return tr.tys.StructType(fields)
}

// resolveType canonicalizes a single type-expression node and returns
// its id, also stamping the node's own TypeID, which the checker reads
// back for declared types.
func (tr *TypeResolver) resolveType(id ast.NodeID) types.ID {
	if id == ast.None {
		return types.Invalid
	}
	n := tr.store.Get(id)
	var result types.ID
	switch n.Kind {
	case ast.BuiltinType:
		if tok, ok := tr.store.BasicExprToken(id); ok {
			result = tr.tys.Primitive(tok.Kind)
		}
	case ast.PointerType:
		result = tr.tys.Pointer(tr.resolveType(tr.store.PointerInner(id)))
	case ast.TupleType:
		var elems []types.ID
		for _, e := range tr.store.CollectionElements(id) {
			elems = append(elems, tr.resolveType(e))
		}
		result = tr.tys.Tuple(elems)
	case ast.StructTypeLit:
		result = tr.resolveAnonymousStructBody(id)
	case ast.UnionTypeLit:
		result = tr.resolveUnionTypeLit(id)
	case ast.EnumTypeLit:
		var names []string
		for _, tok := range tr.store.EnumAlternatives(id) {
			names = append(names, string(tok.Text))
		}
		result = tr.tys.Enum(names)
	case ast.ScopedIdent:
		result = tr.resolveTypeReference(id)
	default:
		result = types.Invalid
	}
	tr.setNodeType(id, result)
	return result
}

func (tr *TypeResolver) resolveAnonymousStructBody(id ast.NodeID) types.ID {
	body := tr.store.ChildNode(id, "body")
	if body == ast.None {
		body = id
	}
	if tr.store.IsTupleLike(body) {
		var elems []types.ID
		for _, t := range tr.store.PositionalNodes(body) {
			elems = append(elems, tr.resolveType(t))
		}
		return tr.tys.Tuple(elems)
	}
	var fields []types.Field
	for _, f := range tr.store.PositionalNodes(body) {
		name, _ := tr.store.FieldName(f)
		fields = append(fields, types.Field{Name: string(name.Text), Type: tr.resolveType(tr.store.FieldType(f))})
	}
	return tr.tys.StructType(fields)
}

// resolveUnionTypeLit rejects nested anonymous unions (flatten-by-
// refusal) and duplicate alternatives.
func (tr *TypeResolver) resolveUnionTypeLit(id ast.NodeID) types.ID {
	var elems []types.ID
	seen := map[types.ID]bool{}
	for _, alt := range tr.store.PositionalNodes(id) {
		if tr.store.Get(alt).Kind == ast.UnionTypeLit {
			tr.sink.Addf(tr.store.Get(alt).Span, diag.TypeNestedAnonymousUnion, "nested anonymous tagged union is not allowed")
			continue
		}
		t := tr.resolveType(alt)
		if seen[t] {
			tr.sink.Addf(tr.store.Get(alt).Span, diag.TypeDuplicateAlternative, "duplicate alternative {t} in tagged union", int(t))
			continue
		}
		seen[t] = true
		elems = append(elems, t)
	}
	return tr.tys.TaggedUnion(elems)
}

// resolveTypeReference handles a scoped identifier used in type
// position: it must already carry a resolves-to link from the name
// resolver pass; anything but a type declaration is a diagnostic.
func (tr *TypeResolver) resolveTypeReference(id ast.NodeID) types.ID {
	n := tr.store.Get(id)
	decl := n.ResolvesTo
	if decl == ast.None {
		return types.Invalid // already diagnosed by the name resolver
	}
	declKind := tr.store.Get(decl).Kind
	switch declKind {
	case ast.StructDecl, ast.UnionDecl, ast.EnumDecl, ast.ErrorDecl:
		return tr.tys.AllocAlias(decl)
	default:
		tr.sink.Addf(n.Span, diag.TypeNonTypeUsedAsType, "{s} does not name a type", scopedIdentLastName(tr.store, id))
		return types.Invalid
	}
}

func (tr *TypeResolver) setNodeType(id ast.NodeID, t types.ID) {
	n := tr.store.Get(id)
	if n != nil {
		n.TypeID = int32(t)
	}
}
