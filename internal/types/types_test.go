package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kpumuk/iotac-frontend/internal/ast"
	"github.com/kpumuk/iotac-frontend/internal/token"
)

func TestNewSeedsPrimitives(t *testing.T) {
	t.Parallel()

	in := New()
	s32 := in.Primitive(token.KwS32)
	require.NotEqual(t, Invalid, s32)
	require.Equal(t, Primitive, in.Get(s32).Kind)
	require.Equal(t, token.KwS32, in.Get(s32).Prim)

	// Re-requesting the same primitive must return the same id, not a
	// fresh one.
	require.Equal(t, s32, in.Primitive(token.KwS32))
}

func TestPointerInterningIsStructural(t *testing.T) {
	t.Parallel()

	in := New()
	s32 := in.Primitive(token.KwS32)
	p1 := in.Pointer(s32)
	p2 := in.Pointer(s32)
	require.Equal(t, p1, p2)

	u32 := in.Primitive(token.KwU32)
	p3 := in.Pointer(u32)
	require.NotEqual(t, p1, p3)
}

func TestStructTypeFieldOrderIsSignificant(t *testing.T) {
	t.Parallel()

	in := New()
	s32 := in.Primitive(token.KwS32)
	u32 := in.Primitive(token.KwU32)

	a := in.StructType([]Field{{Name: "x", Type: s32}, {Name: "y", Type: u32}})
	b := in.StructType([]Field{{Name: "y", Type: u32}, {Name: "x", Type: s32}})
	require.NotEqual(t, a, b, "struct field order changes layout, so it must not dedupe")

	c := in.StructType([]Field{{Name: "x", Type: s32}, {Name: "y", Type: u32}})
	require.Equal(t, a, c)
}

func TestTaggedUnionDedupesAndIgnoresOrder(t *testing.T) {
	t.Parallel()

	in := New()
	s32 := in.Primitive(token.KwS32)
	boolT := in.Primitive(token.KwBool)

	a := in.TaggedUnion([]ID{s32, boolT})
	b := in.TaggedUnion([]ID{boolT, s32})
	require.Equal(t, a, b)

	c := in.TaggedUnion([]ID{s32, boolT, s32})
	require.Equal(t, a, c, "a repeated alternative must dedupe rather than mint a new type")
}

func TestEnumInterningPreservesDeclarationOrder(t *testing.T) {
	t.Parallel()

	in := New()
	a := in.Enum([]string{"Red", "Green", "Blue"})
	b := in.Enum([]string{"Blue", "Green", "Red"})
	require.NotEqual(t, a, b, "enum identity depends on declared order")

	c := in.Enum([]string{"Red", "Green", "Blue"})
	require.Equal(t, a, c)
}

func TestAllocAliasAndPatchAlias(t *testing.T) {
	t.Parallel()

	in := New()
	decl := ast.NodeID(7)
	alias := in.AllocAlias(decl)
	require.Equal(t, Alias, in.Get(alias).Kind)
	require.Equal(t, Invalid, in.Get(alias).AliasTarget)

	// Re-allocating for the same decl returns the same provisional id.
	require.Equal(t, alias, in.AllocAlias(decl))

	s32 := in.Primitive(token.KwS32)
	in.PatchAlias(decl, s32)
	require.Equal(t, s32, in.Get(alias).AliasTarget)
}

func TestDealiasUnfoldsChainAndToleratesTransientInvalid(t *testing.T) {
	t.Parallel()

	in := New()
	decl := ast.NodeID(3)
	alias := in.AllocAlias(decl)

	// Before PatchAlias runs, Dealias must return the alias id itself
	// rather than looping or panicking on the still-Invalid target.
	require.Equal(t, alias, in.Dealias(alias))

	s32 := in.Primitive(token.KwS32)
	in.PatchAlias(decl, s32)
	require.Equal(t, s32, in.Dealias(alias))
}

func TestAutoDerefUnfoldsExactlyOneLayer(t *testing.T) {
	t.Parallel()

	in := New()
	s32 := in.Primitive(token.KwS32)
	ptr := in.Pointer(s32)
	ptrPtr := in.Pointer(ptr)

	require.Equal(t, ptr, in.AutoDeref(ptrPtr))
	require.Equal(t, s32, in.AutoDeref(ptr))
	require.Equal(t, s32, in.AutoDeref(s32), "a non-pointer is returned unchanged")
}

func TestTypeNameFormatsStructuralShapes(t *testing.T) {
	t.Parallel()

	in := New()
	s32 := in.Primitive(token.KwS32)
	ptr := in.Pointer(s32)
	require.Equal(t, "*s32", in.TypeName(int(ptr)))

	st := in.StructType([]Field{{Name: "x", Type: s32}})
	require.Equal(t, "struct { x s32 }", in.TypeName(int(st)))

	require.Equal(t, "<invalid>", in.TypeName(int(Invalid)))
}
