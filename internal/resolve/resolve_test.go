package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arqons/modelschema/internal/model"
)

func mustResolve(t *testing.T, r *Resolver, typeText string) *model.FieldDef {
	t.Helper()
	desc, err := ParseTypeDesc(typeText)
	require.NoError(t, err)
	fd, err := r.Resolve("Decl", "field", desc, "")
	require.NoError(t, err)
	return fd
}

func TestResolveModifiers(t *testing.T) {
	r := New(Options{ObjectID: true})

	t.Run("optional of array", func(t *testing.T) {
		fd := mustResolve(t, r, "Option<Vec<string>>")
		require.True(t, fd.IsOptional)
		require.True(t, fd.IsArray)
		require.Equal(t, model.ShapePrimitive, fd.Shape.Kind)
		require.Equal(t, model.PrimString, fd.Shape.Primitive)
	})

	t.Run("array of optional", func(t *testing.T) {
		fd := mustResolve(t, r, "Vec<Option<string>>")
		require.True(t, fd.IsOptional)
		require.True(t, fd.IsArray)
	})

	t.Run("hash set is an array", func(t *testing.T) {
		fd := mustResolve(t, r, "HashSet<u32>")
		require.True(t, fd.IsArray)
		require.False(t, fd.IsOptional)
	})

	t.Run("plain primitive has no modifiers", func(t *testing.T) {
		fd := mustResolve(t, r, "u64")
		require.False(t, fd.IsArray)
		require.False(t, fd.IsOptional)
		require.True(t, fd.Shape.Primitive.IsInteger())
	})
}

func TestResolveShapes(t *testing.T) {
	r := New(Options{ObjectID: true})

	t.Run("map", func(t *testing.T) {
		fd := mustResolve(t, r, "HashMap<string, u32>")
		require.Equal(t, model.ShapeMap, fd.Shape.Kind)
		require.Equal(t, model.PrimString, fd.Shape.Key.Shape.Primitive)
		require.True(t, fd.Shape.Value.Shape.Primitive.IsInteger())
	})

	t.Run("btree map", func(t *testing.T) {
		fd := mustResolve(t, r, "BTreeMap<string, bool>")
		require.Equal(t, model.ShapeMap, fd.Shape.Kind)
	})

	t.Run("tuple names elements positionally", func(t *testing.T) {
		fd := mustResolve(t, r, "(string, u32)")
		require.Equal(t, model.ShapeTuple, fd.Shape.Kind)
		require.Len(t, fd.Shape.Elements, 2)
		require.Equal(t, "element_0", fd.Shape.Elements[0].Name)
		require.Equal(t, "element_1", fd.Shape.Elements[1].Name)
	})

	t.Run("object id recognized", func(t *testing.T) {
		fd := mustResolve(t, r, "ObjectId")
		require.Equal(t, model.ShapeObjectID, fd.Shape.Kind)
	})

	t.Run("object id gate off", func(t *testing.T) {
		plain := New(Options{ObjectID: false})
		fd := mustResolve(t, plain, "ObjectId")
		require.Equal(t, model.ShapeReference, fd.Shape.Kind)
		require.Equal(t, "ObjectId", fd.Shape.Ref)
	})

	t.Run("reference strips wire suffix", func(t *testing.T) {
		fd := mustResolve(t, r, "SiblingJson")
		require.Equal(t, model.ShapeReference, fd.Shape.Kind)
		require.Equal(t, "Sibling", fd.Shape.Ref)
	})

	t.Run("unknown marker", func(t *testing.T) {
		fd := mustResolve(t, r, "unknown")
		require.Equal(t, model.ShapeUnknown, fd.Shape.Kind)
	})

	t.Run("parameterized reference keeps resolved args", func(t *testing.T) {
		fd := mustResolve(t, r, "Wrapper<string>")
		require.Equal(t, model.ShapeReference, fd.Shape.Kind)
		require.Len(t, fd.Shape.TypeArgs, 1)
		require.Equal(t, model.PrimString, fd.Shape.TypeArgs[0].Shape.Primitive)
	})
}

func TestResolveUnsupported(t *testing.T) {
	r := New(Options{ObjectID: true})
	for _, typeText := range []string{"Option<string, u32>", "Vec<string, u32>", "HashMap<string>", "Option"} {
		desc, err := ParseTypeDesc(typeText)
		require.NoError(t, err, typeText)
		_, err = r.Resolve("Order", "items", desc, "")
		require.Error(t, err, typeText)
		var unsupported *UnsupportedShapeError
		require.ErrorAs(t, err, &unsupported, typeText)
		require.Equal(t, "Order", unsupported.Decl)
		require.Equal(t, "items", unsupported.Field)
	}
}

func TestApplyOverride(t *testing.T) {
	r := New(Options{ObjectID: true})

	t.Run("explicit type replaces shape keeping modifiers", func(t *testing.T) {
		fd := mustResolve(t, r, "Option<Vec<u32>>")
		as := "string"
		out, err := r.ApplyOverride("Decl", fd, &model.ValidationOverride{ExplicitType: &as})
		require.NoError(t, err)
		require.Equal(t, model.PrimString, out.Shape.Primitive)
		require.True(t, out.IsOptional)
		require.True(t, out.IsArray)
	})

	t.Run("literal supersedes explicit type", func(t *testing.T) {
		fd := mustResolve(t, r, "string")
		as := "u32"
		lit := "user"
		out, err := r.ApplyOverride("Decl", fd, &model.ValidationOverride{ExplicitType: &as, Literal: &lit})
		require.NoError(t, err)
		require.Equal(t, model.ShapeStringLiteral, out.Shape.Kind)
		require.Equal(t, "user", out.Shape.Literal)
	})

	t.Run("original is untouched", func(t *testing.T) {
		fd := mustResolve(t, r, "string")
		lit := "x"
		_, err := r.ApplyOverride("Decl", fd, &model.ValidationOverride{Literal: &lit})
		require.NoError(t, err)
		require.Equal(t, model.ShapePrimitive, fd.Shape.Kind)
		require.Nil(t, fd.Validation)
	})
}
