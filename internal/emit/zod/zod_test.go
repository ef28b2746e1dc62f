package zod

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arqons/modelschema/internal/model"
)

func prim(kind model.PrimitiveKind) model.FieldShape {
	return model.FieldShape{Kind: model.ShapePrimitive, Primitive: kind}
}

func intPtr(n int) *int { return &n }

func TestFieldValidator(t *testing.T) {
	tests := []struct {
		name string
		fd   *model.FieldDef
		want string
	}{
		{
			name: "string",
			fd:   &model.FieldDef{Shape: prim(model.PrimString)},
			want: "z.string()",
		},
		{
			name: "integers assert whole numbers",
			fd:   &model.FieldDef{Shape: prim(model.PrimI64)},
			want: "z.number().int()",
		},
		{
			name: "floats stay plain numbers",
			fd:   &model.FieldDef{Shape: prim(model.PrimF64)},
			want: "z.number()",
		},
		{
			name: "bool",
			fd:   &model.FieldDef{Shape: prim(model.PrimBool)},
			want: "z.boolean()",
		},
		{
			name: "min length rides the string",
			fd: &model.FieldDef{
				Shape:      prim(model.PrimString),
				Validation: &model.ValidationOverride{MinLength: intPtr(3)},
			},
			want: "z.string().min(3)",
		},
		{
			name: "min length inside array wrap",
			fd: &model.FieldDef{
				Shape:      prim(model.PrimString),
				IsArray:    true,
				Validation: &model.ValidationOverride{MinLength: intPtr(1)},
			},
			want: "z.array(z.string().min(1))",
		},
		{
			name: "literal wins over min length",
			fd: &model.FieldDef{
				Shape:      model.FieldShape{Kind: model.ShapeStringLiteral, Literal: "user"},
				Validation: &model.ValidationOverride{Literal: strPtr("user"), MinLength: intPtr(10)},
			},
			want: `z.literal("user")`,
		},
		{
			name: "array then optional",
			fd:   &model.FieldDef{Shape: prim(model.PrimString), IsArray: true, IsOptional: true},
			want: "z.array(z.string()).optional()",
		},
		{
			name: "reference uses schema ident",
			fd:   &model.FieldDef{Shape: model.FieldShape{Kind: model.ShapeReference, Ref: "Role"}},
			want: "Role$Schema",
		},
		{
			name: "map",
			fd: &model.FieldDef{Shape: model.FieldShape{
				Kind:  model.ShapeMap,
				Key:   &model.FieldDef{Shape: prim(model.PrimString)},
				Value: &model.FieldDef{Shape: prim(model.PrimU32)},
			}},
			want: "z.record(z.string(), z.number().int())",
		},
		{
			name: "unknown",
			fd:   &model.FieldDef{Shape: model.FieldShape{Kind: model.ShapeUnknown}},
			want: "z.unknown()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FieldValidator(tt.fd))
		})
	}
}

func strPtr(s string) *string { return &s }

func TestObjectIDValidator(t *testing.T) {
	fd := &model.FieldDef{Shape: model.FieldShape{Kind: model.ShapeObjectID}}
	out := FieldValidator(fd)
	require.Contains(t, out, "$oid")
	require.Contains(t, out, "/^[a-f0-9]{24}$/i")
	require.Contains(t, out, `"Invalid ObjectId"`)
}

func TestEmitRecordOptionalTransform(t *testing.T) {
	decl := &model.TypeDeclaration{
		Kind: model.DeclRecord,
		Name: "User",
		Fields: []*model.FieldDef{
			{Name: "id", Shape: prim(model.PrimString)},
			{Name: "age", Shape: prim(model.PrimU32), IsOptional: true},
			{Name: "bio", Shape: prim(model.PrimString), IsOptional: true},
		},
	}
	out := Emit(decl)
	require.Contains(t, out, "z.strictObject({")
	require.Contains(t, out, "age: z.number().int().optional(),")
	require.Contains(t, out, ".transform(args => Object.assign(args, {")
	require.Contains(t, out, "age: args.age")
	require.Contains(t, out, "bio: args.bio")
	require.NotContains(t, out, "id: args.id")
}

func TestEmitRecordWithoutOptionalsHasNoTransform(t *testing.T) {
	decl := &model.TypeDeclaration{
		Kind: model.DeclRecord,
		Name: "User",
		Fields: []*model.FieldDef{
			{Name: "id", Shape: prim(model.PrimString)},
		},
	}
	require.NotContains(t, Emit(decl), ".transform")
}

func TestEmitPlainEnum(t *testing.T) {
	decl := &model.TypeDeclaration{
		Kind:         model.DeclPlainEnum,
		Name:         "Role",
		VariantNames: []string{"admin", "viewer"},
	}
	require.Equal(t, `z.enum(["admin", "viewer"])`, Emit(decl))
}

func TestEmitTaggedUnion(t *testing.T) {
	decl := &model.TypeDeclaration{
		Kind:     model.DeclTaggedUnion,
		Name:     "Event",
		TagField: "eventType",
		Variants: []model.UnionVariant{
			{Name: "created", Fields: []*model.FieldDef{
				{Name: "eventType", Shape: model.FieldShape{Kind: model.ShapeStringLiteral, Literal: "created"}},
				{Name: "note", Shape: prim(model.PrimString), IsOptional: true},
			}},
			{Name: "deleted", Fields: []*model.FieldDef{
				{Name: "eventType", Shape: model.FieldShape{Kind: model.ShapeStringLiteral, Literal: "deleted"}},
			}},
		},
	}
	out := Emit(decl)
	require.Contains(t, out, `z.discriminatedUnion("eventType", [`)
	require.Contains(t, out, `eventType: z.literal("created"),`)
	require.Contains(t, out, `eventType: z.literal("deleted"),`)
	// Per-variant optional normalization still applies inside the union.
	require.Contains(t, out, "note: args.note")
}

func TestSchemaIdent(t *testing.T) {
	require.Equal(t, "User$Schema", SchemaIdent("User"))
}
