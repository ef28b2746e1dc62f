package model

// PrimitiveKind enumerates the scalar kinds a field can resolve to.
type PrimitiveKind int

const (
	PrimBool PrimitiveKind = iota
	PrimString
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimUsize
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimIsize
	PrimF32
	PrimF64
)

// IsInteger reports whether the kind is one of the ten integer widths.
func (k PrimitiveKind) IsInteger() bool {
	switch k {
	case PrimU8, PrimU16, PrimU32, PrimU64, PrimUsize,
		PrimI8, PrimI16, PrimI32, PrimI64, PrimIsize:
		return true
	}
	return false
}

// IsFloat reports whether the kind is a floating point width.
func (k PrimitiveKind) IsFloat() bool {
	return k == PrimF32 || k == PrimF64
}

// ShapeKind discriminates FieldShape.
type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota // unsupported shape, rendered permissively
	ShapePrimitive
	ShapeStringLiteral // a string type pinned to one constant value
	ShapeReference     // a named sibling/external type, by name only
	ShapeMap
	ShapeTuple
	ShapeObjectID // externally defined 24-hex identifier type
)

// FieldShape is the atomic unit of the type model. Only the fields
// belonging to Kind are populated; everything else stays zero.
type FieldShape struct {
	Kind ShapeKind

	Primitive PrimitiveKind // ShapePrimitive
	Literal   string        // ShapeStringLiteral
	Ref       string        // ShapeReference: referenced type name
	TypeArgs  []*FieldDef   // ShapeReference: generic arguments, usually empty
	Key       *FieldDef     // ShapeMap
	Value     *FieldDef     // ShapeMap
	Elements  []*FieldDef   // ShapeTuple
}

// ValidationOverride carries field-level attribute overrides. Literal, when
// set, supersedes the resolved shape (forcing a string literal) and any
// MinLength. MinLength only applies when the effective shape is a string.
type ValidationOverride struct {
	ExplicitType *string
	Literal      *string
	MinLength    *int
}

// FieldDef is one resolved field (or tuple element, or generic argument).
// Name is the final post-rename identifier; uniqueness within the owning
// record is a caller invariant. IsArray and IsOptional are independent
// modifiers layered outside Shape: array-of-optional and optional-of-array
// are both representable and distinct.
type FieldDef struct {
	Name       string
	Docs       string
	Shape      FieldShape
	IsArray    bool
	IsOptional bool
	Validation *ValidationOverride
}

// Clone returns a copy the caller may re-label without touching the original.
func (f *FieldDef) Clone() *FieldDef {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}

// DeclKind discriminates TypeDeclaration.
type DeclKind int

const (
	DeclRecord DeclKind = iota
	DeclPlainEnum
	DeclTaggedUnion
)

// UnionVariant is one arm of a tagged union. Name is the final (renamed)
// variant name, which doubles as the tag value. Fields includes the
// synthesized tag field in first position.
type UnionVariant struct {
	Name   string
	Docs   string
	Fields []*FieldDef
}

// TypeDeclaration is the compiled, normalized form of one declared type.
// The tree is pure and acyclic: references to other declarations are held
// by name only, never by pointer, so mutually-referring records are legal.
type TypeDeclaration struct {
	Kind DeclKind
	Name string
	Docs string

	Fields []*FieldDef // DeclRecord

	VariantNames []string // DeclPlainEnum, in declaration order

	TagField string         // DeclTaggedUnion
	Variants []UnionVariant // DeclTaggedUnion, in declaration order
}

// OptionalFieldNames returns the names of all optional fields of a record,
// in declaration order. The validator emitter uses this for its trailing
// missing-key vs present-but-undefined normalization step.
func (d *TypeDeclaration) OptionalFieldNames() []string {
	var out []string
	for _, f := range d.Fields {
		if f.IsOptional {
			out = append(out, f.Name)
		}
	}
	return out
}
