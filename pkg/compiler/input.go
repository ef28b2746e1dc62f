package compiler

// The raw declaration input produced by the frontends. Field and variant
// lists are ordered; all names are pre-rename host identifiers.

// DeclAttrs are container-level attributes.
//
// RenameAll - naming convention keyword applied to every field/variant.
// Tag       - tag field name for tagged unions; empty means the default.
// Skip      - exclude the declaration from compilation entirely.
type DeclAttrs struct {
	RenameAll string
	Tag       string
	Skip      bool
}

// FieldAttrs are field/variant-level attributes.
//
// Rename       - explicit final name, absolute over the container convention.
// Skip         - drop the field.
// ExplicitType - type descriptor text overriding the declared type's shape.
// Literal      - pin the field to one constant string value.
// MinLength    - minimum length assertion, strings only.
type FieldAttrs struct {
	Rename       string
	Skip         bool
	ExplicitType string
	Literal      *string
	MinLength    *int
}

// RawField is one record or variant field: (raw_name, raw_type_descriptor,
// doc_text, attributes).
type RawField struct {
	Name  string
	Type  string
	Docs  string
	Attrs FieldAttrs
}

// RawVariant is one enum variant. Fields is empty for unit variants.
type RawVariant struct {
	Name   string
	Docs   string
	Attrs  FieldAttrs
	Fields []RawField
}

// RawDeclKind discriminates RawDecl.
type RawDeclKind int

const (
	RawRecord RawDeclKind = iota
	RawEnum
)

// RawDecl is one host declaration handed to Compile.
type RawDecl struct {
	Kind     RawDeclKind
	Name     string
	Docs     string
	Attrs    DeclAttrs
	Fields   []RawField   // RawRecord
	Variants []RawVariant // RawEnum
}
