package jsonschema

import (
	"errors"
	"fmt"

	"github.com/arqons/modelschema/internal/diag"
	"github.com/arqons/modelschema/internal/model"
)

// objectIDPattern validates the 24-hex-character identifier. JSON Schema
// regex dialects have no inline case flag, so both cases are spelled out.
const objectIDPattern = "^[a-fA-F0-9]{24}$"

// CapabilityResolver looks up another declared type's schema-production
// capability by name. Lookups are read-only and legal in any order; there
// is no initialization sequencing between types.
type CapabilityResolver interface {
	SchemaFor(name string) (*Schema, error)
	EnumMembers(name string) ([]string, bool)
}

// UnknownReferenceError reports a reference whose schema capability is not
// available, under strict reference checking.
type UnknownReferenceError struct {
	Decl string
	Ref  string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s: unknown type reference %q", e.Decl, e.Ref)
}

// ValueSchemaUnavailableError reports a map keyed by an enumerable type
// whose value type exposes no schema capability.
type ValueSchemaUnavailableError struct {
	Decl  string
	Field string
	Value string
}

func (e *ValueSchemaUnavailableError) Error() string {
	return fmt.Sprintf("%s.%s: map value type %q exposes no schema", e.Decl, e.Field, e.Value)
}

// Emitter produces JSON Schema documents from the normalized type model.
//
// Refs       - capability lookup for referenced types; may be nil.
// StrictRefs - when set, an unresolvable reference fails emission instead
//              of degrading to a permissive schema with a warning.
type Emitter struct {
	Refs       CapabilityResolver
	StrictRefs bool
}

// EmitDecl produces the document for a whole declaration.
func (e *Emitter) EmitDecl(decl *model.TypeDeclaration, diags *diag.List) (*Schema, error) {
	switch decl.Kind {
	case model.DeclRecord:
		return e.recordSchema(decl.Name, decl.Fields, diags)

	case model.DeclPlainEnum:
		return &Schema{Type: "string", Enum: append([]string{}, decl.VariantNames...)}, nil

	case model.DeclTaggedUnion:
		oneOf := make([]*Schema, 0, len(decl.Variants))
		for _, v := range decl.Variants {
			vs, err := e.recordSchema(decl.Name, v.Fields, diags)
			if err != nil {
				return nil, err
			}
			oneOf = append(oneOf, vs)
		}
		return &Schema{Type: "object", OneOf: oneOf}, nil
	}
	return nil, fmt.Errorf("%s: unsupported declaration kind", decl.Name)
}

// recordSchema builds a closed object schema over an ordered field list.
// Required lists every non-optional field in declaration order; the
// synthesized union tag field is never optional.
func (e *Emitter) recordSchema(declName string, fields []*model.FieldDef, diags *diag.List) (*Schema, error) {
	out := &Schema{
		Type:                 "object",
		AdditionalProperties: false,
		Properties:           []Property{},
		Required:             []string{},
	}
	for _, fd := range fields {
		fs, err := e.FieldSchema(declName, fd, diags)
		if err != nil {
			return nil, err
		}
		out.Properties = append(out.Properties, Property{Name: fd.Name, Schema: fs})
		if !fd.IsOptional {
			out.Required = append(out.Required, fd.Name)
		}
	}
	return out, nil
}

// FieldSchema emits one field's schema with the array modifier applied.
// Optionality is a record-level concern (membership in required) and does
// not change the field schema itself.
func (e *Emitter) FieldSchema(declName string, fd *model.FieldDef, diags *diag.List) (*Schema, error) {
	base, err := e.shapeSchema(declName, fd, diags)
	if err != nil {
		return nil, err
	}
	if fd.IsArray {
		return &Schema{Type: "array", Items: base}, nil
	}
	return base, nil
}

func (e *Emitter) shapeSchema(declName string, fd *model.FieldDef, diags *diag.List) (*Schema, error) {
	sh := fd.Shape
	switch sh.Kind {
	case model.ShapeUnknown:
		return True(), nil

	case model.ShapePrimitive:
		s := &Schema{Type: primitiveType(sh.Primitive)}
		if s.Type == "string" && fd.Validation != nil && fd.Validation.MinLength != nil && fd.Validation.Literal == nil {
			n := *fd.Validation.MinLength
			s.MinLength = &n
		}
		return s, nil

	case model.ShapeStringLiteral:
		v := sh.Literal
		return &Schema{Type: "string", Const: &v}, nil

	case model.ShapeObjectID:
		return objectIDSchema(), nil

	case model.ShapeReference:
		if len(sh.TypeArgs) > 0 {
			return nil, fmt.Errorf("%s.%s: parameterized reference %q has no JSON Schema form",
				declName, fd.Name, sh.Ref)
		}
		return e.referenceSchema(declName, fd.Name, sh.Ref, diags)

	case model.ShapeMap:
		return e.mapSchema(declName, fd, diags)

	case model.ShapeTuple:
		out := &Schema{
			Type:                 "object",
			AdditionalProperties: false,
			Properties:           []Property{},
			Required:             []string{},
		}
		for _, el := range sh.Elements {
			es, err := e.FieldSchema(declName, el, diags)
			if err != nil {
				return nil, err
			}
			out.Properties = append(out.Properties, Property{Name: el.Name, Schema: es})
			if !el.IsOptional {
				out.Required = append(out.Required, el.Name)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s.%s: unsupported shape kind", declName, fd.Name)
}

// referenceSchema delegates to the referenced type's schema capability.
// Without a resolvable capability the reference degrades to a permissive
// schema and a warning, unless strict reference checking is enabled.
func (e *Emitter) referenceSchema(declName, fieldName, ref string, diags *diag.List) (*Schema, error) {
	if e.Refs != nil {
		s, err := e.Refs.SchemaFor(ref)
		if err == nil && s != nil {
			return s, nil
		}
		if err != nil && e.StrictRefs {
			return nil, err
		}
	}
	if e.StrictRefs {
		return nil, &UnknownReferenceError{Decl: declName, Ref: ref}
	}
	diags.Warnf(declName, fieldName, "unknown type reference %q, emitting permissive schema", ref)
	return True(), nil
}

// mapSchema emits an associative container. A map keyed by an enumerable
// named type closes over the key values; a string-keyed map constrains its
// values; anything else degrades to an open object.
func (e *Emitter) mapSchema(declName string, fd *model.FieldDef, diags *diag.List) (*Schema, error) {
	key, value := fd.Shape.Key, fd.Shape.Value

	if key.Shape.Kind == model.ShapeReference && len(key.Shape.TypeArgs) == 0 && e.Refs != nil {
		if members, ok := e.Refs.EnumMembers(key.Shape.Ref); ok {
			// Closing the map over the key's values hard-depends on the value
			// schema, so its resolution is strict regardless of StrictRefs.
			strict := &Emitter{Refs: e.Refs, StrictRefs: true}
			valueSchema, err := strict.FieldSchema(declName, value, diags)
			if err != nil {
				return nil, e.wrapValueSchemaErr(declName, fd.Name, value, err)
			}
			out := &Schema{
				Type:                 "object",
				AdditionalProperties: false,
				Properties:           make([]Property, 0, len(members)),
			}
			for _, m := range members {
				out.Properties = append(out.Properties, Property{Name: m, Schema: valueSchema})
			}
			return out, nil
		}
	}

	if key.Shape.Kind == model.ShapePrimitive && key.Shape.Primitive == model.PrimString {
		valueSchema, err := e.FieldSchema(declName, value, diags)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: valueSchema}, nil
	}

	diags.Warnf(declName, fd.Name, "map key type is not string or an enumerable reference, emitting open object")
	return &Schema{Type: "object", AdditionalProperties: true}, nil
}

func (e *Emitter) wrapValueSchemaErr(declName, fieldName string, value *model.FieldDef, err error) error {
	var unknown *UnknownReferenceError
	if errors.As(err, &unknown) {
		return &ValueSchemaUnavailableError{Decl: declName, Field: fieldName, Value: unknown.Ref}
	}
	if value.Shape.Kind == model.ShapeReference {
		return &ValueSchemaUnavailableError{Decl: declName, Field: fieldName, Value: value.Shape.Ref}
	}
	return err
}

func primitiveType(k model.PrimitiveKind) string {
	switch {
	case k == model.PrimBool:
		return "boolean"
	case k == model.PrimString:
		return "string"
	case k.IsInteger():
		return "integer"
	case k.IsFloat():
		return "number"
	}
	return "string"
}

func objectIDSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: []Property{
			{Name: "$oid", Schema: &Schema{Type: "string", Pattern: objectIDPattern}},
		},
		AdditionalProperties: false,
		Required:             []string{"$oid"},
	}
}
