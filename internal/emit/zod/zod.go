// Package zod renders Zod validator-builder expressions for compiled
// types. It mirrors the static-type emitter structurally; both derive from
// the same normalized tree, which is what keeps the outputs isomorphic.
package zod

import (
	"fmt"
	"strings"

	"github.com/arqons/modelschema/internal/model"
)

// objectIDValidator wraps the 24-hex identifier in its one-field wire
// object; the /i flag matches the case-insensitive contract.
const objectIDValidator = `z.object({ $oid: z.string().regex(/^[a-f0-9]{24}$/i, { message: "Invalid ObjectId" }) })`

// SchemaIdent returns the conventional validator-schema identifier for a
// declared type name.
func SchemaIdent(name string) string {
	return name + "$Schema"
}

// FieldValidator renders a field's validator expression. The modifier
// pipeline is fixed: shape, then the minimum-length assertion, then the
// array wrap, then optionality.
func FieldValidator(fd *model.FieldDef) string {
	result := shapeValidator(fd)
	if fd.IsArray {
		result = fmt.Sprintf("z.array(%s)", result)
	}
	if fd.IsOptional {
		result += ".optional()"
	}
	return result
}

func shapeValidator(fd *model.FieldDef) string {
	sh := fd.Shape
	switch sh.Kind {
	case model.ShapeUnknown:
		return "z.unknown()"

	case model.ShapePrimitive:
		switch {
		case sh.Primitive == model.PrimBool:
			return "z.boolean()"
		case sh.Primitive == model.PrimString:
			s := "z.string()"
			if fd.Validation != nil && fd.Validation.MinLength != nil && fd.Validation.Literal == nil {
				s += fmt.Sprintf(".min(%d)", *fd.Validation.MinLength)
			}
			return s
		case sh.Primitive.IsInteger():
			return "z.number().int()"
		default:
			return "z.number()"
		}

	case model.ShapeStringLiteral:
		return fmt.Sprintf("z.literal(%q)", sh.Literal)

	case model.ShapeObjectID:
		return objectIDValidator

	case model.ShapeReference:
		if len(sh.TypeArgs) == 0 {
			return SchemaIdent(sh.Ref)
		}
		args := make([]string, len(sh.TypeArgs))
		for i, a := range sh.TypeArgs {
			args[i] = FieldValidator(a)
		}
		return fmt.Sprintf("%s(%s)", SchemaIdent(sh.Ref), strings.Join(args, ", "))

	case model.ShapeMap:
		return fmt.Sprintf("z.record(%s, %s)", FieldValidator(sh.Key), FieldValidator(sh.Value))

	case model.ShapeTuple:
		return recordValidator(sh.Elements, nil)
	}
	return "z.unknown()"
}

// recordValidator renders a closed/strict object validator over an ordered
// field list, followed by the optional-field normalization transform when
// optionalNames is non-empty.
func recordValidator(fields []*model.FieldDef, optionalNames []string) string {
	var b strings.Builder
	b.WriteString("z.strictObject({\n")
	for _, fd := range fields {
		fmt.Fprintf(&b, "  %s: %s,\n", fd.Name, FieldValidator(fd))
	}
	b.WriteString("})")
	b.WriteString(optionalTransform(optionalNames))
	return b.String()
}

// optionalTransform normalizes "missing key" and "present-but-undefined"
// into one representation by re-assigning every optional field.
func optionalTransform(optionalNames []string) string {
	if len(optionalNames) == 0 {
		return ""
	}
	assigns := make([]string, len(optionalNames))
	for i, n := range optionalNames {
		assigns[i] = fmt.Sprintf("%s: args.%s", n, n)
	}
	return fmt.Sprintf(".transform(args => Object.assign(args, {\n  %s\n}))",
		strings.Join(assigns, ",\n  "))
}

// Emit renders the validator expression for any declaration kind.
func Emit(decl *model.TypeDeclaration) string {
	switch decl.Kind {
	case model.DeclRecord:
		return recordValidator(decl.Fields, decl.OptionalFieldNames())

	case model.DeclPlainEnum:
		parts := make([]string, len(decl.VariantNames))
		for i, v := range decl.VariantNames {
			parts[i] = fmt.Sprintf("%q", v)
		}
		return fmt.Sprintf("z.enum([%s])", strings.Join(parts, ", "))

	case model.DeclTaggedUnion:
		variants := make([]string, len(decl.Variants))
		for i, v := range decl.Variants {
			var opts []string
			for _, fd := range v.Fields {
				if fd.IsOptional {
					opts = append(opts, fd.Name)
				}
			}
			variants[i] = recordValidator(v.Fields, opts)
		}
		return fmt.Sprintf("z.discriminatedUnion(%q, [%s])", decl.TagField, strings.Join(variants, ", "))
	}
	return "z.unknown()"
}
