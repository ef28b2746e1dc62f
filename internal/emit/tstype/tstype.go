// Package tstype renders the static TypeScript type declaration for a
// compiled type. It is a pure function of the normalized type model and
// never coordinates with the other emitters.
package tstype

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/arqons/modelschema/internal/model"
)

// EmptyRecordType is emitted for records with no fields; an empty
// structural literal is unsound in TypeScript, so a closed empty record
// sentinel is used instead.
const EmptyRecordType = "Record<string, never>"

// FieldType renders a field's type text with the array and optional
// modifiers applied outermost-last: array wrap first, then the absence
// marker.
func FieldType(fd *model.FieldDef) string {
	result := shapeType(fd.Shape)
	if fd.IsArray {
		result = fmt.Sprintf("Array<%s>", result)
	}
	if fd.IsOptional {
		result += " | undefined"
	}
	return result
}

func shapeType(sh model.FieldShape) string {
	switch sh.Kind {
	case model.ShapeUnknown:
		return "unknown"

	case model.ShapePrimitive:
		switch {
		case sh.Primitive == model.PrimBool:
			return "boolean"
		case sh.Primitive == model.PrimString:
			return "string"
		default:
			// TypeScript's structural type system has no fixed-width
			// numerics; every integer and float width collapses to number.
			return "number"
		}

	case model.ShapeStringLiteral:
		return fmt.Sprintf("%q", sh.Literal)

	case model.ShapeObjectID:
		return "ObjectId"

	case model.ShapeReference:
		if len(sh.TypeArgs) == 0 {
			return sh.Ref
		}
		args := make([]string, len(sh.TypeArgs))
		for i, a := range sh.TypeArgs {
			args[i] = FieldType(a)
		}
		return fmt.Sprintf("%s<%s>", sh.Ref, strings.Join(args, ", "))

	case model.ShapeMap:
		// Nothing guarantees every key is present, hence Partial.
		return fmt.Sprintf("Partial<Record<%s, %s>>", FieldType(sh.Key), FieldType(sh.Value))

	case model.ShapeTuple:
		parts := make([]string, len(sh.Elements))
		for i, el := range sh.Elements {
			parts[i] = fmt.Sprintf("%s: %s", el.Name, FieldType(el))
		}
		return fmt.Sprintf("{ %s }", strings.Join(parts, "; "))
	}
	return "unknown"
}

// DocLines formats doc text into " * "-prefixed comment body lines. When
// the text is empty the fallback (normally the type or field name) is used.
func DocLines(docs, fallback string) string {
	lines := []string{}
	if strings.TrimSpace(docs) == "" {
		lines = append(lines, fallback)
	} else {
		for _, l := range strings.Split(docs, "\n") {
			lines = append(lines, strings.TrimSpace(l))
		}
	}
	lines = append(lines, "")
	for i, l := range lines {
		lines[i] = strings.TrimRight(" * "+l, " ")
	}
	return strings.Join(lines, "\n")
}

// RecordBody renders the `{ ... }` body of a record type, one doc block
// and field per line, in declaration order.
func RecordBody(fields []*model.FieldDef) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, fd := range fields {
		fmt.Fprintf(&b, "  /**\n%s\n**/\n  %s: %s;\n", DocLines(fd.Docs, fd.Name), fd.Name, FieldType(fd))
	}
	b.WriteString("}")
	return b.String()
}

// Emit renders the right-hand side of `export type Name = ...` for any
// declaration kind.
func Emit(decl *model.TypeDeclaration) string {
	switch decl.Kind {
	case model.DeclRecord:
		if len(decl.Fields) == 0 {
			return EmptyRecordType
		}
		return RecordBody(decl.Fields)

	case model.DeclPlainEnum:
		parts := make([]string, len(decl.VariantNames))
		for i, v := range decl.VariantNames {
			parts[i] = fmt.Sprintf("%q", v)
		}
		return strings.Join(parts, " | ")

	case model.DeclTaggedUnion:
		parts := make([]string, len(decl.Variants))
		for i, v := range decl.Variants {
			parts[i] = RecordBody(v.Fields)
		}
		return strings.Join(parts, " | ")
	}
	return "unknown"
}

// CollectionAlias renders an `export type Plural = Array<Name>;` alias for
// a record type, pluralizing the declaration name.
func CollectionAlias(name string) string {
	return fmt.Sprintf("export type %s = Array<%s>;", inflection.Plural(name), name)
}
