package resolve

import "github.com/arqons/modelschema/internal/model"

// DefaultTagField is used when the container declares no tag field name.
const DefaultTagField = "type"

// ResolvedVariant is one enum variant after field resolution and renaming.
// Name is the final (renamed) variant name and Source the pre-rename host
// identifier, kept for error reporting; Fields excludes the tag field,
// which CompileUnion synthesizes.
type ResolvedVariant struct {
	Name   string
	Source string
	Docs   string
	Fields []*model.FieldDef
}

// IsPlainEnum reports whether no variant carries fields, in which case the
// enum short-circuits to a simple name list.
func IsPlainEnum(variants []ResolvedVariant) bool {
	for _, v := range variants {
		if len(v.Fields) > 0 {
			return false
		}
	}
	return true
}

// CompileUnion groups resolved enum variants into a tagged-union shape.
// Each variant becomes a closed record whose synthesized first field pins
// the tag to the variant's renamed name. Tag-value collisions after
// renaming fail compilation.
func CompileUnion(name, docs, tagField string, variants []ResolvedVariant) (*model.TypeDeclaration, error) {
	if tagField == "" {
		tagField = DefaultTagField
	}

	decl := &model.TypeDeclaration{
		Kind:     model.DeclTaggedUnion,
		Name:     name,
		Docs:     docs,
		TagField: tagField,
		Variants: make([]model.UnionVariant, 0, len(variants)),
	}

	seen := make(map[string]string, len(variants))
	for _, v := range variants {
		source := v.Source
		if source == "" {
			source = v.Name
		}
		if prev, ok := seen[v.Name]; ok {
			return nil, &DuplicateTagError{
				Decl:     name,
				TagValue: v.Name,
				VariantA: prev,
				VariantB: source,
			}
		}
		seen[v.Name] = source

		// The variant docs stay on the record; duplicating them onto the
		// tag field would render them twice.
		fields := make([]*model.FieldDef, 0, len(v.Fields)+1)
		fields = append(fields, &model.FieldDef{
			Name:  tagField,
			Shape: model.FieldShape{Kind: model.ShapeStringLiteral, Literal: v.Name},
		})
		fields = append(fields, v.Fields...)

		decl.Variants = append(decl.Variants, model.UnionVariant{
			Name:   v.Name,
			Docs:   v.Docs,
			Fields: fields,
		})
	}

	return decl, nil
}
