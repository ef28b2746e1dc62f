// Package gen renders the optional generated Go registry file: a source
// file embedding each compiled type's JSON Schema document and TypeScript
// definition so Go services can serve them without re-running the
// compiler.
package gen

import (
	"fmt"
	"io"
	"sort"

	"github.com/dave/jennifer/jen"
	json "github.com/goccy/go-json"

	"github.com/arqons/modelschema/pkg/compiler"
)

// File builds the generated registry source for pkgName. The source
// module path, when known, lands in the header comment so readers can
// trace the artifact back to its inputs.
func File(pkgName, sourceModule string, compiled []*compiler.Compiled) (*jen.File, error) {
	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by modelschema. DO NOT EDIT.")
	if sourceModule != "" {
		f.HeaderComment(fmt.Sprintf("Source module: %s", sourceModule))
	}

	names := make([]string, 0, len(compiled))
	schemaJSON := map[string]string{}
	tsDefs := map[string]string{}

	for _, c := range compiled {
		schema, err := c.JSONSchema()
		if err != nil {
			return nil, fmt.Errorf("schema for %s: %w", c.Name(), err)
		}
		data, err := json.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("encoding schema for %s: %w", c.Name(), err)
		}
		ts, err := c.TSDefinition()
		if err != nil {
			return nil, fmt.Errorf("definition for %s: %w", c.Name(), err)
		}
		names = append(names, c.Name())
		schemaJSON[c.Name()] = string(data)
		tsDefs[c.Name()] = ts
	}
	sort.Strings(names)

	f.Comment("TypeNames lists every registered model type, sorted.")
	f.Var().Id("TypeNames").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, n := range names {
			g.Lit(n)
		}
	})
	f.Line()

	f.Comment("SchemaJSON maps each type name to its JSON Schema document.")
	f.Var().Id("SchemaJSON").Op("=").Map(jen.String()).String().Values(stringDict(names, schemaJSON))
	f.Line()

	f.Comment("TypeScriptDefs maps each type name to its full TypeScript definition.")
	f.Var().Id("TypeScriptDefs").Op("=").Map(jen.String()).String().Values(stringDict(names, tsDefs))

	return f, nil
}

// Render builds and writes the registry source.
func Render(w io.Writer, pkgName, sourceModule string, compiled []*compiler.Compiled) error {
	f, err := File(pkgName, sourceModule, compiled)
	if err != nil {
		return err
	}
	return f.Render(w)
}

func stringDict(names []string, values map[string]string) jen.Dict {
	d := jen.Dict{}
	for _, n := range names {
		d[jen.Lit(n)] = jen.Lit(values[n])
	}
	return d
}
