// Package modelfile loads model declarations from a YAML document. It is
// the declaration frontend for everything the Go scanner cannot express,
// tagged unions in particular, and produces the same raw declaration input
// the compiler consumes from any frontend.
package modelfile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arqons/modelschema/pkg/compiler"
)

// File is one parsed model document.
type File struct {
	// Version guards against future format revisions; zero means 1.
	Version int     `yaml:"version,omitempty"`
	Models  []Model `yaml:"models"`
}

// Model is one declaration entry. Kind defaults to "record"; "enum" covers
// both plain enums and tagged unions, distinguished by whether any variant
// carries fields.
type Model struct {
	Name      string    `yaml:"name"`
	Kind      string    `yaml:"kind,omitempty"`
	Docs      string    `yaml:"docs,omitempty"`
	RenameAll string    `yaml:"renameAll,omitempty"`
	Tag       string    `yaml:"tag,omitempty"`
	Skip      bool      `yaml:"skip,omitempty"`
	Fields    []Field   `yaml:"fields,omitempty"`
	Variants  []Variant `yaml:"variants,omitempty"`
}

// Field is one record or variant field.
type Field struct {
	Name      string  `yaml:"name"`
	Type      string  `yaml:"type"`
	Docs      string  `yaml:"docs,omitempty"`
	Rename    string  `yaml:"rename,omitempty"`
	Skip      bool    `yaml:"skip,omitempty"`
	As        string  `yaml:"as,omitempty"`
	Literal   *string `yaml:"literal,omitempty"`
	MinLength *int    `yaml:"minLength,omitempty"`
}

// Variant is one enum variant; Fields is empty for unit variants.
type Variant struct {
	Name   string  `yaml:"name"`
	Docs   string  `yaml:"docs,omitempty"`
	Rename string  `yaml:"rename,omitempty"`
	Skip   bool    `yaml:"skip,omitempty"`
	Fields []Field `yaml:"fields,omitempty"`
}

// Load reads and parses a model document from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file %q: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing model file %q: %w", path, err)
	}
	return f, nil
}

// Parse decodes a model document. Unknown keys are rejected so that typos
// in attribute names fail loudly instead of silently dropping behavior.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if f.Version > 1 {
		return nil, fmt.Errorf("unsupported model file version %d", f.Version)
	}
	for i := range f.Models {
		if err := f.Models[i].validate(); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

func (m *Model) validate() error {
	if m.Name == "" {
		return fmt.Errorf("model entry missing name")
	}
	switch m.Kind {
	case "", "record":
		if len(m.Variants) > 0 {
			return fmt.Errorf("model %q: record declarations cannot have variants", m.Name)
		}
	case "enum":
		if len(m.Fields) > 0 {
			return fmt.Errorf("model %q: enum declarations cannot have top-level fields", m.Name)
		}
		if len(m.Variants) == 0 {
			return fmt.Errorf("model %q: enum declarations need at least one variant", m.Name)
		}
	default:
		return fmt.Errorf("model %q: unknown kind %q", m.Name, m.Kind)
	}
	for _, fld := range m.Fields {
		if err := fld.validate(m.Name); err != nil {
			return err
		}
	}
	for _, v := range m.Variants {
		if v.Name == "" {
			return fmt.Errorf("model %q: variant missing name", m.Name)
		}
		for _, fld := range v.Fields {
			if err := fld.validate(m.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Field) validate(model string) error {
	if f.Name == "" {
		return fmt.Errorf("model %q: field missing name", model)
	}
	if f.Type == "" && f.As == "" {
		return fmt.Errorf("model %q: field %q missing type", model, f.Name)
	}
	return nil
}

// Decls converts every non-skipped model to the compiler's raw input, in
// document order.
func (f *File) Decls() []compiler.RawDecl {
	out := make([]compiler.RawDecl, 0, len(f.Models))
	for _, m := range f.Models {
		if m.Skip {
			continue
		}
		out = append(out, m.Decl())
	}
	return out
}

// Decl converts one model entry to the compiler's raw input.
func (m *Model) Decl() compiler.RawDecl {
	raw := compiler.RawDecl{
		Name: m.Name,
		Docs: m.Docs,
		Attrs: compiler.DeclAttrs{
			RenameAll: m.RenameAll,
			Tag:       m.Tag,
			Skip:      m.Skip,
		},
	}
	if m.Kind == "enum" {
		raw.Kind = compiler.RawEnum
		for _, v := range m.Variants {
			raw.Variants = append(raw.Variants, compiler.RawVariant{
				Name:   v.Name,
				Docs:   v.Docs,
				Attrs:  compiler.FieldAttrs{Rename: v.Rename, Skip: v.Skip},
				Fields: rawFields(v.Fields),
			})
		}
		return raw
	}
	raw.Kind = compiler.RawRecord
	raw.Fields = rawFields(m.Fields)
	return raw
}

func rawFields(fields []Field) []compiler.RawField {
	out := make([]compiler.RawField, 0, len(fields))
	for _, f := range fields {
		out = append(out, compiler.RawField{
			Name: f.Name,
			Type: f.Type,
			Docs: f.Docs,
			Attrs: compiler.FieldAttrs{
				Rename:       f.Rename,
				Skip:         f.Skip,
				ExplicitType: f.As,
				Literal:      f.Literal,
				MinLength:    f.MinLength,
			},
		})
	}
	return out
}
