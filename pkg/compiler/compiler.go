// Package compiler turns raw type declarations into their three
// synchronized artifacts: a static TypeScript type, a Zod validator
// expression, and a JSON Schema document. The three are independent
// queries over one normalized tree; emission for a declaration is
// all-or-nothing.
package compiler

import (
	"fmt"
	"strings"

	"github.com/arqons/modelschema/internal/diag"
	"github.com/arqons/modelschema/internal/emit/jsonschema"
	"github.com/arqons/modelschema/internal/emit/tstype"
	"github.com/arqons/modelschema/internal/emit/zod"
	"github.com/arqons/modelschema/internal/model"
	"github.com/arqons/modelschema/internal/resolve"
)

// UnsupportedTargetError reports a host declaration the compiler does not
// recognize as a record or enum.
type UnsupportedTargetError struct {
	Decl string
	Kind string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("%s: unsupported declaration target %q", e.Decl, e.Kind)
}

// Compiled is one successfully compiled declaration. The static-type and
// validator texts are fixed at compile time; the JSON Schema document is
// produced lazily so that forward and mutual references between types
// resolve regardless of compilation order.
type Compiled struct {
	decl  *model.TypeDeclaration
	opts  Options
	reg   *Registry
	diags *diag.List
}

// Compile resolves and compiles one raw declaration. It fails fast on
// unsupported shapes, duplicate union tags, and shapes that cannot
// produce a JSON Schema; no partial artifacts exist for a failed
// declaration. When a Registry is configured the result self-registers.
func Compile(raw RawDecl, opts ...Option) (*Compiled, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return CompileWithOpts(raw, o)
}

// CompileWithOpts is Compile with a pre-built option struct.
func CompileWithOpts(raw RawDecl, o *Options) (*Compiled, error) {
	diags := &diag.List{}
	r := resolve.New(resolve.Options{ObjectID: o.ObjectID})

	name := model.CleanTypeName(raw.Name)

	convention, ok := model.ParseConvention(raw.Attrs.RenameAll)
	if !ok {
		diags.Warnf(name, "", "unrecognized rename convention %q, leaving names unchanged", raw.Attrs.RenameAll)
	}
	policy := model.RenamePolicy{Convention: convention}

	var (
		decl *model.TypeDeclaration
		err  error
	)
	switch raw.Kind {
	case RawRecord:
		decl, err = compileRecord(name, raw, policy, r, diags)
	case RawEnum:
		decl, err = compileEnum(name, raw, policy, r, diags)
	default:
		err = &UnsupportedTargetError{Decl: name, Kind: fmt.Sprintf("kind(%d)", raw.Kind)}
	}
	if err != nil {
		return nil, err
	}

	if err = validateSchemable(decl); err != nil {
		return nil, err
	}

	c := &Compiled{decl: decl, opts: *o, reg: o.Registry, diags: diags}
	if o.Registry != nil {
		if err = o.Registry.Register(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func compileRecord(name string, raw RawDecl, policy model.RenamePolicy, r *resolve.Resolver, diags *diag.List) (*model.TypeDeclaration, error) {
	fields, err := resolveFields(name, raw.Fields, policy, r, diags)
	if err != nil {
		return nil, err
	}
	return &model.TypeDeclaration{
		Kind:   model.DeclRecord,
		Name:   name,
		Docs:   raw.Docs,
		Fields: fields,
	}, nil
}

func compileEnum(name string, raw RawDecl, policy model.RenamePolicy, r *resolve.Resolver, diags *diag.List) (*model.TypeDeclaration, error) {
	variants := make([]resolve.ResolvedVariant, 0, len(raw.Variants))
	for _, rv := range raw.Variants {
		if rv.Attrs.Skip {
			continue
		}
		fields, err := resolveFields(name, rv.Fields, policy, r, diags)
		if err != nil {
			return nil, err
		}
		variants = append(variants, resolve.ResolvedVariant{
			Name:   policy.Apply(rv.Name, rv.Attrs.Rename),
			Source: rv.Name,
			Docs:   rv.Docs,
			Fields: fields,
		})
	}

	if resolve.IsPlainEnum(variants) {
		names := make([]string, len(variants))
		for i, v := range variants {
			names[i] = v.Name
		}
		return &model.TypeDeclaration{
			Kind:         model.DeclPlainEnum,
			Name:         name,
			Docs:         raw.Docs,
			VariantNames: names,
		}, nil
	}

	return resolve.CompileUnion(name, raw.Docs, raw.Attrs.Tag, variants)
}

func resolveFields(declName string, raws []RawField, policy model.RenamePolicy, r *resolve.Resolver, diags *diag.List) ([]*model.FieldDef, error) {
	out := make([]*model.FieldDef, 0, len(raws))
	for _, rf := range raws {
		if rf.Attrs.Skip {
			continue
		}
		finalName := policy.Apply(rf.Name, rf.Attrs.Rename)

		// A field may declare its shape through the explicit-type override
		// alone; the override is then the declared type.
		typeText := rf.Type
		if typeText == "" {
			typeText = rf.Attrs.ExplicitType
		}
		desc, err := resolve.ParseTypeDesc(typeText)
		if err != nil {
			return nil, &resolve.UnsupportedShapeError{Decl: declName, Field: finalName, TypeText: typeText}
		}
		fd, err := r.Resolve(declName, finalName, desc, rf.Docs)
		if err != nil {
			return nil, err
		}

		if ov := overrideFromAttrs(rf.Attrs); ov != nil {
			fd, err = r.ApplyOverride(declName, fd, ov)
			if err != nil {
				return nil, err
			}
		}
		out = append(out, fd)
	}
	return out, nil
}

func overrideFromAttrs(a FieldAttrs) *model.ValidationOverride {
	if a.ExplicitType == "" && a.Literal == nil && a.MinLength == nil {
		return nil
	}
	ov := &model.ValidationOverride{Literal: a.Literal, MinLength: a.MinLength}
	if a.ExplicitType != "" {
		et := a.ExplicitType
		ov.ExplicitType = &et
	}
	return ov
}

// validateSchemable rejects shapes for which no JSON Schema form exists,
// keeping emission all-or-nothing: a declaration either yields all three
// artifacts or none.
func validateSchemable(decl *model.TypeDeclaration) error {
	var walk func(fd *model.FieldDef) error
	walk = func(fd *model.FieldDef) error {
		sh := fd.Shape
		switch sh.Kind {
		case model.ShapeReference:
			if len(sh.TypeArgs) > 0 {
				return fmt.Errorf("%s.%s: parameterized reference %q has no JSON Schema form",
					decl.Name, fd.Name, sh.Ref)
			}
		case model.ShapeMap:
			if err := walk(sh.Key); err != nil {
				return err
			}
			return walk(sh.Value)
		case model.ShapeTuple:
			for _, el := range sh.Elements {
				if err := walk(el); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, fd := range decl.Fields {
		if err := walk(fd); err != nil {
			return err
		}
	}
	for _, v := range decl.Variants {
		for _, fd := range v.Fields {
			if err := walk(fd); err != nil {
				return err
			}
		}
	}
	return nil
}

// Name returns the compiled declaration's clean name.
func (c *Compiled) Name() string { return c.decl.Name }

// Decl exposes the normalized declaration tree.
func (c *Compiled) Decl() *model.TypeDeclaration { return c.decl }

// Diagnostics returns the non-fatal findings collected while compiling.
func (c *Compiled) Diagnostics() []diag.Diagnostic { return c.diags.Items() }

// EnumMembers returns the variant names of a plain enum, in declaration
// order. The bool result is false for records and tagged unions.
func (c *Compiled) EnumMembers() ([]string, bool) {
	if c.decl.Kind != model.DeclPlainEnum {
		return nil, false
	}
	return append([]string{}, c.decl.VariantNames...), true
}

// JSONSchema produces the declaration's JSON Schema document. References
// to other declared types delegate to their registered schema capability.
func (c *Compiled) JSONSchema() (*jsonschema.Schema, error) {
	em := &jsonschema.Emitter{StrictRefs: c.opts.StrictRefs}
	if c.reg != nil {
		em.Refs = c.reg.view(c.decl.Name, c.opts.StrictRefs)
	}
	return em.EmitDecl(c.decl, c.diags)
}

// ValidatorDefinition renders the exported Zod schema declaration.
func (c *Compiled) ValidatorDefinition() string {
	name := c.decl.Name
	switch c.decl.Kind {
	case model.DeclPlainEnum:
		return fmt.Sprintf("export const %s: z.Schema<%s> = %s;",
			zod.SchemaIdent(name), name, zod.Emit(c.decl))
	default:
		return fmt.Sprintf("export const %s: z.Schema<%s, z.ZodTypeDef, unknown> = %s;",
			zod.SchemaIdent(name), name, zod.Emit(c.decl))
	}
}

// TSDefinition renders the full TypeScript artifact: a doc block bundling
// the declaration docs with the pretty-printed JSON Schema, the exported
// type, and the exported validator schema.
func (c *Compiled) TSDefinition() (string, error) {
	schema, err := c.JSONSchema()
	if err != nil {
		return "", err
	}
	pretty, err := schema.Pretty()
	if err != nil {
		return "", err
	}

	prettyLines := strings.Split(pretty, "\n")
	for i, l := range prettyLines {
		prettyLines[i] = " * " + l
	}

	var b strings.Builder
	fmt.Fprintf(&b, "/**\n%s\n * JSON Schema:\n%s\n **/\n",
		tstype.DocLines(c.decl.Docs, c.decl.Name), strings.Join(prettyLines, "\n"))
	fmt.Fprintf(&b, "export type %s = %s;", c.decl.Name, tstype.Emit(c.decl))
	if c.opts.CollectionAliases && c.decl.Kind == model.DeclRecord {
		b.WriteString("\n")
		b.WriteString(tstype.CollectionAlias(c.decl.Name))
	}
	b.WriteString("\n\n")
	b.WriteString(c.ValidatorDefinition())
	return b.String(), nil
}
