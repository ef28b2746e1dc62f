// Package parser scans Go source for model declarations. Structs become
// records and string-typed constant sets become plain enums; declarations
// opt in through a +schema doc marker. The scanner is purely syntactic;
// it never needs the scanned tree to type-check.
package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/arqons/modelschema/internal/diag"
	"github.com/arqons/modelschema/pkg/compiler"
)

// Options control a scan run.
//
// Dir      - root of the module tree to scan.
// Patterns - package patterns relative to Dir; defaults to "./...".
type Options struct {
	Dir      string   `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir,omitempty"`
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty" mapstructure:"patterns,omitempty"`
}

// Normalize fills defaults.
func (o *Options) Normalize() {
	if o.Dir == "" {
		o.Dir = "."
	}
	if len(o.Patterns) == 0 {
		o.Patterns = []string{"./..."}
	}
}

type Option func(*Options)

func WithDir(dir string) Option              { return func(o *Options) { o.Dir = dir } }
func WithPatterns(patterns ...string) Option { return func(o *Options) { o.Patterns = patterns } }

// Parser holds the state and results of a scan run.
type Parser struct {
	Opts Options

	// Module is the scanned tree's module path, from its go.mod.
	Module string

	decls []compiler.RawDecl
	diags *diag.List
}

// New builds a parser from functional options.
func New(opts ...Option) *Parser {
	o := &Options{}
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

// NewWithOpts builds a parser from a pre-built option struct.
func NewWithOpts(opts *Options) *Parser {
	opts.Normalize()
	return &Parser{
		Opts:  *opts,
		diags: &diag.List{},
	}
}

// Decls returns the raw declarations collected by Parse, in source order.
func (p *Parser) Decls() []compiler.RawDecl { return p.decls }

// Diagnostics returns the non-fatal findings collected by Parse.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.diags.Items() }

// Parse loads the configured packages and collects every opted-in
// declaration. Load-level package errors degrade to warnings; a file that
// does not parse cannot contribute models but does not abort the scan.
func (p *Parser) Parse() error {
	p.readModulePath()

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  p.Opts.Dir,
		Fset: token.NewFileSet(),
	}, p.Opts.Patterns...)
	if err != nil {
		return fmt.Errorf("loading packages under %q: %w", p.Opts.Dir, err)
	}

	for _, pkg := range pkgs {
		for _, perr := range pkg.Errors {
			p.diags.Warnf(pkg.PkgPath, "", "package load: %s", perr.Msg)
		}
		p.collectPackage(pkg)
	}

	slog.Debug("scan complete",
		"module", p.Module,
		"packages", len(pkgs),
		"declarations", len(p.decls),
	)
	return nil
}

// readModulePath records the scanned module's path for generated-file
// headers. Absence of a go.mod is not an error.
func (p *Parser) readModulePath() {
	data, err := os.ReadFile(filepath.Join(p.Opts.Dir, "go.mod"))
	if err != nil {
		return
	}
	if mf, mfErr := modfile.Parse("go.mod", data, nil); mfErr == nil && mf.Module != nil {
		p.Module = mf.Module.Mod.Path
	}
}

// collectPackage gathers the package's marked declarations. Enum members
// live in const blocks that may follow their type anywhere in the package,
// so types are collected first and members attached afterwards.
func (p *Parser) collectPackage(pkg *packages.Package) {
	members := map[string][]compiler.RawVariant{}
	var order []compiler.RawDecl
	enumIndex := map[string]int{}

	for _, file := range pkg.Syntax {
		for _, d := range file.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok {
				continue
			}
			switch gd.Tok {
			case token.TYPE:
				for _, spec := range gd.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					if decl, isEnum, collected := p.collectType(gd, ts); collected {
						if isEnum {
							enumIndex[ts.Name.Name] = len(order)
						}
						order = append(order, decl)
					}
				}
			case token.CONST:
				p.collectConstMembers(gd, members)
			}
		}
	}

	for typeName, idx := range enumIndex {
		vs := members[typeName]
		if len(vs) == 0 {
			p.diags.Warnf(typeName, "", "enum type has no string constant members")
		}
		order[idx].Variants = vs
	}
	p.decls = append(p.decls, order...)
}

// collectType converts one marked type spec. Structs become records; a
// declaration over string becomes an enum whose members attach later.
func (p *Parser) collectType(gd *ast.GenDecl, ts *ast.TypeSpec) (compiler.RawDecl, bool, bool) {
	doc := ts.Doc.Text()
	if doc == "" {
		doc = gd.Doc.Text()
	}
	markers, prose := parseMarkers(ts.Name.Name, doc, p.diags)
	if !markers.optIn || markers.attrs.Skip {
		return compiler.RawDecl{}, false, false
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		return compiler.RawDecl{
			Kind:   compiler.RawRecord,
			Name:   ts.Name.Name,
			Docs:   prose,
			Attrs:  markers.attrs,
			Fields: p.collectFields(ts.Name.Name, t),
		}, false, true

	case *ast.Ident:
		if t.Name == "string" {
			return compiler.RawDecl{
				Kind:  compiler.RawEnum,
				Name:  ts.Name.Name,
				Docs:  prose,
				Attrs: markers.attrs,
			}, true, true
		}
	}

	p.diags.Warnf(ts.Name.Name, "", "marked type is neither a struct nor a string enum")
	return compiler.RawDecl{}, false, false
}

func (p *Parser) collectFields(declName string, st *ast.StructType) []compiler.RawField {
	var out []compiler.RawField
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			p.diags.Warnf(declName, "", "embedded fields are not scanned")
			continue
		}
		docs := field.Doc.Text()
		if docs == "" && field.Comment != nil {
			docs = field.Comment.Text()
		}
		var rawTag string
		if field.Tag != nil {
			rawTag = field.Tag.Value
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			attrs := parseFieldTag(declName, name.Name, rawTag, p.diags)
			out = append(out, compiler.RawField{
				Name:  name.Name,
				Type:  typeDescriptor(declName, name.Name, field.Type, p.diags),
				Docs:  docs,
				Attrs: attrs,
			})
		}
	}
	return out
}

// collectConstMembers extracts string-literal members from a const block,
// keyed by the constant's declared type. The member name is the constant's
// string value, the name the wire actually carries. A type set on one spec
// carries to the following untyped specs in the same block.
func (p *Parser) collectConstMembers(gd *ast.GenDecl, members map[string][]compiler.RawVariant) {
	currentType := ""
	for _, spec := range gd.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if vs.Type != nil {
			ident, ok := vs.Type.(*ast.Ident)
			if !ok {
				currentType = ""
				continue
			}
			currentType = ident.Name
		}
		if currentType == "" {
			continue
		}
		for i, name := range vs.Names {
			if i >= len(vs.Values) {
				continue
			}
			lit, ok := vs.Values[i].(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				p.diags.Warnf(currentType, name.Name, "enum member is not a string literal")
				continue
			}
			value, err := strconv.Unquote(lit.Value)
			if err != nil {
				p.diags.Warnf(currentType, name.Name, "enum member literal %s does not unquote", lit.Value)
				continue
			}
			members[currentType] = append(members[currentType], compiler.RawVariant{
				Name: value,
				Docs: vs.Doc.Text(),
			})
		}
	}
}
