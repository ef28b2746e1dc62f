// Package generate orchestrates a full generation run: scan and load
// declarations, compile them against a shared registry, and write the
// TypeScript artifact plus the optional Go registry file.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/arqons/modelschema/internal/diag"
	"github.com/arqons/modelschema/internal/gen"
	"github.com/arqons/modelschema/internal/parser"
	"github.com/arqons/modelschema/pkg/compiler"
	"github.com/arqons/modelschema/pkg/modelfile"
)

// levelTrace sits below debug; per-declaration dumps only appear there.
const levelTrace = slog.Level(-8)

// tsPrelude opens the generated TypeScript file. Every artifact can
// reference ObjectId and z, so both are anchored here.
const tsPrelude = `// Code generated by modelschema. DO NOT EDIT.
import { z } from "zod";

export type ObjectId = { $oid: string };
`

// Options configure a generation run. ObjectId recognition is on unless
// explicitly disabled, matching the compiler's default.
type Options struct {
	Scan      parser.Options `json:"scan,omitempty" yaml:"scan,omitempty" mapstructure:"scan,omitempty"`
	ModelFile string         `json:"model_file,omitempty" yaml:"model_file,omitempty" mapstructure:"model_file,omitempty"`
	OutDir    string         `json:"out_dir,omitempty" yaml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile   string         `json:"out_file,omitempty" yaml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	GoOutFile string         `json:"go_out_file,omitempty" yaml:"go_out_file,omitempty" mapstructure:"go_out_file,omitempty"`
	GoPackage string         `json:"go_package,omitempty" yaml:"go_package,omitempty" mapstructure:"go_package,omitempty"`

	DisableObjectID   bool `json:"disable_object_id,omitempty" yaml:"disable_object_id,omitempty" mapstructure:"disable_object_id,omitempty"`
	StrictRefs        bool `json:"strict_refs,omitempty" yaml:"strict_refs,omitempty" mapstructure:"strict_refs,omitempty"`
	CollectionAliases bool `json:"collection_aliases,omitempty" yaml:"collection_aliases,omitempty" mapstructure:"collection_aliases,omitempty"`
}

func (o *Options) compileOptions(reg *compiler.Registry) *compiler.Options {
	c := compiler.NewOptions()
	c.ObjectID = !o.DisableObjectID
	c.StrictRefs = o.StrictRefs
	c.CollectionAliases = o.CollectionAliases
	c.Registry = reg
	return c
}

// Normalize fills defaults.
func (o *Options) Normalize() {
	if o.OutDir == "" {
		o.OutDir = "models"
	}
	if o.OutFile == "" {
		o.OutFile = "models_gen.ts"
	}
	if o.GoPackage == "" {
		o.GoPackage = "models"
	}
}

// Result reports what a run produced.
type Result struct {
	OutFile     string
	GoFile      string
	Types       []string
	Diagnostics []diag.Diagnostic
}

// Run executes a generation run end to end.
func Run(opts *Options) (*Result, error) {
	opts.Normalize()

	raws, sourceModule, diags, err := collect(opts)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("no model declarations found")
	}

	registry := compiler.NewRegistry()
	copts := opts.compileOptions(registry)

	compiled := make([]*compiler.Compiled, 0, len(raws))
	for _, raw := range raws {
		c, err := compiler.CompileWithOpts(raw, copts)
		if err != nil {
			return nil, fmt.Errorf("compiling %s: %w", raw.Name, err)
		}
		compiled = append(compiled, c)
		traceDump(c)
	}

	refDiags := registry.CheckReferences()
	if len(refDiags) > 0 && opts.StrictRefs {
		return nil, fmt.Errorf("reference check failed: %s", refDiags[0].String())
	}
	diags = append(diags, refDiags...)

	outFile, types, err := writeTS(opts, compiled)
	if err != nil {
		return nil, err
	}
	result := &Result{OutFile: outFile, Types: types, Diagnostics: diags}

	for _, c := range compiled {
		result.Diagnostics = append(result.Diagnostics, c.Diagnostics()...)
	}
	for _, d := range result.Diagnostics {
		slog.Warn("diagnostic", "detail", d.String())
	}

	if opts.GoOutFile != "" {
		goFile, err := writeGo(opts, sourceModule, compiled)
		if err != nil {
			return nil, err
		}
		result.GoFile = goFile
	}

	slog.Info("generation complete", "file", outFile, "types", len(types))
	return result, nil
}

// Check compiles every declaration without writing artifacts and returns
// the combined diagnostics. Cross-type references are always checked;
// unknown references come back as error diagnostics rather than failing
// the run, so a check can report every finding at once.
func Check(opts *Options) ([]diag.Diagnostic, error) {
	opts.Normalize()

	raws, _, diags, err := collect(opts)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("no model declarations found")
	}

	registry := compiler.NewRegistry()
	copts := opts.compileOptions(registry)

	for _, raw := range raws {
		c, err := compiler.CompileWithOpts(raw, copts)
		if err != nil {
			return nil, fmt.Errorf("compiling %s: %w", raw.Name, err)
		}
		diags = append(diags, c.Diagnostics()...)
	}

	diags = append(diags, registry.CheckReferences()...)
	return diags, nil
}

// collect gathers raw declarations from the Go scanner and the model
// file, in that order.
func collect(opts *Options) ([]compiler.RawDecl, string, []diag.Diagnostic, error) {
	var (
		raws         []compiler.RawDecl
		sourceModule string
		diags        []diag.Diagnostic
	)

	if opts.Scan.Dir != "" {
		p := parser.NewWithOpts(&opts.Scan)
		if err := p.Parse(); err != nil {
			return nil, "", nil, err
		}
		raws = append(raws, p.Decls()...)
		sourceModule = p.Module
		diags = append(diags, p.Diagnostics()...)
	}

	if opts.ModelFile != "" {
		f, err := modelfile.Load(opts.ModelFile)
		if err != nil {
			return nil, "", nil, err
		}
		raws = append(raws, f.Decls()...)
	}

	return raws, sourceModule, diags, nil
}

func traceDump(c *compiler.Compiled) {
	ctx := context.Background()
	if !slog.Default().Enabled(ctx, levelTrace) {
		return
	}
	slog.Log(ctx, levelTrace, "compiled declaration", "model", spew.Sdump(c.Decl()))
}

func writeTS(opts *Options, compiled []*compiler.Compiled) (string, []string, error) {
	var b strings.Builder
	b.WriteString(tsPrelude)

	types := make([]string, 0, len(compiled))
	for _, c := range compiled {
		def, err := c.TSDefinition()
		if err != nil {
			return "", nil, fmt.Errorf("rendering %s: %w", c.Name(), err)
		}
		b.WriteString("\n")
		b.WriteString(def)
		b.WriteString("\n")
		types = append(types, c.Name())
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create output directory: %w", err)
	}
	outFile := filepath.Clean(filepath.Join(opts.OutDir, opts.OutFile))
	if err := os.WriteFile(outFile, []byte(b.String()), 0o644); err != nil {
		return "", nil, fmt.Errorf("write %s: %w", outFile, err)
	}
	return outFile, types, nil
}

func writeGo(opts *Options, sourceModule string, compiled []*compiler.Compiled) (string, error) {
	goFile := filepath.Clean(filepath.Join(opts.OutDir, opts.GoOutFile))
	ff, err := os.OpenFile(goFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", goFile, err)
	}
	defer ff.Close()
	if err := gen.Render(ff, opts.GoPackage, sourceModule, compiled); err != nil {
		return "", fmt.Errorf("render %s: %w", goFile, err)
	}
	return goFile, nil
}
