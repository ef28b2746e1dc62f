package compiler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arqons/modelschema/internal/diag"
	"github.com/arqons/modelschema/internal/emit/jsonschema"
	"github.com/arqons/modelschema/internal/model"
)

// CyclicReferenceError reports a reference chain that loops back onto a
// type already being emitted. Inlined schemas cannot represent cycles.
type CyclicReferenceError struct {
	Ref string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("cyclic type reference through %q", e.Ref)
}

// Registry holds compiled types and answers cross-type capability lookups
// for the JSON Schema emitter. Registration order is irrelevant to lookup;
// a type may reference another that registers later, as long as it is
// present by the time a schema is requested.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Compiled
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Compiled{}}
}

// Register adds a compiled type. Re-registering a name is an error.
func (r *Registry) Register(c *Compiled) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[c.Name()]; dup {
		return fmt.Errorf("type %q already registered", c.Name())
	}
	r.byName[c.Name()] = c
	return nil
}

// Lookup returns the compiled type registered under name.
func (r *Registry) Lookup(name string) (*Compiled, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// Names returns every registered type name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SchemaFor produces the registered type's JSON Schema document, resolving
// nested references through the registry with cycle detection.
func (r *Registry) SchemaFor(name string) (*jsonschema.Schema, error) {
	if _, ok := r.Lookup(name); !ok {
		return nil, fmt.Errorf("no compiled type registered as %q", name)
	}
	v := &refView{reg: r, seen: map[string]bool{}}
	return v.SchemaFor(name)
}

// EnumMembers reports the variant names of a registered plain enum.
func (r *Registry) EnumMembers(name string) ([]string, bool) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return c.EnumMembers()
}

// CheckReferences scans every registered type for references to names that
// are not registered, returning one error diagnostic per unknown reference.
func (r *Registry) CheckReferences() []diag.Diagnostic {
	list := &diag.List{}
	for _, name := range r.Names() {
		c, _ := r.Lookup(name)
		walkRefs(c.decl, func(field, ref string) {
			if _, ok := r.Lookup(ref); !ok {
				list.Errorf(name, field, "reference to undeclared type %q", ref)
			}
		})
	}
	return list.Items()
}

func walkRefs(decl *model.TypeDeclaration, visit func(field, ref string)) {
	var walk func(fd *model.FieldDef)
	walk = func(fd *model.FieldDef) {
		sh := fd.Shape
		switch sh.Kind {
		case model.ShapeReference:
			visit(fd.Name, sh.Ref)
			for _, a := range sh.TypeArgs {
				walk(a)
			}
		case model.ShapeMap:
			walk(sh.Key)
			walk(sh.Value)
		case model.ShapeTuple:
			for _, el := range sh.Elements {
				walk(el)
			}
		}
	}
	for _, fd := range decl.Fields {
		walk(fd)
	}
	for _, v := range decl.Variants {
		for _, fd := range v.Fields {
			walk(fd)
		}
	}
}

// view is the capability resolver handed to an emitter working on root.
// The seen set starts with root so that a chain looping back to it is
// reported instead of recursing.
func (r *Registry) view(root string, strict bool) *refView {
	return &refView{reg: r, seen: map[string]bool{root: true}, strict: strict}
}

// refView threads a seen set through nested capability lookups. A lookup
// of a name already on the emission path is a cycle; a lookup of an
// unregistered name yields (nil, nil) so the caller applies its own
// strict-or-degrade policy with correct attribution.
type refView struct {
	reg    *Registry
	seen   map[string]bool
	strict bool
}

func (v *refView) SchemaFor(name string) (*jsonschema.Schema, error) {
	if v.seen[name] {
		return nil, &CyclicReferenceError{Ref: name}
	}
	c, ok := v.reg.Lookup(name)
	if !ok {
		return nil, nil
	}
	v.seen[name] = true
	defer delete(v.seen, name)
	em := &jsonschema.Emitter{Refs: v, StrictRefs: v.strict}
	return em.EmitDecl(c.decl, c.diags)
}

func (v *refView) EnumMembers(name string) ([]string, bool) {
	return v.reg.EnumMembers(name)
}
