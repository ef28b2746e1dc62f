package resolve

import (
	"fmt"

	"github.com/arqons/modelschema/internal/model"
)

// Options control shape resolution.
//
// ObjectID   - recognize the well-known ObjectId identifier type by exact
//              name match. When disabled, ObjectId resolves as an ordinary
//              named reference.
type Options struct {
	ObjectID bool
}

// Resolver turns raw type descriptors into normalized FieldDefs. It is
// stateless and safe for concurrent use.
type Resolver struct {
	opts Options
}

// New returns a Resolver with the provided options.
func New(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// primitiveKinds is the closed lookup table of bare primitive names. Both
// the canonical wire spellings and the Go spellings are accepted so the two
// frontends share one table.
var primitiveKinds = map[string]model.PrimitiveKind{
	"bool":    model.PrimBool,
	"boolean": model.PrimBool,
	"string":  model.PrimString,
	"String":  model.PrimString,
	"u8":      model.PrimU8,
	"u16":     model.PrimU16,
	"u32":     model.PrimU32,
	"u64":     model.PrimU64,
	"usize":   model.PrimUsize,
	"i8":      model.PrimI8,
	"i16":     model.PrimI16,
	"i32":     model.PrimI32,
	"i64":     model.PrimI64,
	"isize":   model.PrimIsize,
	"f32":     model.PrimF32,
	"f64":     model.PrimF64,
	"uint8":   model.PrimU8,
	"uint16":  model.PrimU16,
	"uint32":  model.PrimU32,
	"uint64":  model.PrimU64,
	"uint":    model.PrimUsize,
	"int8":    model.PrimI8,
	"int16":   model.PrimI16,
	"int32":   model.PrimI32,
	"int64":   model.PrimI64,
	"int":     model.PrimIsize,
	"float32": model.PrimF32,
	"float64": model.PrimF64,
}

// Wrapper vocabularies. These sets are closed on purpose: a recognized
// wrapper used at the wrong arity is an unsupported shape, not a reference.
var (
	optionalWrappers = map[string]bool{"Option": true}
	arrayWrappers    = map[string]bool{"Vec": true, "HashSet": true}
	mapWrappers      = map[string]bool{"HashMap": true, "BTreeMap": true}
)

// objectIDName is matched exactly on the raw type name.
const objectIDName = "ObjectId"

// unknownName marks a host-language shape the frontend could not express;
// it resolves to the permissive Unknown shape.
const unknownName = "unknown"

// Resolve converts a raw descriptor into a FieldDef. declName and fieldName
// are used for error reporting only; the returned FieldDef carries
// fieldName as its Name and docs as its Docs.
func (r *Resolver) Resolve(declName, fieldName string, desc TypeDesc, docs string) (*model.FieldDef, error) {
	fd, err := r.resolve(declName, fieldName, desc)
	if err != nil {
		return nil, err
	}
	fd.Name = fieldName
	fd.Docs = docs
	return fd, nil
}

func (r *Resolver) resolve(declName, fieldName string, desc TypeDesc) (*model.FieldDef, error) {
	if desc.IsTuple() {
		elems := make([]*model.FieldDef, len(desc.Tuple))
		for i, e := range desc.Tuple {
			fd, err := r.resolve(declName, fieldName, e)
			if err != nil {
				return nil, err
			}
			fd.Name = fmt.Sprintf("element_%d", i)
			elems[i] = fd
		}
		return &model.FieldDef{
			Shape: model.FieldShape{Kind: model.ShapeTuple, Elements: elems},
		}, nil
	}

	switch {
	case optionalWrappers[desc.Name]:
		if len(desc.Args) != 1 {
			return nil, &UnsupportedShapeError{Decl: declName, Field: fieldName, TypeText: desc.String()}
		}
		inner, err := r.resolve(declName, fieldName, desc.Args[0])
		if err != nil {
			return nil, err
		}
		inner.IsOptional = true
		return inner, nil

	case arrayWrappers[desc.Name]:
		if len(desc.Args) != 1 {
			return nil, &UnsupportedShapeError{Decl: declName, Field: fieldName, TypeText: desc.String()}
		}
		inner, err := r.resolve(declName, fieldName, desc.Args[0])
		if err != nil {
			return nil, err
		}
		inner.IsArray = true
		return inner, nil

	case mapWrappers[desc.Name]:
		if len(desc.Args) != 2 {
			return nil, &UnsupportedShapeError{Decl: declName, Field: fieldName, TypeText: desc.String()}
		}
		key, err := r.resolve(declName, fieldName, desc.Args[0])
		if err != nil {
			return nil, err
		}
		value, err := r.resolve(declName, fieldName, desc.Args[1])
		if err != nil {
			return nil, err
		}
		return &model.FieldDef{
			Shape: model.FieldShape{Kind: model.ShapeMap, Key: key, Value: value},
		}, nil
	}

	if len(desc.Args) == 0 {
		return r.resolveBareName(desc.Name)
	}

	// A parameterized reference to a sibling generic type. The static-type
	// and validator emitters render these; the JSON-Schema emitter rejects
	// them, failing the whole declaration.
	args := make([]*model.FieldDef, len(desc.Args))
	for i, a := range desc.Args {
		fd, err := r.resolve(declName, fieldName, a)
		if err != nil {
			return nil, err
		}
		args[i] = fd
	}
	return &model.FieldDef{
		Shape: model.FieldShape{
			Kind:     model.ShapeReference,
			Ref:      model.CleanTypeName(desc.Name),
			TypeArgs: args,
		},
	}, nil
}

func (r *Resolver) resolveBareName(name string) (*model.FieldDef, error) {
	if name == unknownName {
		return &model.FieldDef{Shape: model.FieldShape{Kind: model.ShapeUnknown}}, nil
	}
	if kind, ok := primitiveKinds[name]; ok {
		return &model.FieldDef{
			Shape: model.FieldShape{Kind: model.ShapePrimitive, Primitive: kind},
		}, nil
	}
	if r.opts.ObjectID && name == objectIDName {
		return &model.FieldDef{Shape: model.FieldShape{Kind: model.ShapeObjectID}}, nil
	}
	return &model.FieldDef{
		Shape: model.FieldShape{Kind: model.ShapeReference, Ref: model.CleanTypeName(name)},
	}, nil
}

// ApplyOverride rewrites a resolved FieldDef according to its validation
// override attributes. An explicit type re-resolves the shape (keeping the
// array/optional modifiers already unwrapped from the declared type); a
// literal forces a pinned string type and supersedes everything else.
func (r *Resolver) ApplyOverride(declName string, fd *model.FieldDef, ov *model.ValidationOverride) (*model.FieldDef, error) {
	if ov == nil {
		return fd, nil
	}
	out := fd.Clone()
	out.Validation = ov

	if ov.ExplicitType != nil {
		desc, err := ParseTypeDesc(*ov.ExplicitType)
		if err != nil {
			return nil, &UnsupportedShapeError{Decl: declName, Field: fd.Name, TypeText: *ov.ExplicitType}
		}
		re, rerr := r.resolve(declName, fd.Name, desc)
		if rerr != nil {
			return nil, rerr
		}
		out.Shape = re.Shape
	}

	if ov.Literal != nil {
		out.Shape = model.FieldShape{Kind: model.ShapeStringLiteral, Literal: *ov.Literal}
	}

	return out, nil
}
