package parser

import (
	"fmt"
	"go/ast"

	"github.com/arqons/modelschema/internal/diag"
)

// typeDescriptor maps a Go field type expression to the compiler's type
// descriptor text. Pointers become the optional wrapper, slices the array
// wrapper, maps the associative wrapper; everything the descriptor grammar
// cannot express degrades to unknown with a warning.
func typeDescriptor(declName, fieldName string, expr ast.Expr, diags *diag.List) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return fmt.Sprintf("Option<%s>", typeDescriptor(declName, fieldName, t.X, diags))

	case *ast.ArrayType:
		if t.Len != nil {
			diags.Warnf(declName, fieldName, "fixed-length arrays are scanned as variable-length")
		}
		return fmt.Sprintf("Vec<%s>", typeDescriptor(declName, fieldName, t.Elt, diags))

	case *ast.MapType:
		return fmt.Sprintf("HashMap<%s, %s>",
			typeDescriptor(declName, fieldName, t.Key, diags),
			typeDescriptor(declName, fieldName, t.Value, diags))

	case *ast.Ident:
		return t.Name

	case *ast.SelectorExpr:
		// bson/mongo identifier types keep their identity; any other
		// cross-package type has no declared schema here.
		if t.Sel.Name == "ObjectID" || t.Sel.Name == "ObjectId" {
			return "ObjectId"
		}
		diags.Warnf(declName, fieldName, "cross-package type %s has no schema form, using unknown", selectorText(t))
		return "unknown"

	case *ast.IndexExpr:
		base := typeDescriptor(declName, fieldName, t.X, diags)
		arg := typeDescriptor(declName, fieldName, t.Index, diags)
		return fmt.Sprintf("%s<%s>", base, arg)

	case *ast.IndexListExpr:
		base := typeDescriptor(declName, fieldName, t.X, diags)
		args := ""
		for i, a := range t.Indices {
			if i > 0 {
				args += ", "
			}
			args += typeDescriptor(declName, fieldName, a, diags)
		}
		return fmt.Sprintf("%s<%s>", base, args)

	case *ast.InterfaceType:
		return "unknown"
	}

	diags.Warnf(declName, fieldName, "unsupported field type %T, using unknown", expr)
	return "unknown"
}

func selectorText(sel *ast.SelectorExpr) string {
	if pkg, ok := sel.X.(*ast.Ident); ok {
		return pkg.Name + "." + sel.Sel.Name
	}
	return sel.Sel.Name
}
