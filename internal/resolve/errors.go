package resolve

import "fmt"

// UnsupportedShapeError reports a type descriptor whose arity/kind falls
// outside the closed set of supported shapes. It is fatal for the enclosing
// declaration and always names the offending raw type text and field.
type UnsupportedShapeError struct {
	Decl     string
	Field    string
	TypeText string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("%s.%s: unsupported type shape %q", e.Decl, e.Field, e.TypeText)
}

// DuplicateTagError reports two tagged-union variants normalizing to the
// same tag value after renaming. Compilation of the declaration fails
// rather than silently emitting an ambiguous discriminator.
type DuplicateTagError struct {
	Decl     string
	TagValue string
	VariantA string
	VariantB string
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("%s: variants %s and %s share tag value %q after renaming",
		e.Decl, e.VariantA, e.VariantB, e.TagValue)
}
