// Package diag collects non-fatal compiler diagnostics. Attribute parse
// failures and unresolved references are surfaced here instead of being
// dropped behind an ambient trace flag.
package diag

import "fmt"

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one reportable finding, attributed to a declaration and,
// when applicable, a field or variant within it.
type Diagnostic struct {
	Severity Severity
	Decl     string
	Field    string
	Message  string
}

func (d Diagnostic) String() string {
	where := d.Decl
	if d.Field != "" {
		where += "." + d.Field
	}
	if where == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, where, d.Message)
}

// List accumulates diagnostics in report order.
type List struct {
	items []Diagnostic
}

// Warnf records a warning diagnostic.
func (l *List) Warnf(decl, field, format string, args ...any) {
	if l == nil {
		return
	}
	l.items = append(l.items, Diagnostic{
		Severity: SeverityWarning,
		Decl:     decl,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Errorf records an error-severity diagnostic without aborting.
func (l *List) Errorf(decl, field, format string, args ...any) {
	if l == nil {
		return
	}
	l.items = append(l.items, Diagnostic{
		Severity: SeverityError,
		Decl:     decl,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Items returns the accumulated diagnostics.
func (l *List) Items() []Diagnostic {
	if l == nil {
		return nil
	}
	return l.items
}

// HasWarnings reports whether any diagnostic was recorded.
func (l *List) HasWarnings() bool {
	return l != nil && len(l.items) > 0
}
