package model

import (
	"strings"
	"unicode"
)

// Convention is a container-level naming transformation applied to every
// field or variant name unless a field-level override wins.
type Convention string

const (
	ConventionNone           Convention = ""
	ConventionCamel          Convention = "camelCase"
	ConventionPascal         Convention = "PascalCase"
	ConventionSnake          Convention = "snake_case"
	ConventionScreamingSnake Convention = "SCREAMING_SNAKE_CASE"
	ConventionKebab          Convention = "kebab-case"
	ConventionLower          Convention = "lowercase"
	ConventionUpper          Convention = "UPPERCASE"
)

// ParseConvention maps an attribute keyword to a Convention. The bool result
// is false for unrecognized keywords; callers surface that as a warning
// diagnostic rather than silently ignoring the attribute.
func ParseConvention(s string) (Convention, bool) {
	switch Convention(s) {
	case ConventionCamel, ConventionPascal, ConventionSnake,
		ConventionScreamingSnake, ConventionKebab,
		ConventionLower, ConventionUpper:
		return Convention(s), true
	case ConventionNone:
		return ConventionNone, true
	}
	return ConventionNone, false
}

// RenamePolicy is computed once per declaration from its own attributes and
// then applied to every field/variant name.
type RenamePolicy struct {
	Convention Convention
}

// ResolveName computes the final name for a raw identifier. An explicit
// field-level override is absolute and returned unchanged; otherwise the
// container convention is applied. Callers must invoke this exactly once
// per name: re-applying camelCase to already-camelCased input is not
// idempotent.
func ResolveName(raw, fieldOverride string, convention Convention) string {
	if fieldOverride != "" {
		return fieldOverride
	}
	switch convention {
	case ConventionCamel:
		return snakeToCamel(raw)
	case ConventionPascal:
		camel := snakeToCamel(raw)
		if camel == "" {
			return camel
		}
		r := []rune(camel)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	case ConventionSnake:
		return raw
	case ConventionScreamingSnake:
		return strings.ToUpper(raw)
	case ConventionKebab:
		return strings.ReplaceAll(raw, "_", "-")
	case ConventionLower:
		return strings.ToLower(raw)
	case ConventionUpper:
		return strings.ToUpper(raw)
	}
	return raw
}

// Apply resolves a name under this policy.
func (p RenamePolicy) Apply(raw, fieldOverride string) string {
	return ResolveName(raw, fieldOverride, p.Convention)
}

// snakeToCamel lowers the first character and upper-cases the letter
// following each underscore, dropping the underscores themselves.
func snakeToCamel(s string) string {
	var b strings.Builder
	capitalizeNext := false
	for i, c := range s {
		switch {
		case c == '_':
			capitalizeNext = true
		case i == 0:
			b.WriteRune(unicode.ToLower(c))
		case capitalizeNext:
			b.WriteRune(unicode.ToUpper(c))
			capitalizeNext = false
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// WireSuffix is the marker suffix distinguishing "wire" type names from
// their clean external name; it is stripped wherever type names surface.
const WireSuffix = "Json"

// CleanTypeName strips the wire-name suffix from a type name, if present.
func CleanTypeName(name string) string {
	if name != WireSuffix && strings.HasSuffix(name, WireSuffix) {
		return strings.TrimSuffix(name, WireSuffix)
	}
	return name
}
