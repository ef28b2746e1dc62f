package parser

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/arqons/modelschema/internal/diag"
	"github.com/arqons/modelschema/pkg/compiler"
)

// markerPrefix opts a type declaration into scanning. A bare "+schema"
// line opts in; "+schema:key=value" lines set container attributes.
const markerPrefix = "+schema"

// declMarkers is the parsed result of a declaration's doc markers.
type declMarkers struct {
	optIn bool
	attrs compiler.DeclAttrs
}

// parseMarkers scans doc text for +schema markers and splits them from the
// prose. Unrecognized marker keys yield warning diagnostics rather than
// errors so a typo cannot silently drop a whole type.
func parseMarkers(declName, doc string, diags *diag.List) (declMarkers, string) {
	var m declMarkers
	var prose []string

	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, markerPrefix) {
			if trimmed != "" || len(prose) > 0 {
				prose = append(prose, trimmed)
			}
			continue
		}
		m.optIn = true

		rest := strings.TrimPrefix(trimmed, markerPrefix)
		if rest == "" {
			continue
		}
		if !strings.HasPrefix(rest, ":") {
			diags.Warnf(declName, "", "malformed schema marker %q", trimmed)
			continue
		}
		key, value, _ := strings.Cut(rest[1:], "=")
		switch key {
		case "renameAll":
			m.attrs.RenameAll = value
		case "tag":
			m.attrs.Tag = value
		case "skip":
			m.attrs.Skip = true
		default:
			diags.Warnf(declName, "", "unknown schema marker key %q", key)
		}
	}

	for len(prose) > 0 && prose[len(prose)-1] == "" {
		prose = prose[:len(prose)-1]
	}
	return m, strings.Join(prose, "\n")
}

// parseFieldTag reads the schema struct tag, falling back to the json tag
// name for renames. Malformed entries warn and are ignored.
func parseFieldTag(declName, fieldName, rawTag string, diags *diag.List) compiler.FieldAttrs {
	var attrs compiler.FieldAttrs
	tag := reflect.StructTag(strings.Trim(rawTag, "`"))

	if jsonTag, ok := tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(jsonTag, ",")
		if name == "-" {
			attrs.Skip = true
		} else if name != "" {
			attrs.Rename = name
		}
	}

	schemaTag, ok := tag.Lookup("schema")
	if !ok {
		return attrs
	}
	for _, part := range strings.Split(schemaTag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		switch key {
		case "skip":
			attrs.Skip = true
		case "rename":
			if value == "" {
				diags.Warnf(declName, fieldName, "schema tag rename needs a value")
				continue
			}
			attrs.Rename = value
		case "as":
			if value == "" {
				diags.Warnf(declName, fieldName, "schema tag as needs a type")
				continue
			}
			attrs.ExplicitType = value
		case "literal":
			if !hasValue {
				diags.Warnf(declName, fieldName, "schema tag literal needs a value")
				continue
			}
			v := value
			attrs.Literal = &v
		case "minLength":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				diags.Warnf(declName, fieldName, "schema tag minLength %q is not a non-negative integer", value)
				continue
			}
			attrs.MinLength = &n
		default:
			diags.Warnf(declName, fieldName, "unknown schema tag key %q", key)
		}
	}
	return attrs
}
