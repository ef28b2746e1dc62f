// Package jsonschema emits JSON Schema documents for compiled type
// declarations. The document is a tree value, not text; marshaling
// preserves property declaration order.
package jsonschema

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Property is one named entry of an object schema. Order is significant
// and preserved through marshaling.
type Property struct {
	Name   string
	Schema *Schema
}

// Schema is a JSON Schema document node. When Always is set the node
// marshals as a bare boolean schema (`true` accepts anything) and every
// other field is ignored.
type Schema struct {
	Always *bool

	Type      string
	Const     *string
	Enum      []string
	MinLength *int
	Pattern   string

	Items *Schema

	Properties           []Property
	Required             []string
	AdditionalProperties any // bool or *Schema; nil omits the keyword

	OneOf []*Schema
}

// True returns the permissive boolean schema.
func True() *Schema {
	t := true
	return &Schema{Always: &t}
}

// MarshalJSON renders the schema with a fixed keyword order and properties
// in declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("true"), nil
	}
	if s.Always != nil {
		if *s.Always {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true

	writeKey := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(vb)
		return nil
	}

	if s.Type != "" {
		if err := writeKey("type", s.Type); err != nil {
			return nil, err
		}
	}
	if s.Const != nil {
		if err := writeKey("const", *s.Const); err != nil {
			return nil, err
		}
	}
	if s.Enum != nil {
		if err := writeKey("enum", s.Enum); err != nil {
			return nil, err
		}
	}
	if s.MinLength != nil {
		if err := writeKey("minLength", *s.MinLength); err != nil {
			return nil, err
		}
	}
	if s.Pattern != "" {
		if err := writeKey("pattern", s.Pattern); err != nil {
			return nil, err
		}
	}
	if s.Items != nil {
		if err := writeKey("items", s.Items); err != nil {
			return nil, err
		}
	}
	if s.Properties != nil {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(`"properties":{`)
		for i, p := range s.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(p.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := json.Marshal(p.Schema)
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
	}
	if s.AdditionalProperties != nil {
		if err := writeKey("additionalProperties", s.AdditionalProperties); err != nil {
			return nil, err
		}
	}
	if s.Required != nil {
		if err := writeKey("required", s.Required); err != nil {
			return nil, err
		}
	}
	if s.OneOf != nil {
		if err := writeKey("oneOf", s.OneOf); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Pretty renders the document as indented JSON, as embedded in the
// generated TypeScript doc blocks.
func (s *Schema) Pretty() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	var buf bytes.Buffer
	if err = json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("indent schema: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Lookup returns the property schema with the given name.
func (s *Schema) Lookup(name string) (*Schema, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}
