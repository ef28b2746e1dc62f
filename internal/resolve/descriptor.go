package resolve

import (
	"fmt"
	"strings"
)

// TypeDesc is the frontend-neutral raw type descriptor consumed by the
// resolver. A descriptor is either a named type with optional generic
// arguments (Name set) or a fixed heterogeneous tuple (Tuple set).
type TypeDesc struct {
	Name  string
	Args  []TypeDesc
	Tuple []TypeDesc
}

// IsTuple reports whether the descriptor denotes a tuple.
func (d TypeDesc) IsTuple() bool {
	return d.Name == "" && d.Tuple != nil
}

// String re-renders the descriptor in source form, used verbatim in
// unsupported-shape error messages.
func (d TypeDesc) String() string {
	if d.IsTuple() {
		parts := make([]string, len(d.Tuple))
		for i, e := range d.Tuple {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	if len(d.Args) == 0 {
		return d.Name
	}
	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		parts[i] = a.String()
	}
	return d.Name + "<" + strings.Join(parts, ", ") + ">"
}

// ParseTypeDesc parses a descriptor string as written in model manifests,
// e.g. "string", "Option<Vec<u32>>", "HashMap<Role, Permission>",
// "(string, u32)".
func ParseTypeDesc(s string) (TypeDesc, error) {
	p := &descParser{in: s}
	d, err := p.parse()
	if err != nil {
		return TypeDesc{}, err
	}
	p.skipSpace()
	if p.pos != len(p.in) {
		return TypeDesc{}, fmt.Errorf("parse type %q: trailing input at offset %d", s, p.pos)
	}
	return d, nil
}

type descParser struct {
	in  string
	pos int
}

func (p *descParser) skipSpace() {
	for p.pos < len(p.in) && (p.in[p.pos] == ' ' || p.in[p.pos] == '\t') {
		p.pos++
	}
}

func (p *descParser) parse() (TypeDesc, error) {
	p.skipSpace()
	if p.pos >= len(p.in) {
		return TypeDesc{}, fmt.Errorf("parse type %q: unexpected end of input", p.in)
	}

	if p.in[p.pos] == '(' {
		return p.parseTuple()
	}

	name := p.ident()
	if name == "" {
		return TypeDesc{}, fmt.Errorf("parse type %q: expected type name at offset %d", p.in, p.pos)
	}

	d := TypeDesc{Name: name}
	p.skipSpace()
	if p.pos < len(p.in) && p.in[p.pos] == '<' {
		p.pos++ // consume '<'
		for {
			arg, err := p.parse()
			if err != nil {
				return TypeDesc{}, err
			}
			d.Args = append(d.Args, arg)
			p.skipSpace()
			if p.pos < len(p.in) && p.in[p.pos] == ',' {
				p.pos++
				continue
			}
			break
		}
		p.skipSpace()
		if p.pos >= len(p.in) || p.in[p.pos] != '>' {
			return TypeDesc{}, fmt.Errorf("parse type %q: missing '>' at offset %d", p.in, p.pos)
		}
		p.pos++
	}
	return d, nil
}

func (p *descParser) parseTuple() (TypeDesc, error) {
	p.pos++ // consume '('
	d := TypeDesc{Tuple: []TypeDesc{}}
	for {
		elem, err := p.parse()
		if err != nil {
			return TypeDesc{}, err
		}
		d.Tuple = append(d.Tuple, elem)
		p.skipSpace()
		if p.pos < len(p.in) && p.in[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	p.skipSpace()
	if p.pos >= len(p.in) || p.in[p.pos] != ')' {
		return TypeDesc{}, fmt.Errorf("parse type %q: missing ')' at offset %d", p.in, p.pos)
	}
	p.pos++
	return d, nil
}

func (p *descParser) ident() string {
	start := p.pos
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	return p.in[start:p.pos]
}
