package metadata

import (
	"strings"

	"github.com/eykd/epubgen/internal/markup"
)

type attr struct {
	name, value string
}

// element is one rendered metadata entry.
type element struct {
	tag   string
	attrs []attr
	text  string
	empty bool
}

// Render serializes the store as one element per line in schema order.
// Text and attribute values are escaped to ASCII; empty attributes are
// omitted. Render does not modify s.
func (s *Store) Render() string {
	var lines []string
	for _, spec := range schema {
		for _, el := range s.elements(spec) {
			lines = append(lines, el.String())
		}
	}
	return strings.Join(lines, "\n")
}

// String implements fmt.Stringer so templates can print a Store directly.
func (s *Store) String() string { return s.Render() }

func (s *Store) elements(spec fieldSpec) []element {
	tag := "dc:" + string(spec.field)
	var out []element

	switch spec.kind {
	case KindScalar:
		v := s.singular[spec.field]
		if v != "" || spec.required {
			out = append(out, element{tag: tag, text: v})
		}
	case KindListOfScalar:
		for _, v := range s.scalarList(spec.field) {
			out = append(out, element{tag: tag, text: v})
		}
	case KindListOfStruct:
		switch spec.field {
		case FieldIdentifier:
			for _, id := range s.identifiers {
				out = append(out, element{tag: tag, text: id.Value, attrs: []attr{
					{"id", id.ID},
					{"opf:scheme", id.Scheme},
				}})
			}
		case FieldDate:
			for _, d := range s.dates {
				out = append(out, element{tag: tag, text: d.Value, attrs: []attr{
					{"opf:event", string(d.Event)},
				}})
			}
		}
	case KindKeyedStruct:
		agents := s.creators.values()
		if spec.field == FieldContributor {
			agents = s.contributors.values()
		}
		for _, a := range agents {
			out = append(out, element{tag: tag, text: a.Name, attrs: []attr{
				{"opf:file-as", a.FileAs},
				{"opf:role", string(a.Role)},
			}})
		}
	case KindMetaList:
		for _, m := range s.metas.values() {
			out = append(out, element{tag: "meta", empty: true, attrs: []attr{
				{"name", m.Name},
				{"content", m.Content},
			}})
		}
	}
	return out
}

func (s *Store) scalarList(field Field) []string {
	switch field {
	case FieldSubject:
		return s.subjects
	case FieldRelation:
		return s.relations
	case FieldType:
		return s.types
	}
	return nil
}

func (e element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.tag)
	for _, a := range e.attrs {
		if a.value == "" && !e.empty {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(markup.Escape(a.value))
		b.WriteByte('"')
	}
	if e.empty {
		b.WriteString(" />")
		return b.String()
	}
	b.WriteByte('>')
	b.WriteString(markup.Escape(e.text))
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
	return b.String()
}
