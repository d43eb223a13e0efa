package domain

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// MetadataValue is one value of a metadata field such as dc.title.
type MetadataValue struct {
	Value      string `json:"value"`
	Language   string `json:"language,omitempty"`
	Authority  string `json:"authority,omitempty"`
	Confidence int    `json:"confidence"`
	Place      int    `json:"place"`
}

// Metadata maps a field name in schema.element[.qualifier] form to its
// values, ordered by place.
type Metadata map[string][]MetadataValue

// Confidence used for values without an authority.
const ConfidenceNotSet int = -1

func (m Metadata) First(field string) string {
	if values, ok := m[field]; ok && len(values) > 0 {
		return values[0].Value
	}
	return ""
}

func (m Metadata) Values(field string) []string {
	result := []string{}
	for _, v := range m[field] {
		result = append(result, v.Value)
	}
	return result
}

// Add appends value to field. Empty values are ignored.
func (m Metadata) Add(field, value, language string) {
	if strings.TrimSpace(value) == "" {
		return
	}

	values := m[field]
	m[field] = append(values, MetadataValue{
		Value:      value,
		Language:   language,
		Confidence: ConfidenceNotSet,
		Place:      len(values),
	})
}

// Set replaces all values of field.
func (m Metadata) Set(field string, values ...string) {
	delete(m, field)
	for _, v := range values {
		m.Add(field, v, "")
	}
}

// Fields returns the field names in lexical order.
func (m Metadata) Fields() []string {
	fields := maps.Keys(m)
	slices.Sort(fields)
	return fields
}

// Merge adds every value of other that is not already present in m.
func (m Metadata) Merge(other Metadata) {
	for _, field := range other.Fields() {
		existing := m.Values(field)
		for _, v := range other[field] {
			if !slices.Contains(existing, v.Value) {
				m.Add(field, v.Value, v.Language)
			}
		}
	}
}

// MetadataField is a parsed field name.
type MetadataField struct {
	Schema    string
	Element   string
	Qualifier string
}

func ParseMetadataField(name string) (MetadataField, error) {
	parts := strings.Split(name, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return MetadataField{}, fmt.Errorf("invalid metadata field name %q", name)
	}

	for _, p := range parts {
		if p == "" {
			return MetadataField{}, fmt.Errorf("invalid metadata field name %q", name)
		}
	}

	f := MetadataField{Schema: parts[0], Element: parts[1]}
	if len(parts) == 3 {
		f.Qualifier = parts[2]
	}

	return f, nil
}

func (f MetadataField) String() string {
	if f.Qualifier == "" {
		return f.Schema + "." + f.Element
	}
	return f.Schema + "." + f.Element + "." + f.Qualifier
}
