// Package schema describes the fields of an extracted document record: the
// kind of value each field holds, its not-found sentinels, and the pairings
// used for cross-field consistency repair. A Schema is built once from an
// immutable Config and never changes afterward.
package schema

import (
	"strings"

	"github.com/agentstation/docfold/pkg/constants"
	"github.com/agentstation/docfold/pkg/errors"
)

// Kind identifies the shape of a field's value.
type Kind string

// String returns the string representation of a kind.
func (k Kind) String() string {
	return string(k)
}

const (
	// ScalarText is a free-text scalar field.
	ScalarText Kind = "scalar-text"
	// ScalarEnum is a scalar restricted to enum literals, typically Yes/No.
	ScalarEnum Kind = "scalar-enum"
	// ListOfText is a list of free-text items deduplicated by fuzzy identity.
	ListOfText Kind = "list-of-text"
	// ListOfStructured is a list of keyed entries merged by their natural key.
	ListOfStructured Kind = "list-of-structured"
	// MapTextToEnum maps text keys to enum literals.
	MapTextToEnum Kind = "map-text-to-enum"
)

// Field describes a single record field.
type Field struct {
	// Name is the canonical field name used in records.
	Name string `json:"name" yaml:"name"`

	// Kind is the value shape of the field.
	Kind Kind `json:"kind" yaml:"kind"`

	// Default is the value a never-found field renders with.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Sentinels are additional not-found phrases specific to this field,
	// on top of the schema-wide set.
	Sentinels []string `json:"sentinels,omitempty" yaml:"sentinels,omitempty"`

	// Presence marks an enum field whose semantic is "is this thing
	// present". The negative literal then counts as not informative for
	// merge purposes, even though it is a legitimate answer to display
	// when no positive answer is ever found.
	Presence bool `json:"presence,omitempty" yaml:"presence,omitempty"`

	// Currency marks a scalar whose values carry currency symbols and
	// thousands separators that must be stripped before comparison.
	Currency bool `json:"currency,omitempty" yaml:"currency,omitempty"`

	// EntryKey is the natural-key attribute of a ListOfStructured entry.
	EntryKey string `json:"entry_key,omitempty" yaml:"entry_key,omitempty"`

	// DetailField names the free-text field paired with a Presence enum.
	// Consistency repair forces the two to agree after every recompute.
	DetailField string `json:"detail_field,omitempty" yaml:"detail_field,omitempty"`
}

// Scalar reports whether the field holds a single text value.
func (f Field) Scalar() bool {
	return f.Kind == ScalarText || f.Kind == ScalarEnum
}

// Config carries the policy knobs a Schema is built from. Captured once at
// construction; there is no process-wide mutable policy state.
type Config struct {
	// Sentinels is the schema-wide set of not-found phrases, compared
	// after trimming and lower-casing. Defaults to constants.DefaultSentinels.
	Sentinels []string

	// DisplayNames maps field names to human-readable labels.
	DisplayNames map[string]string

	// PositiveEnum and NegativeEnum are the enum literals for Yes/No
	// fields. Default to constants.PositiveEnum / constants.NegativeEnum.
	PositiveEnum string
	NegativeEnum string
}

// Schema is the immutable description of every field in a record.
type Schema struct {
	fields       []Field
	index        map[string]int
	sentinels    map[string]struct{}
	displayNames map[string]string
	positive     string
	negative     string
}

// New creates a Schema from a config and an ordered field list.
func New(cfg *Config, fields ...Field) (*Schema, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	sentinels := cfg.Sentinels
	if sentinels == nil {
		sentinels = constants.DefaultSentinels
	}
	positive := cfg.PositiveEnum
	if positive == "" {
		positive = constants.PositiveEnum
	}
	negative := cfg.NegativeEnum
	if negative == "" {
		negative = constants.NegativeEnum
	}

	s := &Schema{
		fields:       make([]Field, 0, len(fields)),
		index:        make(map[string]int, len(fields)),
		sentinels:    make(map[string]struct{}, len(sentinels)),
		displayNames: make(map[string]string, len(cfg.DisplayNames)),
		positive:     positive,
		negative:     negative,
	}

	for _, sentinel := range sentinels {
		s.sentinels[strings.ToLower(strings.TrimSpace(sentinel))] = struct{}{}
	}
	for name, display := range cfg.DisplayNames {
		s.displayNames[name] = display
	}

	for _, field := range fields {
		if field.Name == "" {
			return nil, &errors.ValidationError{Field: "name", Message: "field name cannot be empty"}
		}
		if _, exists := s.index[field.Name]; exists {
			return nil, &errors.ValidationError{Field: field.Name, Message: "duplicate field name"}
		}
		if field.Kind == "" {
			return nil, &errors.ValidationError{Field: field.Name, Message: "field kind cannot be empty"}
		}
		if field.Kind == ListOfStructured && field.EntryKey == "" {
			return nil, &errors.ValidationError{Field: field.Name, Message: "list-of-structured field requires an entry key"}
		}
		s.index[field.Name] = len(s.fields)
		s.fields = append(s.fields, field)
	}

	// Detail pairings must reference known fields.
	for _, field := range s.fields {
		if field.DetailField == "" {
			continue
		}
		if _, ok := s.index[field.DetailField]; !ok {
			return nil, &errors.ValidationError{
				Field:   field.Name,
				Message: "detail field " + field.DetailField + " not defined in schema",
			}
		}
	}

	return s, nil
}

// MustNew creates a Schema and panics on error. Intended for built-in
// schema definitions validated by tests.
func MustNew(cfg *Config, fields ...Field) *Schema {
	s, err := New(cfg, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Field returns the field definition for a name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Fields returns the ordered field list. The returned slice is a copy.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// DisplayName returns the human-readable label for a field, falling back to
// the field name itself.
func (s *Schema) DisplayName(name string) string {
	if display, ok := s.displayNames[name]; ok {
		return display
	}
	return name
}

// Positive returns the affirmative enum literal.
func (s *Schema) Positive() string {
	return s.positive
}

// Negative returns the negative enum literal.
func (s *Schema) Negative() string {
	return s.negative
}

// Default returns the default value for a field: the declared default, or a
// kind-appropriate empty value.
func (s *Schema) Default(f Field) any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Kind {
	case ListOfText:
		return []string{}
	case ListOfStructured:
		return []map[string]string{}
	case MapTextToEnum:
		return map[string]string{}
	case ScalarEnum:
		if f.Presence {
			return s.negative
		}
		return constants.NotFound
	default:
		return constants.NotFound
	}
}

// Defaults returns a fresh record populated with every field's default.
func (s *Schema) Defaults() map[string]any {
	record := make(map[string]any, len(s.fields))
	for _, field := range s.fields {
		record[field.Name] = s.Default(field)
	}
	return record
}
