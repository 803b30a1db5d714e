package anki

import (
	"sort"
	"strings"
)

// FieldSet is a set of field names.
type FieldSet map[string]struct{}

// NewFieldSet returns a set holding names.
func NewFieldSet(names ...string) FieldSet {
	s := make(FieldSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set. A nil set is empty.
func (s FieldSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the sorted field names.
func (s FieldSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldIsNonEmpty reports whether a field value has visible content once
// markup is removed. Images count as content.
func FieldIsNonEmpty(value string) bool {
	return strings.TrimSpace(StripHTMLMedia(value)) != ""
}

// NonEmptyFields returns the names of the fields with visible content.
func NonEmptyFields(fields map[string]string) FieldSet {
	s := make(FieldSet, len(fields))
	for name, value := range fields {
		if FieldIsNonEmpty(value) {
			s[name] = struct{}{}
		}
	}
	return s
}
