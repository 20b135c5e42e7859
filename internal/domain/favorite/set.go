// Package favorite models the set of recipe ids a user has marked
package favorite

import (
	"encoding/json"
	"slices"
)

// Set is an insertion-ordered set of recipe ids
type Set struct {
	ids []string
}

// NewSet builds a set from ids, dropping empties and duplicates
func NewSet(ids ...string) Set {
	var s Set
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// Contains reports whether id is in the set
func (s Set) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// Len returns the number of ids
func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the ids in insertion order
func (s Set) IDs() []string {
	return slices.Clone(s.ids)
}

// With returns a set that also contains id
func (s Set) With(id string) Set {
	if id == "" || s.Contains(id) {
		return s
	}
	return Set{ids: append(slices.Clone(s.ids), id)}
}

// Without returns a set that does not contain id
func (s Set) Without(id string) Set {
	return Set{ids: slices.DeleteFunc(slices.Clone(s.ids), func(v string) bool { return v == id })}
}

// Toggled returns the set with id added if absent or removed if present,
// and whether id is a member of the result.
func (s Set) Toggled(id string) (Set, bool) {
	if s.Contains(id) {
		return s.Without(id), false
	}
	return s.With(id), true
}

// MarshalJSON encodes the set as a JSON array of ids
func (s Set) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

// UnmarshalJSON decodes a JSON array of ids
func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSet(ids...)
	return nil
}
