// Package search holds the catalog query model: the filter specification,
// the filtering and sorting engine, the free-text query classifier and the
// URL query codec.
package search

import (
	"slices"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

// TimeBucket is an upper bound on cooking time. "60+" means more than an hour.
type TimeBucket string

const (
	TimeUpTo15     TimeBucket = "15"
	TimeUpTo30     TimeBucket = "30"
	TimeUpTo60     TimeBucket = "60"
	TimeOverAnHour TimeBucket = "60+"
)

// ServingsFilter is an exact serving count "1".."8" or "more" for over eight.
type ServingsFilter string

// ServingsMore selects recipes serving more than eight people
const ServingsMore ServingsFilter = "more"

// SortOrder is a named ordering of search results
type SortOrder string

const (
	SortNone         SortOrder = ""
	SortNewest       SortOrder = "newest"
	SortLikes        SortOrder = "likes"
	SortTimeAsc      SortOrder = "time-asc"
	SortTimeDesc     SortOrder = "time-desc"
	SortServingsAsc  SortOrder = "servings-asc"
	SortServingsDesc SortOrder = "servings-desc"
)

// FilterSpec describes a catalog query. Every zero-valued field is
// unrestricted, so the zero FilterSpec selects the whole catalog in its
// original order.
type FilterSpec struct {
	Term     string
	Meat     recipe.Meat
	Diet     recipe.Diet
	Type     recipe.DishType
	Time     TimeBucket
	Servings ServingsFilter
	Allergen recipe.Allergen
	Excluded []string
	Included []string
	Sort     SortOrder
}

// IsZero reports whether the spec applies no restriction and no ordering
func (s FilterSpec) IsZero() bool {
	return s.Term == "" && s.Meat == "" && s.Diet == "" && s.Type == "" &&
		s.Time == "" && s.Servings == "" && s.Allergen == "" &&
		len(s.Excluded) == 0 && len(s.Included) == 0 && s.Sort == SortNone
}

// AddExcluded appends an ingredient term to the exclusion list.
// Empty and already-present terms are ignored.
func (s *FilterSpec) AddExcluded(term string) {
	s.Excluded = addTerm(s.Excluded, term)
}

// RemoveExcluded drops a term from the exclusion list
func (s *FilterSpec) RemoveExcluded(term string) {
	s.Excluded = removeTerm(s.Excluded, term)
}

// AddIncluded appends an ingredient term to the inclusion list.
// Empty and already-present terms are ignored.
func (s *FilterSpec) AddIncluded(term string) {
	s.Included = addTerm(s.Included, term)
}

// RemoveIncluded drops a term from the inclusion list
func (s *FilterSpec) RemoveIncluded(term string) {
	s.Included = removeTerm(s.Included, term)
}

func addTerm(terms []string, term string) []string {
	if term == "" || slices.Contains(terms, term) {
		return terms
	}
	return append(terms, term)
}

func removeTerm(terms []string, term string) []string {
	out := slices.DeleteFunc(slices.Clone(terms), func(t string) bool { return t == term })
	if len(out) == 0 {
		return nil
	}
	return out
}
