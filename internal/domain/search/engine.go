package search

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

// Apply returns the recipes that satisfy every restriction in spec, ordered
// by spec.Sort. Input order is preserved among equal sort keys and when no
// sort is requested. The input slice is never modified.
func Apply(recipes []recipe.Recipe, spec FilterSpec) []recipe.Recipe {
	matcher := newMatcher(spec)

	out := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if matcher.match(r) {
			out = append(out, r)
		}
	}

	SortRecipes(out, spec.Sort)
	return out
}

// Matches reports whether a single recipe satisfies spec
func Matches(r recipe.Recipe, spec FilterSpec) bool {
	return newMatcher(spec).match(r)
}

// SortRecipes stably orders recipes in place. Unknown orders leave the slice untouched.
func SortRecipes(recipes []recipe.Recipe, order SortOrder) {
	var compare func(a, b recipe.Recipe) int

	switch order {
	case SortNewest:
		compare = func(a, b recipe.Recipe) int { return b.DateAdded.Compare(a.DateAdded.Time) }
	case SortLikes:
		compare = func(a, b recipe.Recipe) int { return cmp.Compare(b.Likes, a.Likes) }
	case SortTimeAsc:
		compare = func(a, b recipe.Recipe) int { return cmp.Compare(a.CookingTime, b.CookingTime) }
	case SortTimeDesc:
		compare = func(a, b recipe.Recipe) int { return cmp.Compare(b.CookingTime, a.CookingTime) }
	case SortServingsAsc:
		compare = func(a, b recipe.Recipe) int { return cmp.Compare(a.Servings, b.Servings) }
	case SortServingsDesc:
		compare = func(a, b recipe.Recipe) int { return cmp.Compare(b.Servings, a.Servings) }
	default:
		return
	}

	slices.SortStableFunc(recipes, compare)
}

// matcher holds a spec with its text restrictions already folded.
type matcher struct {
	spec     FilterSpec
	term     string
	excluded []string
	included []string
}

func newMatcher(spec FilterSpec) matcher {
	return matcher{
		spec:     spec,
		term:     fold(spec.Term),
		excluded: foldAll(spec.Excluded),
		included: foldAll(spec.Included),
	}
}

func (m matcher) match(r recipe.Recipe) bool {
	return m.matchTerm(r) &&
		(m.spec.Meat == "" || r.Meat == m.spec.Meat) &&
		(m.spec.Diet == "" || r.Diet == m.spec.Diet) &&
		(m.spec.Type == "" || r.Type == m.spec.Type) &&
		matchTime(r.CookingTime, m.spec.Time) &&
		matchServings(r.Servings, m.spec.Servings) &&
		(m.spec.Allergen == "" || !r.HasAllergen(m.spec.Allergen)) &&
		m.matchExcluded(r) &&
		m.matchIncluded(r)
}

func (m matcher) matchTerm(r recipe.Recipe) bool {
	if m.term == "" {
		return true
	}
	return strings.Contains(fold(r.Name), m.term) || hasIngredient(r, m.term)
}

func (m matcher) matchExcluded(r recipe.Recipe) bool {
	for _, term := range m.excluded {
		if hasIngredient(r, term) {
			return false
		}
	}
	return true
}

func (m matcher) matchIncluded(r recipe.Recipe) bool {
	for _, term := range m.included {
		if !hasIngredient(r, term) {
			return false
		}
	}
	return true
}

func hasIngredient(r recipe.Recipe, foldedTerm string) bool {
	for _, ing := range r.Ingredients {
		if strings.Contains(fold(ing.Name), foldedTerm) {
			return true
		}
	}
	return false
}

func matchTime(minutes int, bucket TimeBucket) bool {
	switch bucket {
	case "":
		return true
	case TimeUpTo15:
		return minutes <= 15
	case TimeUpTo30:
		return minutes <= 30
	case TimeUpTo60:
		return minutes <= 60
	case TimeOverAnHour:
		return minutes > 60
	default:
		return false
	}
}

func matchServings(servings int, filter ServingsFilter) bool {
	switch filter {
	case "":
		return true
	case ServingsMore:
		return servings > 8
	}

	n, err := strconv.Atoi(string(filter))
	if err != nil {
		return false
	}
	return servings == n
}

// fold maps s to its Unicode case-folded form. A Caser keeps state, so a
// fresh one is created per call.
func fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}

// foldAll folds every non-empty term; empty terms impose no restriction.
func foldAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		out = append(out, fold(t))
	}
	return out
}
