package search

import (
	"regexp"
	"slices"
	"strings"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

// Classification is the structured reading of a free-text query
type Classification struct {
	// Rule names the category rule that matched, empty when none did.
	Rule string          `json:"rule,omitempty"`
	Diet recipe.Diet     `json:"diet,omitempty"`
	Type recipe.DishType `json:"type,omitempty"`
	Meat recipe.Meat     `json:"meat,omitempty"`
	// Term is the residual free text to search for.
	Term string `json:"term,omitempty"`
}

// Spec converts the classification into a filter specification
func (c Classification) Spec() FilterSpec {
	return FilterSpec{
		Term: c.Term,
		Diet: c.Diet,
		Type: c.Type,
		Meat: c.Meat,
	}
}

type classifierRule struct {
	name   string
	detect []string
	strip  *regexp.Regexp
	apply  func(*Classification)
}

func newRule(name string, detect, strip []string, apply func(*Classification)) classifierRule {
	return classifierRule{
		name:   name,
		detect: foldAll(detect),
		strip:  wholeWords(strip),
		apply:  apply,
	}
}

// wholeWords matches any keyword delimited by non-letters or the ends of the
// input. Go's \b is ASCII only, which would split words such as "wegańska".
func wholeWords(keywords []string) *regexp.Regexp {
	sorted := slices.Clone(keywords)
	slices.SortFunc(sorted, func(a, b string) int { return len(b) - len(a) })

	quoted := make([]string, len(sorted))
	for i, kw := range sorted {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}_])(?:` + strings.Join(quoted, "|") + `)([^\p{L}\p{N}_]|$)`)
}

// rules are evaluated in order and the first detected one wins.
var rules = []classifierRule{
	newRule("vegetarian",
		[]string{"vege", "wegetariańska", "wegetariańskie", "vegetariańskie", "vegeteriańska"},
		[]string{"vege", "wegetariańska", "wegetariańskie", "vegetariańskie", "vegeteriańska", "vegetarian"},
		func(c *Classification) { c.Diet = recipe.DietVegetarian }),
	newRule("keto",
		[]string{"keto"},
		[]string{"ketogeniczna", "ketogeniczne", "keto"},
		func(c *Classification) { c.Diet = recipe.DietKeto }),
	newRule("vegan",
		[]string{"wegańskie", "wegańska", "vegan"},
		[]string{"wegańskie", "wegańska", "vegan"},
		func(c *Classification) { c.Diet = recipe.DietVegan }),
	newRule("soup",
		[]string{"zupa", "zupy", "soup"},
		[]string{"zupa", "zupy", "soup"},
		func(c *Classification) { c.Type = recipe.DishTypeSoup }),
	newRule("main-course",
		[]string{"danie główne", "main course"},
		[]string{"danie główne", "main course"},
		func(c *Classification) { c.Type = recipe.DishTypeMainCourse }),
	newRule("dessert",
		[]string{"deser", "dessert"},
		[]string{"deser", "dessert"},
		func(c *Classification) { c.Type = recipe.DishTypeDessert }),
	newRule("drink",
		[]string{"napój", "napoje", "drink"},
		[]string{"napój", "napoje", "drink"},
		func(c *Classification) { c.Type = recipe.DishTypeDrink }),
	newRule("breakfast",
		[]string{"sniadania", "śniadania", "breakfast"},
		[]string{"sniadania", "śniadania", "breakfast"},
		func(c *Classification) { c.Type = recipe.DishTypeBreakfast }),
	newRule("beef",
		[]string{"wołowina", "wolowina", "beef"},
		[]string{"wołowina", "wolowina", "beef"},
		func(c *Classification) { c.Meat = recipe.MeatBeef }),
}

// RuleNames lists the classifier rules in evaluation order
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

// Classify maps a free-text query to at most one category and a residual
// term. Detection is a case-insensitive substring test; the matched rule's
// keywords are then removed as whole words and whitespace is collapsed.
// When no rule matches, the whole input is the term.
func Classify(input string) Classification {
	folded := fold(input)

	for _, r := range rules {
		if !r.detected(folded) {
			continue
		}
		c := Classification{Rule: r.name, Term: r.residual(input)}
		r.apply(&c)
		return c
	}

	return Classification{Term: input}
}

func (r classifierRule) detected(folded string) bool {
	for _, kw := range r.detect {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// residual strips keywords until none remain; adjacent keywords share a
// delimiter, so a single pass can leave one behind.
func (r classifierRule) residual(input string) string {
	out := input
	for {
		next := r.strip.ReplaceAllString(out, "$1$2")
		if next == out {
			break
		}
		out = next
	}
	return strings.Join(strings.Fields(out), " ")
}
