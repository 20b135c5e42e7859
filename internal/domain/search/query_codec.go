package search

import (
	"net/url"
	"strings"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

// Query parameter keys
const (
	ParamSearch   = "search"
	ParamSort     = "sort"
	ParamMeat     = "meat"
	ParamDiet     = "diet"
	ParamType     = "type"
	ParamTime     = "time"
	ParamServings = "servings"
	ParamAllergen = "allergen"
	ParamExcluded = "excluded"
	ParamIncluded = "included"
)

// Any is the wire sentinel for an unrestricted selector
const Any = "all"

const listSeparator = ","

// Encode renders spec as URL query parameters. Unrestricted fields and empty
// lists are omitted, so the zero spec encodes to no parameters.
func Encode(spec FilterSpec) url.Values {
	values := url.Values{}

	set := func(key, value string) {
		if value != "" && value != Any {
			values.Set(key, value)
		}
	}

	if spec.Term != "" {
		values.Set(ParamSearch, spec.Term)
	}
	set(ParamSort, string(spec.Sort))
	set(ParamMeat, string(spec.Meat))
	set(ParamDiet, string(spec.Diet))
	set(ParamType, string(spec.Type))
	set(ParamTime, string(spec.Time))
	set(ParamServings, string(spec.Servings))
	set(ParamAllergen, string(spec.Allergen))
	if excluded := joinTerms(spec.Excluded); excluded != "" {
		values.Set(ParamExcluded, excluded)
	}
	if included := joinTerms(spec.Included); included != "" {
		values.Set(ParamIncluded, included)
	}

	return values
}

// QueryString renders spec as an encoded query string
func QueryString(spec FilterSpec) string {
	return Encode(spec).Encode()
}

// Decode reads a spec from URL query parameters. Absent keys and the "all"
// sentinel leave a field unrestricted; empty list items are dropped.
// Unknown values are kept as given and simply match nothing.
func Decode(values url.Values) FilterSpec {
	get := func(key string) string {
		v := values.Get(key)
		if v == Any {
			return ""
		}
		return v
	}

	return FilterSpec{
		Term:     values.Get(ParamSearch),
		Sort:     SortOrder(get(ParamSort)),
		Meat:     recipe.Meat(get(ParamMeat)),
		Diet:     recipe.Diet(get(ParamDiet)),
		Type:     recipe.DishType(get(ParamType)),
		Time:     TimeBucket(get(ParamTime)),
		Servings: ServingsFilter(get(ParamServings)),
		Allergen: recipe.Allergen(get(ParamAllergen)),
		Excluded: splitTerms(values.Get(ParamExcluded)),
		Included: splitTerms(values.Get(ParamIncluded)),
	}
}

// ParseQuery decodes a raw query string. Malformed pairs are skipped rather
// than rejected.
func ParseQuery(raw string) FilterSpec {
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return Decode(values)
}

func joinTerms(terms []string) string {
	kept := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, listSeparator)
}

func splitTerms(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, t := range strings.Split(raw, listSeparator) {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
