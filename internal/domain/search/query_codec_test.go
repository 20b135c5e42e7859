package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

func TestEncode_OmitsUnrestrictedFields(t *testing.T) {
	assert.Empty(t, Encode(FilterSpec{}))
	assert.Equal(t, "", QueryString(FilterSpec{}))
}

func TestEncode_FullSpec(t *testing.T) {
	spec := FilterSpec{
		Term:     "makaron",
		Meat:     recipe.MeatBeef,
		Diet:     recipe.DietNone,
		Type:     recipe.DishTypeMainCourse,
		Time:     TimeOverAnHour,
		Servings: "4",
		Allergen: recipe.AllergenGluten,
		Excluded: []string{"cebula", "czosnek"},
		Included: []string{"pomidory"},
		Sort:     SortLikes,
	}

	values := Encode(spec)

	assert.Equal(t, "makaron", values.Get(ParamSearch))
	assert.Equal(t, "beef", values.Get(ParamMeat))
	assert.Equal(t, "60+", values.Get(ParamTime))
	assert.Equal(t, "cebula,czosnek", values.Get(ParamExcluded))
	assert.Equal(t, "pomidory", values.Get(ParamIncluded))
	assert.Equal(t, "likes", values.Get(ParamSort))
	assert.Equal(t, spec, Decode(values))
}

func TestDecode_AllSentinelIsUnrestricted(t *testing.T) {
	values := url.Values{
		ParamMeat:     {"all"},
		ParamDiet:     {"all"},
		ParamType:     {"all"},
		ParamTime:     {"all"},
		ParamServings: {"all"},
		ParamAllergen: {"all"},
		ParamSort:     {"all"},
	}

	assert.Equal(t, FilterSpec{}, Decode(values))
}

func TestDecode_DropsEmptyListItems(t *testing.T) {
	spec := ParseQuery("excluded=,cebula,,&included=,")

	assert.Equal(t, []string{"cebula"}, spec.Excluded)
	assert.Nil(t, spec.Included)
}

func TestDecode_KeepsUnknownValues(t *testing.T) {
	spec := ParseQuery("?meat=venison&sort=alphabetical")

	assert.Equal(t, recipe.Meat("venison"), spec.Meat)
	assert.Equal(t, SortOrder("alphabetical"), spec.Sort)
}

func TestParseQuery_SkipsMalformedPairs(t *testing.T) {
	spec := ParseQuery("search=zupa&diet=%zz&type=soup")

	assert.Equal(t, "zupa", spec.Term)
	assert.Empty(t, spec.Diet)
	assert.Equal(t, recipe.DishTypeSoup, spec.Type)
}

func TestRoundTrip(t *testing.T) {
	specs := []FilterSpec{
		{},
		{Term: "zupa krem"},
		{Term: "all"},
		{Meat: recipe.MeatPoultry, Sort: SortTimeAsc},
		{Servings: ServingsMore, Allergen: recipe.AllergenNuts},
		{Excluded: []string{"orzechy"}, Included: []string{"ser", "szpinak"}},
		{Term: "śniadanie & kawa", Time: TimeUpTo15},
	}

	for _, spec := range specs {
		assert.Equal(t, spec, ParseQuery(QueryString(spec)))
	}
}
