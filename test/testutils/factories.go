// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
	next  int
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// Recipe creates a random valid recipe with a unique id
func (f *RecipeFactory) Recipe() recipe.Recipe {
	f.next++

	ingredients := make([]recipe.Ingredient, f.faker.Number(1, 6))
	for i := range ingredients {
		ingredients[i] = recipe.Ingredient{
			Name:   f.faker.Noun(),
			Amount: fmt.Sprintf("%dg", f.faker.Number(5, 500)),
		}
	}

	steps := make([]string, f.faker.Number(1, 5))
	for i := range steps {
		steps[i] = f.faker.Sentence(6)
	}

	var allergens []recipe.Allergen
	for _, a := range recipe.Allergens {
		if f.faker.Bool() && f.faker.Bool() {
			allergens = append(allergens, a)
		}
	}

	added := f.faker.DateRange(
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	)

	return recipe.Recipe{
		ID:          fmt.Sprintf("fake-%d", f.next),
		Name:        f.faker.Sentence(3),
		Image:       "/images/" + f.faker.Word() + ".jpg",
		Description: f.faker.Sentence(12),
		CookingTime: f.faker.Number(1, 120),
		Servings:    f.faker.Number(1, 12),
		Type:        recipe.DishTypes[f.faker.Number(0, len(recipe.DishTypes)-1)],
		Meat:        recipe.Meats[f.faker.Number(0, len(recipe.Meats)-1)],
		Diet:        recipe.Diets[f.faker.Number(0, len(recipe.Diets)-1)],
		Likes:       f.faker.Number(0, 300),
		DateAdded:   recipe.DateOf(added),
		Allergens:   allergens,
		Ingredients: ingredients,
		Steps:       steps,
		Comments:    []recipe.Comment{},
	}
}

// Recipes creates n random recipes
func (f *RecipeFactory) Recipes(n int) []recipe.Recipe {
	out := make([]recipe.Recipe, n)
	for i := range out {
		out[i] = f.Recipe()
	}
	return out
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	r recipe.Recipe
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder(id string) *RecipeBuilder {
	return &RecipeBuilder{r: recipe.Recipe{
		ID:          id,
		Name:        "Test recipe " + id,
		Description: "A recipe used in tests",
		CookingTime: 30,
		Servings:    4,
		Type:        recipe.DishTypeMainCourse,
		Meat:        recipe.MeatNone,
		Diet:        recipe.DietNone,
		DateAdded:   recipe.NewDate(2023, time.November, 1),
		Ingredients: []recipe.Ingredient{{Name: "woda", Amount: "1 l"}},
		Steps:       []string{"Ugotuj."},
		Comments:    []recipe.Comment{},
	}}
}

// WithName sets the recipe name
func (b *RecipeBuilder) WithName(name string) *RecipeBuilder {
	b.r.Name = name
	return b
}

// WithDescription sets the recipe description
func (b *RecipeBuilder) WithDescription(description string) *RecipeBuilder {
	b.r.Description = description
	return b
}

// WithCookingTime sets the cooking time in minutes
func (b *RecipeBuilder) WithCookingTime(minutes int) *RecipeBuilder {
	b.r.CookingTime = minutes
	return b
}

// WithServings sets the number of servings
func (b *RecipeBuilder) WithServings(servings int) *RecipeBuilder {
	b.r.Servings = servings
	return b
}

// WithType sets the dish type
func (b *RecipeBuilder) WithType(t recipe.DishType) *RecipeBuilder {
	b.r.Type = t
	return b
}

// WithMeat sets the meat category
func (b *RecipeBuilder) WithMeat(m recipe.Meat) *RecipeBuilder {
	b.r.Meat = m
	return b
}

// WithDiet sets the diet
func (b *RecipeBuilder) WithDiet(d recipe.Diet) *RecipeBuilder {
	b.r.Diet = d
	return b
}

// WithLikes sets the like count
func (b *RecipeBuilder) WithLikes(likes int) *RecipeBuilder {
	b.r.Likes = likes
	return b
}

// WithDateAdded sets the date the recipe was added
func (b *RecipeBuilder) WithDateAdded(d recipe.Date) *RecipeBuilder {
	b.r.DateAdded = d
	return b
}

// WithAllergens sets the allergens
func (b *RecipeBuilder) WithAllergens(allergens ...recipe.Allergen) *RecipeBuilder {
	b.r.Allergens = allergens
	return b
}

// WithIngredients sets ingredients by name
func (b *RecipeBuilder) WithIngredients(names ...string) *RecipeBuilder {
	b.r.Ingredients = make([]recipe.Ingredient, len(names))
	for i, n := range names {
		b.r.Ingredients[i] = recipe.Ingredient{Name: n, Amount: "1"}
	}
	return b
}

// WithSteps sets the steps
func (b *RecipeBuilder) WithSteps(steps ...string) *RecipeBuilder {
	b.r.Steps = steps
	return b
}

// Build returns the recipe
func (b *RecipeBuilder) Build() recipe.Recipe {
	return b.r.Clone()
}
