package search

import "github.com/cookbook/catalog/internal/domain/recipe"

// Category is a fixed landing-page shortcut into the catalog
type Category struct {
	Name string
	Icon string
	Spec FilterSpec
}

// PopularCategories returns the landing-page presets in display order
func PopularCategories() []Category {
	return []Category{
		{Name: "Śniadania", Icon: "sunrise", Spec: FilterSpec{Type: recipe.DishTypeBreakfast}},
		{Name: "Dania główne", Icon: "utensils", Spec: FilterSpec{Type: recipe.DishTypeMainCourse}},
		{Name: "Desery", Icon: "cake", Spec: FilterSpec{Type: recipe.DishTypeDessert}},
		{Name: "Wegetariańskie", Icon: "leaf", Spec: FilterSpec{Diet: recipe.DietVegetarian}},
		{Name: "Szybkie dania", Icon: "clock", Spec: FilterSpec{Time: TimeUpTo15}},
	}
}
