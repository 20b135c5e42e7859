package recipe

import (
	"slices"
	"strings"
)

// Recipe is a catalog entry. Values handed out by repositories are copies,
// so callers may keep them without observing later mutations.
type Recipe struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Image       string       `json:"image"`
	Description string       `json:"description"`
	CookingTime int          `json:"cookingTime"`
	Servings    int          `json:"servings"`
	Type        DishType     `json:"type"`
	Meat        Meat         `json:"meat"`
	Diet        Diet         `json:"diet"`
	Likes       int          `json:"likes"`
	DateAdded   Date         `json:"dateAdded"`
	Allergens   []Allergen   `json:"allergens,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	Comments    []Comment    `json:"comments"`
}

// Validate checks the recipe invariants
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrMissingID
	}
	name := strings.TrimSpace(r.Name)
	if len(name) < 3 {
		return ErrNameTooShort
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	if len(r.Description) > 2000 {
		return ErrDescriptionTooLong
	}
	if r.CookingTime <= 0 {
		return ErrInvalidCookingTime
	}
	if r.Servings <= 0 {
		return ErrInvalidServings
	}
	if r.Likes < 0 {
		return ErrNegativeLikes
	}
	if !r.Type.Valid() {
		return ErrUnknownDishType
	}
	if !r.Meat.Valid() {
		return ErrUnknownMeat
	}
	if !r.Diet.Valid() {
		return ErrUnknownDiet
	}
	for _, a := range r.Allergens {
		if !a.Valid() {
			return ErrUnknownAllergen
		}
	}
	if len(r.Ingredients) == 0 {
		return ErrNoIngredients
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	if len(r.Steps) == 0 {
		return ErrNoSteps
	}
	return nil
}

// HasAllergen reports whether the recipe declares allergen a.
// A recipe without an allergen list declares none.
func (r Recipe) HasAllergen(a Allergen) bool {
	return slices.Contains(r.Allergens, a)
}

// Clone returns a deep copy of the recipe
func (r Recipe) Clone() Recipe {
	out := r
	out.Allergens = slices.Clone(r.Allergens)
	out.Ingredients = slices.Clone(r.Ingredients)
	out.Steps = slices.Clone(r.Steps)
	out.Comments = slices.Clone(r.Comments)
	if out.Comments == nil {
		out.Comments = []Comment{}
	}
	return out
}

// WithComment returns a copy of the recipe with c appended to its comments
func (r Recipe) WithComment(c Comment) Recipe {
	out := r.Clone()
	out.Comments = append(out.Comments, c)
	return out
}
