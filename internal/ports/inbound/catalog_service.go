// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/domain/search"
)

// CatalogService defines the use cases for browsing and editing the catalog
type CatalogService interface {
	// Queries
	Search(ctx context.Context, spec search.FilterSpec) (*SearchResult, error)
	Random(ctx context.Context, spec search.FilterSpec) (*RandomResult, error)
	GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error)
	Classify(ctx context.Context, input string) *ClassifyResult
	Categories(ctx context.Context) []CategoryDTO
	Cook(ctx context.Context, recipeID string, completed []int) (*CookingSessionDTO, error)

	// Commands
	AddRecipe(ctx context.Context, cmd AddRecipeCommand) (*recipe.Recipe, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*recipe.Recipe, error)
	AddComment(ctx context.Context, cmd AddCommentCommand) (*recipe.Comment, error)
}

// FavoritesService defines the use cases for the favorites set
type FavoritesService interface {
	Toggle(ctx context.Context, recipeID string) (bool, error)
	IsFavorite(recipeID string) bool
	List() []string
}

// NoResultsMessage is shown when a query matches nothing
const NoResultsMessage = "Nie znaleziono przepisów spełniających kryteria."

// SearchResult is the outcome of a catalog query
type SearchResult struct {
	Query   string          `json:"query"`
	Total   int             `json:"total"`
	Empty   bool            `json:"empty"`
	Message string          `json:"message,omitempty"`
	Recipes []recipe.Recipe `json:"recipes"`
}

// RandomResult is the outcome of a random pick. Found is false when no
// recipe satisfied the filters.
type RandomResult struct {
	Found   bool           `json:"found"`
	Message string         `json:"message,omitempty"`
	Recipe  *recipe.Recipe `json:"recipe,omitempty"`
}

// ClassifyResult is a classified landing-page query
type ClassifyResult struct {
	search.Classification
	Query      string `json:"query"`
	ResultsURL string `json:"results_url"`
}

// CategoryDTO is a popular category preset
type CategoryDTO struct {
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Query      string `json:"query"`
	ResultsURL string `json:"results_url"`
}

// CookingSessionDTO is the state of a cooking checklist
type CookingSessionDTO struct {
	RecipeID   string        `json:"recipe_id"`
	RecipeName string        `json:"recipe_name"`
	Steps      []CookingStep `json:"steps"`
	Completed  int           `json:"completed"`
	Total      int           `json:"total"`
	Progress   float64       `json:"progress"`
	Finished   bool          `json:"finished"`
}

// CookingStep is one step in a CookingSessionDTO
type CookingStep struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Done  bool   `json:"done"`
}

// RecipeView is a recipe as displayed to the user
type RecipeView struct {
	recipe.Recipe
	Favorite bool `json:"favorite"`
}

// ToggleFavoriteResult is returned after toggling a favorite
type ToggleFavoriteResult struct {
	RecipeID string `json:"id"`
	Favorite bool   `json:"favorite"`
	Likes    int    `json:"likes"`
}

// Command objects for operations

// AddRecipeCommand contains data for adding a recipe. An empty ID is
// generated; an empty DateAdded defaults to today.
type AddRecipeCommand struct {
	ID          string              `json:"id" validate:"omitempty,max=64"`
	Name        string              `json:"name" validate:"required,not_blank,min=3,max=200"`
	Image       string              `json:"image" validate:"omitempty,max=500"`
	Description string              `json:"description" validate:"max=2000"`
	CookingTime int                 `json:"cookingTime" validate:"gt=0"`
	Servings    int                 `json:"servings" validate:"gt=0"`
	Type        recipe.DishType     `json:"type" validate:"required,oneof=soup main-course dessert drink breakfast"`
	Meat        recipe.Meat         `json:"meat" validate:"required,oneof=poultry beef pork seafood none"`
	Diet        recipe.Diet         `json:"diet" validate:"required,oneof=vegan vegetarian keto none"`
	DateAdded   string              `json:"dateAdded" validate:"omitempty,datetime=2006-01-02"`
	Allergens   []recipe.Allergen   `json:"allergens" validate:"dive,oneof=gluten nuts dairy eggs soy fish shellfish"`
	Ingredients []IngredientCommand `json:"ingredients" validate:"required,min=1,dive"`
	Steps       []string            `json:"steps" validate:"required,min=1,dive,required"`
}

// IngredientCommand contains data for one ingredient
type IngredientCommand struct {
	Name   string `json:"name" validate:"required,not_blank,max=200"`
	Amount string `json:"amount" validate:"max=100"`
}

// UpdateRecipeCommand replaces the editable fields of a recipe. Likes,
// comments and the date added are preserved.
type UpdateRecipeCommand struct {
	RecipeID    string              `json:"-" validate:"required"`
	Name        string              `json:"name" validate:"required,not_blank,min=3,max=200"`
	Image       string              `json:"image" validate:"omitempty,max=500"`
	Description string              `json:"description" validate:"max=2000"`
	CookingTime int                 `json:"cookingTime" validate:"gt=0"`
	Servings    int                 `json:"servings" validate:"gt=0"`
	Type        recipe.DishType     `json:"type" validate:"required,oneof=soup main-course dessert drink breakfast"`
	Meat        recipe.Meat         `json:"meat" validate:"required,oneof=poultry beef pork seafood none"`
	Diet        recipe.Diet         `json:"diet" validate:"required,oneof=vegan vegetarian keto none"`
	Allergens   []recipe.Allergen   `json:"allergens" validate:"dive,oneof=gluten nuts dairy eggs soy fish shellfish"`
	Ingredients []IngredientCommand `json:"ingredients" validate:"required,min=1,dive"`
	Steps       []string            `json:"steps" validate:"required,min=1,dive,required"`
}

// AddCommentCommand contains data for commenting on a recipe
type AddCommentCommand struct {
	RecipeID string `json:"-" validate:"required"`
	Author   string `json:"author" validate:"required,not_blank,max=100"`
	Content  string `json:"content" validate:"required,not_blank,max=2000"`
}
