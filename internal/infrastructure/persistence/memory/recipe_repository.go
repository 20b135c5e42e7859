package memory

import (
	"context"
	"sync"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

// RecipeRepository implements outbound.RecipeRepository over an ordered slice
type RecipeRepository struct {
	recipes []recipe.Recipe
	mutex   sync.RWMutex
}

// NewRecipeRepository creates a repository holding copies of initial
func NewRecipeRepository(initial []recipe.Recipe) *RecipeRepository {
	recipes := make([]recipe.Recipe, len(initial))
	for i, r := range initial {
		recipes[i] = r.Clone()
	}
	return &RecipeRepository{recipes: recipes}
}

// GetAll returns copies of every recipe in insertion order
func (r *RecipeRepository) GetAll(ctx context.Context) ([]recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]recipe.Recipe, len(r.recipes))
	for i, rec := range r.recipes {
		out[i] = rec.Clone()
	}
	return out, nil
}

// GetByID returns a copy of the recipe with id, or nil
func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	found := r.recipes[i].Clone()
	return &found, nil
}

// Add appends a recipe with an empty comment list
func (r *RecipeRepository) Add(ctx context.Context, rec recipe.Recipe) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.indexOf(rec.ID) >= 0 {
		return recipe.ErrDuplicateID
	}

	stored := rec.Clone()
	stored.Comments = []recipe.Comment{}
	r.recipes = append(r.recipes, stored)
	return nil
}

// Update replaces the recipe with the same id
func (r *RecipeRepository) Update(ctx context.Context, rec recipe.Recipe) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.indexOf(rec.ID)
	if i < 0 {
		return false, nil
	}
	r.recipes[i] = rec.Clone()
	return true, nil
}

// AddComment appends a comment to the recipe with recipeID
func (r *RecipeRepository) AddComment(ctx context.Context, recipeID string, c recipe.Comment) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.indexOf(recipeID)
	if i < 0 {
		return false, nil
	}
	r.recipes[i] = r.recipes[i].WithComment(c)
	return true, nil
}

func (r *RecipeRepository) indexOf(id string) int {
	for i, rec := range r.recipes {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
