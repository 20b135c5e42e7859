// Package seed provides the built-in recipe catalog
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

//go:embed recipes.json
var recipesJSON []byte

// Recipes decodes the built-in catalog. Each call returns fresh values.
func Recipes() ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	if err := json.Unmarshal(recipesJSON, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode seed recipes: %w", err)
	}

	for i := range recipes {
		if recipes[i].Comments == nil {
			recipes[i].Comments = []recipe.Comment{}
		}
		if err := recipes[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed recipe %s: %w", recipes[i].ID, err)
		}
	}

	return recipes, nil
}
