// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"

	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/domain/shared"
)

// ErrKeyNotFound is returned by a KeyValueStore for absent keys
var ErrKeyNotFound = errors.New("key not found")

// RecipeRepository is the catalog's recipe storage. Returned recipes are
// copies owned by the caller.
type RecipeRepository interface {
	// GetAll returns every recipe in insertion order
	GetAll(ctx context.Context) ([]recipe.Recipe, error)
	// GetByID returns nil when no recipe has the id
	GetByID(ctx context.Context, id string) (*recipe.Recipe, error)
	// Add appends a recipe with an empty comment list. Duplicate ids fail
	// with recipe.ErrDuplicateID.
	Add(ctx context.Context, r recipe.Recipe) error
	// Update replaces the recipe with the same id. It reports false and
	// changes nothing when the id is unknown.
	Update(ctx context.Context, r recipe.Recipe) (bool, error)
	// AddComment appends a comment. It reports false and changes nothing
	// when the id is unknown.
	AddComment(ctx context.Context, recipeID string, c recipe.Comment) (bool, error)
}

// KeyValueStore persists small opaque values such as the favorites set
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// HealthChecker is implemented by stores that can report their availability
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// EventPublisher delivers domain events after a use case succeeds
type EventPublisher interface {
	Publish(ctx context.Context, events ...shared.DomainEvent) error
}

// Validator checks command structs before a use case runs
type Validator interface {
	ValidateStruct(s interface{}) error
}
