package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/domain/shared"
)

// MockKeyValueStore provides a mock implementation of KeyValueStore
type MockKeyValueStore struct {
	mock.Mock
}

// Get returns the stored value
func (m *MockKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	value, _ := args.Get(0).([]byte)
	return value, args.Error(1)
}

// Set stores a value
func (m *MockKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Delete removes a value
func (m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

// GetAll returns every recipe
func (m *MockRecipeRepository) GetAll(ctx context.Context) ([]recipe.Recipe, error) {
	args := m.Called(ctx)
	recipes, _ := args.Get(0).([]recipe.Recipe)
	return recipes, args.Error(1)
}

// GetByID finds a recipe by ID
func (m *MockRecipeRepository) GetByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*recipe.Recipe)
	return r, args.Error(1)
}

// Add adds a recipe
func (m *MockRecipeRepository) Add(ctx context.Context, r recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Update replaces a recipe
func (m *MockRecipeRepository) Update(ctx context.Context, r recipe.Recipe) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

// AddComment appends a comment
func (m *MockRecipeRepository) AddComment(ctx context.Context, recipeID string, c recipe.Comment) (bool, error) {
	args := m.Called(ctx, recipeID, c)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher provides a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// Publish records the published events
func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
