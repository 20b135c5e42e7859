package recipe

import "time"

// RecipeAddedEvent is raised when a recipe is added to the catalog
type RecipeAddedEvent struct {
	RecipeID string
	Name     string
	AddedAt  time.Time
}

func (e RecipeAddedEvent) EventName() string {
	return "recipe.added"
}

func (e RecipeAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}

// RecipeUpdatedEvent is raised when a recipe is replaced
type RecipeUpdatedEvent struct {
	RecipeID  string
	UpdatedAt time.Time
}

func (e RecipeUpdatedEvent) EventName() string {
	return "recipe.updated"
}

func (e RecipeUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// CommentAddedEvent is raised when a comment is attached to a recipe
type CommentAddedEvent struct {
	RecipeID  string
	CommentID string
	Author    string
	AddedAt   time.Time
}

func (e CommentAddedEvent) EventName() string {
	return "recipe.comment.added"
}

func (e CommentAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}
