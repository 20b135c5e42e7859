// Package cooking models a step-by-step cooking session for one recipe
package cooking

import (
	"errors"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

// ErrStepOutOfRange is returned when a step index does not exist
var ErrStepOutOfRange = errors.New("step index out of range")

// Step is one instruction with its completion state
type Step struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Done  bool   `json:"done"`
}

// Session tracks which steps of a recipe have been completed
type Session struct {
	recipeID  string
	steps     []string
	completed []bool
}

// NewSession starts a session with no completed steps
func NewSession(r recipe.Recipe) *Session {
	return &Session{
		recipeID:  r.ID,
		steps:     append([]string(nil), r.Steps...),
		completed: make([]bool, len(r.Steps)),
	}
}

// RecipeID returns the recipe the session belongs to
func (s *Session) RecipeID() string {
	return s.recipeID
}

// ToggleStep flips the completion state of step i
func (s *Session) ToggleStep(i int) error {
	if i < 0 || i >= len(s.steps) {
		return ErrStepOutOfRange
	}
	s.completed[i] = !s.completed[i]
	return nil
}

// CompletedCount returns the number of completed steps
func (s *Session) CompletedCount() int {
	n := 0
	for _, done := range s.completed {
		if done {
			n++
		}
	}
	return n
}

// TotalSteps returns the number of steps
func (s *Session) TotalSteps() int {
	return len(s.steps)
}

// Progress returns completion as a percentage. A recipe without steps is complete.
func (s *Session) Progress() float64 {
	if len(s.steps) == 0 {
		return 100
	}
	return float64(s.CompletedCount()) / float64(len(s.steps)) * 100
}

// Finished reports whether every step has been completed
func (s *Session) Finished() bool {
	return s.CompletedCount() == len(s.steps)
}

// Steps returns a snapshot of the steps
func (s *Session) Steps() []Step {
	out := make([]Step, len(s.steps))
	for i, text := range s.steps {
		out[i] = Step{Index: i, Text: text, Done: s.completed[i]}
	}
	return out
}
