// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cookbook/catalog/internal/domain/recipe"
)

// IDs returns recipe ids in order
func IDs(recipes []recipe.Recipe) []string {
	ids := make([]string, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	return ids
}

// AssertIDs asserts that recipes carry exactly the expected ids in order
func AssertIDs(t *testing.T, expected []string, recipes []recipe.Recipe, msgAndArgs ...interface{}) bool {
	t.Helper()
	return assert.Equal(t, expected, IDs(recipes), msgAndArgs...)
}

// AssertSubsequence asserts that got keeps the relative order of all
func AssertSubsequence(t *testing.T, all, got []recipe.Recipe, msgAndArgs ...interface{}) bool {
	t.Helper()

	pos := make(map[string]int, len(all))
	for i, r := range all {
		pos[r.ID] = i
	}

	last := -1
	for _, r := range got {
		p, ok := pos[r.ID]
		if !assert.True(t, ok, "recipe %s is not in the input", r.ID) {
			return false
		}
		if !assert.Greater(t, p, last, msgAndArgs...) {
			return false
		}
		last = p
	}
	return true
}
