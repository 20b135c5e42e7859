package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/domain/shared"
	"github.com/cookbook/catalog/internal/ports/outbound"
)

var (
	_ outbound.EventPublisher = (*Dispatcher)(nil)
	_ shared.EventDispatcher  = (*Dispatcher)(nil)
)

type countingRecorder map[string]int

func (c countingRecorder) EventPublished(name string) { c[name]++ }

func TestDispatcher_DeliversInOrder(t *testing.T) {
	recorder := countingRecorder{}
	d := NewDispatcher(recorder, zap.NewNop())

	var seen []string
	d.Register("recipe.added", func(e shared.DomainEvent) error {
		seen = append(seen, "first:"+e.(recipe.RecipeAddedEvent).RecipeID)
		return nil
	})
	d.Register("recipe.added", func(e shared.DomainEvent) error {
		seen = append(seen, "second:"+e.(recipe.RecipeAddedEvent).RecipeID)
		return nil
	})

	err := d.Publish(context.Background(),
		recipe.RecipeAddedEvent{RecipeID: "1", AddedAt: time.Now()},
		recipe.RecipeAddedEvent{RecipeID: "2", AddedAt: time.Now()},
		recipe.RecipeUpdatedEvent{RecipeID: "1", UpdatedAt: time.Now()},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"first:1", "second:1", "first:2", "second:2"}, seen)
	assert.Equal(t, 2, recorder["recipe.added"])
	assert.Equal(t, 1, recorder["recipe.updated"])
}

func TestDispatcher_JoinsHandlerErrors(t *testing.T) {
	d := NewDispatcher(nil, zap.NewNop())
	boom := errors.New("boom")

	calls := 0
	d.Register("recipe.updated", func(shared.DomainEvent) error { calls++; return boom })
	d.Register("recipe.updated", func(shared.DomainEvent) error { calls++; return nil })

	err := d.Publish(context.Background(), recipe.RecipeUpdatedEvent{RecipeID: "1"})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestDispatcher_StopsOnCancelledContext(t *testing.T) {
	d := NewDispatcher(nil, zap.NewNop())
	calls := 0
	d.Register("recipe.updated", func(shared.DomainEvent) error { calls++; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Publish(ctx, recipe.RecipeUpdatedEvent{RecipeID: "1"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
