// Package favorites provides the application layer for the favorites set
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/cookbook/catalog/internal/domain/favorite"
	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/ports/inbound"
	"github.com/cookbook/catalog/internal/ports/outbound"
	apperrors "github.com/cookbook/catalog/pkg/errors"
)

// ErrNoStorage is returned when the service is built without a store
var ErrNoStorage = apperrors.NewAppError(apperrors.CodeNoStorageProvided,
	"Favorites storage is not configured", "")

// ToggleRecorder observes favorite toggles
type ToggleRecorder interface {
	FavoriteToggled(favorite bool, size int)
}

// Service implements the favorites use cases. The set is read from the
// store once and written back on every toggle.
type Service struct {
	mu       sync.RWMutex
	store    outbound.KeyValueStore
	key      string
	set      favorite.Set
	recorder ToggleRecorder
	logger   *zap.Logger
}

var _ inbound.FavoritesService = (*Service)(nil)

// New loads the favorites stored under key. A missing or corrupt value
// starts an empty set. recorder may be nil.
func New(ctx context.Context, store outbound.KeyValueStore, key string, recorder ToggleRecorder, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, ErrNoStorage
	}

	s := &Service{
		store:    store,
		key:      key,
		recorder: recorder,
		logger:   logger.Named("favorites-service"),
	}
	s.set = s.load(ctx)

	s.logger.Info("Favorites loaded",
		zap.String("key", key),
		zap.Int("count", s.set.Len()),
	)

	return s, nil
}

func (s *Service) load(ctx context.Context) favorite.Set {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, outbound.ErrKeyNotFound) {
			s.logger.Warn("Failed to read favorites, starting empty", zap.Error(err))
		}
		return favorite.NewSet()
	}

	var set favorite.Set
	if err := json.Unmarshal(data, &set); err != nil {
		s.logger.Warn("Stored favorites are corrupt, starting empty",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return favorite.NewSet()
	}
	return set
}

// Toggle flips membership of recipeID and persists the new set. It
// reports whether the recipe is a favorite afterwards. The in-memory set
// only changes once the write succeeded.
func (s *Service) Toggle(ctx context.Context, recipeID string) (bool, error) {
	if recipeID == "" {
		return false, apperrors.NewBadRequestError("recipe id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, isFavorite := s.set.Toggled(recipeID)

	data, err := json.Marshal(next)
	if err != nil {
		return false, apperrors.NewInternalError("failed to encode favorites").WithCause(err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		s.logger.Error("Failed to persist favorites",
			zap.String("recipe_id", recipeID),
			zap.Error(err),
		)
		return false, apperrors.NewStorageError("save favorites", err)
	}

	s.set = next
	if s.recorder != nil {
		s.recorder.FavoriteToggled(isFavorite, next.Len())
	}

	s.logger.Info("Favorite toggled",
		zap.String("recipe_id", recipeID),
		zap.Bool("favorite", isFavorite),
	)

	return isFavorite, nil
}

// IsFavorite reports whether recipeID is in the set
func (s *Service) IsFavorite(recipeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.set.Contains(recipeID)
}

// List returns the favorite ids in the order they were added
func (s *Service) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.set.IDs()
}

// View is a displayed list of recipes whose likes counters follow
// favorite toggles. The adjustment is local to the view.
type View struct {
	favorites inbound.FavoritesService
	recipes   []inbound.RecipeView
}

// NewView decorates recipes with their favorite state
func NewView(favorites inbound.FavoritesService, recipes []recipe.Recipe) *View {
	v := &View{
		favorites: favorites,
		recipes:   make([]inbound.RecipeView, len(recipes)),
	}
	for i, r := range recipes {
		v.recipes[i] = inbound.RecipeView{Recipe: r, Favorite: favorites.IsFavorite(r.ID)}
	}
	return v
}

// Toggle flips the favorite state of recipeID. The displayed likes move up
// by one when the recipe becomes a favorite and down by one when it stops
// being one. Toggling the same recipe twice restores its original count.
func (v *View) Toggle(ctx context.Context, recipeID string) (*inbound.ToggleFavoriteResult, error) {
	isFavorite, err := v.favorites.Toggle(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	result := &inbound.ToggleFavoriteResult{RecipeID: recipeID, Favorite: isFavorite}
	for i := range v.recipes {
		if v.recipes[i].ID != recipeID {
			continue
		}
		if isFavorite {
			v.recipes[i].Likes++
		} else {
			v.recipes[i].Likes--
		}
		v.recipes[i].Favorite = isFavorite
		result.Likes = v.recipes[i].Likes
	}
	return result, nil
}

// Recipes returns the displayed recipes
func (v *View) Recipes() []inbound.RecipeView {
	return v.recipes
}
