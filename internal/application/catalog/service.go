// Package catalog provides the application layer for browsing and editing
// the recipe catalog. This implements the use cases defined in the inbound ports.
package catalog

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/cookbook/catalog/internal/domain/cooking"
	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/domain/search"
	"github.com/cookbook/catalog/internal/domain/shared"
	"github.com/cookbook/catalog/internal/ports/inbound"
	"github.com/cookbook/catalog/internal/ports/outbound"
	apperrors "github.com/cookbook/catalog/pkg/errors"
)

// ResultsPath is the landing page target for classified queries
const ResultsPath = "/results"

var tracer = otel.Tracer("github.com/cookbook/catalog/internal/application/catalog")

// Recorder observes catalog activity
type Recorder interface {
	Search(results int)
	ClassifierRule(rule string)
	RandomPick(found bool)
	RecipeAdded()
	RecipeUpdated()
	CommentAdded()
}

type noopRecorder struct{}

func (noopRecorder) Search(int)            {}
func (noopRecorder) ClassifierRule(string) {}
func (noopRecorder) RandomPick(bool)       {}
func (noopRecorder) RecipeAdded()          {}
func (noopRecorder) RecipeUpdated()        {}
func (noopRecorder) CommentAdded()         {}

// Option configures a Service
type Option func(*Service)

// WithRecorder reports catalog activity to r
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock overrides the time source used for new recipes and comments
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPicker overrides the random index source. pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

// WithIDGenerator overrides how recipe and comment ids are generated
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// Service implements the catalog use cases
type Service struct {
	recipes   outbound.RecipeRepository
	validator outbound.Validator
	events    outbound.EventPublisher
	recorder  Recorder
	now       func() time.Time
	pick      func(n int) int
	newID     func() string
	logger    *zap.Logger
}

var _ inbound.CatalogService = (*Service)(nil)

// NewService creates a new catalog service
func NewService(
	recipes outbound.RecipeRepository,
	validator outbound.Validator,
	events outbound.EventPublisher,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		recipes:   recipes,
		validator: validator,
		events:    events,
		recorder:  noopRecorder{},
		now:       time.Now,
		pick:      rand.IntN,
		newID:     uuid.NewString,
		logger:    logger.Named("catalog-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search filters and sorts the catalog. An empty result is not an error.
func (s *Service) Search(ctx context.Context, spec search.FilterSpec) (*inbound.SearchResult, error) {
	ctx, span := tracer.Start(ctx, "catalog.Search")
	defer span.End()

	query := search.QueryString(spec)
	span.SetAttributes(attribute.String("catalog.query", query))

	all, err := s.recipes.GetAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load recipes")
		return nil, apperrors.NewStorageError("load recipes", err)
	}

	matches := search.Apply(all, spec)
	span.SetAttributes(attribute.Int("catalog.results", len(matches)))
	s.recorder.Search(len(matches))

	s.logger.Debug("Catalog searched",
		zap.String("query", query),
		zap.Int("results", len(matches)),
	)

	result := &inbound.SearchResult{
		Query:   query,
		Total:   len(matches),
		Empty:   len(matches) == 0,
		Recipes: matches,
	}
	if result.Empty {
		result.Message = inbound.NoResultsMessage
	}
	return result, nil
}

// Random picks one recipe uniformly among those matching spec
func (s *Service) Random(ctx context.Context, spec search.FilterSpec) (*inbound.RandomResult, error) {
	ctx, span := tracer.Start(ctx, "catalog.Random")
	defer span.End()

	all, err := s.recipes.GetAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.NewStorageError("load recipes", err)
	}

	matches := search.Apply(all, spec)
	s.recorder.RandomPick(len(matches) > 0)
	if len(matches) == 0 {
		return &inbound.RandomResult{Found: false, Message: inbound.NoResultsMessage}, nil
	}

	picked := matches[s.pick(len(matches))]
	span.SetAttributes(attribute.String("catalog.recipe_id", picked.ID))

	return &inbound.RandomResult{Found: true, Recipe: &picked}, nil
}

// GetRecipe returns one recipe or RECIPE_NOT_FOUND
func (s *Service) GetRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	r, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewStorageError("load recipe", err)
	}
	if r == nil {
		return nil, apperrors.NewRecipeNotFoundError(id)
	}
	return r, nil
}

// Classify reads a landing-page query into structured filters
func (s *Service) Classify(ctx context.Context, input string) *inbound.ClassifyResult {
	_, span := tracer.Start(ctx, "catalog.Classify")
	defer span.End()

	c := search.Classify(input)
	query := search.QueryString(c.Spec())
	s.recorder.ClassifierRule(c.Rule)
	span.SetAttributes(attribute.String("catalog.rule", c.Rule))

	s.logger.Debug("Query classified",
		zap.String("input", input),
		zap.String("rule", c.Rule),
		zap.String("query", query),
	)

	return &inbound.ClassifyResult{
		Classification: c,
		Query:          query,
		ResultsURL:     ResultsURL(query),
	}
}

// Categories returns the popular category presets
func (s *Service) Categories(ctx context.Context) []inbound.CategoryDTO {
	presets := search.PopularCategories()
	out := make([]inbound.CategoryDTO, 0, len(presets))
	for _, c := range presets {
		query := search.QueryString(c.Spec)
		out = append(out, inbound.CategoryDTO{
			Name:       c.Name,
			Icon:       c.Icon,
			Query:      query,
			ResultsURL: ResultsURL(query),
		})
	}
	return out
}

// ResultsURL returns the results page address for an encoded query
func ResultsURL(query string) string {
	if query == "" {
		return ResultsPath
	}
	return ResultsPath + "?" + query
}

// Cook builds the cooking checklist of a recipe with the given steps marked
// done. Repeated indexes count once.
func (s *Service) Cook(ctx context.Context, recipeID string, completed []int) (*inbound.CookingSessionDTO, error) {
	r, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	session := cooking.NewSession(*r)
	done := slices.Clone(completed)
	slices.Sort(done)
	for _, i := range slices.Compact(done) {
		if err := session.ToggleStep(i); err != nil {
			if errors.Is(err, cooking.ErrStepOutOfRange) {
				return nil, apperrors.NewStepOutOfRangeError(i, session.TotalSteps())
			}
			return nil, err
		}
	}

	steps := session.Steps()
	dto := &inbound.CookingSessionDTO{
		RecipeID:   r.ID,
		RecipeName: r.Name,
		Steps:      make([]inbound.CookingStep, len(steps)),
		Completed:  session.CompletedCount(),
		Total:      session.TotalSteps(),
		Progress:   session.Progress(),
		Finished:   session.Finished(),
	}
	for i, step := range steps {
		dto.Steps[i] = inbound.CookingStep{Index: step.Index, Text: step.Text, Done: step.Done}
	}
	return dto, nil
}

// AddRecipe validates and appends a new recipe
func (s *Service) AddRecipe(ctx context.Context, cmd inbound.AddRecipeCommand) (*recipe.Recipe, error) {
	if err := s.validator.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	s.logger.Info("Adding recipe",
		zap.String("recipe_id", cmd.ID),
		zap.String("name", cmd.Name),
	)

	now := s.now()
	added := recipe.DateOf(now)
	if cmd.DateAdded != "" {
		parsed, err := recipe.ParseDate(cmd.DateAdded)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		added = parsed
	}

	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		id = s.newID()
	}

	r := recipe.Recipe{
		ID:          id,
		Name:        strings.TrimSpace(cmd.Name),
		Image:       cmd.Image,
		Description: cmd.Description,
		CookingTime: cmd.CookingTime,
		Servings:    cmd.Servings,
		Type:        cmd.Type,
		Meat:        cmd.Meat,
		Diet:        cmd.Diet,
		DateAdded:   added,
		Allergens:   slices.Clone(cmd.Allergens),
		Ingredients: ingredients(cmd.Ingredients),
		Steps:       slices.Clone(cmd.Steps),
		Comments:    []recipe.Comment{},
	}
	if err := r.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.recipes.Add(ctx, r); err != nil {
		if errors.Is(err, recipe.ErrDuplicateID) {
			return nil, apperrors.NewDuplicateRecipeError(r.ID)
		}
		return nil, apperrors.NewStorageError("add recipe", err)
	}

	s.recorder.RecipeAdded()
	s.publish(ctx, recipe.RecipeAddedEvent{RecipeID: r.ID, Name: r.Name, AddedAt: now})

	s.logger.Info("Recipe added", zap.String("recipe_id", r.ID))

	return &r, nil
}

// UpdateRecipe replaces the editable fields of an existing recipe
func (s *Service) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*recipe.Recipe, error) {
	if err := s.validator.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	existing, err := s.GetRecipe(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	updated := existing.Clone()
	updated.Name = strings.TrimSpace(cmd.Name)
	updated.Image = cmd.Image
	updated.Description = cmd.Description
	updated.CookingTime = cmd.CookingTime
	updated.Servings = cmd.Servings
	updated.Type = cmd.Type
	updated.Meat = cmd.Meat
	updated.Diet = cmd.Diet
	updated.Allergens = slices.Clone(cmd.Allergens)
	updated.Ingredients = ingredients(cmd.Ingredients)
	updated.Steps = slices.Clone(cmd.Steps)

	if err := updated.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	applied, err := s.recipes.Update(ctx, updated)
	if err != nil {
		return nil, apperrors.NewStorageError("update recipe", err)
	}
	if !applied {
		return nil, apperrors.NewRecipeNotFoundError(cmd.RecipeID)
	}

	s.recorder.RecipeUpdated()
	s.publish(ctx, recipe.RecipeUpdatedEvent{RecipeID: updated.ID, UpdatedAt: s.now()})

	s.logger.Info("Recipe updated", zap.String("recipe_id", updated.ID))

	return &updated, nil
}

// AddComment appends a comment dated today to a recipe
func (s *Service) AddComment(ctx context.Context, cmd inbound.AddCommentCommand) (*recipe.Comment, error) {
	if err := s.validator.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	now := s.now()
	c := recipe.Comment{
		ID:      s.newID(),
		Author:  strings.TrimSpace(cmd.Author),
		Content: strings.TrimSpace(cmd.Content),
		Date:    recipe.DateOf(now),
	}

	applied, err := s.recipes.AddComment(ctx, cmd.RecipeID, c)
	if err != nil {
		return nil, apperrors.NewStorageError("add comment", err)
	}
	if !applied {
		return nil, apperrors.NewRecipeNotFoundError(cmd.RecipeID)
	}

	s.recorder.CommentAdded()
	s.publish(ctx, recipe.CommentAddedEvent{
		RecipeID:  cmd.RecipeID,
		CommentID: c.ID,
		Author:    c.Author,
		AddedAt:   now,
	})

	s.logger.Info("Comment added",
		zap.String("recipe_id", cmd.RecipeID),
		zap.String("comment_id", c.ID),
	)

	return &c, nil
}

// publish delivers events; failures are logged and never fail the use case
func (s *Service) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish events", zap.Error(err))
	}
}

func ingredients(cmds []inbound.IngredientCommand) []recipe.Ingredient {
	out := make([]recipe.Ingredient, len(cmds))
	for i, c := range cmds {
		out[i] = recipe.Ingredient{Name: strings.TrimSpace(c.Name), Amount: strings.TrimSpace(c.Amount)}
	}
	return out
}
