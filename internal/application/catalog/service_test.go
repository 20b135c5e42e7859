package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/domain/search"
	"github.com/cookbook/catalog/internal/domain/shared"
	"github.com/cookbook/catalog/internal/infrastructure/persistence/memory"
	"github.com/cookbook/catalog/internal/infrastructure/persistence/seed"
	"github.com/cookbook/catalog/internal/infrastructure/security"
	"github.com/cookbook/catalog/internal/ports/inbound"
	apperrors "github.com/cookbook/catalog/pkg/errors"
	"github.com/cookbook/catalog/test/testutils"
)

var fixedNow = time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

// CatalogServiceTestSuite runs the catalog use cases against the seed data
type CatalogServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	repo      *memory.RecipeRepository
	events    *testutils.MockEventPublisher
	service   *Service
	picked    []int
	generated int
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()

	recipes, err := seed.Recipes()
	require.NoError(suite.T(), err)
	suite.repo = memory.NewRecipeRepository(recipes)

	suite.events = new(testutils.MockEventPublisher)
	suite.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	suite.picked = nil
	suite.generated = 0
	suite.service = NewService(
		suite.repo,
		security.NewValidationService(zap.NewNop()),
		suite.events,
		zap.NewNop(),
		WithClock(func() time.Time { return fixedNow }),
		WithPicker(func(n int) int {
			suite.picked = append(suite.picked, n)
			return n - 1
		}),
		WithIDGenerator(func() string {
			suite.generated++
			return "gen-" + string(rune('0'+suite.generated))
		}),
	)
}

func (suite *CatalogServiceTestSuite) TestSearch() {
	suite.Run("BeefUpTo30Minutes_ShouldReturnKetoBurger", func() {
		result, err := suite.service.Search(suite.ctx, search.FilterSpec{
			Meat: recipe.MeatBeef,
			Time: search.TimeUpTo30,
		})

		require.NoError(suite.T(), err)
		testutils.AssertIDs(suite.T(), []string{"12"}, result.Recipes)
		assert.Equal(suite.T(), 1, result.Total)
		assert.False(suite.T(), result.Empty)
		assert.Empty(suite.T(), result.Message)
		assert.Equal(suite.T(), "meat=beef&time=30", result.Query)
	})

	suite.Run("Desserts", func() {
		result, err := suite.service.Search(suite.ctx, search.FilterSpec{Type: recipe.DishTypeDessert})

		require.NoError(suite.T(), err)
		testutils.AssertIDs(suite.T(), []string{"6"}, result.Recipes)
	})

	suite.Run("NoMatch_ShouldReturnEmptyState", func() {
		result, err := suite.service.Search(suite.ctx, search.FilterSpec{
			Meat: recipe.MeatPork,
		})

		require.NoError(suite.T(), err)
		assert.True(suite.T(), result.Empty)
		assert.Zero(suite.T(), result.Total)
		assert.NotNil(suite.T(), result.Recipes)
		assert.Equal(suite.T(), inbound.NoResultsMessage, result.Message)
	})

	suite.Run("EmptySpec_ShouldReturnCatalogOrder", func() {
		result, err := suite.service.Search(suite.ctx, search.FilterSpec{})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 21, result.Total)
		assert.Equal(suite.T(), "1", result.Recipes[0].ID)
		assert.Equal(suite.T(), "21", result.Recipes[20].ID)
		assert.Empty(suite.T(), result.Query)
	})

	suite.Run("SortedByLikes", func() {
		result, err := suite.service.Search(suite.ctx, search.FilterSpec{Sort: search.SortLikes})

		require.NoError(suite.T(), err)
		for i := 1; i < len(result.Recipes); i++ {
			assert.GreaterOrEqual(suite.T(), result.Recipes[i-1].Likes, result.Recipes[i].Likes)
		}
		// Tiramisu and Pizza tie at 200 likes; catalog order breaks the tie.
		testutils.AssertIDs(suite.T(), []string{"6", "18"}, result.Recipes[:2])
	})
}

func (suite *CatalogServiceTestSuite) TestRandom() {
	suite.Run("PicksAmongMatches", func() {
		result, err := suite.service.Random(suite.ctx, search.FilterSpec{Type: recipe.DishTypeDrink})

		require.NoError(suite.T(), err)
		require.True(suite.T(), result.Found)
		assert.Equal(suite.T(), []int{3}, suite.picked)
		assert.Equal(suite.T(), "19", result.Recipe.ID)
		assert.Empty(suite.T(), result.Message)
	})

	suite.Run("NoMatch_ShouldReportNotFound", func() {
		result, err := suite.service.Random(suite.ctx, search.FilterSpec{Diet: recipe.DietKeto, Type: recipe.DishTypeSoup})

		require.NoError(suite.T(), err)
		assert.False(suite.T(), result.Found)
		assert.Nil(suite.T(), result.Recipe)
		assert.Equal(suite.T(), inbound.NoResultsMessage, result.Message)
	})
}

func (suite *CatalogServiceTestSuite) TestGetRecipe() {
	suite.Run("Known", func() {
		r, err := suite.service.GetRecipe(suite.ctx, "6")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Tiramisu", r.Name)
	})

	suite.Run("Unknown_ShouldReturnNotFound", func() {
		_, err := suite.service.GetRecipe(suite.ctx, "999")

		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func (suite *CatalogServiceTestSuite) TestClassify() {
	suite.Run("DietAndResidualTerm", func() {
		result := suite.service.Classify(suite.ctx, "Wegańskie curry")

		assert.Equal(suite.T(), "vegan", result.Rule)
		assert.Equal(suite.T(), recipe.DietVegan, result.Diet)
		assert.Equal(suite.T(), "curry", result.Term)
		assert.Equal(suite.T(), "diet=vegan&search=curry", result.Query)
		assert.Equal(suite.T(), "/results?diet=vegan&search=curry", result.ResultsURL)
	})

	suite.Run("ResultsURL_ShouldRoundTripToSearch", func() {
		result := suite.service.Classify(suite.ctx, "zupa")

		found, err := suite.service.Search(suite.ctx, search.ParseQuery(result.Query))
		require.NoError(suite.T(), err)
		testutils.AssertIDs(suite.T(), []string{"1", "15"}, found.Recipes)
	})

	suite.Run("ResidualTerm_ShouldMatchIngredients", func() {
		result := suite.service.Classify(suite.ctx, "wegańskie czosnek")
		assert.Equal(suite.T(), "diet=vegan&search=czosnek", result.Query)

		found, err := suite.service.Search(suite.ctx, search.ParseQuery(result.Query))
		require.NoError(suite.T(), err)
		testutils.AssertIDs(suite.T(), []string{"10", "15"}, found.Recipes)
	})

	suite.Run("NoRule_ShouldKeepInput", func() {
		result := suite.service.Classify(suite.ctx, "placki")

		assert.Empty(suite.T(), result.Rule)
		assert.Equal(suite.T(), "placki", result.Term)
		assert.Equal(suite.T(), "/results?search=placki", result.ResultsURL)
	})

	suite.Run("EmptyInput", func() {
		result := suite.service.Classify(suite.ctx, "")

		assert.Equal(suite.T(), ResultsPath, result.ResultsURL)
	})
}

func (suite *CatalogServiceTestSuite) TestCategories() {
	categories := suite.service.Categories(suite.ctx)

	require.Len(suite.T(), categories, 5)
	assert.Equal(suite.T(), "Śniadania", categories[0].Name)
	assert.Equal(suite.T(), "type=breakfast", categories[0].Query)
	assert.Equal(suite.T(), "/results?type=breakfast", categories[0].ResultsURL)
	assert.Equal(suite.T(), "diet=vegetarian", categories[3].Query)
	assert.Equal(suite.T(), "time=15", categories[4].Query)
}

func (suite *CatalogServiceTestSuite) TestCook() {
	suite.Run("TracksCompletedSteps", func() {
		session, err := suite.service.Cook(suite.ctx, "13", []int{0, 2, 2})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "13", session.RecipeID)
		assert.Equal(suite.T(), 3, session.Total)
		assert.Equal(suite.T(), 2, session.Completed)
		assert.InDelta(suite.T(), 66.67, session.Progress, 0.01)
		assert.False(suite.T(), session.Finished)
		assert.True(suite.T(), session.Steps[0].Done)
		assert.False(suite.T(), session.Steps[1].Done)
	})

	suite.Run("AllDone_ShouldFinish", func() {
		session, err := suite.service.Cook(suite.ctx, "13", []int{2, 1, 0})

		require.NoError(suite.T(), err)
		assert.True(suite.T(), session.Finished)
		assert.Equal(suite.T(), 100.0, session.Progress)
	})

	suite.Run("OutOfRange_ShouldFail", func() {
		_, err := suite.service.Cook(suite.ctx, "13", []int{3})

		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeStepOutOfRange))
	})

	suite.Run("UnknownRecipe", func() {
		_, err := suite.service.Cook(suite.ctx, "nope", nil)

		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func (suite *CatalogServiceTestSuite) TestAddRecipe() {
	cmd := inbound.AddRecipeCommand{
		Name:        "  Żurek  ",
		CookingTime: 50,
		Servings:    4,
		Type:        recipe.DishTypeSoup,
		Meat:        recipe.MeatPork,
		Diet:        recipe.DietNone,
		Allergens:   []recipe.Allergen{recipe.AllergenGluten},
		Ingredients: []inbound.IngredientCommand{{Name: "Zakwas", Amount: "500 ml"}},
		Steps:       []string{"Zagotuj zakwas."},
	}

	suite.Run("GeneratesIDAndDate", func() {
		// Act
		added, err := suite.service.AddRecipe(suite.ctx, cmd)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "gen-1", added.ID)
		assert.Equal(suite.T(), "Żurek", added.Name)
		assert.Equal(suite.T(), "2024-03-14", added.DateAdded.String())
		assert.Zero(suite.T(), added.Likes)
		assert.Empty(suite.T(), added.Comments)

		result, err := suite.service.Search(suite.ctx, search.FilterSpec{Meat: recipe.MeatPork})
		require.NoError(suite.T(), err)
		testutils.AssertIDs(suite.T(), []string{"gen-1"}, result.Recipes)
	})

	suite.Run("ExplicitIDAndDate", func() {
		explicit := cmd
		explicit.ID = "zurek"
		explicit.DateAdded = "2023-12-24"

		added, err := suite.service.AddRecipe(suite.ctx, explicit)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "zurek", added.ID)
		assert.Equal(suite.T(), "2023-12-24", added.DateAdded.String())
	})

	suite.Run("DuplicateID_ShouldConflict", func() {
		duplicate := cmd
		duplicate.ID = "1"

		_, err := suite.service.AddRecipe(suite.ctx, duplicate)

		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeDuplicateRecipe))
	})

	suite.Run("Invalid_ShouldNotStore", func() {
		invalid := cmd
		invalid.ID = "broken"
		invalid.Servings = 0

		_, err := suite.service.AddRecipe(suite.ctx, invalid)

		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
		r, _ := suite.repo.GetByID(suite.ctx, "broken")
		assert.Nil(suite.T(), r)
	})

	suite.events.AssertNumberOfCalls(suite.T(), "Publish", 2)
}

func (suite *CatalogServiceTestSuite) TestUpdateRecipe() {
	suite.Run("PreservesLikesCommentsAndDate", func() {
		_, err := suite.service.AddComment(suite.ctx, inbound.AddCommentCommand{RecipeID: "6", Author: "Ola", Content: "Pyszne"})
		require.NoError(suite.T(), err)

		updated, err := suite.service.UpdateRecipe(suite.ctx, inbound.UpdateRecipeCommand{
			RecipeID:    "6",
			Name:        "Tiramisu klasyczne",
			CookingTime: 40,
			Servings:    6,
			Type:        recipe.DishTypeDessert,
			Meat:        recipe.MeatNone,
			Diet:        recipe.DietVegetarian,
			Ingredients: []inbound.IngredientCommand{{Name: "Mascarpone", Amount: "500 g"}},
			Steps:       []string{"Wymieszaj.", "Schłódź."},
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Tiramisu klasyczne", updated.Name)
		assert.Equal(suite.T(), 200, updated.Likes)
		assert.Equal(suite.T(), "2023-10-25", updated.DateAdded.String())
		require.Len(suite.T(), updated.Comments, 1)
		assert.Empty(suite.T(), updated.Allergens)

		stored, err := suite.service.GetRecipe(suite.ctx, "6")
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 40, stored.CookingTime)
	})

	suite.Run("Unknown_ShouldReturnNotFound", func() {
		_, err := suite.service.UpdateRecipe(suite.ctx, inbound.UpdateRecipeCommand{
			RecipeID:    "999",
			Name:        "Nic",
			CookingTime: 1,
			Servings:    1,
			Type:        recipe.DishTypeDrink,
			Meat:        recipe.MeatNone,
			Diet:        recipe.DietNone,
			Ingredients: []inbound.IngredientCommand{{Name: "Woda"}},
			Steps:       []string{"Nalej."},
		})

		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func (suite *CatalogServiceTestSuite) TestAddComment() {
	suite.Run("AppendsDatedComment", func() {
		c, err := suite.service.AddComment(suite.ctx, inbound.AddCommentCommand{RecipeID: "4", Author: " Ola ", Content: "Super!"})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Ola", c.Author)
		assert.Equal(suite.T(), "2024-03-14", c.Date.String())

		r, err := suite.service.GetRecipe(suite.ctx, "4")
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []recipe.Comment{*c}, r.Comments)
	})

	suite.Run("UnknownRecipe_ShouldReturnNotFound", func() {
		_, err := suite.service.AddComment(suite.ctx, inbound.AddCommentCommand{RecipeID: "999", Author: "Ola", Content: "?"})

		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})

	suite.Run("Blank_ShouldFailValidation", func() {
		_, err := suite.service.AddComment(suite.ctx, inbound.AddCommentCommand{RecipeID: "4", Author: "Ola", Content: "  "})

		assert.True(suite.T(), apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func TestService_PublishFailureDoesNotFailUseCase(t *testing.T) {
	ctx := context.Background()
	events := new(testutils.MockEventPublisher)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(evs []shared.DomainEvent) bool {
		return len(evs) == 1 && evs[0].EventName() == "recipe.comment.added"
	})).Return(errors.New("bus down"))

	repo := memory.NewRecipeRepository([]recipe.Recipe{testutils.NewRecipeBuilder("1").Build()})
	service := NewService(repo, security.NewValidationService(zap.NewNop()), events, zap.NewNop())

	c, err := service.AddComment(ctx, inbound.AddCommentCommand{RecipeID: "1", Author: "Ola", Content: "Dobre"})

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	events.AssertExpectations(t)
}

func TestService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(testutils.MockRecipeRepository)
	repo.On("GetAll", mock.Anything).Return(nil, errors.New("connection reset"))
	repo.On("GetByID", mock.Anything, "1").Return(nil, errors.New("connection reset"))

	service := NewService(repo, security.NewValidationService(zap.NewNop()), nil, zap.NewNop())

	_, err := service.Search(ctx, search.FilterSpec{})
	assert.True(t, apperrors.Is(err, apperrors.CodeStorageError))

	_, err = service.Random(ctx, search.FilterSpec{})
	assert.True(t, apperrors.Is(err, apperrors.CodeStorageError))

	_, err = service.GetRecipe(ctx, "1")
	assert.True(t, apperrors.Is(err, apperrors.CodeStorageError))
}

func TestService_RandomIsUniform(t *testing.T) {
	ctx := context.Background()
	recipes := testutils.NewRecipeFactory(7).Recipes(4)
	service := NewService(memory.NewRecipeRepository(recipes), security.NewValidationService(zap.NewNop()), nil, zap.NewNop())

	seen := make(map[string]int)
	for i := 0; i < 400; i++ {
		result, err := service.Random(ctx, search.FilterSpec{})
		require.NoError(t, err)
		require.True(t, result.Found)
		seen[result.Recipe.ID]++
	}

	assert.Len(t, seen, 4)
}
