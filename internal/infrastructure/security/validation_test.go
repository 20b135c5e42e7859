package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cookbook/catalog/internal/domain/recipe"
	"github.com/cookbook/catalog/internal/ports/inbound"
	apperrors "github.com/cookbook/catalog/pkg/errors"
)

func validCommand() inbound.AddRecipeCommand {
	return inbound.AddRecipeCommand{
		Name:        "Barszcz czerwony",
		CookingTime: 60,
		Servings:    4,
		Type:        "soup",
		Meat:        "none",
		Diet:        "vegan",
		DateAdded:   "2024-01-10",
		Allergens:   nil,
		Ingredients: []inbound.IngredientCommand{{Name: "Buraki", Amount: "1 kg"}},
		Steps:       []string{"Ugotuj buraki."},
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	v := NewValidationService(zap.NewNop())

	assert.NoError(t, v.ValidateStruct(validCommand()))
}

func TestValidateStruct_ReportsEveryField(t *testing.T) {
	v := NewValidationService(zap.NewNop())

	cmd := validCommand()
	cmd.Name = "   "
	cmd.Servings = 0
	cmd.Type = "brunch"
	cmd.Allergens = []recipe.Allergen{"sesame"}
	cmd.Steps = nil

	err := v.ValidateStruct(cmd)
	require.Error(t, err)

	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	fieldErrors, ok := appErr.Metadata["validation_errors"].(apperrors.ValidationErrors)
	require.True(t, ok)

	fields := make(map[string]string)
	for _, fe := range fieldErrors {
		fields[fe.Field] = fe.Tag
	}

	assert.Equal(t, "not_blank", fields["AddRecipeCommand.name"])
	assert.Equal(t, "gt", fields["AddRecipeCommand.servings"])
	assert.Equal(t, "oneof", fields["AddRecipeCommand.type"])
	assert.Equal(t, "oneof", fields["AddRecipeCommand.allergens[0]"])
	assert.Equal(t, "required", fields["AddRecipeCommand.steps"])
}

func TestValidateStruct_Dates(t *testing.T) {
	v := NewValidationService(zap.NewNop())

	cmd := validCommand()
	cmd.DateAdded = "10.01.2024"

	assert.True(t, apperrors.Is(v.ValidateStruct(cmd), apperrors.CodeValidationFailed))

	cmd.DateAdded = ""
	assert.NoError(t, v.ValidateStruct(cmd))
}

func TestValidateStruct_Comment(t *testing.T) {
	v := NewValidationService(zap.NewNop())

	assert.NoError(t, v.ValidateStruct(inbound.AddCommentCommand{RecipeID: "1", Author: "Ola", Content: "Super"}))
	assert.Error(t, v.ValidateStruct(inbound.AddCommentCommand{RecipeID: "1", Author: "Ola", Content: " \t"}))
}
