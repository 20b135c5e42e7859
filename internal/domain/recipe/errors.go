package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrMissingID          = errors.New("recipe id is required")
	ErrNameTooShort       = errors.New("recipe name must be at least 3 characters")
	ErrNameTooLong        = errors.New("recipe name must not exceed 200 characters")
	ErrDescriptionTooLong = errors.New("recipe description must not exceed 2000 characters")
	ErrInvalidCookingTime = errors.New("cooking time must be greater than 0")
	ErrInvalidServings    = errors.New("servings must be greater than 0")
	ErrNegativeLikes      = errors.New("likes cannot be negative")
	ErrUnknownDishType    = errors.New("unknown dish type")
	ErrUnknownMeat        = errors.New("unknown meat category")
	ErrUnknownDiet        = errors.New("unknown diet")
	ErrUnknownAllergen    = errors.New("unknown allergen")
	ErrNoIngredients      = errors.New("recipe must have at least one ingredient")
	ErrNoSteps            = errors.New("recipe must have at least one step")

	// Repository errors
	ErrDuplicateID = errors.New("recipe id already exists")
)
