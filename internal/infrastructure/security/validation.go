// Package security provides input validation for commands entering the catalog
package security

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/cookbook/catalog/pkg/errors"
)

// ValidationService validates command structs using their validate tags
type ValidationService struct {
	logger    *zap.Logger
	validator *validator.Validate
}

// NewValidationService creates a new validation service
func NewValidationService(logger *zap.Logger) *ValidationService {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	validate.RegisterValidation("not_blank", validateNotBlank)

	return &ValidationService{
		logger:    logger.Named("validation"),
		validator: validate,
	}
}

// validateNotBlank rejects strings made only of whitespace
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimFunc(fl.Field().String(), unicode.IsSpace) != ""
}

// ValidateStruct validates s and returns a VALIDATION_FAILED AppError
// listing every offending field.
func (v *ValidationService) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		v.logger.Error("Validator failed", zap.Error(err))
		return apperrors.NewInternalError("validation could not be performed").WithCause(err)
	}

	fieldErrors := make([]apperrors.ValidationError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, apperrors.ValidationError{
			Field:   e.Namespace(),
			Value:   e.Value(),
			Tag:     e.Tag(),
			Message: message(e),
		})
	}

	return apperrors.NewValidationErrors(fieldErrors)
}

func message(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "not_blank":
		return fmt.Sprintf("%s must not be blank", field)
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s items", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in the format %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
