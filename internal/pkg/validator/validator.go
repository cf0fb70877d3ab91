package validator

import (
	"errors"

	"minicrm/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks the `validate` tags of v and returns field -> failed tag,
// or nil when v is valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// Check is Validate wrapped into a *domain.ValidationError.
func Check(v interface{}) error {
	if fields := Validate(v); fields != nil {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Messages turns failed tags into short human messages for forms.
func Messages(err error) map[string]string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}

	out := make(map[string]string, len(verr.Fields))
	for field, tag := range verr.Fields {
		out[field] = message(tag)
	}
	return out
}

func message(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "is too short"
	case "oneof":
		return "is not allowed"
	case "gte", "decimal":
		return "must be a non-negative number"
	default:
		return "is invalid"
	}
}
