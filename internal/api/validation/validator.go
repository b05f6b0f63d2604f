package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	"github.com/osa911/contactform/internal/api/dto/common"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// StructValidator validates a bound request struct
type StructValidator interface {
	Struct(s interface{}) error
}

// New returns a validator with the custom validators registered and
// field names reported by their JSON tag
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("email", validateEmail)
}

// validateEmail checks if the email is valid
func validateEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	if strings.Contains(email, "..") {
		return false
	}
	return emailRegex.MatchString(email)
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []common.ValidationError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		out := make([]common.ValidationError, 0, len(validationErrors))
		for _, e := range validationErrors {
			out = append(out, common.ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Param:   e.Param(),
				Message: describe(e),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []common.ValidationError{{
			Field:   field,
			Tag:     "type",
			Param:   typeErr.Type.String(),
			Message: fmt.Sprintf("%s must be a %s", field, typeErr.Type.String()),
		}}
	}

	if errors.Is(err, io.EOF) {
		return []common.ValidationError{{
			Field:   "body",
			Tag:     "required",
			Message: "request body is required",
		}}
	}

	return []common.ValidationError{{
		Field:   "body",
		Tag:     "json",
		Message: "request body must be a valid JSON object",
	}}
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	default:
		return fmt.Sprintf("%s failed the %s check", e.Field(), e.Tag())
	}
}
