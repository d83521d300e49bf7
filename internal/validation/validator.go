// Package validation wraps go-playground/validator with JSON field names and
// first-error reporting.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"ojoto/internal/types"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("phone", validatePhone)
		_ = validate.RegisterValidation("notblank", validateNotBlank)
	})
	return validate
}

// Digits with an optional leading '+'.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{3,15}$`)

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Struct validates s and returns the first failure as a *types.ValidationError.
// Fields are checked in declaration order.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldError(ve[0], ve[0].Field())
	}
	return err
}

// Var validates a single value, naming it field in the error.
func Var(field string, v any, tag string) error {
	err := get().Var(v, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldError(ve[0], field)
	}
	return err
}

func fieldError(e validator.FieldError, field string) error {
	switch e.Tag() {
	case "required", "notblank":
		return types.Required(field)
	case "email":
		return types.Invalid(field, "must be a valid email address")
	case "phone":
		return types.Invalid(field, "must be a valid phone number")
	case "latitude":
		return types.Invalid(field, "must be a valid latitude (-90 to 90)")
	case "longitude":
		return types.Invalid(field, "must be a valid longitude (-180 to 180)")
	case "min":
		return types.Invalid(field, "must be at least "+e.Param()+" characters")
	case "max":
		return types.Invalid(field, "must be at most "+e.Param()+" characters")
	default:
		return types.Invalid(field, "is invalid")
	}
}
