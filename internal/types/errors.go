// README: Validation error shared by module services and mapped to 400 by handlers.
package types

import "errors"

// ValidationError reports the first offending field of a request.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + " " + e.Msg
}

func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

func Required(field string) error {
	return &ValidationError{Field: field, Msg: "is required"}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
