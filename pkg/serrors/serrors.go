package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is a coded error suitable for returning to API clients.
type Base struct {
	Code    string
	Message string
}

func (e *Base) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message string) *Base {
	return &Base{Code: code, Message: message}
}

// ValidationErrors maps a field name to a human-readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Has() bool { return len(v) > 0 }

// FromValidator flattens validator.ValidationErrors into per-field messages.
// The label callback maps a struct field name to its display name; an empty
// return falls back to the field name itself.
func FromValidator(errs validator.ValidationErrors, label func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		name := fe.Field()
		if label != nil {
			if l := label(name); l != "" {
				name = l
			}
		}
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = fmt.Sprintf("%s is required", name)
		case "oneof":
			out[fe.Field()] = fmt.Sprintf("%s must be one of: %s", name, fe.Param())
		case "datetime":
			out[fe.Field()] = fmt.Sprintf("%s must be a date in %s format", name, fe.Param())
		case "max":
			out[fe.Field()] = fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		default:
			out[fe.Field()] = fmt.Sprintf("%s is invalid", name)
		}
	}
	return out
}
