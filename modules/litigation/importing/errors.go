package importing

import "fmt"

// ValidationError marks a row failure that is expected and user-correctable,
// as opposed to storage or programming errors. The message is shown to the
// uploader verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
