package schedule

import (
	"errors"
	"fmt"
)

// ValidationError rejects a mutation that would violate a documented
// invariant. The offending record is left untouched.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{
		Code:    "validationError",
		Message: msg,
	}
}

// IsValidation reports whether err is a ValidationError, so handlers can
// distinguish a rejected request from a store failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
