package contracts

import "errors"

// ErrNotFound is returned when a contract id does not resolve to a record.
var ErrNotFound = errors.New("Contract not found")

// ValidationError reports a malformed or contradictory query parameter
// combination. It is always the caller's fault and maps to a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
