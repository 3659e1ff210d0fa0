package tracker

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the directory, session, and repository. The
// controller matches on them with errors.Is to pick a user-facing message.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError reports malformed or conflicting input: a duplicate
// username, an empty password on create, missing task fields, or a start
// date after the end date.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
