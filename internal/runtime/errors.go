package runtime

import (
	"errors"
	"fmt"
)

// Host error kinds. User-defined kinds start at UserErrorOffset.
const (
	CodeMissingArgument uint32 = 2
	CodeInvalidArgument uint32 = 3

	UserErrorOffset uint32 = 1 << 16
)

// APIError is an error kind surfaced to the caller of a failed invocation.
// Two APIErrors match under errors.Is when their codes are equal.
type APIError struct {
	Code uint32
}

// Host-level argument failures.
var (
	ErrMissingArgument = &APIError{Code: CodeMissingArgument}
	ErrInvalidArgument = &APIError{Code: CodeInvalidArgument}
)

// UserError returns the contract-defined error kind n.
func UserError(n uint16) *APIError {
	return &APIError{Code: UserErrorOffset + uint32(n)}
}

// IsUser reports whether e is a contract-defined error kind.
func (e *APIError) IsUser() bool {
	return e.Code >= UserErrorOffset
}

func (e *APIError) Error() string {
	switch {
	case e.Code == CodeMissingArgument:
		return fmt.Sprintf("api error: missing argument (%d)", e.Code)
	case e.Code == CodeInvalidArgument:
		return fmt.Sprintf("api error: invalid argument (%d)", e.Code)
	case e.IsUser():
		return fmt.Sprintf("api error: user error %d (%d)", e.Code-UserErrorOffset, e.Code)
	default:
		return fmt.Sprintf("api error: %d", e.Code)
	}
}

// Is matches any *APIError carrying the same code.
func (e *APIError) Is(target error) bool {
	var other *APIError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// ErrorKind extracts the APIError code carried by err.
func ErrorKind(err error) (uint32, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return 0, false
}
