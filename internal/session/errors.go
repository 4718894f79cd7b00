package session

import "errors"

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrLoginFailed      = errors.New("login failed")
	ErrSignupFailed     = errors.New("signup failed")
	ErrLogoutFailed     = errors.New("logout failed")
)

// Error carries the message shown to the user alongside the failure class
// and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
