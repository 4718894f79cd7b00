package booking

import "errors"

var (
	ErrNotLoggedIn         = errors.New("please login to book an appointment")
	ErrNoImage             = errors.New("no image selected")
	ErrUploadFailed        = errors.New("image upload failed")
	ErrUploadURLFailed     = errors.New("failed to get upload URL")
	ErrImageTransferFailed = errors.New("failed to upload image")
	ErrBookingFailed       = errors.New("failed to book appointment")
)

// Error is a booking failure with the message meant for the user.
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
