package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrTweetNotFound      = errors.New("tweet not found")
	ErrRequestInProgress  = errors.New("a request with this idempotency key is already in progress")
)

// ValidationError is returned for malformed, missing or out-of-range input.
// The message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

var (
	ErrCredentialsRequired = Invalid("username and password are required")
	ErrUsernameTooShort    = Invalid("username must be at least 3 characters long")
	ErrUsernameTooLong     = Invalid("username must be at most 32 characters long")
	ErrPasswordTooShort    = Invalid("password must be at least 6 characters long")
	ErrPasswordTooLong     = Invalid("password must be at most 72 bytes long")
	ErrContentRequired     = Invalid("content is required")
	ErrContentTooLong      = Invalid("content must be 280 characters or less")
	ErrTooManyImages       = Invalid("a tweet can carry at most 4 images")
	ErrInvalidImage        = Invalid("images must be image files within the upload size limit")
	ErrInvalidRole         = Invalid("valid role is required (user, editor, or admin)")
	ErrSelfRoleChange      = Invalid("cannot change your own role")
	ErrSelfDelete          = Invalid("cannot delete your own account")
	ErrSelfFollow          = Invalid("cannot follow yourself")
)

// IsValidation reports whether err carries a client-facing validation message.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
