package service

import "errors"

// Domain errors surfaced to the API layer. Handlers translate these
// into HTTP status codes.
var (
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailInvalid       = errors.New("email is not a valid address")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid or unknown token")
	ErrUserNotFound       = errors.New("user not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrInvalidReference   = errors.New("referenced tag or ingredient does not exist")
)
