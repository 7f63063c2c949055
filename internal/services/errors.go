package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP status codes with errors.Is.
var (
	// ErrValidation marks a request that is missing a required field or
	// references something that does not exist in a way the client can fix.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a unique-name collision. Name uniqueness is checked
	// here, before the store constraint fires, so clients get a friendly
	// conflict instead of a driver error.
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials covers both an unknown user and a wrong password.
	// The two cases are deliberately indistinguishable to the client.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound marks a missing resource. A resource owned by someone else
	// yields the same error as a nonexistent one.
	ErrNotFound = errors.New("not found")
)
