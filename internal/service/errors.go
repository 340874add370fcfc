package service

import (
	"errors"
)

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller is not the recipe's author.
	ErrForbidden = errors.New("only the author may modify this recipe")
	// ErrInvalidCredentials is returned for any login failure so callers
	// cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists means the registration email is already taken.
	ErrUserExists = errors.New("user already exists")
)

// ValidationError carries field-keyed messages for a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "recipe validation failed"
}
