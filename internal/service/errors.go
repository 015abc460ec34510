package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrDuplicateUsername  = errors.New("username already taken")
)

// MissingFieldError rejects a write before it reaches storage when a required
// field is blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}

func missingField(name string) error { return &MissingFieldError{Field: name} }
