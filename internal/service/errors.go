package service

import "errors"

// Domain failures. Handlers compare with errors.Is and translate each one
// into a flash message plus a redirect.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateCategory  = errors.New("category name already exists")
	ErrCategoryInUse      = errors.New("category has associated expenses")
	ErrUnauthorized       = errors.New("record belongs to another user")
	ErrNotFound           = errors.New("record not found")
	ErrSessionInvalid     = errors.New("session expired or revoked")
	ErrValidation         = errors.New("invalid input")
)
