package services

import "errors"

var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("insufficient permissions")

	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")

	ErrEngineerNotFound   = errors.New("engineer not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
)
