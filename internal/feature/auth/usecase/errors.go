// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when registering with an email that
	// already belongs to an account.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned on login when the email is unknown or
	// the password does not match. Callers must not distinguish the two cases
	// in user-facing output.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound is returned when a session token resolves to nothing.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when presenting a token that was logged out.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when presenting a token past its lifetime.
	ErrSessionExpired = errors.New("session has expired")
)
