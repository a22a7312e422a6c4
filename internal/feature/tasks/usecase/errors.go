// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task exists with the given ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidDate is returned when a submitted date does not parse as
	// YYYY-MM-DD. The operation performs no mutation in that case.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD form")

	// ErrNotOwner is returned when a task exists but belongs to another user.
	ErrNotOwner = errors.New("task belongs to another user")
)
