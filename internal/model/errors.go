package model

import "errors"

var (
	// Task errors
	ErrEmptyTitle         = errors.New("task title cannot be empty")
	ErrTitleTooLong       = errors.New("task title exceeds maximum length")
	ErrDescriptionTooLong = errors.New("task description exceeds maximum length")
	ErrInvalidPriority    = errors.New("invalid priority value")

	// Filter errors
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")

	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
)
