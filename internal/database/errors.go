package database

import "errors"

var (
	// ErrWalkNotFound is returned when no stored walk matches an ID.
	ErrWalkNotFound = errors.New("walk not found")

	// ErrAmbiguousID is returned when an ID prefix matches more than one walk.
	ErrAmbiguousID = errors.New("walk ID prefix is ambiguous")

	// ErrInvalidWalk is returned when a walk cannot be stored as given.
	ErrInvalidWalk = errors.New("invalid walk")
)
