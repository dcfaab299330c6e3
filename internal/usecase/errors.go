package usecase

import "errors"

// Sentinels shared by the services. Handlers map them to HTTP statuses, so
// services wrap domain errors with one of these and keep the domain error in
// the chain.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDependencyUnavailable marks catalog lookups that failed while joining entity data.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
