package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnauthenticated is returned when a request carries no usable session.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrSessionExpired is returned when a session exists but has expired.
var ErrSessionExpired = errors.New("session expired")

// ErrForbidden is returned when an authenticated user lacks administrator rights.
var ErrForbidden = errors.New("administrator access required")

// ErrSessionTampered is returned when a stored session fails integrity checks.
var ErrSessionTampered = errors.New("session failed integrity check")
