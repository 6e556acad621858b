// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across client/service/repo layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAuthRequired indicates an authenticated call attempted with no token present.
	ErrAuthRequired = errors.New("authentication required")

	// ErrValidation indicates a client-side constraint violation caught before dispatch.
	ErrValidation = errors.New("validation failed")

	// ErrNetwork indicates a transport-level failure with no HTTP response at all.
	ErrNetwork = errors.New("network failure")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")
)
