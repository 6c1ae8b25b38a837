// Package services implements the marketplace business logic on top of the
// repository layer.
package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all services. Handlers translate these into HTTP
// status codes at the boundary; nothing below the handlers speaks HTTP.
var (
	// ErrUnauthorized indicates a missing or invalid credential. Verification
	// deliberately reports unknown and mismatched tokens with this same error
	// so callers cannot probe which tokens exist.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates a credential whose lifetime has elapsed
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked indicates a credential that was logically destroyed
	ErrTokenRevoked = errors.New("token revoked")

	// ErrForbidden indicates a valid credential presented by the wrong principal
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the entity is absent. Also used to mask ownership
	// mismatches on tokens.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates a status guard rejected the transition
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInput indicates a validation failure on a request value
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates a uniqueness violation, e.g. an already-claimed handle
	ErrConflict = errors.New("conflict")

	// ErrPersistence indicates a storage layer failure after rollback
	ErrPersistence = errors.New("persistence failure")
)

// Refinements of ErrForbidden for transitions reserved to a specific
// principal. Both satisfy errors.Is(err, ErrForbidden); handlers match the
// refined sentinel to pick the user-facing message.
var (
	// ErrNotVerifier indicates a transition reserved for the verifier principal
	ErrNotVerifier = fmt.Errorf("%w: caller is not the verifier", ErrForbidden)

	// ErrNotSeller indicates a transition reserved for the job's seller agent
	ErrNotSeller = fmt.Errorf("%w: caller is not the seller", ErrForbidden)
)
