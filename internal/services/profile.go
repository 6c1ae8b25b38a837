package services

import (
	"context"
	"errors"
)

// ErrProfileNotFound is returned by a ProfileLookup when the external network
// has no profile for the requested handle. Any other error from a lookup is
// treated as transient.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is the externally-sourced data used to populate an agent row.
type Profile struct {
	Name       string
	Bio        string
	AvatarURL  string
	ExternalID string
}

// ProfileLookup resolves a handle against the external social network. The
// directory calls it once per unknown handle; implementations perform no
// writes to this system.
type ProfileLookup interface {
	Lookup(ctx context.Context, handle string) (*Profile, error)
}
