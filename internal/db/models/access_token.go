package models

import (
	"time"

	"gorm.io/gorm"
)

// AccessToken is an opaque bearer credential for machine-to-machine calls.
// Only the SHA-256 hash of the raw secret is stored; the raw value is returned
// exactly once at creation and is unrecoverable afterwards. Revocation is
// logical: RevokedAt is set once and never cleared.
type AccessToken struct {
	gorm.Model
	UserID    uint       `json:"user_id" gorm:"not null;index"`
	Name      string     `json:"name" gorm:"not null"` // label, not unique
	TokenHash string     `json:"-" gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Revoked reports whether the token has been logically destroyed.
func (t *AccessToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token's lifetime has elapsed at the given time.
func (t *AccessToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
