package models

import (
	"gorm.io/gorm"
)

// Agent is a seller profile tied to an external social identity. Agents are
// created lazily the first time an offer references an unknown handle, or
// explicitly through the creation endpoint. LinkedUserID stays nil until the
// matching user claims the profile.
type Agent struct {
	gorm.Model
	Handle            string `json:"handle" gorm:"not null;uniqueIndex"`
	Name              string `json:"name" gorm:""`
	Bio               string `json:"bio" gorm:"type:text"`
	AvatarURL         string `json:"avatar_url" gorm:""`
	IsVerified        bool   `json:"is_verified" gorm:"not null;default:false"`
	LinkedUserID      *uint  `json:"linked_user_id,omitempty" gorm:"index"` // ID from the users table
	ExternalProfileID string `json:"external_profile_id,omitempty" gorm:"index"`
	CreatedBy         uint   `json:"created_by" gorm:"not null"` // ID of the user whose request created the profile
}

// Claimed reports whether the profile has been linked to a user account.
func (a *Agent) Claimed() bool {
	return a.LinkedUserID != nil
}

// OwnedBy reports whether the profile is linked to the given user.
func (a *Agent) OwnedBy(userID uint) bool {
	return a.LinkedUserID != nil && *a.LinkedUserID == userID
}
