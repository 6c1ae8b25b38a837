package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Database field names used by guarded status updates
const (
	// JobFundedAtField is the database field name for the funding timestamp
	JobFundedAtField = "funded_at"
	// JobStartedAtField is the database field name for the start-of-work timestamp
	JobStartedAtField = "started_at"
	// JobDeliveredAtField is the database field name for the delivery timestamp
	JobDeliveredAtField = "delivered_at"
	// JobCompletedAtField is the database field name for the completion timestamp
	JobCompletedAtField = "completed_at"
	// JobCancelledAtField is the database field name for the cancellation timestamp
	JobCancelledAtField = "cancelled_at"
	// JobDeliveredURLField is the database field name for the delivered artifact URL
	JobDeliveredURLField = "delivered_url"
)

// JobStatus represents the current state of a job in its lifecycle
type JobStatus int

// Job status constants
const (
	// JobStatusUnknown represents an unknown or invalid job status
	JobStatusUnknown JobStatus = iota
	// JobStatusCreated indicates the job exists but no funds are escrowed yet
	JobStatusCreated
	// JobStatusFunded indicates the verifier attested that escrow funds arrived
	JobStatusFunded
	// JobStatusStarted indicates the seller agent accepted and began the work
	JobStatusStarted
	// JobStatusDelivered indicates the seller agent submitted a deliverable
	JobStatusDelivered
	// JobStatusCompleted indicates the verifier attested the job is settled
	JobStatusCompleted
	// JobStatusCancelled indicates the job was cancelled before completion
	JobStatusCancelled
)

var jobStatusNames = []string{
	"unknown",
	"created",
	"funded",
	"started",
	"delivered",
	"completed",
	"cancelled",
}

// Job is the unit of work tracked through the status lifecycle. It is created
// atomically with its Offer and is never deleted, only transitioned. Each
// lifecycle timestamp is set exactly once, by the transition that reaches it.
type Job struct {
	gorm.Model
	OfferID      uint       `json:"offer_id" gorm:"not null;uniqueIndex"`
	SellerID     uint       `json:"seller_id" gorm:"not null;index"` // ID from the agents table
	BuyerID      uint       `json:"buyer_id" gorm:"not null;index"`  // ID from the users table
	Status       JobStatus  `json:"status" gorm:"not null;index"`
	FundedAt     *time.Time `json:"funded_at,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	DeliveredURL string     `json:"delivered_url,omitempty" gorm:"type:text"`
}

// Terminal reports whether the status is absorbing; no transition leaves it.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// ParseJobStatus converts a string representation of a job status to JobStatus type
func ParseJobStatus(str string) (JobStatus, error) {
	for i, status := range jobStatusNames {
		if status == str {
			return JobStatus(i), nil
		}
	}

	return JobStatusUnknown, fmt.Errorf("invalid job status: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for JobStatus
func (s JobStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for JobStatus
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseJobStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

func (s JobStatus) String() string {
	if int(s) < 0 || int(s) >= len(jobStatusNames) {
		return jobStatusNames[JobStatusUnknown]
	}
	return jobStatusNames[s]
}
