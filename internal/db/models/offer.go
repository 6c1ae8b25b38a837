package models

import (
	"gorm.io/gorm"
)

// Offer is a priced proposal from a buyer to a seller agent. It is immutable
// after creation except for EscrowAddress, assigned when the verifier funds
// the paired job, and Status, which mirrors the job's status.
type Offer struct {
	gorm.Model
	SellerID      uint      `json:"seller_id" gorm:"not null;index"` // ID from the agents table
	BuyerID       uint      `json:"buyer_id" gorm:"not null;index"`  // ID from the users table
	Amount        float64   `json:"amount" gorm:"not null"`
	Currency      string    `json:"currency" gorm:"not null"` // free-form code, custom tokens allowed
	Description   string    `json:"description" gorm:"not null;type:text"`
	EscrowAddress string    `json:"escrow_address,omitempty" gorm:""`
	Status        JobStatus `json:"status" gorm:"not null;index"`
}
