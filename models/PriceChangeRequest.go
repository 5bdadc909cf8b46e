package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PriceRequestPending     = "PENDING"
	PriceRequestApproved    = "APPROVED"
	PriceRequestRejected    = "REJECTED"
	PriceRequestAutoApplied = "AUTO_APPLIED"
)

// PriceChangeRequest is an owner-submitted price proposal that a portal
// admin or agent resolves, or a policy sweep applies automatically.
type PriceChangeRequest struct {
	gorm.Model
	PropertyID      uint       `json:"propertyID" gorm:"index;not null"`
	Property        Property   `json:"property" gorm:"foreignKey:PropertyID"`
	OwnerID         uint       `json:"ownerID" gorm:"index;not null"`
	Owner           User       `json:"owner" gorm:"foreignKey:OwnerID"`
	OldPrice        float64    `json:"oldPrice"`
	ProposedPrice   float64    `json:"proposedPrice"`
	Status          string     `json:"status" gorm:"size:16;index"` // PENDING | APPROVED | REJECTED | AUTO_APPLIED
	RejectionReason string     `json:"rejectionReason" gorm:"size:512"`
	ResolvedByID    *uint      `json:"resolvedByID"`
	ResolvedAt      *time.Time `json:"resolvedAt"`
}

// Terminal reports whether the request has reached a final state.
func (r *PriceChangeRequest) Terminal() bool {
	return r.Status != PriceRequestPending
}
