package models

import (
	"gorm.io/gorm"
)

const (
	MessageRoleCustomer = "customer"
	MessageRoleAgent    = "agent"
)

// BookingMessage belongs to the two-party thread on a booking. IsRead is
// scoped per viewing role: a viewer only flips messages authored by the
// opposite role.
type BookingMessage struct {
	gorm.Model
	BookingID  uint   `json:"bookingID" gorm:"index;not null"`
	SenderID   uint   `json:"senderID" gorm:"not null"`
	SenderRole string `json:"senderRole" gorm:"size:16;index"` // customer | agent
	Body       string `json:"body" gorm:"size:5000"`
	IsRead     bool   `json:"isRead" gorm:"index"`
}
