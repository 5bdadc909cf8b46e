package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// RentalBooking owns its guests and messages; both cascade with the booking.
type RentalBooking struct {
	gorm.Model
	PropertyID        uint             `json:"propertyID" gorm:"index;not null"`
	Property          Property         `json:"property" gorm:"foreignKey:PropertyID"`
	CustomerID        uint             `json:"customerID" gorm:"index;not null"`
	Customer          User             `json:"customer" gorm:"foreignKey:CustomerID"`
	CheckIn           time.Time        `json:"checkIn"`
	CheckOut          time.Time        `json:"checkOut"`
	Adults            int              `json:"adults"`
	Children          int              `json:"children"`
	PassportsRequired int              `json:"passportsRequired"`
	Status            string           `json:"status" gorm:"size:16;index"`
	Guests            []BookingGuest   `json:"guests" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Messages          []BookingMessage `json:"messages" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
}
