package models

import (
	"gorm.io/gorm"
)

const (
	GuestTypeAdult = "adult"
	GuestTypeChild = "child"
)

// BookingGuest is one numbered slot on a booking. Adults come first, children
// are numbered after all adults.
type BookingGuest struct {
	gorm.Model
	BookingID      uint   `json:"bookingID" gorm:"index;not null"`
	Number         int    `json:"number"` // 1-based within the booking
	GuestType      string `json:"guestType" gorm:"size:8"` // adult | child
	FirstName      string `json:"firstName" gorm:"size:128"`
	LastName       string `json:"lastName" gorm:"size:128"`
	PassportNumber string `json:"passportNumber" gorm:"size:64"`
}
