package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ViewingPending   = "PENDING"
	ViewingConfirmed = "CONFIRMED"
	ViewingCancelled = "CANCELLED"
	ViewingCompleted = "COMPLETED"
)

// ViewingRequest tracks a requested property viewing. Each reached state
// stamps the acting user and time.
type ViewingRequest struct {
	gorm.Model
	PropertyID    uint       `json:"propertyID" gorm:"index;not null"`
	Property      Property   `json:"property" gorm:"foreignKey:PropertyID"`
	CustomerID    uint       `json:"customerID" gorm:"index;not null"`
	ScheduledAt   *time.Time `json:"scheduledAt"`
	Notes         string     `json:"notes" gorm:"size:1024"`
	Status        string     `json:"status" gorm:"size:16;index"` // PENDING | CONFIRMED | CANCELLED | COMPLETED
	ConfirmedByID *uint      `json:"confirmedByID"`
	ConfirmedAt   *time.Time `json:"confirmedAt"`
	CompletedByID *uint      `json:"completedByID"`
	CompletedAt   *time.Time `json:"completedAt"`
	CancelledByID *uint      `json:"cancelledByID"`
	CancelledAt   *time.Time `json:"cancelledAt"`
}
