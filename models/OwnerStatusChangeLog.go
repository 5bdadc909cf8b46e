package models

import (
	"time"
)

// OwnerStatusChangeLog is append-only. Rows are never updated or deleted.
type OwnerStatusChangeLog struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	PropertyID     uint      `json:"propertyID" gorm:"index;not null"`
	OwnerID        uint      `json:"ownerID" gorm:"index;not null"`
	PreviousStatus string    `json:"previousStatus" gorm:"size:16"`
	NewStatus      string    `json:"newStatus" gorm:"size:16;index"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
}
