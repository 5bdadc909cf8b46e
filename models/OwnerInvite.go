package models

import (
	"time"

	"gorm.io/gorm"
)

// OwnerInvite elevates a user's role when redeemed. A code is usable while
// active, under its use limit, and before expiry.
type OwnerInvite struct {
	gorm.Model
	Code      string     `json:"code" gorm:"uniqueIndex;size:64;not null"`
	Role      string     `json:"role" gorm:"size:16"` // role granted on redemption
	IsActive  *bool      `json:"isActive" gorm:"default:true"`
	UsedCount int        `json:"usedCount"`
	UseLimit  int        `json:"useLimit" gorm:"default:1"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// Usable reports whether the invite can still be redeemed at the given time.
func (i *OwnerInvite) Usable(now time.Time) bool {
	if i.IsActive == nil || !*i.IsActive {
		return false
	}
	limit := i.UseLimit
	if limit <= 0 {
		limit = 1 // implicit single use
	}
	if i.UsedCount >= limit {
		return false
	}
	if i.ExpiresAt != nil && !i.ExpiresAt.After(now) {
		return false
	}
	return true
}
