package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:256"`
	Password       string     `json:"-"`
	Role           string     `json:"role" gorm:"size:16;index"` // customer | owner | agent | admin
	SocialLogin    bool       `json:"socialLogin"`
	SocialProvider string     `json:"socialProvider" gorm:"size:16"` // Google | Apple
	AvatarURL      string     `json:"avatarURL" gorm:"size:512"`
	PushToken      string     `json:"-" gorm:"size:256"`
	LastLoginAt    *time.Time `json:"lastLoginAt"`
}

// IsStaff reports whether the user acts on behalf of the portal (dashboard access).
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleAgent
}
