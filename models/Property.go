package models

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PropertyStatusActive   = "ACTIVE"
	PropertyStatusSold     = "SOLD"
	PropertyStatusRented   = "RENTED"
	PropertyStatusInactive = "INACTIVE"
)

const (
	PropertyTypeForSale = "FOR_SALE"
	PropertyTypeForRent = "FOR_RENT"
)

type Property struct {
	gorm.Model
	OwnerID        uint           `json:"ownerID" gorm:"index;not null"`
	Owner          User           `json:"owner" gorm:"foreignKey:OwnerID"`
	Title          string         `json:"title" gorm:"size:256"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Currency       string         `json:"currency" gorm:"size:8"`
	Status         string         `json:"status" gorm:"size:16;index"` // ACTIVE | SOLD | RENTED | INACTIVE
	PropertyType   string         `json:"propertyType" gorm:"size:16;index"` // FOR_SALE | FOR_RENT
	ListingNumber  string         `json:"listingNumber" gorm:"uniqueIndex;size:32"`
	BiddingEnabled bool           `json:"biddingEnabled"`
	Address        string         `json:"address" gorm:"size:256"`
	City           string         `json:"city" gorm:"size:128;index"`
	PostalCode     string         `json:"postalCode" gorm:"size:16"`
	Bedrooms       int            `json:"bedrooms"`
	Bathrooms      int            `json:"bathrooms"`
	Area           int            `json:"area"`
	Images         datatypes.JSON `json:"images"`
	Features       datatypes.JSON `json:"features"`
}

// AfterCreate assigns the permanent listing number. It derives from the row ID,
// so it is unique and never reassigned.
func (p *Property) AfterCreate(tx *gorm.DB) error {
	if p.ListingNumber != "" {
		return nil
	}
	p.ListingNumber = fmt.Sprintf("LST-%06d", p.ID)
	return tx.Model(p).UpdateColumn("listing_number", p.ListingNumber).Error
}
