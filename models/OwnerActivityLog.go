package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity actions recorded in the audit trail.
const (
	ActionStatusChange   = "property.status_change"
	ActionBiddingToggle  = "property.bidding_toggle"
	ActionPriceRequest   = "price_request.submit"
	ActionPriceResolve   = "price_request.resolve"
	ActionPriceAutoApply = "price_request.auto_apply"
	ActionInviteRedeem   = "invite.redeem"
	ActionUserLogin      = "user.login"
)

// OwnerActivityLog is the generic append-only activity record. Metadata carries
// a heterogeneous payload per action type.
type OwnerActivityLog struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"userID" gorm:"index;not null"`
	PropertyID  *uint          `json:"propertyID" gorm:"index"`
	Action      string         `json:"action" gorm:"size:64;index"`
	Description string         `json:"description" gorm:"size:512"`
	Metadata    datatypes.JSON `json:"metadata"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"index"`
}
