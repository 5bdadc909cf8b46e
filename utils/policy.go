package utils

import (
	"estate-portal-server/models"
)

// Action names a resource-action pair checked by the policy table. Handlers
// never compare role strings directly; they declare the action they perform.
type Action string

const (
	ActionPropertyCreate       Action = "property.create"
	ActionPropertyStatusUpdate Action = "property.status.update"
	ActionPropertyBiddingSet   Action = "property.bidding.set"
	ActionPriceRequestSubmit   Action = "price_request.submit"
	ActionPriceRequestList     Action = "price_request.list"
	ActionPriceRequestResolve  Action = "price_request.resolve"
	ActionInviteUse            Action = "invite.use"
	ActionBookingGuestsManage  Action = "booking.guests.manage"
	ActionBookingMessages      Action = "booking.messages"
	ActionViewingUpdate        Action = "viewing.update"
	ActionDashboardView        Action = "dashboard.view"
)

var rolePolicy = map[Action][]string{
	ActionPropertyCreate:       {models.RoleOwner, models.RoleAgent, models.RoleAdmin},
	ActionPropertyStatusUpdate: {models.RoleOwner, models.RoleAgent, models.RoleAdmin},
	ActionPropertyBiddingSet:   {models.RoleOwner},
	ActionPriceRequestSubmit:   {models.RoleOwner},
	ActionPriceRequestList:     {models.RoleAgent, models.RoleAdmin},
	ActionPriceRequestResolve:  {models.RoleAgent, models.RoleAdmin},
	ActionInviteUse:            {models.RoleCustomer, models.RoleOwner, models.RoleAgent, models.RoleAdmin},
	ActionBookingGuestsManage:  {models.RoleCustomer, models.RoleAgent, models.RoleAdmin},
	ActionBookingMessages:      {models.RoleCustomer, models.RoleAgent, models.RoleAdmin},
	ActionViewingUpdate:        {models.RoleAgent, models.RoleAdmin},
	ActionDashboardView:        {models.RoleAgent, models.RoleAdmin},
}

// Allowed reports whether a role may perform the action. Ownership checks
// stay in the services; this table only gates the role dimension.
func Allowed(role string, action Action) bool {
	allowed, ok := rolePolicy[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
