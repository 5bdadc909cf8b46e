package utils

import (
	"testing"

	"estate-portal-server/models"

	"github.com/stretchr/testify/assert"
)

func TestPolicyTable(t *testing.T) {
	cases := []struct {
		role    string
		action  Action
		allowed bool
	}{
		{models.RoleOwner, ActionPropertyCreate, true},
		{models.RoleAgent, ActionPropertyCreate, true},
		{models.RoleCustomer, ActionPropertyCreate, false},

		{models.RoleOwner, ActionPriceRequestSubmit, true},
		{models.RoleAgent, ActionPriceRequestSubmit, false},
		{models.RoleAdmin, ActionPriceRequestSubmit, false},

		{models.RoleAgent, ActionPriceRequestResolve, true},
		{models.RoleAdmin, ActionPriceRequestResolve, true},
		{models.RoleOwner, ActionPriceRequestResolve, false},

		{models.RoleOwner, ActionPropertyBiddingSet, true},
		{models.RoleAdmin, ActionPropertyBiddingSet, false},

		{models.RoleCustomer, ActionInviteUse, true},
		{models.RoleAdmin, ActionInviteUse, true},

		{models.RoleCustomer, ActionBookingMessages, true},
		{models.RoleOwner, ActionBookingMessages, false},

		{models.RoleAgent, ActionDashboardView, true},
		{models.RoleAdmin, ActionDashboardView, true},
		{models.RoleOwner, ActionDashboardView, false},
		{models.RoleCustomer, ActionDashboardView, false},

		{models.RoleAgent, ActionViewingUpdate, true},
		{models.RoleCustomer, ActionViewingUpdate, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, Allowed(c.role, c.action),
			"role %s action %s", c.role, c.action)
	}
}

func TestPolicyUnknownInputs(t *testing.T) {
	assert.False(t, Allowed("superuser", ActionDashboardView))
	assert.False(t, Allowed("", ActionDashboardView))
	assert.False(t, Allowed(models.RoleAdmin, Action("property.destroy")))
}
