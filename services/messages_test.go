package services

import (
	"testing"

	"estate-portal-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSenderRole(t *testing.T) {
	booking := &models.RentalBooking{CustomerID: 7}

	// the booking's customer is customer whatever they claim
	role, err := ResolveSenderRole(booking, 7, models.RoleCustomer, "")
	require.NoError(t, err)
	assert.Equal(t, models.MessageRoleCustomer, role)

	role, err = ResolveSenderRole(booking, 7, models.RoleCustomer, "agent")
	require.NoError(t, err)
	assert.Equal(t, models.MessageRoleCustomer, role)

	// staff who do not own the booking write as agent
	role, err = ResolveSenderRole(booking, 9, models.RoleAgent, "")
	require.NoError(t, err)
	assert.Equal(t, models.MessageRoleAgent, role)

	role, err = ResolveSenderRole(booking, 9, models.RoleAdmin, "customer")
	require.NoError(t, err)
	assert.Equal(t, models.MessageRoleAgent, role)

	// everyone else has no standing, whatever is claimed
	_, err = ResolveSenderRole(booking, 9, models.RoleCustomer, "agent")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPostMessage(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	customer := createUser(t, db, models.RoleCustomer)
	agent := createUser(t, db, models.RoleAgent)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 1800)
	booking := createBooking(t, db, property.ID, customer.ID, 1, 0)
	svc := &MessageService{DB: db}

	message, err := svc.Post(booking.ID, customer.ID, models.RoleCustomer, "", "when is check-in?")
	require.NoError(t, err)
	assert.Equal(t, models.MessageRoleCustomer, message.SenderRole)
	assert.False(t, message.IsRead)

	message, err = svc.Post(booking.ID, agent.ID, models.RoleAgent, "", "from 15:00")
	require.NoError(t, err)
	assert.Equal(t, models.MessageRoleAgent, message.SenderRole)

	_, err = svc.Post(booking.ID, customer.ID, models.RoleCustomer, "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Post(9999, customer.ID, models.RoleCustomer, "", "hello?")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndMarkReadIsAsymmetric(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	customer := createUser(t, db, models.RoleCustomer)
	agent := createUser(t, db, models.RoleAgent)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 1800)
	booking := createBooking(t, db, property.ID, customer.ID, 1, 0)
	svc := &MessageService{DB: db}

	_, err := svc.Post(booking.ID, customer.ID, models.RoleCustomer, "", "when is check-in?")
	require.NoError(t, err)
	_, err = svc.Post(booking.ID, agent.ID, models.RoleAgent, "", "from 15:00")
	require.NoError(t, err)

	// the agent viewing the thread marks only the customer's messages read
	messages, err := svc.ListAndMarkRead(booking.ID, agent.ID, models.RoleAgent)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	for _, m := range messages {
		switch m.SenderRole {
		case models.MessageRoleCustomer:
			assert.True(t, m.IsRead)
		case models.MessageRoleAgent:
			assert.False(t, m.IsRead)
		}
	}

	// the customer viewing afterwards flips the agent side
	messages, err = svc.ListAndMarkRead(booking.ID, customer.ID, models.RoleCustomer)
	require.NoError(t, err)
	for _, m := range messages {
		assert.True(t, m.IsRead)
	}
}

func TestListAndMarkReadStrangerForbidden(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	customer := createUser(t, db, models.RoleCustomer)
	stranger := createUser(t, db, models.RoleCustomer)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 1800)
	booking := createBooking(t, db, property.ID, customer.ID, 1, 0)
	svc := &MessageService{DB: db}

	_, err := svc.ListAndMarkRead(booking.ID, stranger.ID, models.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)
}
