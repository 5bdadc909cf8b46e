package services

import (
	"testing"

	"estate-portal-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeGuestSlots(t *testing.T) {
	guests := SynthesizeGuestSlots(2, 1)
	require.Len(t, guests, 3)

	assert.Equal(t, 1, guests[0].Number)
	assert.Equal(t, models.GuestTypeAdult, guests[0].GuestType)
	assert.Equal(t, 2, guests[1].Number)
	assert.Equal(t, models.GuestTypeAdult, guests[1].GuestType)
	assert.Equal(t, 3, guests[2].Number)
	assert.Equal(t, models.GuestTypeChild, guests[2].GuestType)

	assert.Empty(t, SynthesizeGuestSlots(0, 0))
}

func TestCreateGuestsSynthesizesFromCounts(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	customer := createUser(t, db, models.RoleCustomer)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 1800)
	booking := createBooking(t, db, property.ID, customer.ID, 2, 1)
	svc := &BookingService{DB: db}

	guests, err := svc.CreateGuests(booking.ID, customer.ID, models.RoleCustomer, nil)
	require.NoError(t, err)
	require.Len(t, guests, 3)

	var fresh models.RentalBooking
	require.NoError(t, db.First(&fresh, booking.ID).Error)
	assert.Equal(t, 3, fresh.PassportsRequired)
}

func TestCreateGuestsExplicitNumbering(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	customer := createUser(t, db, models.RoleCustomer)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 1800)
	booking := createBooking(t, db, property.ID, customer.ID, 2, 0)
	svc := &BookingService{DB: db}

	first, err := svc.CreateGuests(booking.ID, customer.ID, models.RoleCustomer, []GuestInput{
		{FirstName: "Anna", LastName: "Visser", PassportNumber: "NL123"},
	})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, first[0].Number)
	assert.Equal(t, models.GuestTypeAdult, first[0].GuestType) // default when omitted

	// numbering continues after existing rows
	second, err := svc.CreateGuests(booking.ID, customer.ID, models.RoleCustomer, []GuestInput{
		{GuestType: models.GuestTypeChild, FirstName: "Mila", LastName: "Visser"},
	})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 2, second[0].Number)

	var fresh models.RentalBooking
	require.NoError(t, db.First(&fresh, booking.ID).Error)
	assert.Equal(t, 2, fresh.PassportsRequired)
}

func TestCreateGuestsRejectsUnknownType(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	customer := createUser(t, db, models.RoleCustomer)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 1800)
	booking := createBooking(t, db, property.ID, customer.ID, 1, 0)
	svc := &BookingService{DB: db}

	_, err := svc.CreateGuests(booking.ID, customer.ID, models.RoleCustomer, []GuestInput{
		{GuestType: "infant"},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGuestAccessControl(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	customer := createUser(t, db, models.RoleCustomer)
	stranger := createUser(t, db, models.RoleCustomer)
	agent := createUser(t, db, models.RoleAgent)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 1800)
	booking := createBooking(t, db, property.ID, customer.ID, 1, 0)
	svc := &BookingService{DB: db}

	_, err := svc.ListGuests(booking.ID, stranger.ID, models.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateGuests(booking.ID, stranger.ID, models.RoleCustomer, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ListGuests(booking.ID, agent.ID, models.RoleAgent)
	assert.NoError(t, err)

	_, err = svc.ListGuests(9999, customer.ID, models.RoleCustomer)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGuestsOrderedBySlot(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, models.RoleOwner)
	customer := createUser(t, db, models.RoleCustomer)
	property := createProperty(t, db, owner.ID, models.PropertyStatusActive, 1800)
	booking := createBooking(t, db, property.ID, customer.ID, 2, 1)
	svc := &BookingService{DB: db}

	_, err := svc.CreateGuests(booking.ID, customer.ID, models.RoleCustomer, nil)
	require.NoError(t, err)

	guests, err := svc.ListGuests(booking.ID, customer.ID, models.RoleCustomer)
	require.NoError(t, err)
	require.Len(t, guests, 3)
	for i, guest := range guests {
		assert.Equal(t, i+1, guest.Number)
	}
}
