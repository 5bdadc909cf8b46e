package services

import (
	"fmt"
	"testing"

	"estate-portal-server/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB returns an isolated in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PriceChangeRequest{},
		&models.OwnerStatusChangeLog{},
		&models.OwnerActivityLog{},
		&models.OwnerInvite{},
		&models.RentalBooking{},
		&models.BookingGuest{},
		&models.BookingMessage{},
		&models.ViewingRequest{},
	)
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := models.User{
		FirstName: "Test",
		LastName:  role,
		Email:     fmt.Sprintf("%s-%d@example.com", role, newUserSeq(db)),
		Role:      role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newUserSeq(db *gorm.DB) int64 {
	var count int64
	db.Model(&models.User{}).Count(&count)
	return count + 1
}

func createProperty(t *testing.T, db *gorm.DB, ownerID uint, status string, price float64) *models.Property {
	t.Helper()
	property := models.Property{
		OwnerID:      ownerID,
		Title:        "Canal-side apartment",
		Price:        price,
		Currency:     "EUR",
		Status:       status,
		PropertyType: models.PropertyTypeForSale,
		City:         "Amsterdam",
	}
	require.NoError(t, db.Create(&property).Error)
	return &property
}

func createBooking(t *testing.T, db *gorm.DB, propertyID, customerID uint, adults, children int) *models.RentalBooking {
	t.Helper()
	booking := models.RentalBooking{
		PropertyID: propertyID,
		CustomerID: customerID,
		Adults:     adults,
		Children:   children,
		Status:     models.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&booking).Error)
	return &booking
}
