package storage

import (
	"estate-portal-server/logger"
	"estate-portal-server/models"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		logger.GetLogger().Fatal("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		logger.GetLogger().Fatal("error connecting to db", zap.Error(dbError))
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
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
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
