package services

import (
	"errors"
	"fmt"

	"estate-portal-server/models"

	"gorm.io/gorm"
)

// BookingService manages guest records on rental bookings.
type BookingService struct {
	DB *gorm.DB
}

// GuestInput is one explicit guest row on a create call.
type GuestInput struct {
	GuestType      string `json:"guestType" validate:"omitempty,oneof=adult child"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PassportNumber string `json:"passportNumber"`
}

// SynthesizeGuestSlots builds empty guest slots from the booking's counts.
// Adults are numbered 1..A, children A+1..A+C.
func SynthesizeGuestSlots(adults, children int) []models.BookingGuest {
	guests := make([]models.BookingGuest, 0, adults+children)
	for i := 0; i < adults; i++ {
		guests = append(guests, models.BookingGuest{
			Number:    i + 1,
			GuestType: models.GuestTypeAdult,
		})
	}
	for i := 0; i < children; i++ {
		guests = append(guests, models.BookingGuest{
			Number:    adults + i + 1,
			GuestType: models.GuestTypeChild,
		})
	}
	return guests
}

func (s *BookingService) loadBookingForCaller(bookingID, callerID uint, callerRole string) (*models.RentalBooking, error) {
	var booking models.RentalBooking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	isStaff := callerRole == models.RoleAdmin || callerRole == models.RoleAgent
	if booking.CustomerID != callerID && !isStaff {
		return nil, ErrForbidden
	}
	return &booking, nil
}

// CreateGuests attaches guest rows to a booking. An empty input list
// synthesizes slots from the booking's adult/child counts. Creation and the
// passportsRequired update share one transaction, and passportsRequired ends
// up equal to the booking's total guest count.
func (s *BookingService) CreateGuests(bookingID, callerID uint, callerRole string, inputs []GuestInput) ([]models.BookingGuest, error) {
	booking, err := s.loadBookingForCaller(bookingID, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := s.DB.Model(&models.BookingGuest{}).Where("booking_id = ?", booking.ID).Count(&existing).Error; err != nil {
		return nil, err
	}

	var guests []models.BookingGuest
	if len(inputs) == 0 {
		guests = SynthesizeGuestSlots(booking.Adults, booking.Children)
	} else {
		guests = make([]models.BookingGuest, 0, len(inputs))
		for i, input := range inputs {
			guestType := input.GuestType
			if guestType == "" {
				guestType = models.GuestTypeAdult
			}
			if guestType != models.GuestTypeAdult && guestType != models.GuestTypeChild {
				return nil, fmt.Errorf("%w: unknown guest type %q", ErrValidation, input.GuestType)
			}
			guests = append(guests, models.BookingGuest{
				Number:         int(existing) + i + 1,
				GuestType:      guestType,
				FirstName:      input.FirstName,
				LastName:       input.LastName,
				PassportNumber: input.PassportNumber,
			})
		}
	}
	for i := range guests {
		guests[i].BookingID = booking.ID
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&guests, 50).Error; err != nil {
			return err
		}
		var total int64
		if err := tx.Model(&models.BookingGuest{}).Where("booking_id = ?", booking.ID).Count(&total).Error; err != nil {
			return err
		}
		return tx.Model(&models.RentalBooking{}).
			Where("id = ?", booking.ID).
			Update("passports_required", total).Error
	})
	if err != nil {
		return nil, err
	}
	return guests, nil
}

// ListGuests returns the booking's guests in slot order.
func (s *BookingService) ListGuests(bookingID, callerID uint, callerRole string) ([]models.BookingGuest, error) {
	booking, err := s.loadBookingForCaller(bookingID, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	var guests []models.BookingGuest
	if err := s.DB.Where("booking_id = ?", booking.ID).Order("number ASC").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}
