package services

import (
	"errors"
	"fmt"

	"estate-portal-server/models"

	"gorm.io/gorm"
)

// MessageService handles the two-party thread on a booking.
type MessageService struct {
	DB     *gorm.DB
	Notify *NotificationService
}

// ResolveSenderRole applies the three-way role rule:
//   - the booking's customer is always "customer", whatever they claim;
//   - an admin/agent who is not the booking's customer is always "agent";
//   - an explicit "agent" claim is only honored for admin/agent callers.
func ResolveSenderRole(booking *models.RentalBooking, callerID uint, callerRole, claimed string) (string, error) {
	if booking.CustomerID == callerID {
		// ownership wins over any claim, including "agent"
		return models.MessageRoleCustomer, nil
	}
	if callerRole == models.RoleAdmin || callerRole == models.RoleAgent {
		return models.MessageRoleAgent, nil
	}
	// non-staff, non-owner: no standing in this thread, whatever is claimed
	return "", ErrForbidden
}

func (s *MessageService) loadBooking(bookingID uint) (*models.RentalBooking, error) {
	var booking models.RentalBooking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// Post appends a message to the thread and pings the other party,
// best-effort.
func (s *MessageService) Post(bookingID, callerID uint, callerRole, claimedRole, body string) (*models.BookingMessage, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: message body required", ErrValidation)
	}
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	senderRole, err := ResolveSenderRole(booking, callerID, callerRole, claimedRole)
	if err != nil {
		return nil, err
	}

	message := models.BookingMessage{
		BookingID:  booking.ID,
		SenderID:   callerID,
		SenderRole: senderRole,
		Body:       body,
	}
	if err := s.DB.Create(&message).Error; err != nil {
		return nil, err
	}

	if s.Notify != nil && senderRole == models.MessageRoleAgent {
		go s.Notify.SendBookingMessageNotification(booking.CustomerID, booking.ID, body)
	}
	return &message, nil
}

// ListAndMarkRead returns the thread chronologically and flips IsRead on
// unread messages authored by the opposite role only. The viewer's own
// side stays untouched.
func (s *MessageService) ListAndMarkRead(bookingID, callerID uint, callerRole string) ([]models.BookingMessage, error) {
	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, err
	}
	viewerRole, err := ResolveSenderRole(booking, callerID, callerRole, "")
	if err != nil {
		return nil, err
	}
	otherRole := models.MessageRoleCustomer
	if viewerRole == models.MessageRoleCustomer {
		otherRole = models.MessageRoleAgent
	}

	if err := s.DB.Model(&models.BookingMessage{}).
		Where("booking_id = ? AND sender_role = ? AND is_read = ?", booking.ID, otherRole, false).
		Update("is_read", true).Error; err != nil {
		return nil, err
	}

	var messages []models.BookingMessage
	if err := s.DB.Where("booking_id = ?", booking.ID).Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
