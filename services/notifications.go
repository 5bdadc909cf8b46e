package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"estate-portal-server/logger"
	"estate-portal-server/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// NotificationService delivers push notifications through Expo. Delivery is
// best-effort everywhere: a failed push never fails the parent operation.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

type expoPushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

func (ns *NotificationService) sendToUser(userID uint, title, body string, data map[string]string) {
	var user models.User
	if err := ns.DB.Select("id, push_token").First(&user, userID).Error; err != nil || user.PushToken == "" {
		return
	}

	payload, err := json.Marshal(expoPushMessage{To: user.PushToken, Title: title, Body: body, Data: data})
	if err != nil {
		return
	}
	res, err := http.Post(expoPushURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		logger.GetLogger().Warn("push delivery failed", zap.Uint("userID", userID), zap.Error(err))
		return
	}
	res.Body.Close()
}

// truncatePreview shortens s to at most max runes, never splitting a
// multi-byte character.
func truncatePreview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// SendBookingMessageNotification pings the customer about a new agent reply.
func (ns *NotificationService) SendBookingMessageNotification(customerID, bookingID uint, preview string) {
	preview = truncatePreview(preview, 80)
	ns.sendToUser(customerID, "New message about your booking", preview, map[string]string{
		"type":      "booking_message",
		"bookingID": fmt.Sprintf("%d", bookingID),
	})
}

// SendPriceRequestResolvedNotification tells the owner how their request ended.
func (ns *NotificationService) SendPriceRequestResolvedNotification(ownerID uint, request *models.PriceChangeRequest) {
	title := "Price change rejected"
	body := "Your price change request was not approved."
	if request.Status == models.PriceRequestApproved || request.Status == models.PriceRequestAutoApplied {
		title = "Price change applied"
		body = fmt.Sprintf("Your listing price is now %.2f.", request.ProposedPrice)
	}
	ns.sendToUser(ownerID, title, body, map[string]string{
		"type":      "price_request",
		"requestID": fmt.Sprintf("%d", request.ID),
	})
}
