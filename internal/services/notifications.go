package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/dentabook/dentist-booking-api/internal/models"
)

const textbeltURL = "https://textbelt.com/text"

// NotificationService sends booking confirmation SMS through the Textbelt
// API. With no API key configured it is a no-op.
type NotificationService struct {
	apiKey string
	logger *zap.Logger
}

func NewNotificationService(apiKey string, logger *zap.Logger) *NotificationService {
	return &NotificationService{apiKey: apiKey, logger: logger}
}

// SendBookingConfirmationSMS notifies the user about a new booking. Runs in a
// goroutine so it never blocks the API response; failures are only logged.
func (s *NotificationService) SendBookingConfirmationSMS(user *models.User, booking *models.BookingWithDentist) {
	if s.apiKey == "" || user.Telephone == "" {
		return
	}

	dentistName := "your dentist"
	if booking.DentistInfo != nil {
		dentistName = booking.DentistInfo.Name
	}
	message := fmt.Sprintf(
		"Booking confirmed: %s with %s on %s.",
		user.Name,
		dentistName,
		booking.Date.Format("Jan 2 at 3:04 PM"),
	)

	go s.send(user.Telephone, message)
}

func (s *NotificationService) send(phone, message string) {
	body, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})

	resp, err := http.Post(textbeltURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		s.logger.Warn("failed to send SMS", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.logger.Warn("failed to decode SMS gateway response", zap.Error(err))
		return
	}
	if !result.Success {
		s.logger.Warn("SMS gateway rejected message", zap.String("reason", result.Error))
	}
}
