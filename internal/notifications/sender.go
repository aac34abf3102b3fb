package notifications

import (
	"context"
	"fmt"

	"github.com/avtoblesk/booking-service/internal/domain"
)

// EmailSender отправляет клиентские уведомления о бронированиях через Brevo
type EmailSender struct {
	client *BrevoClient
	log    Logger
}

// NewEmailSender создает отправителя уведомлений
func NewEmailSender(client *BrevoClient, log Logger) *EmailSender {
	return &EmailSender{
		client: client,
		log:    log,
	}
}

// SendBookingConfirmation отправляет письмо-подтверждение записи
func (s *EmailSender) SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error {
	htmlBody, err := buildBookingConfirmationHTML(booking)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Запись подтверждена: %s, %s", booking.ServiceName, booking.BookingDate.Format("02.01.2006"))

	messageID, err := s.client.SendHTML(ctx, booking.CustomerEmail, booking.CustomerName, subject, htmlBody)
	if err != nil {
		return err
	}

	s.log.Info("Booking confirmation sent: reference=%s, message_id=%s", booking.Reference, messageID)
	return nil
}

// NopSender заглушка отправителя для конфигураций с выключенными
// уведомлениями и для тестов
type NopSender struct{}

// NewNopSender создает заглушку отправителя
func NewNopSender() *NopSender {
	return &NopSender{}
}

// SendBookingConfirmation ничего не отправляет
func (s *NopSender) SendBookingConfirmation(_ context.Context, _ *domain.Booking) error {
	return nil
}
