package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoblesk/booking-service/internal/domain"
	"github.com/avtoblesk/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		Reference:       uuid.MustParse("3f6f3fd2-9f3a-4a61-9a3c-0d1f9f0b8b55"),
		CustomerName:    "Мария Соколова",
		CustomerEmail:   "maria@example.com",
		ServiceName:     "Полировка кузова",
		TotalPrice:      12000,
		BookingDate:     time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("14:00"),
		DurationMinutes: 120,
	}
}

func TestBuildBookingConfirmationHTML(t *testing.T) {
	html, err := buildBookingConfirmationHTML(testBooking())
	require.NoError(t, err)

	assert.Contains(t, html, "Мария Соколова")
	assert.Contains(t, html, "Полировка кузова")
	assert.Contains(t, html, "05.06.2026")
	assert.Contains(t, html, "14:00")
	assert.Contains(t, html, "16:00")
	assert.Contains(t, html, "3f6f3fd2-9f3a-4a61-9a3c-0d1f9f0b8b55")
}

func TestEmailSender_SendBookingConfirmation(t *testing.T) {
	var gotPayload brevoSendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messageId":"<msg-1@brevo>"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewBrevoClient("test-api-key", "noreply@avtoblesk.ru", "АвтоБлеск", false, 2*time.Second)
	client.endpoint = srv.URL

	sender := NewEmailSender(client, nopLogger{})
	err := sender.SendBookingConfirmation(context.Background(), testBooking())
	require.NoError(t, err)

	require.Len(t, gotPayload.To, 1)
	assert.Equal(t, "maria@example.com", gotPayload.To[0].Email)
	assert.Contains(t, gotPayload.Subject, "Полировка кузова")
	assert.Contains(t, gotPayload.HtmlContent, "Номер записи")
}

func TestEmailSender_SendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"code":"unauthorized"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := NewBrevoClient("bad-key", "noreply@avtoblesk.ru", "", false, 2*time.Second)
	client.endpoint = srv.URL

	sender := NewEmailSender(client, nopLogger{})
	err := sender.SendBookingConfirmation(context.Background(), testBooking())
	require.ErrorIs(t, err, ErrSendFailed)
}
