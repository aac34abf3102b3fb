package get_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/avtoblesk/booking-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetByReference(ctx context.Context, reference uuid.UUID) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
