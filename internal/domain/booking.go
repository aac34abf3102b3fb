package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/avtoblesk/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a committed appointment at the detailing bay
type Booking struct {
	ID        int64
	Reference uuid.UUID // Номер бронирования для клиента (печатается в письме)

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	VehiclePlate  *string

	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history: цены и названия услуг могут меняться
	// в каталоге, бронирование хранит их на момент оформления
	ServiceName string
	TotalPrice  float64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking occupies its time interval.
// Отмененные бронирования хранятся для истории, но интервал не занимают.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled reports whether the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeCompleted reports whether the booking can be marked completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// EndTime returns the wall-clock end of the booking (start + duration)
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// StartsAt returns the absolute start timestamp in the date's location
func (b *Booking) StartsAt() (time.Time, error) {
	return b.StartTime.At(b.BookingDate)
}

// BookingsFilter фильтр для выборки бронирований (админский календарь)
type BookingsFilter struct {
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
}
