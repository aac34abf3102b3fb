package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoblesk/booking-service/internal/domain"
	bookingRepo "github.com/avtoblesk/booking-service/internal/infra/storage/booking"
	"github.com/avtoblesk/booking-service/internal/service/bookings/models"
	"github.com/avtoblesk/booking-service/pkg/types"
)

type fakeRepo struct {
	byID        map[int64]*domain.Booking
	byReference map[uuid.UUID]*domain.Booking
	cancelled   map[int64]string
	updated     map[int64]domain.BookingStatus
	listResult  []*domain.Booking
	gotFilter   domain.BookingsFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:        make(map[int64]*domain.Booking),
		byReference: make(map[uuid.UUID]*domain.Booking),
		cancelled:   make(map[int64]string),
		updated:     make(map[int64]domain.BookingStatus),
	}
}

func (f *fakeRepo) add(b *domain.Booking) {
	f.byID[b.ID] = b
	f.byReference[b.Reference] = b
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByReference(_ context.Context, reference uuid.UUID) (*domain.Booking, error) {
	b, ok := f.byReference[reference]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = filter
	return f.listResult, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updated[id] = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelled[id] = reason
	return nil
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func confirmedBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		Reference:       uuid.New(),
		CustomerName:    "Иван Петров",
		CustomerEmail:   "ivan@example.com",
		CustomerPhone:   "+79990001122",
		ServiceID:       3,
		ServiceName:     "Комплексная мойка",
		TotalPrice:      4500,
		BookingDate:     time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 90,
		Status:          domain.StatusConfirmed,
	}
}

func TestService_GetByReference(t *testing.T) {
	repo := newFakeRepo()
	booking := confirmedBooking(1)
	repo.add(booking)

	svc := NewService(repo, testLogger{})

	resp, err := svc.GetByReference(context.Background(), booking.Reference)
	require.NoError(t, err)
	assert.Equal(t, booking.Reference.String(), resp.Reference)
	assert.Equal(t, "2026-06-02", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)

	_, err = svc.GetByReference(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List(t *testing.T) {
	repo := newFakeRepo()
	repo.listResult = []*domain.Booking{confirmedBooking(1), confirmedBooking(2)}

	svc := NewService(repo, testLogger{})

	status := "confirmed"
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		StartDate: &start,
		EndDate:   &end,
		Status:    &status,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.gotFilter.Status)
}

func TestService_List_InvalidInput(t *testing.T) {
	svc := NewService(newFakeRepo(), testLogger{})

	badStatus := "unknown"
	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: &badStatus})
	require.ErrorIs(t, err, ErrInvalidInput)

	start := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{StartDate: &start, EndDate: &end})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel(t *testing.T) {
	repo := newFakeRepo()
	repo.add(confirmedBooking(1))

	completed := confirmedBooking(2)
	completed.Status = domain.StatusCompleted
	repo.add(completed)

	svc := NewService(repo, testLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "клиент передумал"})
	require.NoError(t, err)
	assert.Equal(t, "клиент передумал", repo.cancelled[1])

	// Завершенное бронирование отменить нельзя
	err = svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{})
	require.ErrorIs(t, err, ErrCannotCancel)

	err = svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.add(confirmedBooking(1))

	cancelledBooking := confirmedBooking(2)
	cancelledBooking.Status = domain.StatusCancelled
	repo.add(cancelledBooking)

	svc := NewService(repo, testLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updated[1])

	// Отмененное бронирование финально
	err = svc.UpdateStatus(context.Background(), 2, &models.UpdateStatusRequest{Status: "completed"})
	require.ErrorIs(t, err, ErrInvalidStatusTransition)

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "garbage"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}
