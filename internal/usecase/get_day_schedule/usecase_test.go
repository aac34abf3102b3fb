package get_day_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoblesk/booking-service/internal/calendar"
	"github.com/avtoblesk/booking-service/internal/domain"
	catalogClient "github.com/avtoblesk/booking-service/internal/integrations/catalog"
	"github.com/avtoblesk/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeCatalog struct {
	service *catalogClient.Service
	addons  []*catalogClient.Addon
	err     error
}

func (f *fakeCatalog) GetService(_ context.Context, _ int64) (*catalogClient.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

func (f *fakeCatalog) GetAddons(_ context.Context, ids []int64) ([]*catalogClient.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return f.addons, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func weekdaysOnly() domain.WeekSchedule {
	open := domain.DayWindow{Open: "08:00", Close: "20:00"}
	return domain.WeekSchedule{
		Monday:    open,
		Tuesday:   open,
		Wednesday: open,
		Thursday:  open,
		Friday:    open,
		Saturday:  domain.DayWindow{Open: "09:00", Close: "18:00"},
		Sunday:    domain.DayWindow{Closed: true},
	}
}

func newTestUseCase(t *testing.T, repo *fakeBookingRepo, cat *fakeCatalog, now time.Time) *UseCase {
	t.Helper()

	rules := calendar.NewRules(weekdaysOnly(), time.UTC)
	uc := NewUseCase(repo, cat, rules, ScheduleParams{
		SlotStepMinutes:      120,
		SameDayBufferMinutes: 120,
		AdvanceBookingDays:   60,
	}, testLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func washService() *catalogClient.Service {
	return &catalogClient.Service{
		ID:              3,
		Name:            "Комплексная мойка",
		Price:           4500,
		DurationMinutes: 90,
		Active:          true,
	}
}

func TestUseCase_Execute_FullGrid(t *testing.T) {
	// 2026-06-01 - понедельник
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeCatalog{service: washService()}, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, ServiceID: 3})
	require.NoError(t, err)

	assert.Equal(t, "Комплексная мойка", resp.ServiceName)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, 4500.0, resp.TotalPrice)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		starts = append(starts, slot.StartTime)
		assert.True(t, slot.Available)
	}
	assert.Equal(t, []types.TimeString{"08:00", "10:00", "12:00", "14:00", "16:00", "18:00"}, starts)
}

func TestUseCase_Execute_AddonsExtendDuration(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	cat := &fakeCatalog{
		service: washService(),
		addons: []*catalogClient.Addon{
			{ID: 7, Name: "Чернение резины", Price: 500, ExtraMinutes: 30, Active: true},
			{ID: 8, Name: "Уборка багажника", Price: 700, ExtraMinutes: 30, Active: true},
		},
	}

	uc := newTestUseCase(t, &fakeBookingRepo{}, cat, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, ServiceID: 3, AddonIDs: []int64{7, 8}})
	require.NoError(t, err)

	// 90 + 30 + 30 = 150 минут: слот 18:00 выпадает из сетки
	assert.Equal(t, 150, resp.DurationMinutes)
	assert.Equal(t, 5700.0, resp.TotalPrice)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		starts = append(starts, slot.StartTime)
	}
	assert.Equal(t, []types.TimeString{"08:00", "10:00", "12:00", "14:00", "16:00"}, starts)
}

func TestUseCase_Execute_BookedSlotsMarkedUnavailable(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		activeBooking("10:00", 90),
		{StartTime: ts("12:00"), DurationMinutes: 90, Status: domain.StatusCancelled},
	}}

	uc := newTestUseCase(t, repo, &fakeCatalog{service: washService()}, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: tuesday, ServiceID: 3})
	require.NoError(t, err)

	byStart := make(map[types.TimeString]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartTime] = slot.Available
	}

	assert.False(t, byStart["10:00"])
	// Отмененное бронирование освобождает слот
	assert.True(t, byStart["12:00"])
	// 10:00-11:30 граничит со слотом 08:00-09:30 и не пересекается с 12:00
	assert.True(t, byStart["08:00"])
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeCatalog{service: washService()}, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: sunday, ServiceID: 3})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeCatalog{service: washService()}, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: yesterday, ServiceID: 3})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_DateBeyondHorizon(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	farAway := now.AddDate(0, 0, 61)

	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeCatalog{service: washService()}, now)

	_, err := uc.Execute(context.Background(), &Request{Date: farAway, ServiceID: 3})
	require.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestUseCase_Execute_ServiceNotFound(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeCatalog{err: catalogClient.ErrServiceNotFound}, now)

	_, err := uc.Execute(context.Background(), &Request{Date: now.AddDate(0, 0, 1), ServiceID: 99})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeCatalog{service: washService()}, now)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero service id", req: &Request{Date: now, ServiceID: 0}},
		{name: "zero date", req: &Request{ServiceID: 3}},
		{name: "duplicate addons", req: &Request{Date: now, ServiceID: 3, AddonIDs: []int64{7, 7}}},
		{name: "negative addon", req: &Request{Date: now, ServiceID: 3, AddonIDs: []int64{-1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
