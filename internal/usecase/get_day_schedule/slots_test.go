package get_day_schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoblesk/booking-service/internal/domain"
	"github.com/avtoblesk/booking-service/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func activeBooking(start string, duration int) *domain.Booking {
	return &domain.Booking{
		StartTime:       ts(start),
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func TestGenerateCandidateSlots_Grid(t *testing.T) {
	// Завтрашняя дата: фильтр по буферу не применяется
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		duration int
		want     []types.TimeString
	}{
		{
			name:     "duration fits until close",
			duration: 90,
			want:     []types.TimeString{"08:00", "10:00", "12:00", "14:00", "16:00", "18:00"},
		},
		{
			name:     "longer duration drops last slot",
			duration: 150,
			want:     []types.TimeString{"08:00", "10:00", "12:00", "14:00", "16:00"},
		},
		{
			name:     "duration equal to full day",
			duration: 720,
			want:     []types.TimeString{"08:00"},
		},
		{
			name:     "duration longer than day",
			duration: 721,
			want:     []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generateCandidateSlots(ts("08:00"), ts("20:00"), 120, tt.duration, tomorrow, now, 120)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateCandidateSlots_SameDayBuffer(t *testing.T) {
	// Сегодня 17:30, буфер 120 минут: минимально допустимое начало 19:30.
	// Слот 18:00 отбрасывается, хотя физически свободен.
	now := time.Date(2026, 6, 1, 17, 30, 0, 0, time.UTC)

	got, err := generateCandidateSlots(ts("08:00"), ts("20:00"), 30, 30, now, now, 120)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"19:30"}, got)

	// Та же сетка на завтра отдается целиком
	got, err = generateCandidateSlots(ts("08:00"), ts("20:00"), 120, 90, now.AddDate(0, 0, 1), now, 120)
	require.NoError(t, err)
	assert.Contains(t, got, ts("08:00"))
	assert.Contains(t, got, ts("18:00"))
}

func TestGenerateCandidateSlots_BufferPastMidnight(t *testing.T) {
	now := time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC)

	got, err := generateCandidateSlots(ts("08:00"), ts("20:00"), 60, 60, now, now, 120)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCountOverlappingBookings(t *testing.T) {
	tests := []struct {
		name     string
		slot     types.TimeString
		duration int
		bookings []*domain.Booking
		want     int
	}{
		{
			name:     "real overlap",
			slot:     ts("11:30"),
			duration: 30,
			bookings: []*domain.Booking{activeBooking("11:20", 20)},
			want:     1,
		},
		{
			name:     "booking ends exactly at slot start",
			slot:     ts("11:30"),
			duration: 30,
			bookings: []*domain.Booking{activeBooking("11:00", 30)},
			want:     0,
		},
		{
			name:     "booking starts exactly at slot end",
			slot:     ts("11:30"),
			duration: 30,
			bookings: []*domain.Booking{activeBooking("12:00", 30)},
			want:     0,
		},
		{
			name:     "booking fully covers slot",
			slot:     ts("11:30"),
			duration: 30,
			bookings: []*domain.Booking{activeBooking("10:00", 240)},
			want:     1,
		},
		{
			name:     "cancelled booking does not occupy interval",
			slot:     ts("11:30"),
			duration: 30,
			bookings: []*domain.Booking{
				{StartTime: ts("11:30"), DurationMinutes: 30, Status: domain.StatusCancelled},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countOverlappingBookings(tt.slot, tt.duration, tt.bookings))
		})
	}
}

func TestMarkAvailability(t *testing.T) {
	candidates := []types.TimeString{"08:00", "10:00", "12:00"}
	bookings := []*domain.Booking{activeBooking("10:00", 90)}

	slots := markAvailability(candidates, 90, bookings)

	require.Len(t, slots, 3)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.True(t, slots[2].Available)

	for _, slot := range slots {
		assert.Equal(t, 90, slot.DurationMinutes)
	}
}
