package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/avtoblesk/booking-service/internal/domain"
	"github.com/avtoblesk/booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: invalid customerEmail: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.AddonIDs))
	for _, id := range req.AddonIDs {
		if id <= 0 {
			return fmt.Errorf("%w: addonID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate addonID %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate, now time.Time, advanceBookingDays int) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, горизонт не ограничен
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateStartTimeOnGrid проверяет, что время начала лежит на сетке слотов
// и услуга целиком помещается в рабочее окно дня
func validateStartTimeOnGrid(
	startTime types.TimeString,
	open, close types.TimeString,
	stepMinutes int,
	durationMinutes int,
) error {
	if startTime.IsBefore(open) {
		return fmt.Errorf("%w: starts before opening at %s", ErrOutsideWorkingHours, open)
	}

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	openMinutes, err := open.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if (startMinutes-openMinutes)%stepMinutes != 0 {
		return fmt.Errorf("%w: %s is not aligned to the %d-minute slot grid", ErrOutsideWorkingHours, startTime, stepMinutes)
	}

	end, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: service does not fit before midnight", ErrOutsideWorkingHours)
	}
	if end.IsAfter(close) {
		return fmt.Errorf("%w: service does not fit before closing at %s", ErrOutsideWorkingHours, close)
	}

	return nil
}

// validateSameDayBuffer проверяет, что запись день в день не нарушает буфер
func validateSameDayBuffer(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	sameDayBufferMinutes int,
) error {
	// Для будущих дат буфер не применяется
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(sameDayBufferMinutes)
	if err != nil {
		// Буфер уходит за полночь - сегодня записаться уже нельзя
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, sameDayBufferMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, sameDayBufferMinutes)
	}

	return nil
}

// countOverlappingBookings подсчитывает активные бронирования, пересекающиеся
// с указанным интервалом. Интервалы полуоткрытые: граничные случаи не
// считаются пересечением.
func countOverlappingBookings(slot domain.AppointmentSlot, bookings []*domain.Booking) (int, error) {
	slotEnd, err := slot.EndTime()
	if err != nil {
		return 0, err
	}

	count := 0

	for _, booking := range bookings {
		// Отмененные бронирования интервал не занимают
		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		// Строгие неравенства: граничные случаи не считаются пересечением
		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slot.StartTime) {
			count++
		}
	}

	return count, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
