package get_day_schedule

import (
	"time"

	"github.com/avtoblesk/booking-service/internal/domain"
	"github.com/avtoblesk/booking-service/pkg/types"
)

// generateCandidateSlots генерирует кандидатов слотов на день.
// Сетка идет от открытия студии с фиксированным шагом stepMinutes независимо
// от длительности услуги: кандидат попадает в список, только если услуга
// целиком помещается до закрытия. Для сегодняшней даты дополнительно
// отбрасываются слоты, начинающиеся раньше now + sameDayBufferMinutes.
func generateCandidateSlots(
	open, close types.TimeString,
	stepMinutes int,
	durationMinutes int,
	date time.Time,
	now time.Time,
	sameDayBufferMinutes int,
) ([]types.TimeString, error) {
	// Шаг 1: все слоты сетки, в которые услуга помещается целиком
	allSlots := make([]types.TimeString, 0)
	currentSlot := open

	for currentSlot.IsBefore(close) {
		slotEnd, err := currentSlot.AddMinutes(durationMinutes)
		if err != nil {
			// Услуга не помещается до полуночи - дальше слоты только позже
			break
		}
		if slotEnd.IsAfter(close) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot, err = currentSlot.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
	}

	// Шаг 2: для будущих дат сетка отдается целиком
	if !isSameDay(date, now) {
		return allSlots, nil
	}

	// Шаг 3: сегодня - отбрасываем слоты ближе, чем now + буфер
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(sameDayBufferMinutes)
	if err != nil {
		// Буфер уходит за полночь - сегодня записаться уже нельзя
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// markAvailability помечает каждого кандидата флагом доступности.
// Кандидаты не фильтруются: UI показывает занятые слоты заблокированными.
func markAvailability(candidates []types.TimeString, durationMinutes int, bookings []*domain.Booking) []domain.ScheduleSlot {
	result := make([]domain.ScheduleSlot, len(candidates))

	for i, slotStart := range candidates {
		overlapping := countOverlappingBookings(slotStart, durationMinutes, bookings)

		result[i] = domain.ScheduleSlot{
			StartTime:       slotStart,
			DurationMinutes: durationMinutes,
			Available:       overlapping == 0,
		}
	}

	return result
}

// countOverlappingBookings подсчитывает активные бронирования, пересекающиеся
// с указанным интервалом. Интервалы полуоткрытые: если одно бронирование
// заканчивается ровно там, где начинается слот (или наоборот), пересечения НЕТ.
//
// Примеры:
// - Слот 11:30-12:00, бронирование 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, бронирование 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, бронирование 12:00-12:30 → НЕТ пересечения (граничат)
func countOverlappingBookings(slotStart types.TimeString, durationMinutes int, bookings []*domain.Booking) int {
	slotEnd, err := slotStart.AddMinutes(durationMinutes)
	if err != nil {
		// Если не можем вычислить конец слота, считаем что пересечений нет
		return 0
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
		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
