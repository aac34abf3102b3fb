package get_day_schedule

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
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

	return nil
}

// validateDateHorizon проверяет, что дата не превышает горизонт записи.
// Прошедшие даты сюда не попадают: для них расписание пустое, а не ошибочное.
func validateDateHorizon(date, now time.Time, advanceBookingDays int) error {
	// Если advanceBookingDays = 0, горизонт не ограничен
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
