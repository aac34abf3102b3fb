package get_day_schedule

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("get_day_schedule: service not found")

	// ErrAddonNotFound возвращается, когда дополнительная опция не найдена
	ErrAddonNotFound = errors.New("get_day_schedule: addon not found")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт
	// записи advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_day_schedule: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_schedule: internal error")
)
