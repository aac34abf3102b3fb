package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrAddonNotFound возвращается, когда дополнительная опция не найдена
	ErrAddonNotFound = errors.New("create_booking: addon not found")

	// ErrInvalidDate возвращается при попытке записи на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт
	// записи advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrStudioClosed возвращается при попытке записи на выходной день
	ErrStudioClosed = errors.New("create_booking: studio is closed on this date")

	// ErrSlotTaken возвращается, когда запрошенный интервал пересекается с
	// существующим бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrOutsideWorkingHours возвращается, когда время начала не лежит на
	// сетке слотов или услуга не помещается до закрытия
	ErrOutsideWorkingHours = errors.New("create_booking: time is outside working hours")

	// ErrTooLateToBook возвращается, когда запись день в день нарушает буфер
	// sameDayBufferMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
