package domain

// Default schedule configuration values
const (
	DefaultSlotStepMinutes      = 60  // Шаг сетки слотов
	DefaultSameDayBufferMinutes = 120 // Минимальное время до начала слота при записи на сегодня
	DefaultAdvanceBookingDays   = 60  // Горизонт записи; 0 = без ограничения
)

// Business validation constants
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480 // 8 часов, полный рабочий день

	MaxCustomerNameLength       = 200
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
