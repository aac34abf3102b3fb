package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/avtoblesk/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string           // Имя клиента
	CustomerEmail string           // Email для подтверждения
	CustomerPhone string           // Телефон
	VehiclePlate  *string          // Госномер автомобиля (опционально)
	ServiceID     int64            // ID услуги
	AddonIDs      []int64          // ID дополнительных опций (опционально)
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
	Notes         *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // Внутренний ID бронирования
	Reference       uuid.UUID        // Номер бронирования для клиента
	CustomerName    string           // Имя клиента
	CustomerEmail   string           // Email клиента
	CustomerPhone   string           // Телефон клиента
	VehiclePlate    *string          // Госномер автомобиля
	ServiceID       int64            // ID услуги
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Полная длительность: услуга + опции
	Status          string           // Статус бронирования

	// Денормализованные данные каталога на момент оформления
	ServiceName string  // Название услуги
	TotalPrice  float64 // Полная стоимость: услуга + опции
	Notes       *string // Пожелания клиента

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
