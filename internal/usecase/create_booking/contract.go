package create_booking

import (
	"context"
	"time"

	"github.com/avtoblesk/booking-service/internal/domain"
	"github.com/avtoblesk/booking-service/internal/integrations/catalog"
	"github.com/avtoblesk/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalog.Service, error)
	GetAddons(ctx context.Context, addonIDs []int64) ([]*catalog.Addon, error)
}

// Calendar интерфейс правил календаря студии
type Calendar interface {
	Location() *time.Location
	IsDateClosed(date, now time.Time) bool
	OpeningWindow(date time.Time) (open, close types.TimeString, ok bool)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений клиенту
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error
}

// Metrics интерфейс счетчиков бизнес-событий
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
	IncNotificationFailure()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NopMetrics заглушка метрик для конфигураций с выключенным Prometheus
type NopMetrics struct{}

func (NopMetrics) IncBookingCreated()      {}
func (NopMetrics) IncBookingConflict()     {}
func (NopMetrics) IncNotificationFailure() {}
