package get_day_schedule

import (
	"context"
	"time"

	"github.com/avtoblesk/booking-service/internal/domain"
	"github.com/avtoblesk/booking-service/internal/integrations/catalog"
	"github.com/avtoblesk/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
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
