package get_day_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/avtoblesk/booking-service/internal/domain"
	catalogClient "github.com/avtoblesk/booking-service/internal/integrations/catalog"
)

// ScheduleParams параметры генерации сетки слотов из конфигурации
type ScheduleParams struct {
	SlotStepMinutes      int // Шаг сетки слотов
	SameDayBufferMinutes int // Буфер для записи день в день
	AdvanceBookingDays   int // Горизонт записи (0 = без ограничения)
}

// UseCase use case для построения расписания студии на день
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogClient
	calendar     Calendar
	params       ScheduleParams
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogClient,
	calendar Calendar,
	params ScheduleParams,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		calendar:     calendar,
		params:       params,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case построения расписания на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: date=%s, service=%d, addons=%v",
		req.Date.Format(domain.DateFormat), req.ServiceID, req.AddonIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в таймзоне студии
	now := uc.timeProvider.Now().In(uc.calendar.Location())

	// 3. Получаем услугу из каталога
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetDaySchedule: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetDaySchedule: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем дополнительные опции
	addons, err := uc.catalog.GetAddons(ctx, req.AddonIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrAddonNotFound) {
			uc.logger.Warn("GetDaySchedule: addons %v not found", req.AddonIDs)
			return nil, ErrAddonNotFound
		}
		uc.logger.Error("GetDaySchedule: failed to get addons %v: %v", req.AddonIDs, err)
		return nil, fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
	}

	// 5. Полная длительность и стоимость: услуга + опции
	durationMinutes := service.DurationMinutes
	totalPrice := service.Price
	for _, addon := range addons {
		durationMinutes += addon.ExtraMinutes
		totalPrice += addon.Price
	}

	// 6. Проверяем горизонт записи
	if err := validateDateHorizon(req.Date, now, uc.params.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetDaySchedule: date validation failed: %v", err)
		return nil, err
	}

	// 7. Закрытый день или прошедшая дата - пустое расписание, не ошибка
	if uc.calendar.IsDateClosed(req.Date, now) {
		uc.logger.Info("GetDaySchedule: studio is closed on %s", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, service, durationMinutes, totalPrice), nil
	}

	open, close, ok := uc.calendar.OpeningWindow(req.Date)
	if !ok {
		return uc.emptyResponse(req, service, durationMinutes, totalPrice), nil
	}

	// 8. Генерируем кандидатов слотов
	candidates, err := generateCandidateSlots(
		open, close,
		uc.params.SlotStepMinutes,
		durationMinutes,
		req.Date,
		now,
		uc.params.SameDayBufferMinutes,
	)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 9. Получаем активные бронирования на эту дату
	bookings, err := uc.bookingRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Помечаем доступность каждого кандидата
	slots := markAvailability(candidates, durationMinutes, bookings)

	uc.logger.Info("GetDaySchedule: generated %d slots for date=%s, service=%d",
		len(slots), req.Date.Format(domain.DateFormat), req.ServiceID)

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		ServiceName:     service.Name,
		DurationMinutes: durationMinutes,
		TotalPrice:      totalPrice,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, service *catalogClient.Service, durationMinutes int, totalPrice float64) *Response {
	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		ServiceName:     service.Name,
		DurationMinutes: durationMinutes,
		TotalPrice:      totalPrice,
		Slots:           []domain.ScheduleSlot{},
	}
}
