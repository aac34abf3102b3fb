package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avtoblesk/booking-service/internal/domain"
	storage "github.com/avtoblesk/booking-service/internal/infra/storage/booking"
	catalogClient "github.com/avtoblesk/booking-service/internal/integrations/catalog"
)

// Уведомление отправляется после коммита транзакции в отдельной горутине:
// судьба письма не должна влиять на уже созданное бронирование
const notificationTimeout = 15 * time.Second

// ScheduleParams параметры сетки слотов из конфигурации
type ScheduleParams struct {
	SlotStepMinutes      int // Шаг сетки слотов
	SameDayBufferMinutes int // Буфер для записи день в день
	AdvanceBookingDays   int // Горизонт записи (0 = без ограничения)
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogClient
	calendar     Calendar
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	params       ScheduleParams
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogClient,
	calendar Calendar,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	params ScheduleParams,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		calendar:     calendar,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		params:       params,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Критическая секция между проверкой занятости и вставкой выполняется в
// сериализуемой транзакции с блокировкой бронирований дня (FOR UPDATE), а
// exclusion constraint в БД остается последним рубежом защиты от гонок.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s, email=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.CustomerEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в таймзоне студии
	now := uc.timeProvider.Now().In(uc.calendar.Location())

	// 3. Получаем услугу из каталога
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем дополнительные опции
	addons, err := uc.catalog.GetAddons(ctx, req.AddonIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrAddonNotFound) {
			uc.logger.Warn("CreateBooking: addons %v not found", req.AddonIDs)
			return nil, ErrAddonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get addons %v: %v", req.AddonIDs, err)
		return nil, fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
	}

	// 5. Полная длительность и стоимость: услуга + опции
	durationMinutes := service.DurationMinutes
	totalPrice := service.Price
	serviceName := service.Name
	for _, addon := range addons {
		durationMinutes += addon.ExtraMinutes
		totalPrice += addon.Price
	}

	// 6. Суммарная длительность в допустимых пределах
	if durationMinutes < domain.MinDurationMinutes || durationMinutes > domain.MaxDurationMinutes {
		uc.logger.Warn("CreateBooking: total duration %d minutes is out of range", durationMinutes)
		return nil, fmt.Errorf("%w: total duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	// 7. Валидация даты
	if err := validateDate(req.Date, now, uc.params.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 8. Проверяем, что студия работает в эту дату
	if uc.calendar.IsDateClosed(req.Date, now) {
		uc.logger.Warn("CreateBooking: studio is closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrStudioClosed
	}

	open, close, ok := uc.calendar.OpeningWindow(req.Date)
	if !ok {
		return nil, ErrStudioClosed
	}

	// 9. Время начала лежит на сетке, услуга помещается до закрытия
	if err := validateStartTimeOnGrid(req.StartTime, open, close, uc.params.SlotStepMinutes, durationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: time validation failed: %v", err)
		return nil, err
	}

	// 10. Запись день в день не нарушает буфер
	if err := validateSameDayBuffer(req.Date, req.StartTime, now, uc.params.SameDayBufferMinutes); err != nil {
		uc.logger.Warn("CreateBooking: same-day buffer validation failed: %v", err)
		return nil, err
	}

	// Запрошенный интервал как кандидат слота
	slot := domain.AppointmentSlot{
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: durationMinutes,
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 11. Критическая секция в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 11.1. Перечитываем бронирования дня с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 11.2. Повторная проверка занятости внутри транзакции
		overlapping, err := countOverlappingBookings(slot, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}
		if overlapping > 0 {
			uc.logger.Warn("CreateBooking: slot %s on %s is taken (%d overlapping)",
				req.StartTime, req.Date.Format(domain.DateFormat), overlapping)
			return ErrSlotTaken
		}

		// 11.3. Создаем бронирование с денормализацией данных каталога
		booking := &domain.Booking{
			Reference:       uuid.New(),
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			VehiclePlate:    req.VehiclePlate,
			ServiceID:       req.ServiceID,
			BookingDate:     slot.Date,
			StartTime:       slot.StartTime,
			DurationMinutes: slot.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     serviceName,
			TotalPrice:      totalPrice,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint сработал на конкурентной вставке
			if errors.Is(err, storage.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: concurrent insert detected for slot %s on %s",
					req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.metrics.IncBookingConflict()
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	// 12. Уведомление после коммита, fire-and-forget
	uc.notifyAsync(result)

	return &Response{
		ID:              result.ID,
		Reference:       result.Reference,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		VehiclePlate:    result.VehiclePlate,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		TotalPrice:      result.TotalPrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// notifyAsync отправляет подтверждение в отдельной горутине.
// Используется фоновый контекст: запрос клиента к этому моменту уже завершен,
// и отмена его контекста не должна обрывать отправку письма.
func (uc *UseCase) notifyAsync(booking *domain.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
		defer cancel()

		if err := uc.notifier.SendBookingConfirmation(ctx, booking); err != nil {
			uc.metrics.IncNotificationFailure()
			uc.logger.Error("CreateBooking: failed to send confirmation for reference=%s: %v", booking.Reference, err)
		}
	}()
}
