package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avtoblesk/booking-service/internal/domain"
	bookingRepo "github.com/avtoblesk/booking-service/internal/infra/storage/booking"
	"github.com/avtoblesk/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с существующими бронированиями: просмотр,
// отмена, смена статуса. Создание идет через отдельный usecase.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по внутреннему ID (админские ручки)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по клиентскому номеру из письма
func (s *Service) GetByReference(ctx context.Context, reference uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с гибкой фильтрацией (админский календарь)
//
// Примеры использования:
// - Все активные бронирования: List(ctx, &ListBookingsRequest{})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отмененные: IncludeCancelled = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, status=%v, includeCancelled=%v", req.Status, req.IncludeCancelled)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("List: invalid period: end before start")
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookingList, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookingList))
	return models.FromDomainBookingList(bookingList), nil
}

// Cancel отменяет бронирование. Отмена освобождает интервал для новых
// записей, само бронирование сохраняется для истории.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d has status=%s and cannot be cancelled", id, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return nil
}

// UpdateStatus обновляет статус бронирования (админские ручки).
// Допустимы только переходы из confirmed: в completed или cancelled.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: booking id=%d, new status=%s", id, req.Status)

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := validateStatusTransition(booking.Status, status); err != nil {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for booking id=%d", booking.Status, status, id)
		return err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: failed to update booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", id, status)
	return nil
}

// validateStatusTransition проверяет допустимость перехода статуса
func validateStatusTransition(from, to domain.BookingStatus) error {
	if from == to {
		return ErrInvalidStatusTransition
	}

	// Завершенные и отмененные бронирования финальны
	if from != domain.StatusConfirmed {
		return ErrInvalidStatusTransition
	}

	if to != domain.StatusCompleted && to != domain.StatusCancelled {
		return ErrInvalidStatusTransition
	}

	return nil
}
