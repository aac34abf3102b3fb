package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtoblesk/booking-service/internal/api/handlers"
	"github.com/avtoblesk/booking-service/internal/service/bookings"
	"github.com/avtoblesk/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgCannotCancel       = "бронирование нельзя отменить"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/cancel - Invalid id %q: %v", mux.Vars(r)["id"], err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/cancel - Not found: booking_id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("POST /admin/bookings/{id}/cancel - Cannot cancel: booking_id=%d", id)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/bookings/{id}/cancel - Failed: booking_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/cancel - Booking cancelled: booking_id=%d", id)
	handlers.RespondNoContent(w)
}
