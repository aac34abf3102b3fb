package get_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/avtoblesk/booking-service/internal/api/handlers"
	"github.com/avtoblesk/booking-service/internal/service/bookings"
)

const (
	msgInvalidReference = "некорректный номер записи"
	msgBookingNotFound  = "запись не найдена"
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

// Handle GET /api/v1/bookings/{reference}
// Клиентская ручка: запись ищется по номеру из письма, внутренние ID
// наружу не отдаются.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["reference"]

	reference, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("GET /bookings/{reference} - Invalid reference %q: %v", raw, err)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	result, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{reference} - Not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/{reference} - Failed: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{reference} - Returned booking: reference=%s", reference)
	handlers.RespondJSON(w, http.StatusOK, result)
}
