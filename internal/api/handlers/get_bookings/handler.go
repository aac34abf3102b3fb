package get_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avtoblesk/booking-service/internal/api/handlers"
	"github.com/avtoblesk/booking-service/internal/domain"
	"github.com/avtoblesk/booking-service/internal/service/bookings"
	"github.com/avtoblesk/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/admin/bookings?startDate=...&endDate=...&status=...&includeCancelled=true
// Админский календарь: просмотр бронирований за период с фильтрацией.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListBookingsRequest{}

	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid startDate %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &date
	}

	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid endDate %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &date
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid includeCancelled %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.IncludeCancelled = include
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/bookings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Returned %d bookings", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
