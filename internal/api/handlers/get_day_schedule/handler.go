package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avtoblesk/booking-service/internal/api/handlers"
	"github.com/avtoblesk/booking-service/internal/domain"
	getDaySchedule "github.com/avtoblesk/booking-service/internal/usecase/get_day_schedule"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceID = "некорректный идентификатор услуги"
	msgInvalidAddonIDs  = "некорректные идентификаторы дополнительных опций"
	msgServiceNotFound  = "услуга не найдена"
	msgAddonNotFound    = "дополнительная опция не найдена"
	msgDateTooFar       = "дата слишком далеко в будущем"
	msgInvalidRequest   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule?date=2026-06-02&serviceId=3&addonIds=7,8
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid date %q: %v", query.Get("date"), err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid serviceId %q: %v", query.Get("serviceId"), err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	addonIDs, err := parseAddonIDs(query.Get("addonIds"))
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid addonIds %q: %v", query.Get("addonIds"), err)
		handlers.RespondBadRequest(w, msgInvalidAddonIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{
		Date:      date,
		ServiceID: serviceID,
		AddonIDs:  addonIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrServiceNotFound):
			h.logger.Warn("GET /schedule - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getDaySchedule.ErrAddonNotFound):
			h.logger.Warn("GET /schedule - Addon not found: addon_ids=%v", addonIDs)
			handlers.RespondNotFound(w, msgAddonNotFound)

		case errors.Is(err, getDaySchedule.ErrDateTooFarInFuture):
			h.logger.Warn("GET /schedule - Date too far: date=%s", date.Format(domain.DateFormat))
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /schedule - Failed to build schedule: date=%s, service_id=%d, error=%v",
				date.Format(domain.DateFormat), serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule - Returned %d slots: date=%s, service_id=%d",
		len(result.Slots), date.Format(domain.DateFormat), serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseAddonIDs разбирает список ID из query параметра вида "7,8"
func parseAddonIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
