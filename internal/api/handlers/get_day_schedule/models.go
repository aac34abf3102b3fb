package get_day_schedule

import (
	"github.com/avtoblesk/booking-service/internal/domain"
	getDaySchedule "github.com/avtoblesk/booking-service/internal/usecase/get_day_schedule"
)

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	Date            string         `json:"date"`
	ServiceID       int64          `json:"serviceId"`
	ServiceName     string         `json:"serviceName"`
	DurationMinutes int            `json:"durationMinutes"`
	TotalPrice      float64        `json:"totalPrice"`
	Slots           []ScheduleSlot `json:"slots"`
}

// ScheduleSlot HTTP модель слота расписания
type ScheduleSlot struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *ScheduleResponse {
	slots := make([]ScheduleSlot, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, ScheduleSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		})
	}

	return &ScheduleResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		TotalPrice:      resp.TotalPrice,
		Slots:           slots,
	}
}
