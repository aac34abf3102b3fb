package get_day_schedule

import (
	"time"

	"github.com/avtoblesk/booking-service/internal/domain"
)

// Request модель запроса расписания на день
type Request struct {
	Date      time.Time // Дата, на которую строится расписание (без времени)
	ServiceID int64     // ID услуги
	AddonIDs  []int64   // ID дополнительных опций (опционально)
}

// Response модель ответа с расписанием на день.
// Занятые слоты не выбрасываются, а помечаются Available=false.
type Response struct {
	Date            time.Time             // Дата расписания
	ServiceID       int64                 // ID услуги
	ServiceName     string                // Название услуги из каталога
	DurationMinutes int                   // Полная длительность: услуга + опции
	TotalPrice      float64               // Полная стоимость: услуга + опции
	Slots           []domain.ScheduleSlot // Сетка слотов дня
}
