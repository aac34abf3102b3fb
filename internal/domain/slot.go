package domain

import (
	"time"

	"github.com/avtoblesk/booking-service/pkg/types"
)

// AppointmentSlot is a candidate appointment interval: calendar date, start
// time and duration. Immutable value object, derived on each request and
// never persisted.
type AppointmentSlot struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// EndTime returns the wall-clock end of the slot
func (s AppointmentSlot) EndTime() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}

// ScheduleSlot is one entry of a rendered day schedule. Занятые слоты не
// выбрасываются из списка, а помечаются Available=false, чтобы UI показывал
// их заблокированными.
type ScheduleSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
}
