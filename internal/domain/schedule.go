package domain

import (
	"time"

	"github.com/avtoblesk/booking-service/pkg/types"
)

// DayWindow describes the opening window of a single weekday.
// Closed day has no window at all.
type DayWindow struct {
	Closed bool
	Open   types.TimeString
	Close  types.TimeString
}

// WeekSchedule is the fixed weekly opening schedule of the studio
type WeekSchedule struct {
	Monday    DayWindow
	Tuesday   DayWindow
	Wednesday DayWindow
	Thursday  DayWindow
	Friday    DayWindow
	Saturday  DayWindow
	Sunday    DayWindow
}

// ForWeekday returns the window of the given weekday
func (w WeekSchedule) ForWeekday(day time.Weekday) DayWindow {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DayWindow{Closed: true}
	}
}
