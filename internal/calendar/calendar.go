// Package calendar содержит чистые правила календаря студии: какие даты
// вообще пригодны для записи и в каком окне принимаются бронирования.
// Никаких обращений к БД или внешним сервисам.
package calendar

import (
	"time"

	"github.com/avtoblesk/booking-service/internal/domain"
	"github.com/avtoblesk/booking-service/pkg/types"
)

// Сканируем максимум неделю вперед: при одном выходном дне в неделю
// открытая дата обязана найтись за 7 итераций
const maxNextOpenScanDays = 7

// Rules правила календаря, построенные из статической конфигурации
type Rules struct {
	week domain.WeekSchedule
	loc  *time.Location
}

// NewRules создает правила календаря
func NewRules(week domain.WeekSchedule, loc *time.Location) *Rules {
	return &Rules{week: week, loc: loc}
}

// Location возвращает таймзону студии
func (r *Rules) Location() *time.Location {
	return r.loc
}

// IsDateClosed сообщает, закрыта ли студия в указанную дату.
// Закрытыми считаются фиксированные выходные дни недели и все даты
// строго раньше сегодняшней.
func (r *Rules) IsDateClosed(date, now time.Time) bool {
	if dateOnly(date, r.loc).Before(dateOnly(now, r.loc)) {
		return true
	}
	return r.week.ForWeekday(date.In(r.loc).Weekday()).Closed
}

// NextOpenDate возвращает ближайшую открытую дату >= from.
// Если за неделю открытая дата не нашлась (все дни недели закрыты),
// возвращает ok=false.
func (r *Rules) NextOpenDate(from, now time.Time) (time.Time, bool) {
	candidate := dateOnly(from, r.loc)
	today := dateOnly(now, r.loc)
	if candidate.Before(today) {
		candidate = today
	}

	for i := 0; i <= maxNextOpenScanDays; i++ {
		if !r.IsDateClosed(candidate, now) {
			return candidate, true
		}
		candidate = candidate.AddDate(0, 0, 1)
	}
	return time.Time{}, false
}

// OpeningWindow возвращает окно работы студии в указанную дату.
// Для закрытого дня недели возвращает ok=false с пустым окном: нижние слои
// трактуют это как "нет слотов", а не как ошибку. Прошедшие даты здесь не
// учитываются, это ответственность IsDateClosed.
func (r *Rules) OpeningWindow(date time.Time) (open, close types.TimeString, ok bool) {
	window := r.week.ForWeekday(date.In(r.loc).Weekday())
	if window.Closed {
		return "", "", false
	}
	return window.Open, window.Close, true
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
