// Package types contains shared value types used across service layers.
package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time with minute precision in "HH:MM"
// format. The value carries no date and no timezone: it is always interpreted
// in the studio's local timezone against a concrete booking date.
//
// The zero value ("") is treated as "not set".
type TimeString string

// Layout used for parsing and formatting.
const timeStringLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of 00:00-23:59 range")
)

// NewTimeString creates a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(timeStringLayout, s); err != nil {
		return "", ErrInvalidTimeString
	}
	return TimeString(s), nil
}

// NewTimeStringFromMinutes creates a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", ErrTimeOutOfRange
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is not set.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the "HH:MM" format.
func (t TimeString) Validate() error {
	_, err := NewTimeStringFromString(string(t))
	return err
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return 0, ErrInvalidTimeString
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Результат не может пересекать границу суток: бронирования в рамках одного
// рабочего дня заканчиваются до полуночи.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore reports whether t is strictly before other.
// Лексикографическое сравнение корректно для формата HH:MM с ведущими нулями.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly after other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// At combines the wall-clock time with a calendar date in the date's location.
func (t TimeString) At(date time.Time) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// Scan implements sql.Scanner. Поддерживает значения TIME колонок PostgreSQL,
// которые драйвер возвращает как time.Time, string или []byte ("10:00:00").
func (t *TimeString) Scan(value interface{}) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeString", value)
	}
}

func (t *TimeString) scanString(s string) error {
	// Отрезаем секунды, если драйвер вернул HH:MM:SS
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// MarshalJSON implements json.Marshaler.
func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
