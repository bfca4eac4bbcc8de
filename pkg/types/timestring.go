package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfDayRange возвращается, когда результат операции выходит за пределы суток
	ErrOutOfDayRange = errors.New("time is out of day range")
)

// TimeString время суток с минутной точностью в формате "HH:MM"
// Используется для хранения времени без привязки к дате и часовому поясу
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfDayRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет, что строка имеет формат "HH:MM"
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(ts))
	}
	return nil
}

// IsZero возвращает true, если значение не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// String возвращает строковое представление "HH:MM"
func (ts TimeString) String() string {
	return string(ts)
}

// Minutes возвращает количество минут с начала суток
// Для некорректного значения возвращает 0 - валидацию нужно делать заранее
func (ts TimeString) Minutes() int {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.Minutes() > other.Minutes()
}

// AddMinutes возвращает время, сдвинутое на minutes вперед
// Возвращает ошибку, если результат выходит за пределы текущих суток
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(ts.Minutes() + minutes)
}

// OnDate привязывает время суток к календарной дате и возвращает абсолютный момент времени
func (ts TimeString) OnDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), ts.Minutes()/60, ts.Minutes()%60, 0, 0, date.Location())
}

// Value реализует driver.Valuer для записи в БД (колонка TIME)
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает time.Time, string и []byte (в том числе формат "HH:MM:SS")
func (ts *TimeString) Scan(value interface{}) error {
	if value == nil {
		*ts = ""
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case string:
		return ts.scanString(v)
	case []byte:
		return ts.scanString(string(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidFormat, value)
	}
}

func (ts *TimeString) scanString(s string) error {
	// PostgreSQL возвращает TIME как "HH:MM:SS" - отбрасываем секунды
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
