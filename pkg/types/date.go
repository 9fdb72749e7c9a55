package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты без времени и часового пояса
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDateFormat возвращается, когда строка не соответствует формату YYYY-MM-DD
	ErrInvalidDateFormat = errors.New("invalid date string format")

	// ErrUnsupportedScanType возвращается, когда значение из БД не может быть преобразовано в дату
	ErrUnsupportedScanType = errors.New("unsupported scan type for date")
)

// Date календарная дата (YYYY-MM-DD) без времени
// Внутри хранится как полночь UTC, чтобы арифметика по дням не зависела от часового пояса
type Date struct {
	t time.Time
}

// NewDate создает дату из компонент
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewDateFromTime отбрасывает время и часовой пояс
func NewDateFromTime(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// NewDateFromString парсит строку формата YYYY-MM-DD
func NewDateFromString(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return Date{t: t}, nil
}

// MustDate парсит строку и паникует при ошибке (для тестов и констант)
func MustDate(s string) Date {
	d, err := NewDateFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String возвращает дату в формате YYYY-MM-DD, пустую строку для нулевой даты
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Time возвращает полночь UTC этой даты
func (d Date) Time() time.Time {
	return d.t
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// IsBefore проверяет, что дата строго раньше other
func (d Date) IsBefore(other Date) bool {
	return d.t.Before(other.t)
}

// IsAfter проверяет, что дата строго позже other
func (d Date) IsAfter(other Date) bool {
	return d.t.After(other.t)
}

// Equal проверяет равенство дат
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// DaysUntil количество дней от d до other (отрицательное, если other раньше)
// Считается по секундам Unix: time.Duration ограничен примерно 292 годами
func (d Date) DaysUntil(other Date) int {
	return int((other.t.Unix() - d.t.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// Scan реализует sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDateFromTime(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedScanType, src)
	}
}

func (d *Date) scanString(s string) error {
	// Postgres может вернуть DATE как "2024-01-05T00:00:00Z" в зависимости от драйвера
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := NewDateFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// MarshalJSON реализует json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON реализует json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := NewDateFromString(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
