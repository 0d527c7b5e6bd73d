package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout — формат дат на проводе и в БД (только дата, без времени).
const DateLayout = "2006-01-02"

// Date оборачивает time.Time, чтобы сериализовать даты как "2006-01-02"
// в JSON и корректно ходить в колонки типа DATE.
type Date struct {
	time.Time
}

// NewDate создает дату в UTC без компоненты времени.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected format %s", s, DateLayout)
	}
	d.Time = t
	return nil
}

// Value реализует driver.Valuer для записи в колонку DATE.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// Scan реализует sql.Scanner для чтения из колонки DATE.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v.UTC().Truncate(24 * time.Hour)
		return nil
	case []byte:
		t, err := time.Parse(DateLayout, string(v))
		if err != nil {
			return fmt.Errorf("cannot scan %q into Date: %w", string(v), err)
		}
		d.Time = t
		return nil
	case string:
		t, err := time.Parse(DateLayout, v)
		if err != nil {
			return fmt.Errorf("cannot scan %q into Date: %w", v, err)
		}
		d.Time = t
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}
