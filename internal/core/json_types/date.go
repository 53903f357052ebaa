package json_types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.ParseInLocation(DateLayout, str, time.UTC)
	// Бэкенд иногда отдает дату вместе со временем, время отбрасываем
	if err != nil {
		parsedDateTime, dtErr := time.Parse(time.RFC3339, str)
		if dtErr != nil {
			parsedDateTime, dtErr = time.ParseInLocation("2006-01-02T15:04:05", str, time.UTC)
			if dtErr != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
		parsedDate = time.Date(parsedDateTime.Year(), parsedDateTime.Month(), parsedDateTime.Day(), 0, 0, 0, 0, time.UTC)
	}

	return parsedDate, nil
}

// Date календарная дата без времени и таймзоны, всегда хранится в UTC
type Date struct {
	Date time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(str string) (Date, error) {
	parsedDate, err := parseDate(strings.TrimSpace(str))
	if err != nil {
		return Date{}, err
	}
	return Date{Date: parsedDate}, nil
}

func (t *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Date{}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t Date) String() string {
	return t.Date.Format(DateLayout)
}

func (t Date) IsZero() bool {
	return t.Date.IsZero()
}

// Month возвращает первое число месяца даты
func (t Date) Month() Month {
	return Month{Date: time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// Month календарный месяц, формат "YYYY-MM"
type Month struct {
	Date time.Time
}

func NewMonth(year int, month time.Month) Month {
	return Month{Date: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

func ParseMonth(str string) (Month, error) {
	parsed, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(str), time.UTC)
	if err != nil {
		return Month{}, fmt.Errorf("failed to parse month: %v", err)
	}
	return Month{Date: parsed}, nil
}

func (m *Month) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse month: %v", err)
	}

	parsed, err := ParseMonth(str)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m Month) String() string {
	return m.Date.Format(MonthLayout)
}

func (m Month) IsZero() bool {
	return m.Date.IsZero()
}

func (m Month) Contains(date Date) bool {
	return date.Date.Year() == m.Date.Year() && date.Date.Month() == m.Date.Month()
}
