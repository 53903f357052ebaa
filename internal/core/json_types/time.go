package json_types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	TimeLayout = "15:04"

	// MinutesInDay конец суток, окно может заканчиваться ровно в "24:00"
	MinutesInDay = 24 * 60
)

// Time время суток без даты, формат "HH:MM"
// Valid выставляется при успешном разборе, чтобы отличать "00:00" от отсутствующего поля
type Time struct {
	minutes int
	Valid   bool
}

func NewTime(hour, minute int) Time {
	return TimeFromMinutes(hour*60 + minute)
}

// TimeFromMinutes собирает время из количества минут с начала суток, 1440 соответствует "24:00"
func TimeFromMinutes(minutes int) Time {
	return Time{minutes: minutes, Valid: true}
}

func ParseTime(str string) (Time, error) {
	str = strings.TrimSpace(str)
	if str == "24:00" || strings.HasPrefix(str, "24:00:00") {
		return TimeFromMinutes(MinutesInDay), nil
	}

	parsedTime, err := time.Parse(TimeLayout, str)
	if err != nil {
		// Бэкенд может отдавать время с секундами и миллисекундами
		parsedTime, err = time.Parse("15:04:05", str)
		if err != nil {
			return Time{}, fmt.Errorf("failed to parse time: %v", err)
		}
	}
	return NewTime(parsedTime.Hour(), parsedTime.Minute()), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Time{}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse time: %v", err)
	}

	parsedTime, err := ParseTime(str)
	if err != nil {
		return err
	}
	*t = parsedTime
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return json.Marshal(nil)
	}
	return json.Marshal(t.String())
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// Minutes количество минут с начала суток, секунды отбрасываются
func (t Time) Minutes() int {
	return t.minutes
}
