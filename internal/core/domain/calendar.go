package domain

import (
	"time"

	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

// AvailabilityWindow промежуток дня, в который коуч принимает записи
type AvailabilityWindow struct {
	SlotID json_types.ID   `json:"slotId"`
	Start  json_types.Time `json:"start"`
	End    json_types.Time `json:"end"`
}

// Booking уже занятый промежуток дня
type Booking struct {
	Start json_types.Time `json:"start"`
	End   json_types.Time `json:"end"`
}

type DayCalendar struct {
	Date                json_types.Date      `json:"date"`
	SlotDurationMinutes int                  `json:"slotDuration"`
	AvailabilityWindows []AvailabilityWindow `json:"availableSlots"`
	Bookings            []Booking            `json:"bookings"`
}

type CalendarMonth struct {
	Year  int           `json:"year,omitempty"`
	Month int           `json:"month,omitempty"`
	Days  []DayCalendar `json:"days"`
}

type CalendarYear struct {
	Year   int             `json:"year,omitempty"`
	Months []CalendarMonth `json:"months"`
}

// Key месяц, к которому относятся дни. Бэкенд не всегда заполняет year/month,
// поэтому в первую очередь смотрим на дату первого дня
func (m CalendarMonth) Key() (json_types.Month, bool) {
	for _, day := range m.Days {
		if !day.Date.IsZero() {
			return day.Date.Month(), true
		}
	}
	if m.Year > 0 && m.Month >= 1 && m.Month <= 12 {
		return json_types.NewMonth(m.Year, time.Month(m.Month)), true
	}
	return json_types.Month{}, false
}

// Day ищет день по дате
func (m CalendarMonth) Day(date json_types.Date) (DayCalendar, bool) {
	for _, day := range m.Days {
		if day.Date.String() == date.String() {
			return day, true
		}
	}
	return DayCalendar{}, false
}

// DateSet множество дат, в которых настроено хотя бы одно окно
type DateSet map[string]struct{}

func (s DateSet) Add(date json_types.Date) {
	s[date.String()] = struct{}{}
}

func (s DateSet) Contains(date json_types.Date) bool {
	_, ok := s[date.String()]
	return ok
}
