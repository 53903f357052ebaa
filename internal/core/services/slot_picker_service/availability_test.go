package slot_picker_service

import (
	"testing"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

func TestAvailableDates(t *testing.T) {
	fullyBooked := domain.DayCalendar{
		Date:                json_types.NewDate(2024, 6, 12),
		SlotDurationMinutes: 30,
		AvailabilityWindows: []domain.AvailabilityWindow{window(t, "1", "09:00", "09:30")},
		Bookings:            []domain.Booking{booking(t, "09:00", "09:30")},
	}
	free := domain.DayCalendar{
		Date:                json_types.NewDate(2024, 6, 10),
		SlotDurationMinutes: 30,
		AvailabilityWindows: []domain.AvailabilityWindow{window(t, "2", "09:00", "10:00")},
	}
	empty := domain.DayCalendar{
		Date:                json_types.NewDate(2024, 6, 11),
		SlotDurationMinutes: 30,
	}
	nextMonth := domain.DayCalendar{
		Date:                json_types.NewDate(2024, 7, 1),
		SlotDurationMinutes: 60,
		AvailabilityWindows: []domain.AvailabilityWindow{window(t, "3", "12:00", "13:00")},
	}

	years := []domain.CalendarYear{{
		Year: 2024,
		Months: []domain.CalendarMonth{
			{Year: 2024, Month: 6, Days: []domain.DayCalendar{fullyBooked, free, empty}},
			{Year: 2024, Month: 7, Days: []domain.DayCalendar{nextMonth}},
		},
	}}

	dates := AvailableDates(years)

	for _, day := range []domain.DayCalendar{fullyBooked, free, nextMonth} {
		if !HasAvailability(day.Date, dates) {
			t.Errorf("HasAvailability(%s) = false, want true", day.Date)
		}
	}
	if HasAvailability(empty.Date, dates) {
		t.Errorf("HasAvailability(%s) = true for day without windows", empty.Date)
	}
	if HasAvailability(json_types.NewDate(2024, 8, 1), dates) {
		t.Error("HasAvailability returned true for a date outside the snapshot")
	}

	june := MonthAvailableDates(dates, json_types.NewMonth(2024, 6))
	if len(june) != 2 {
		t.Fatalf("MonthAvailableDates(2024-06) = %v, want 2 dates", june)
	}
	if june[0].String() != "2024-06-10" || june[1].String() != "2024-06-12" {
		t.Errorf("MonthAvailableDates(2024-06) = %v, want sorted [2024-06-10 2024-06-12]", june)
	}

	if got := MonthAvailableDates(dates, json_types.NewMonth(2024, 9)); len(got) != 0 {
		t.Errorf("MonthAvailableDates(2024-09) = %v, want empty", got)
	}
}

func TestAvailableDatesEmptySnapshot(t *testing.T) {
	dates := AvailableDates(nil)
	if len(dates) != 0 {
		t.Errorf("AvailableDates(nil) = %v, want empty", dates)
	}
	if HasAvailability(json_types.NewDate(2024, 6, 10), dates) {
		t.Error("HasAvailability on empty set returned true")
	}
}
