package slot_picker_service

import (
	"sort"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

// AvailableDates собирает даты, в которых настроено хотя бы одно окно.
// Полностью занятый день тоже считается доступным: свободные слоты здесь не проверяются
func AvailableDates(years []domain.CalendarYear) domain.DateSet {
	dates := make(domain.DateSet)
	for _, year := range years {
		for _, month := range year.Months {
			for _, day := range month.Days {
				if len(day.AvailabilityWindows) > 0 {
					dates.Add(day.Date)
				}
			}
		}
	}
	return dates
}

func HasAvailability(date json_types.Date, availableDates domain.DateSet) bool {
	return availableDates.Contains(date)
}

// MonthAvailableDates даты множества, попадающие в месяц, по возрастанию
func MonthAvailableDates(availableDates domain.DateSet, month json_types.Month) []json_types.Date {
	dates := make([]json_types.Date, 0)
	for key := range availableDates {
		date, err := json_types.ParseDate(key)
		if err != nil {
			continue
		}
		if month.Contains(date) {
			dates = append(dates, date)
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Date.Before(dates[j].Date)
	})

	return dates
}
