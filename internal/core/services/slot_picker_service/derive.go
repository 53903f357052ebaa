package slot_picker_service

import (
	"fmt"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

// DeriveSlots нарезает окна доступности дня на слоты фиксированной длительности.
//
// Окна обрабатываются в том порядке, в котором пришли, без сортировки.
// Хвост окна короче длительности слота отбрасывается. Слот считается занятым,
// если его начало попадает в [booking.start, booking.end) хотя бы одной записи.
// Окно с концом раньше начала дает пустой результат и ошибкой не считается.
func DeriveSlots(day domain.DayCalendar) ([]domain.Slot, error) {
	if day.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("slots.derive.duration_invalid: %w: %d", domain.ErrInvalidSlotDuration, day.SlotDurationMinutes)
	}

	if err := validateDay(day); err != nil {
		return nil, err
	}

	duration := day.SlotDurationMinutes
	slots := make([]domain.Slot, 0)

	for _, window := range day.AvailabilityWindows {
		windowEnd := window.End.Minutes()

		for cursor := window.Start.Minutes(); cursor+duration <= windowEnd; cursor += duration {
			slots = append(slots, domain.Slot{
				Date:     day.Date,
				Start:    json_types.TimeFromMinutes(cursor),
				End:      json_types.TimeFromMinutes(cursor + duration),
				IsBooked: isStartBooked(cursor, day.Bookings),
				SlotID:   window.SlotID,
			})
		}
	}

	return slots, nil
}

// Проверка только по началу слота, пересечение концом не учитывается
func isStartBooked(start int, bookings []domain.Booking) bool {
	for _, booking := range bookings {
		if booking.Start.Minutes() <= start && start < booking.End.Minutes() {
			return true
		}
	}
	return false
}

func validateDay(day domain.DayCalendar) error {
	for i, window := range day.AvailabilityWindows {
		if !window.Start.Valid || !window.End.Valid {
			return fmt.Errorf("slots.derive.window_invalid: %w: window %d of %s has no start or end", domain.ErrMalformedCalendar, i, day.Date)
		}
	}
	for i, booking := range day.Bookings {
		if !booking.Start.Valid || !booking.End.Valid {
			return fmt.Errorf("slots.derive.booking_invalid: %w: booking %d of %s has no start or end", domain.ErrMalformedCalendar, i, day.Date)
		}
	}
	return nil
}
