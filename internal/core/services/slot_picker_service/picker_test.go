package slot_picker_service

import (
	"errors"
	"testing"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

func newJunePicker(t *testing.T) *Picker {
	t.Helper()
	dates := make(domain.DateSet)
	dates.Add(json_types.NewDate(2024, 6, 10))
	dates.Add(json_types.NewDate(2024, 6, 3))
	return NewPicker("picker-1", json_types.NewMonth(2024, 6), dates)
}

func daySlots(t *testing.T) []domain.Slot {
	t.Helper()
	slots, err := DeriveSlots(domain.DayCalendar{
		Date:                json_types.NewDate(2024, 6, 10),
		SlotDurationMinutes: 30,
		AvailabilityWindows: []domain.AvailabilityWindow{window(t, "1", "09:00", "10:00")},
		Bookings:            []domain.Booking{booking(t, "09:00", "09:30")},
	})
	if err != nil {
		t.Fatalf("DeriveSlots: %v", err)
	}
	return slots
}

func TestPickerFlow(t *testing.T) {
	picker := newJunePicker(t)

	view := picker.View()
	if view.State != domain.PickerStateViewingMonth {
		t.Fatalf("initial state = %s, want %s", view.State, domain.PickerStateViewingMonth)
	}
	if len(view.AvailableDates) != 2 || view.AvailableDates[0].String() != "2024-06-03" {
		t.Errorf("available dates = %v, want sorted June dates", view.AvailableDates)
	}

	date := json_types.NewDate(2024, 6, 10)
	if err := picker.SelectDay(date, daySlots(t)); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}

	view = picker.View()
	if view.State != domain.PickerStateViewingDaySlots {
		t.Fatalf("state after SelectDay = %s", view.State)
	}
	if view.SelectedDate == nil || view.SelectedDate.String() != "2024-06-10" {
		t.Errorf("selected date = %v, want 2024-06-10", view.SelectedDate)
	}
	if len(view.Slots) != 2 {
		t.Fatalf("slots = %v, want 2", view.Slots)
	}

	selection, err := picker.SelectSlot(1)
	if err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if selection.Start.String() != "09:30" || selection.End.String() != "10:00" || selection.SlotID != "1" {
		t.Errorf("selection = %+v, want 09:30-10:00 slot 1", selection)
	}

	view = picker.View()
	if view.State != domain.PickerStateSlotChosen {
		t.Errorf("state after SelectSlot = %s, want %s", view.State, domain.PickerStateSlotChosen)
	}
	if view.Selection == nil || view.Selection.Date.String() != "2024-06-10" {
		t.Errorf("view selection = %+v", view.Selection)
	}
}

func TestPickerSelectBookedSlotIsNoop(t *testing.T) {
	picker := newJunePicker(t)
	if err := picker.SelectDay(json_types.NewDate(2024, 6, 10), daySlots(t)); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}

	_, err := picker.SelectSlot(0)
	if !errors.Is(err, domain.ErrSlotBooked) {
		t.Fatalf("SelectSlot(booked) error = %v, want ErrSlotBooked", err)
	}
	if picker.State() != domain.PickerStateViewingDaySlots {
		t.Errorf("state changed to %s after booked slot selection", picker.State())
	}
	if picker.View().Selection != nil {
		t.Error("selection set after booked slot selection")
	}
}

func TestPickerRejectsUnavailableDay(t *testing.T) {
	picker := newJunePicker(t)

	err := picker.SelectDay(json_types.NewDate(2024, 6, 11), nil)
	if !errors.Is(err, domain.ErrDateNotAvailable) {
		t.Fatalf("SelectDay(unavailable) error = %v, want ErrDateNotAvailable", err)
	}
	if picker.State() != domain.PickerStateViewingMonth {
		t.Errorf("state = %s, want %s", picker.State(), domain.PickerStateViewingMonth)
	}
}

func TestPickerBack(t *testing.T) {
	picker := newJunePicker(t)

	if err := picker.Back(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("Back from month view error = %v, want ErrInvalidTransition", err)
	}

	if err := picker.SelectDay(json_types.NewDate(2024, 6, 10), daySlots(t)); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}
	if err := picker.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}

	view := picker.View()
	if view.State != domain.PickerStateViewingMonth {
		t.Errorf("state after Back = %s", view.State)
	}
	if view.SelectedDate != nil || view.Slots != nil {
		t.Errorf("day data kept after Back: %+v", view)
	}
}

func TestPickerInvalidTransitions(t *testing.T) {
	picker := newJunePicker(t)

	if _, err := picker.SelectSlot(0); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("SelectSlot from month view error = %v, want ErrInvalidTransition", err)
	}

	if err := picker.SelectDay(json_types.NewDate(2024, 6, 10), daySlots(t)); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}
	if err := picker.ChangeMonth(json_types.NewMonth(2024, 7), nil); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("ChangeMonth from day view error = %v, want ErrInvalidTransition", err)
	}
	if _, err := picker.SelectSlot(5); !errors.Is(err, domain.ErrSlotNotFound) {
		t.Errorf("SelectSlot(out of range) error = %v, want ErrSlotNotFound", err)
	}

	if _, err := picker.SelectSlot(1); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if err := picker.Back(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("Back from chosen slot error = %v, want ErrInvalidTransition", err)
	}
	if err := picker.CanSelectDay(json_types.NewDate(2024, 6, 10)); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("CanSelectDay from chosen slot error = %v, want ErrInvalidTransition", err)
	}
}

func TestPickerChangeMonth(t *testing.T) {
	picker := newJunePicker(t)

	july := make(domain.DateSet)
	july.Add(json_types.NewDate(2024, 7, 2))
	if err := picker.ChangeMonth(json_types.NewMonth(2024, 7), july); err != nil {
		t.Fatalf("ChangeMonth: %v", err)
	}

	view := picker.View()
	if view.Month.String() != "2024-07" {
		t.Errorf("month = %s, want 2024-07", view.Month)
	}
	if len(view.AvailableDates) != 1 || view.AvailableDates[0].String() != "2024-07-02" {
		t.Errorf("available dates = %v, want [2024-07-02]", view.AvailableDates)
	}

	if err := picker.CanSelectDay(json_types.NewDate(2024, 6, 10)); !errors.Is(err, domain.ErrDateNotAvailable) {
		t.Errorf("June date after switching to July error = %v, want ErrDateNotAvailable", err)
	}
}
