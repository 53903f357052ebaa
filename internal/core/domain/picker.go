package domain

import "github.com/suchimauz/coaching-slot-picker/internal/core/json_types"

type PickerState string

const (
	PickerStateViewingMonth    PickerState = "viewing_month"
	PickerStateViewingDaySlots PickerState = "viewing_day_slots"
	PickerStateSlotChosen      PickerState = "slot_chosen"
)

// PickerView снимок состояния выбора слота для отдачи клиенту
type PickerView struct {
	ID             string            `json:"id"`
	State          PickerState       `json:"state"`
	Month          json_types.Month  `json:"month"`
	AvailableDates []json_types.Date `json:"availableDates,omitempty"`
	SelectedDate   *json_types.Date  `json:"selectedDate,omitempty"`
	Slots          []Slot            `json:"slots,omitempty"`
	Selection      *SlotSelection    `json:"selection,omitempty"`
}
