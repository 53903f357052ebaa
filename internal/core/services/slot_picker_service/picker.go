package slot_picker_service

import (
	"fmt"
	"sync"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

// Picker сценарий выбора слота.
//
//	ViewingMonth --SelectDay--> ViewingDaySlots --SelectSlot--> SlotChosen
//	ViewingMonth <----Back----- ViewingDaySlots
//
// SlotChosen конечное состояние, дальше данные уходят в оформление записи.
// Занятость выбранного слота повторно не проверяется.
type Picker struct {
	mu             sync.Mutex
	id             string
	state          domain.PickerState
	month          json_types.Month
	availableDates domain.DateSet
	selectedDate   *json_types.Date
	slots          []domain.Slot
	selection      *domain.SlotSelection
}

func NewPicker(id string, month json_types.Month, availableDates domain.DateSet) *Picker {
	if availableDates == nil {
		availableDates = make(domain.DateSet)
	}
	return &Picker{
		id:             id,
		state:          domain.PickerStateViewingMonth,
		month:          month,
		availableDates: availableDates,
	}
}

func (p *Picker) ID() string {
	return p.id
}

func (p *Picker) State() domain.PickerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ChangeMonth листание календаря, доступно только при просмотре месяца
func (p *Picker) ChangeMonth(month json_types.Month, availableDates domain.DateSet) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != domain.PickerStateViewingMonth {
		return p.transitionError("change_month")
	}

	if availableDates == nil {
		availableDates = make(domain.DateSet)
	}
	p.month = month
	p.availableDates = availableDates
	return nil
}

// CanSelectDay можно ли открыть день из текущего состояния
func (p *Picker) CanSelectDay(date json_types.Date) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canSelectDay(date)
}

func (p *Picker) canSelectDay(date json_types.Date) error {
	if p.state != domain.PickerStateViewingMonth {
		return p.transitionError("select_day")
	}
	if !HasAvailability(date, p.availableDates) {
		return fmt.Errorf("picker.select_day: %w: %s", domain.ErrDateNotAvailable, date)
	}
	return nil
}

func (p *Picker) SelectDay(date json_types.Date, slots []domain.Slot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.canSelectDay(date); err != nil {
		return err
	}

	selected := date
	p.selectedDate = &selected
	p.slots = slots
	p.state = domain.PickerStateViewingDaySlots
	return nil
}

func (p *Picker) Back() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != domain.PickerStateViewingDaySlots {
		return p.transitionError("back")
	}

	p.selectedDate = nil
	p.slots = nil
	p.state = domain.PickerStateViewingMonth
	return nil
}

// SelectSlot выбор занятого слота ничего не меняет и возвращает domain.ErrSlotBooked
func (p *Picker) SelectSlot(index int) (*domain.SlotSelection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != domain.PickerStateViewingDaySlots {
		return nil, p.transitionError("select_slot")
	}
	if index < 0 || index >= len(p.slots) {
		return nil, fmt.Errorf("picker.select_slot: %w: index %d", domain.ErrSlotNotFound, index)
	}

	slot := p.slots[index]
	if slot.IsBooked {
		return nil, fmt.Errorf("picker.select_slot: %w: %s %s", domain.ErrSlotBooked, slot.Date, slot.Start)
	}

	selection := slot.Selection()
	p.selection = &selection
	p.state = domain.PickerStateSlotChosen
	return &selection, nil
}

func (p *Picker) View() domain.PickerView {
	p.mu.Lock()
	defer p.mu.Unlock()

	view := domain.PickerView{
		ID:    p.id,
		State: p.state,
		Month: p.month,
	}

	switch p.state {
	case domain.PickerStateViewingMonth:
		view.AvailableDates = MonthAvailableDates(p.availableDates, p.month)
	case domain.PickerStateViewingDaySlots:
		view.SelectedDate = p.selectedDate
		view.Slots = p.slots
	case domain.PickerStateSlotChosen:
		view.SelectedDate = p.selectedDate
		view.Selection = p.selection
	}

	return view
}

func (p *Picker) transitionError(action string) error {
	return fmt.Errorf("picker.%s: %w: from state %s", action, domain.ErrInvalidTransition, p.state)
}
