package in

import (
	"context"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

type SlotPickerUseCase interface {
	// Календарь и доступные даты месяца
	GetMonthCalendar(ctx context.Context, month json_types.Month) (*domain.CalendarMonth, error)
	GetAvailableDates(ctx context.Context, month json_types.Month) ([]json_types.Date, error)

	// Слоты дня, всегда вычисляются заново
	GetDaySlots(ctx context.Context, date json_types.Date) ([]domain.Slot, []domain.DebugInfo, error)

	// Сценарий выбора слота: месяц -> день -> слот
	StartPicker(ctx context.Context, month json_types.Month) (*domain.PickerView, error)
	GetPicker(ctx context.Context, pickerID string) (*domain.PickerView, error)
	PickerChangeMonth(ctx context.Context, pickerID string, month json_types.Month) (*domain.PickerView, error)
	PickerSelectDay(ctx context.Context, pickerID string, date json_types.Date) (*domain.PickerView, error)
	PickerBack(ctx context.Context, pickerID string) (*domain.PickerView, error)
	PickerSelectSlot(ctx context.Context, pickerID string, index int) (*domain.PickerView, error)
	ClosePicker(ctx context.Context, pickerID string) error

	// Передача выбранного слота в оформление записи
	SubmitBooking(ctx context.Context, selection domain.SlotSelection, details domain.BookingDetails) (*domain.BookingConfirmation, error)

	// Каталог услуг и записи пользователя
	ListServices(ctx context.Context) ([]domain.Service, error)
	ListUserBookings(ctx context.Context, userID int) ([]domain.UserBooking, error)

	// Инвалидация кэша календаря
	InvalidateMonthCache(ctx context.Context, month json_types.Month) error
	InvalidateAllCache(ctx context.Context) error
}
