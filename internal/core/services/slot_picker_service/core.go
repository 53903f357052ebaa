package slot_picker_service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/coaching-slot-picker/internal/config"
	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

const defaultCurrency = "AED"

type SlotPickerService struct {
	calendarPort out.CalendarPort
	bookingPort  out.BookingPort
	servicePort  out.ServicePort
	cachePort    out.CachePort
	logger       out.LoggerPort
	cfg          *config.Config
	sessions     *pickerSessions
	now          func() time.Time
}

func NewSlotPickerService(
	calendarPort out.CalendarPort,
	bookingPort out.BookingPort,
	servicePort out.ServicePort,
	cachePort out.CachePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *SlotPickerService {
	return &SlotPickerService{
		calendarPort: calendarPort,
		bookingPort:  bookingPort,
		servicePort:  servicePort,
		cachePort:    cachePort,
		logger:       logger.WithModule("SlotPickerService"),
		cfg:          cfg,
		sessions:     newPickerSessions(cfg.Picker.SessionsSize, cfg.Picker.SessionTTL),
		now:          time.Now,
	}
}

func (s *SlotPickerService) cacheEnabled() bool {
	return s.cachePort != nil && s.cfg.Cache.Enabled
}

func (s *SlotPickerService) GetMonthCalendar(ctx context.Context, month json_types.Month) (*domain.CalendarMonth, error) {
	// Проверяем кэш только если он включен
	if s.cacheEnabled() {
		if calendar, exists := s.cachePort.GetMonth(ctx, month); exists {
			s.logger.Debug("calendar.month.cache.hit", out.LogFields{
				"month": month.String(),
				"days":  len(calendar.Days),
			})
			return calendar, nil
		}
	}

	s.logger.Debug("calendar.month.cache.miss", out.LogFields{
		"month": month.String(),
	})

	years, err := s.calendarPort.GetUpcomingCalendar(ctx)
	if err != nil {
		s.logger.Error("calendar.month.fetch_failed", out.LogFields{
			"month": month.String(),
			"error": err.Error(),
		})
		return nil, fmt.Errorf("calendar.month.fetch_failed: %w", err)
	}

	requested := domain.CalendarMonth{
		Year:  month.Date.Year(),
		Month: int(month.Date.Month()),
		Days:  []domain.DayCalendar{},
	}

	// Один запрос отдает сразу несколько месяцев, кладем в кэш все
	for _, year := range years {
		for _, calendarMonth := range year.Months {
			key, ok := calendarMonth.Key()
			if !ok {
				continue
			}
			if key.String() == month.String() {
				requested.Days = append(requested.Days, calendarMonth.Days...)
				continue
			}
			if s.cacheEnabled() {
				s.cachePort.StoreMonth(ctx, key, calendarMonth)
			}
		}
	}

	if s.cacheEnabled() {
		s.cachePort.StoreMonth(ctx, month, requested)
	}

	s.logger.Info("calendar.month.fetched", out.LogFields{
		"month": month.String(),
		"days":  len(requested.Days),
	})

	return &requested, nil
}

func (s *SlotPickerService) availableDatesForMonth(ctx context.Context, month json_types.Month) (domain.DateSet, error) {
	calendar, err := s.GetMonthCalendar(ctx, month)
	if err != nil {
		return nil, err
	}

	return AvailableDates([]domain.CalendarYear{{Year: calendar.Year, Months: []domain.CalendarMonth{*calendar}}}), nil
}

func (s *SlotPickerService) GetAvailableDates(ctx context.Context, month json_types.Month) ([]json_types.Date, error) {
	dates, err := s.availableDatesForMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	return MonthAvailableDates(dates, month), nil
}

func (s *SlotPickerService) GetDaySlots(ctx context.Context, date json_types.Date) ([]domain.Slot, []domain.DebugInfo, error) {
	debugInfo := SlotPickerServiceDebug{
		data: make([]domain.DebugInfo, 0),
	}

	s.logger.Info("slots.derive.started", out.LogFields{
		"date": date.String(),
	})

	fetchDebug := domain.StartDebugInfo("slots.derive.calendar.fetch")
	calendar, err := s.GetMonthCalendar(ctx, date.Month())
	if err != nil {
		return nil, nil, err
	}
	fetchDebug.Elapse()
	debugInfo.AddDebugInfo(fetchDebug)

	day, exists := calendar.Day(date)
	if !exists {
		s.logger.Debug("slots.derive.day.not_found", out.LogFields{
			"date": date.String(),
		})
		return []domain.Slot{}, debugInfo.data, nil
	}

	deriveDebug := domain.StartDebugInfo("slots.derive.compute")
	slots, err := DeriveSlots(day)
	if err != nil {
		s.logger.Error("slots.derive.failed", out.LogFields{
			"date":         date.String(),
			"slotDuration": day.SlotDurationMinutes,
			"error":        err.Error(),
		})
		return nil, nil, err
	}
	deriveDebug.Elapse()
	deriveDebug.AddOption("windows", fmt.Sprint(len(day.AvailabilityWindows)))
	deriveDebug.AddOption("slots", fmt.Sprint(len(slots)))
	debugInfo.AddDebugInfo(deriveDebug)

	return slots, debugInfo.data, nil
}

// Сценарий выбора слота

func (s *SlotPickerService) StartPicker(ctx context.Context, month json_types.Month) (*domain.PickerView, error) {
	dates, err := s.availableDatesForMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	picker := NewPicker(uuid.NewString(), month, dates)
	s.sessions.store(picker)

	s.logger.Debug("picker.started", out.LogFields{
		"pickerId": picker.ID(),
		"month":    month.String(),
	})

	view := picker.View()
	return &view, nil
}

func (s *SlotPickerService) getPicker(pickerID string) (*Picker, error) {
	picker, exists := s.sessions.get(pickerID)
	if !exists {
		return nil, fmt.Errorf("picker.get: %w: %s", domain.ErrPickerNotFound, pickerID)
	}
	return picker, nil
}

func (s *SlotPickerService) GetPicker(ctx context.Context, pickerID string) (*domain.PickerView, error) {
	picker, err := s.getPicker(pickerID)
	if err != nil {
		return nil, err
	}
	view := picker.View()
	return &view, nil
}

func (s *SlotPickerService) PickerChangeMonth(ctx context.Context, pickerID string, month json_types.Month) (*domain.PickerView, error) {
	picker, err := s.getPicker(pickerID)
	if err != nil {
		return nil, err
	}

	dates, err := s.availableDatesForMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	if err := picker.ChangeMonth(month, dates); err != nil {
		return nil, err
	}

	view := picker.View()
	return &view, nil
}

func (s *SlotPickerService) PickerSelectDay(ctx context.Context, pickerID string, date json_types.Date) (*domain.PickerView, error) {
	picker, err := s.getPicker(pickerID)
	if err != nil {
		return nil, err
	}

	// Проверяем переход до похода за календарем
	if err := picker.CanSelectDay(date); err != nil {
		return nil, err
	}

	slots, _, err := s.GetDaySlots(ctx, date)
	if err != nil {
		return nil, err
	}

	if err := picker.SelectDay(date, slots); err != nil {
		return nil, err
	}

	view := picker.View()
	return &view, nil
}

func (s *SlotPickerService) PickerBack(ctx context.Context, pickerID string) (*domain.PickerView, error) {
	picker, err := s.getPicker(pickerID)
	if err != nil {
		return nil, err
	}

	if err := picker.Back(); err != nil {
		return nil, err
	}

	view := picker.View()
	return &view, nil
}

func (s *SlotPickerService) PickerSelectSlot(ctx context.Context, pickerID string, index int) (*domain.PickerView, error) {
	picker, err := s.getPicker(pickerID)
	if err != nil {
		return nil, err
	}

	selection, err := picker.SelectSlot(index)
	if err != nil {
		return nil, err
	}

	s.logger.Info("picker.slot.chosen", out.LogFields{
		"pickerId": pickerID,
		"date":     selection.Date.String(),
		"start":    selection.Start.String(),
		"slotId":   selection.SlotID.String(),
	})

	view := picker.View()
	return &view, nil
}

func (s *SlotPickerService) ClosePicker(ctx context.Context, pickerID string) error {
	if _, err := s.getPicker(pickerID); err != nil {
		return err
	}
	s.sessions.remove(pickerID)
	return nil
}

// Оформление записи

func (s *SlotPickerService) SubmitBooking(ctx context.Context, selection domain.SlotSelection, details domain.BookingDetails) (*domain.BookingConfirmation, error) {
	if err := validateBooking(selection, details); err != nil {
		return nil, err
	}

	if details.Currency == "" {
		details.Currency = defaultCurrency
	}

	request := domain.BookingRequest{
		BookingDetails: details,
		BookingID:      "BK-" + uuid.NewString(),
		SlotID:         selection.SlotID.String(),
		StartedDate:    selection.Date.String(),
		StartedTime:    selection.Start.String(),
		EndedTime:      fmt.Sprintf("%sT%s:00", selection.Date, selection.End),
		CreatedAt:      s.now().UTC(),
	}

	s.logger.Info("booking.submit.started", out.LogFields{
		"bookingId": request.BookingID,
		"date":      request.StartedDate,
		"start":     request.StartedTime,
		"slotId":    request.SlotID,
	})

	confirmation, err := s.bookingPort.CreateBooking(ctx, request)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNoLongerAvailable) {
			// Календарь устарел, следующий просмотр месяца должен уйти на бэкенд
			if s.cacheEnabled() {
				s.cachePort.InvalidateMonth(ctx, selection.Date.Month())
			}
			s.logger.Warn("booking.submit.slot_taken", out.LogFields{
				"bookingId": request.BookingID,
				"date":      request.StartedDate,
				"start":     request.StartedTime,
			})
		} else {
			s.logger.Error("booking.submit.failed", out.LogFields{
				"bookingId": request.BookingID,
				"error":     err.Error(),
			})
		}
		return nil, fmt.Errorf("booking.submit.failed: %w", err)
	}

	if confirmation.BookingID == "" {
		confirmation.BookingID = request.BookingID
	}

	// Свежая запись меняет занятость дня
	if s.cacheEnabled() {
		s.cachePort.InvalidateMonth(ctx, selection.Date.Month())
	}

	return confirmation, nil
}

func validateBooking(selection domain.SlotSelection, details domain.BookingDetails) error {
	var problems []string
	if selection.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	if !selection.Start.Valid || !selection.End.Valid {
		problems = append(problems, "start and end are required")
	} else if selection.End.Minutes() <= selection.Start.Minutes() {
		problems = append(problems, "end must be after start")
	}
	if strings.TrimSpace(details.ServiceID) == "" {
		problems = append(problems, "serviceId is required")
	}
	if details.UserID <= 0 {
		problems = append(problems, "userId is required")
	}
	if strings.TrimSpace(details.Topic) == "" {
		problems = append(problems, "topic is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("booking.submit.validation_failed: %w: %s", domain.ErrInvalidBookingData, strings.Join(problems, ", "))
	}
	return nil
}
