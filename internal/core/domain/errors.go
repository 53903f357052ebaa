package domain

import "errors"

var (
	// Ошибки данных календаря, проявляются сразу и не скрываются
	ErrInvalidSlotDuration = errors.New("slot duration must be positive")
	ErrMalformedCalendar   = errors.New("malformed calendar data")

	// Бэкенд недоступен, запрос можно повторить
	ErrCalendarUnavailable = errors.New("calendar is unavailable")
	ErrBackendUnavailable  = errors.New("booking backend is unavailable")

	// Ответ бэкенда не удалось разобрать
	ErrMalformedBackendResponse = errors.New("malformed backend response")

	// Слот заняли между загрузкой календаря и отправкой записи
	ErrSlotNoLongerAvailable = errors.New("slot is no longer available")

	ErrDateNotAvailable   = errors.New("date has no availability")
	ErrSlotBooked         = errors.New("slot is already booked")
	ErrSlotNotFound       = errors.New("slot not found")
	ErrInvalidTransition  = errors.New("invalid picker transition")
	ErrPickerNotFound     = errors.New("picker session not found")
	ErrBookingRejected    = errors.New("booking rejected by backend")
	ErrInvalidBookingData = errors.New("invalid booking data")
)
