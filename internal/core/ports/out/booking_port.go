package out

import (
	"context"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
)

type BookingPort interface {
	// Создание записи, конфликт по слоту возвращается как domain.ErrSlotNoLongerAvailable
	CreateBooking(ctx context.Context, request domain.BookingRequest) (*domain.BookingConfirmation, error)
	// Все записи бэкенда без фильтра по пользователю
	ListBookings(ctx context.Context) ([]domain.UserBooking, error)
}
