package slot_picker_service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

// Подпись записи, для которой услуга не нашлась в каталоге
const unknownServiceName = "N/A"

func (s *SlotPickerService) ListServices(ctx context.Context) ([]domain.Service, error) {
	services, err := s.servicePort.ListServices(ctx)
	if err != nil {
		s.logger.Error("services.list.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("services.list.failed: %w", err)
	}
	return services, nil
}

// ListUserBookings записи пользователя по возрастанию даты и времени начала.
// Каталог услуг нужен только для подписей, его недоступность список не ломает
func (s *SlotPickerService) ListUserBookings(ctx context.Context, userID int) ([]domain.UserBooking, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("bookings.list.user_invalid: %w: userId must be positive", domain.ErrInvalidBookingData)
	}

	bookings, err := s.bookingPort.ListBookings(ctx)
	if err != nil {
		s.logger.Error("bookings.list.failed", out.LogFields{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("bookings.list.failed: %w", err)
	}

	serviceNames := make(map[string]string)
	services, err := s.servicePort.ListServices(ctx)
	if err != nil {
		s.logger.Warn("bookings.list.services_failed", out.LogFields{
			"userId": userID,
			"error":  err.Error(),
		})
	}
	for _, service := range services {
		serviceNames[service.ID.String()] = service.Name
	}

	owner := strconv.Itoa(userID)
	result := make([]domain.UserBooking, 0)
	for _, booking := range bookings {
		if booking.UserID.String() != owner {
			continue
		}

		booking.ServiceName = unknownServiceName
		if name, ok := serviceNames[booking.ServiceID]; ok && name != "" {
			booking.ServiceName = name
		}
		// Бэкенд отдает статус не всегда, в списке лежат уже принятые записи
		if booking.Status == "" {
			booking.Status = domain.BookingStatusConfirmed
		}
		result = append(result, booking)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].StartedDate.Date.Equal(result[j].StartedDate.Date) {
			return result[i].StartedDate.Date.Before(result[j].StartedDate.Date)
		}
		return result[i].StartedTime.Minutes() < result[j].StartedTime.Minutes()
	})

	s.logger.Debug("bookings.list.success", out.LogFields{
		"userId":   userID,
		"total":    len(bookings),
		"bookings": len(result),
	})

	return result, nil
}
