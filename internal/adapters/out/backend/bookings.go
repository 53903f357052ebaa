package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
)

type createBookingResponse struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

func (a *BackendAdapter) CreateBooking(ctx context.Context, request domain.BookingRequest) (*domain.BookingConfirmation, error) {
	a.logger.Info("backend.booking.create", out.LogFields{
		"bookingId": request.BookingID,
	})

	req, err := a.newRequest(ctx, http.MethodPost, bookingsPath, request)
	if err != nil {
		a.logger.Error("backend.booking.create_failed", out.LogFields{
			"bookingId": request.BookingID,
			"error":     err.Error(),
		})
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("backend.booking.create_failed", out.LogFields{
			"bookingId": request.BookingID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("backend.booking.create_failed: %w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		a.logger.Warn("backend.booking.conflict", out.LogFields{
			"bookingId": request.BookingID,
			"body":      readErrorBody(resp),
		})
		return nil, fmt.Errorf("backend.booking.conflict: %w", domain.ErrSlotNoLongerAvailable)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		body := readErrorBody(resp)
		a.logger.Error("backend.booking.rejected", out.LogFields{
			"bookingId": request.BookingID,
			"status":    resp.StatusCode,
			"body":      body,
		})
		return nil, fmt.Errorf("backend.booking.rejected: %w: %s", domain.ErrBookingRejected, body)
	default:
		a.logger.Error("backend.booking.create_failed", out.LogFields{
			"bookingId": request.BookingID,
			"status":    resp.StatusCode,
			"body":      readErrorBody(resp),
		})
		return nil, fmt.Errorf("backend.booking.create_failed: %w: %v", domain.ErrBackendUnavailable, unexpectedStatus(resp))
	}

	confirmation := &domain.BookingConfirmation{
		BookingID: request.BookingID,
		Status:    domain.BookingStatusPending,
	}

	// Бэкенд может ответить пустым телом
	var body createBookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && err != io.EOF {
		a.logger.Warn("backend.booking.decode_failed", out.LogFields{
			"bookingId": request.BookingID,
			"error":     err.Error(),
		})
	}
	if body.BookingID != "" {
		confirmation.BookingID = body.BookingID
	}
	if body.Status != "" {
		confirmation.Status = domain.BookingStatus(body.Status)
	}

	a.logger.Debug("backend.booking.create_success", out.LogFields{
		"bookingId": confirmation.BookingID,
		"status":    confirmation.Status,
	})

	return confirmation, nil
}

// ListBookings все записи бэкенда, фильтрация по пользователю выполняется в сервисе
func (a *BackendAdapter) ListBookings(ctx context.Context) ([]domain.UserBooking, error) {
	a.logger.Info("backend.bookings.fetch", out.LogFields{})

	var bookings []domain.UserBooking
	if err := a.getJSON(ctx, "backend.bookings.fetch", bookingsPath, &bookings); err != nil {
		return nil, err
	}

	a.logger.Debug("backend.bookings.fetch_success", out.LogFields{
		"bookings": len(bookings),
	})

	return bookings, nil
}
