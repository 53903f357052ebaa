package domain

import (
	"time"

	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// BookingDetails данные клиента, которые приложение собирает на форме записи
type BookingDetails struct {
	ServiceID    string  `json:"serviceId"`
	UserID       int     `json:"userId"`
	Topic        string  `json:"topic"`
	Notes        string  `json:"notes"`
	CustomerName string  `json:"customerName"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phoneNumber"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// BookingRequest тело POST /api/Bookings
type BookingRequest struct {
	BookingDetails
	BookingID   string    `json:"bookingId"`
	SlotID      string    `json:"slotId"`
	StartedDate string    `json:"startedDate"`
	StartedTime string    `json:"startedTime"`
	EndedTime   string    `json:"endedTime"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingConfirmation struct {
	BookingID string        `json:"bookingId"`
	Status    BookingStatus `json:"status"`
}

// UserBooking запись из списка GET /api/Bookings, подписанная названием услуги
type UserBooking struct {
	ID          json_types.ID   `json:"uniqueId"`
	BookingID   string          `json:"bookingId,omitempty"`
	ServiceID   string          `json:"serviceId"`
	ServiceName string          `json:"serviceName"`
	UserID      json_types.ID   `json:"userId"`
	StartedDate json_types.Date `json:"startedDate"`
	StartedTime json_types.Time `json:"startedTime"`
	Topic       string          `json:"topic"`
	Notes       string          `json:"notes,omitempty"`
	Status      BookingStatus   `json:"status"`
}
