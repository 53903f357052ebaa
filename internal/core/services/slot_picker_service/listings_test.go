package slot_picker_service

import (
	"context"
	"errors"
	"testing"

	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
)

func userBooking(t *testing.T, id, serviceID, userID string, date json_types.Date, start string) domain.UserBooking {
	t.Helper()
	return domain.UserBooking{
		ID:          json_types.ID(id),
		ServiceID:   serviceID,
		UserID:      json_types.ID(userID),
		StartedDate: date,
		StartedTime: mustTime(t, start),
		Topic:       "Career",
	}
}

func TestListServices(t *testing.T) {
	f := newServiceFixture(t)
	f.services.services = []domain.Service{{ID: "svc-1", Name: "Career coaching", Cost: 250}}

	services, err := f.service.ListServices(context.Background())
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(services) != 1 || services[0].Name != "Career coaching" {
		t.Errorf("services = %+v", services)
	}

	f.services.err = domain.ErrBackendUnavailable
	if _, err := f.service.ListServices(context.Background()); !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestListUserBookings(t *testing.T) {
	f := newServiceFixture(t)
	f.services.services = []domain.Service{
		{ID: "svc-1", Name: "Career coaching"},
		{ID: "svc-2", Name: "Life coaching"},
	}
	pending := userBooking(t, "b-4", "svc-2", "7", json_types.NewDate(2024, 6, 10), "09:00")
	pending.Status = domain.BookingStatusPending
	f.bookings.listed = []domain.UserBooking{
		userBooking(t, "b-1", "svc-1", "7", json_types.NewDate(2024, 6, 12), "10:00"),
		userBooking(t, "b-2", "svc-1", "8", json_types.NewDate(2024, 6, 11), "10:00"),
		userBooking(t, "b-3", "svc-missing", "7", json_types.NewDate(2024, 6, 10), "14:30"),
		pending,
	}

	bookings, err := f.service.ListUserBookings(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListUserBookings: %v", err)
	}

	wantIDs := []string{"b-4", "b-3", "b-1"}
	if len(bookings) != len(wantIDs) {
		t.Fatalf("bookings = %+v, want %v", bookings, wantIDs)
	}
	for i, id := range wantIDs {
		if bookings[i].ID.String() != id {
			t.Errorf("bookings[%d] = %s, want %s", i, bookings[i].ID, id)
		}
	}

	if bookings[0].ServiceName != "Life coaching" || bookings[0].Status != domain.BookingStatusPending {
		t.Errorf("bookings[0] = %+v", bookings[0])
	}
	if bookings[1].ServiceName != unknownServiceName {
		t.Errorf("unknown service label = %q, want %q", bookings[1].ServiceName, unknownServiceName)
	}
	if bookings[2].ServiceName != "Career coaching" || bookings[2].Status != domain.BookingStatusConfirmed {
		t.Errorf("bookings[2] = %+v", bookings[2])
	}
}

func TestListUserBookingsWithoutServiceCatalog(t *testing.T) {
	f := newServiceFixture(t)
	f.services.err = domain.ErrBackendUnavailable
	f.bookings.listed = []domain.UserBooking{
		userBooking(t, "b-1", "svc-1", "7", json_types.NewDate(2024, 6, 12), "10:00"),
	}

	bookings, err := f.service.ListUserBookings(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListUserBookings: %v", err)
	}
	if len(bookings) != 1 || bookings[0].ServiceName != unknownServiceName {
		t.Errorf("bookings = %+v", bookings)
	}
}

func TestListUserBookingsErrors(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.service.ListUserBookings(context.Background(), 0); !errors.Is(err, domain.ErrInvalidBookingData) {
		t.Errorf("userId 0 error = %v, want ErrInvalidBookingData", err)
	}

	f.bookings.listErr = domain.ErrBackendUnavailable
	if _, err := f.service.ListUserBookings(context.Background(), 7); !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}
