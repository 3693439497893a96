package bookings

import (
	"context"

	"airclient/internal/domain"
	"airclient/internal/refresh"
)

type BookingUseCase interface {
	My(ctx context.Context) ([]domain.Booking, error)
	Book(ctx context.Context, flightID int64) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID int64) error
}

// BookingAPI is the slice of the REST client this service needs.
type BookingAPI interface {
	MyBookings(ctx context.Context) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, flightID int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) error
}

// FlightResolver resolves flight ids against the cached flight list.
type FlightResolver interface {
	Resolve(id int64) (domain.Flight, bool)
}

type BookingService struct {
	api         BookingAPI
	flights     FlightResolver
	broadcaster *refresh.Broadcaster
}

func NewBookingService(api BookingAPI, flights FlightResolver, broadcaster *refresh.Broadcaster) *BookingService {
	return &BookingService{api: api, flights: flights, broadcaster: broadcaster}
}

// My fetches the current user's bookings and resolves each flight
// reference by id against the cached flight list, keeping the embedded
// flight payload as a fallback when the lookup misses.
func (s *BookingService) My(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.api.MyBookings(ctx)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		if s.flights == nil {
			break
		}
		if f, ok := s.flights.Resolve(bookings[i].FlightID); ok {
			bookings[i].Flight = &f
		}
	}
	return bookings, nil
}

func (s *BookingService) Book(ctx context.Context, flightID int64) (*domain.Booking, error) {
	booking, err := s.api.CreateBooking(ctx, flightID)
	if err != nil {
		return nil, err
	}
	s.notify()
	return booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, bookingID int64) error {
	if err := s.api.CancelBooking(ctx, bookingID); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *BookingService) notify() {
	if s.broadcaster != nil {
		s.broadcaster.TriggerNow()
	}
}

var _ BookingUseCase = (*BookingService)(nil)
