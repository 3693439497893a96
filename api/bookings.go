package api

import (
	"context"
	"fmt"

	"airclient/internal/domain"
)

type createBookingRequest struct {
	FlightID int64 `json:"flightId"`
}

type updateBookingRequest struct {
	FlightID int64 `json:"flightId"`
}

func (c *Client) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.http.Get(ctx, "/api/bookings/my", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) CreateBooking(ctx context.Context, flightID int64) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.http.Post(ctx, "/api/bookings", createBookingRequest{FlightID: flightID}, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking atomically replaces the booking's flight reference.
func (c *Client) UpdateBooking(ctx context.Context, bookingID, flightID int64) (*domain.Booking, error) {
	var booking domain.Booking
	path := fmt.Sprintf("/api/bookings/%d", bookingID)
	if err := c.http.Put(ctx, path, updateBookingRequest{FlightID: flightID}, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID int64) error {
	path := fmt.Sprintf("/api/bookings/%d/cancel", bookingID)
	return c.http.Post(ctx, path, nil, nil)
}
