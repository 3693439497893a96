package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusDelayed   BookingStatus = "DELAYED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// Booking is the client-side copy of a backend booking. The backend owns
// the record; the client keeps a transient cached copy per session.
type Booking struct {
	ID       int64         `json:"id"`
	FlightID int64         `json:"flightId"`
	Status   BookingStatus `json:"status"`
	// Flight is the embedded flight payload some backend variants return.
	// Resolution prefers the cached flight list by FlightID and falls back
	// to this copy when the id lookup misses.
	Flight    *Flight   `json:"flight,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
