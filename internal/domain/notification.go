package domain

import "time"

// DelayNotification is an ephemeral client-side record created by the
// simulate-delay action. It lives until a successful rebook discards it.
type DelayNotification struct {
	BookingID             int64     `json:"bookingId"`
	FlightID              int64     `json:"flightId"`
	Reason                string    `json:"reason"`
	OriginalDepartureTime time.Time `json:"originalDepartureTime"`
	NewDepartureTime      time.Time `json:"newDepartureTime"`
	Timestamp             time.Time `json:"timestamp"`
}

func (n DelayNotification) DelayMinutes() int {
	return int(n.NewDepartureTime.Sub(n.OriginalDepartureTime).Round(time.Minute).Minutes())
}

// RebookingSuggestion is produced by the backend ranking endpoint.
// Priority 1 is the best option; the backend's ordering is authoritative.
type RebookingSuggestion struct {
	FlightID       int64     `json:"flightId"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	AvailableSeats int       `json:"availableSeats"`
	Price          float64   `json:"price"`
	Priority       int       `json:"priority"`
}
