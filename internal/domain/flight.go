package domain

import "time"

// Flight is immutable from the client's perspective within a session; the
// list is refetched periodically rather than mutated in place.
type Flight struct {
	ID             int64     `json:"id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	AvailableSeats int       `json:"availableSeats"`
	Price          float64   `json:"price"`
}
