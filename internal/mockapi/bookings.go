package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airclient/internal/domain"
)

type bookingRequest struct {
	FlightID int64 `json:"flightId" binding:"required"`
}

type bookingResponse struct {
	ID        int64                `json:"id"`
	FlightID  int64                `json:"flightId"`
	Status    domain.BookingStatus `json:"status"`
	Flight    *domain.Flight       `json:"flight,omitempty"`
	CreatedAt string               `json:"createdAt"`
}

// toResponse must be called with s.mu held.
func (s *Server) toResponse(b *booking) bookingResponse {
	resp := bookingResponse{
		ID:        b.ID,
		FlightID:  b.FlightID,
		Status:    b.Status,
		CreatedAt: b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if flight, ok := s.flights[b.FlightID]; ok {
		resp.Flight = &flight
	}
	return resp
}

func (s *Server) myBookings(c *gin.Context) {
	userID := currentUserID(c)

	s.mu.Lock()
	out := make([]bookingResponse, 0)
	for id := int64(1); id < s.nextBookingID; id++ {
		if b, ok := s.bookings[id]; ok && b.UserID == userID {
			out = append(out, s.toResponse(b))
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, out)
}

func (s *Server) createBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flight, ok := s.flights[req.FlightID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		return
	}
	if flight.AvailableSeats <= 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "no seats available"})
		return
	}
	flight.AvailableSeats--
	s.flights[flight.ID] = flight

	b := &booking{
		ID:        s.nextBookingID,
		UserID:    currentUserID(c),
		FlightID:  req.FlightID,
		Status:    domain.BookingStatusConfirmed,
		CreatedAt: s.now(),
	}
	s.nextBookingID++
	s.bookings[b.ID] = b

	c.JSON(http.StatusCreated, s.toResponse(b))
}

// updateBooking replaces the booking's flight. A delayed booking returns
// to CONFIRMED after a successful move, and its delay record is dropped.
func (s *Server) updateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.ownedBooking(c)
	if !ok {
		return
	}
	if b.Status == domain.BookingStatusCancelled || b.Status == domain.BookingStatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "booking can no longer be changed"})
		return
	}

	flight, ok := s.flights[req.FlightID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		return
	}
	if flight.AvailableSeats <= 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "no seats available"})
		return
	}
	flight.AvailableSeats--
	s.flights[flight.ID] = flight
	s.releaseSeat(b.FlightID)

	b.FlightID = req.FlightID
	b.Status = domain.BookingStatusConfirmed
	delete(s.delays, b.ID)

	c.JSON(http.StatusOK, s.toResponse(b))
}

func (s *Server) cancelBooking(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.ownedBooking(c)
	if !ok {
		return
	}
	if b.Status == domain.BookingStatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "booking already cancelled"})
		return
	}

	b.Status = domain.BookingStatusCancelled
	delete(s.delays, b.ID)
	s.releaseSeat(b.FlightID)

	c.JSON(http.StatusOK, s.toResponse(b))
}

// releaseSeat returns a seat to the flight a booking is leaving. Must be
// called with s.mu held.
func (s *Server) releaseSeat(flightID int64) {
	if flight, ok := s.flights[flightID]; ok {
		flight.AvailableSeats++
		s.flights[flight.ID] = flight
	}
}

// ownedBooking resolves the :id parameter to a booking belonging to the
// caller, writing the error response itself when it cannot. Must be
// called with s.mu held.
func (s *Server) ownedBooking(c *gin.Context) (*booking, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return nil, false
	}
	b, ok := s.bookings[id]
	if !ok || b.UserID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return nil, false
	}
	return b, true
}
