package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"airclient/internal/domain"
)

type delayRequest struct {
	BookingID             int64     `json:"bookingId" binding:"required"`
	FlightID              int64     `json:"flightId" binding:"required"`
	Reason                string    `json:"reason" binding:"required"`
	OriginalDepartureTime time.Time `json:"originalDepartureTime" binding:"required"`
	NewDepartureTime      time.Time `json:"newDepartureTime" binding:"required"`
}

type suggestionsResponse struct {
	Suggestions []domain.RebookingSuggestion `json:"suggestions"`
}

// notifyDelay records the delay and marks the booking DELAYED. The
// booking must belong to the caller and reference the reported flight.
func (s *Server) notifyDelay(c *gin.Context) {
	var req delayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[req.BookingID]
	if !ok || b.UserID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if b.FlightID != req.FlightID {
		c.JSON(http.StatusConflict, gin.H{"error": "flight does not match booking"})
		return
	}
	if b.Status != domain.BookingStatusConfirmed && b.Status != domain.BookingStatusDelayed {
		c.JSON(http.StatusConflict, gin.H{"error": "booking cannot be delayed"})
		return
	}

	b.Status = domain.BookingStatusDelayed
	s.delays[b.ID] = delayRecord{
		BookingID:             req.BookingID,
		FlightID:              req.FlightID,
		Reason:                req.Reason,
		OriginalDepartureTime: req.OriginalDepartureTime,
		NewDepartureTime:      req.NewDepartureTime,
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// suggestions ranks same-route alternatives for a delayed booking by
// departure proximity to the original flight. Priority 1 is the closest.
func (s *Server) suggestions(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Query("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bookingId"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok || b.UserID != currentUserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if _, delayed := s.delays[bookingID]; !delayed {
		c.JSON(http.StatusConflict, gin.H{"error": "no delay on record for booking"})
		return
	}

	original, ok := s.flights[b.FlightID]
	if !ok {
		c.JSON(http.StatusOK, suggestionsResponse{Suggestions: []domain.RebookingSuggestion{}})
		return
	}

	candidates := make([]domain.Flight, 0)
	for _, id := range s.flightOrder {
		f := s.flights[id]
		if f.ID == original.ID || f.Origin != original.Origin || f.Destination != original.Destination {
			continue
		}
		if f.AvailableSeats <= 0 {
			continue
		}
		candidates = append(candidates, f)
	}
	sort.Slice(candidates, func(i, j int) bool {
		di := absDuration(candidates[i].DepartureTime.Sub(original.DepartureTime))
		dj := absDuration(candidates[j].DepartureTime.Sub(original.DepartureTime))
		return di < dj
	})

	out := make([]domain.RebookingSuggestion, 0, len(candidates))
	for i, f := range candidates {
		out = append(out, domain.RebookingSuggestion{
			FlightID:       f.ID,
			Origin:         f.Origin,
			Destination:    f.Destination,
			DepartureTime:  f.DepartureTime,
			ArrivalTime:    f.ArrivalTime,
			AvailableSeats: f.AvailableSeats,
			Price:          f.Price,
			Priority:       i + 1,
		})
	}

	c.JSON(http.StatusOK, suggestionsResponse{Suggestions: out})
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
