package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airclient/internal/domain"
)

func (s *Server) listFlights(c *gin.Context) {
	s.mu.Lock()
	flights := make([]domain.Flight, 0, len(s.flightOrder))
	for _, id := range s.flightOrder {
		flights = append(flights, s.flights[id])
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, flights)
}

func (s *Server) getFlight(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}

	s.mu.Lock()
	flight, ok := s.flights[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		return
	}

	c.JSON(http.StatusOK, flight)
}
