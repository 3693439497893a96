package mockapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) getProfile(c *gin.Context) {
	s.mu.Lock()
	u := s.userByID(currentUserID(c))
	s.mu.Unlock()
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, profileResponse{ID: u.ID, Name: u.Name, Email: u.Email})
}

func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByID(currentUserID(c))
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" && !strings.EqualFold(req.Email, u.Email) {
		key := strings.ToLower(req.Email)
		if _, taken := s.users[key]; taken {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		delete(s.users, strings.ToLower(u.Email))
		u.Email = req.Email
		s.users[key] = u
	}

	c.JSON(http.StatusOK, profileResponse{ID: u.ID, Name: u.Name, Email: u.Email})
}

// deleteAccount removes the user and every booking they own.
func (s *Server) deleteAccount(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByID(currentUserID(c))
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	for id, b := range s.bookings {
		if b.UserID == u.ID {
			delete(s.bookings, id)
			delete(s.delays, id)
		}
	}
	delete(s.users, strings.ToLower(u.Email))

	c.Status(http.StatusNoContent)
}
