// Package mockapi is an in-memory stand-in for the booking backend. It
// implements the documented wire contract so the client can be exercised
// end to end without a real deployment. State lives for the process only.
package mockapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"airclient/internal/domain"
)

type user struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type booking struct {
	ID        int64
	UserID    string
	FlightID  int64
	Status    domain.BookingStatus
	CreatedAt time.Time
}

type delayRecord struct {
	BookingID             int64
	FlightID              int64
	Reason                string
	OriginalDepartureTime time.Time
	NewDepartureTime      time.Time
}

type Server struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time

	mu            sync.Mutex
	users         map[string]*user // keyed by lowercased email
	flights       map[int64]domain.Flight
	flightOrder   []int64
	bookings      map[int64]*booking
	nextBookingID int64
	delays        map[int64]delayRecord // keyed by booking id
}

type Option func(*Server)

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.tokenTTL = ttl
	}
}

func NewServer(secret string, opts ...Option) *Server {
	s := &Server{
		secret:        []byte(secret),
		tokenTTL:      time.Hour,
		now:           time.Now,
		users:         make(map[string]*user),
		flights:       make(map[int64]domain.Flight),
		bookings:      make(map[int64]*booking),
		nextBookingID: 1,
		delays:        make(map[int64]delayRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seedFlights()
	return s
}

// Router builds the gin engine with every documented route. Routes under
// requireAuth expect a bearer token issued by login or register.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	router.POST("/api/login", s.login)
	router.POST("/api/register", s.register)
	router.GET("/api/flights", s.listFlights)
	router.GET("/api/flights/:id", s.getFlight)

	authed := router.Group("/", s.requireAuth())
	authed.GET("/api/bookings/my", s.myBookings)
	authed.POST("/api/bookings", s.createBooking)
	authed.PUT("/api/bookings/:id", s.updateBooking)
	authed.POST("/api/bookings/:id/cancel", s.cancelBooking)
	authed.POST("/api/recommendations/notify-delay", s.notifyDelay)
	authed.GET("/api/recommendations/suggestions", s.suggestions)
	// Both profile path variants are live; real deployments expose one
	// or the other and the client falls back between them.
	for _, base := range []string{"/api/user/profile", "/api/users/profile"} {
		authed.GET(base, s.getProfile)
		authed.PUT(base, s.updateProfile)
		authed.DELETE(base, s.deleteAccount)
	}
	return router
}

// Run serves the mock backend until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) seedFlights() {
	depart := s.now().Truncate(time.Hour).Add(24 * time.Hour)
	seed := []domain.Flight{
		{ID: 1, Origin: "New York", Destination: "London", DepartureTime: depart, ArrivalTime: depart.Add(7 * time.Hour), AvailableSeats: 12, Price: 450},
		{ID: 2, Origin: "New York", Destination: "London", DepartureTime: depart.Add(3 * time.Hour), ArrivalTime: depart.Add(10 * time.Hour), AvailableSeats: 30, Price: 390},
		{ID: 3, Origin: "New York", Destination: "London", DepartureTime: depart.Add(9 * time.Hour), ArrivalTime: depart.Add(16 * time.Hour), AvailableSeats: 8, Price: 520},
		{ID: 4, Origin: "Paris", Destination: "Tokyo", DepartureTime: depart.Add(2 * time.Hour), ArrivalTime: depart.Add(14 * time.Hour), AvailableSeats: 21, Price: 880},
		{ID: 5, Origin: "Paris", Destination: "Tokyo", DepartureTime: depart.Add(8 * time.Hour), ArrivalTime: depart.Add(20 * time.Hour), AvailableSeats: 3, Price: 940},
		{ID: 6, Origin: "Berlin", Destination: "Madrid", DepartureTime: depart.Add(5 * time.Hour), ArrivalTime: depart.Add(8 * time.Hour), AvailableSeats: 44, Price: 120},
	}
	for _, f := range seed {
		s.flights[f.ID] = f
		s.flightOrder = append(s.flightOrder, f.ID)
	}
}
