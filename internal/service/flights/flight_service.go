package flights

import (
	"context"
	"log"

	"airclient/internal/cache"
	"airclient/internal/domain"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Refresh(ctx context.Context) error
	Resolve(id int64) (domain.Flight, bool)
}

// FlightAPI is the slice of the REST client this service needs.
type FlightAPI interface {
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
}

type FlightService struct {
	api   FlightAPI
	cache *cache.FlightCache
}

func NewFlightService(api FlightAPI, cache *cache.FlightCache) *FlightService {
	return &FlightService{api: api, cache: cache}
}

// List serves from the session cache when fresh, otherwise refetches.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached := s.cache.Get(); cached != nil {
			return cached, nil
		}
	}

	flights, err := s.api.ListFlights(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	if s.cache != nil {
		if f, ok := s.cache.Lookup(id); ok {
			return &f, nil
		}
	}
	return s.api.GetFlight(ctx, id)
}

// Refresh refetches the list unconditionally; the periodic poller points
// here so stale results overwrite rather than short-circuit.
func (s *FlightService) Refresh(ctx context.Context) error {
	flights, err := s.api.ListFlights(ctx)
	if err != nil {
		log.Printf("periodic flight refresh failed: %v", err)
		return err
	}
	if s.cache != nil {
		s.cache.Set(flights)
	}
	return nil
}

// Resolve looks a flight up in the cached list without touching the
// network; booking rows use it for id-to-flight resolution.
func (s *FlightService) Resolve(id int64) (domain.Flight, bool) {
	if s.cache == nil {
		return domain.Flight{}, false
	}
	return s.cache.Lookup(id)
}

var _ FlightUseCase = (*FlightService)(nil)
