// Package rebooking drives the delay notification workflow: report a
// (simulated) delay for a confirmed booking, collect ranked alternatives
// from the backend and move the booking onto one of them.
package rebooking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"airclient/api"
	"airclient/internal/alert"
	"airclient/internal/domain"
	"airclient/internal/refresh"
)

type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseSimulating  Phase = "simulating"
	PhaseDelayActive Phase = "delay_active"
	PhaseRebooking   Phase = "rebooking"
	PhaseError       Phase = "error"
)

var (
	ErrNotConfirmed   = errors.New("only confirmed bookings can be delayed")
	ErrBookingMissing = errors.New("booking not found")
	ErrNoActiveDelay  = errors.New("no active delay for booking")
	ErrInFlight       = errors.New("operation already in progress for booking")
)

type RebookingUseCase interface {
	SimulateDelay(ctx context.Context, bookingID int64) (*domain.DelayNotification, error)
	FetchSuggestions(ctx context.Context, bookingID int64) ([]domain.RebookingSuggestion, error)
	Rebook(ctx context.Context, bookingID, flightID int64) (*domain.Booking, error)
	Notifications() []domain.DelayNotification
	Suggestions(bookingID int64) []domain.RebookingSuggestion
	Phase(bookingID int64) Phase
	Dismiss(bookingID int64)
}

// RecommendationAPI is the slice of the REST client covering the delay
// notification endpoints.
type RecommendationAPI interface {
	NotifyDelay(ctx context.Context, report api.DelayReport) error
	RebookingSuggestions(ctx context.Context, bookingID int64) ([]domain.RebookingSuggestion, error)
}

// BookingUpdater is the slice covering booking lookup and replacement.
type BookingUpdater interface {
	MyBookings(ctx context.Context) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, bookingID, flightID int64) (*domain.Booking, error)
}

// bookingFlow is the per-booking workflow record. It exists from the first
// simulate call until a successful rebook or an explicit dismiss.
type bookingFlow struct {
	phase        Phase
	notification *domain.DelayNotification
	suggestions  []domain.RebookingSuggestion
}

// RebookingService holds the client-side workflow state. All state is
// per booking, so independent bookings can run the flow concurrently.
type RebookingService struct {
	recommendations RecommendationAPI
	bookings        BookingUpdater
	broadcaster     *refresh.Broadcaster
	alerts          alert.Sink

	reason       string
	offset       time.Duration
	refreshDelay time.Duration
	now          func() time.Time

	mu    sync.Mutex
	flows map[int64]*bookingFlow
}

type Option func(*RebookingService)

func WithAlertSink(sink alert.Sink) Option {
	return func(s *RebookingService) {
		s.alerts = sink
	}
}

// WithDelay sets the synthetic delay reason and departure offset used
// when reporting a simulated delay.
func WithDelay(reason string, offset time.Duration) Option {
	return func(s *RebookingService) {
		s.reason = reason
		s.offset = offset
	}
}

// WithRefreshDelay sets how long after a successful rebook the refresh
// broadcast fires, giving the backend time to settle.
func WithRefreshDelay(d time.Duration) Option {
	return func(s *RebookingService) {
		s.refreshDelay = d
	}
}

func NewRebookingService(recommendations RecommendationAPI, bookings BookingUpdater, broadcaster *refresh.Broadcaster, opts ...Option) *RebookingService {
	s := &RebookingService{
		recommendations: recommendations,
		bookings:        bookings,
		broadcaster:     broadcaster,
		alerts:          alert.NewPrinter(),
		reason:          "Technical issues with aircraft",
		offset:          2 * time.Hour,
		refreshDelay:    time.Second,
		now:             time.Now,
		flows:           make(map[int64]*bookingFlow),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SimulateDelay reports a synthetic delay for a confirmed booking and
// then asks the backend for rebooking suggestions. A suggestions failure
// does not undo the notification; suggestions can be retried separately.
func (s *RebookingService) SimulateDelay(ctx context.Context, bookingID int64) (*domain.DelayNotification, error) {
	flow, err := s.begin(bookingID, PhaseSimulating)
	if err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		s.settle(bookingID, PhaseIdle)
		s.alerts.Notify(alert.LevelError, err.Error())
		return nil, err
	}
	if booking.Status != domain.BookingStatusConfirmed {
		s.settle(bookingID, PhaseIdle)
		s.alerts.Notify(alert.LevelError, "Only confirmed bookings can be delayed")
		return nil, ErrNotConfirmed
	}

	now := s.now()
	report := api.DelayReport{
		BookingID:             bookingID,
		FlightID:              booking.FlightID,
		Reason:                s.reason,
		OriginalDepartureTime: now,
		NewDepartureTime:      now.Add(s.offset),
	}
	if err := s.recommendations.NotifyDelay(ctx, report); err != nil {
		s.settle(bookingID, PhaseError)
		s.alerts.Notify(alert.LevelError, "Failed to send delay notification")
		return nil, err
	}

	notification := &domain.DelayNotification{
		BookingID:             report.BookingID,
		FlightID:              report.FlightID,
		Reason:                report.Reason,
		OriginalDepartureTime: report.OriginalDepartureTime,
		NewDepartureTime:      report.NewDepartureTime,
		Timestamp:             now,
	}

	s.mu.Lock()
	flow.notification = notification
	s.mu.Unlock()
	s.alerts.Notify(alert.LevelInfo, fmt.Sprintf("Delay reported for booking %d: %s", bookingID, s.reason))

	suggestions, err := s.recommendations.RebookingSuggestions(ctx, bookingID)
	if err != nil {
		// The delay is already on record; keep the notification and let
		// the caller retry suggestions.
		log.Printf("fetch suggestions for booking %d: %v", bookingID, err)
		s.settle(bookingID, PhaseError)
		s.alerts.Notify(alert.LevelError, "Failed to load rebooking suggestions")
		return notification, nil
	}

	s.mu.Lock()
	flow.suggestions = suggestions
	flow.phase = PhaseDelayActive
	s.mu.Unlock()
	s.alerts.Notify(alert.LevelSuccess, fmt.Sprintf("Found %d rebooking options for booking %d", len(suggestions), bookingID))
	return notification, nil
}

// FetchSuggestions re-requests the ranked alternatives for a booking with
// an active delay. The backend's ordering is kept as-is.
func (s *RebookingService) FetchSuggestions(ctx context.Context, bookingID int64) ([]domain.RebookingSuggestion, error) {
	s.mu.Lock()
	flow, ok := s.flows[bookingID]
	if !ok || flow.notification == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveDelay
	}
	s.mu.Unlock()

	suggestions, err := s.recommendations.RebookingSuggestions(ctx, bookingID)
	if err != nil {
		s.alerts.Notify(alert.LevelError, "Failed to load rebooking suggestions")
		return nil, err
	}

	s.mu.Lock()
	flow.suggestions = suggestions
	flow.phase = PhaseDelayActive
	s.mu.Unlock()
	return suggestions, nil
}

// Rebook moves the booking onto the chosen flight. On success the delay
// notification and its suggestions are discarded and a refresh broadcast
// is scheduled; on failure the delay state is left intact for a retry.
func (s *RebookingService) Rebook(ctx context.Context, bookingID, flightID int64) (*domain.Booking, error) {
	s.mu.Lock()
	flow, ok := s.flows[bookingID]
	if !ok || flow.notification == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveDelay
	}
	if flow.phase == PhaseSimulating || flow.phase == PhaseRebooking {
		s.mu.Unlock()
		return nil, ErrInFlight
	}
	flow.phase = PhaseRebooking
	s.mu.Unlock()

	booking, err := s.bookings.UpdateBooking(ctx, bookingID, flightID)
	if err != nil {
		s.settle(bookingID, PhaseDelayActive)
		s.alerts.Notify(alert.LevelError, "Failed to rebook flight")
		return nil, err
	}

	s.mu.Lock()
	flow.notification = nil
	flow.suggestions = nil
	flow.phase = PhaseIdle
	s.mu.Unlock()

	s.alerts.Notify(alert.LevelSuccess, fmt.Sprintf("Successfully rebooked booking %d to flight %d", bookingID, flightID))
	s.broadcaster.TriggerAfterDelay(s.refreshDelay)
	return booking, nil
}

// Dismiss drops the delay state for a booking without rebooking.
func (s *RebookingService) Dismiss(bookingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, bookingID)
}

// Notifications returns the active delay notifications, ordered by
// booking id.
func (s *RebookingService) Notifications() []domain.DelayNotification {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := make([]domain.DelayNotification, 0, len(s.flows))
	for _, flow := range s.flows {
		if flow.notification != nil {
			notifications = append(notifications, *flow.notification)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].BookingID < notifications[j].BookingID
	})
	return notifications
}

func (s *RebookingService) Suggestions(bookingID int64) []domain.RebookingSuggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	if flow, ok := s.flows[bookingID]; ok {
		return flow.suggestions
	}
	return nil
}

func (s *RebookingService) Phase(bookingID int64) Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if flow, ok := s.flows[bookingID]; ok {
		return flow.phase
	}
	return PhaseIdle
}

// begin claims the booking's workflow slot, rejecting the call when a
// simulate or rebook for the same booking is still running.
func (s *RebookingService) begin(bookingID int64, phase Phase) (*bookingFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[bookingID]
	if !ok {
		flow = &bookingFlow{phase: PhaseIdle}
		s.flows[bookingID] = flow
	}
	if flow.phase == PhaseSimulating || flow.phase == PhaseRebooking {
		return nil, ErrInFlight
	}
	flow.phase = phase
	return flow, nil
}

// settle records the terminal phase of an attempt. A flow with no
// notification and no error collapses back to an empty slot.
func (s *RebookingService) settle(bookingID int64, phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[bookingID]
	if !ok {
		return
	}
	if phase == PhaseIdle && flow.notification == nil {
		delete(s.flows, bookingID)
		return
	}
	flow.phase = phase
}

func (s *RebookingService) findBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	bookings, err := s.bookings.MyBookings(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == bookingID {
			return &bookings[i], nil
		}
	}
	return nil, ErrBookingMissing
}

var _ RebookingUseCase = (*RebookingService)(nil)
