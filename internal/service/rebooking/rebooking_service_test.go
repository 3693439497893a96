package rebooking

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"airclient/api"
	"airclient/internal/domain"
	"airclient/internal/refresh"
)

type MockRecommendationAPI struct {
	mock.Mock
}

func (m *MockRecommendationAPI) NotifyDelay(ctx context.Context, report api.DelayReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockRecommendationAPI) RebookingSuggestions(ctx context.Context, bookingID int64) ([]domain.RebookingSuggestion, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RebookingSuggestion), args.Error(1)
}

type MockBookingUpdater struct {
	mock.Mock
}

func (m *MockBookingUpdater) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUpdater) UpdateBooking(ctx context.Context, bookingID, flightID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func confirmedBooking() []domain.Booking {
	return []domain.Booking{
		{ID: 1, FlightID: 10, Status: domain.BookingStatusConfirmed},
		{ID: 2, FlightID: 11, Status: domain.BookingStatusCancelled},
	}
}

func newService(rec *MockRecommendationAPI, upd *MockBookingUpdater, b *refresh.Broadcaster, opts ...Option) *RebookingService {
	svc := NewRebookingService(rec, upd, b, opts...)
	return svc
}

func TestRebookingService_SimulateDelayHappyPath(t *testing.T) {
	rec := new(MockRecommendationAPI)
	upd := new(MockBookingUpdater)
	svc := newService(rec, upd, refresh.NewBroadcaster(), WithDelay("Technical issues with aircraft", 2*time.Hour))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	upd.On("MyBookings", mock.Anything).Return(confirmedBooking(), nil)
	rec.On("NotifyDelay", mock.Anything, api.DelayReport{
		BookingID:             1,
		FlightID:              10,
		Reason:                "Technical issues with aircraft",
		OriginalDepartureTime: now,
		NewDepartureTime:      now.Add(2 * time.Hour),
	}).Return(nil)
	suggestions := []domain.RebookingSuggestion{
		{FlightID: 2, Origin: "New York", Destination: "London", Priority: 1},
		{FlightID: 5, Origin: "New York", Destination: "London", Priority: 2},
	}
	rec.On("RebookingSuggestions", mock.Anything, int64(1)).Return(suggestions, nil)

	notification, err := svc.SimulateDelay(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, notification)
	assert.Equal(t, int64(1), notification.BookingID)
	assert.Equal(t, 120, notification.DelayMinutes())

	assert.Equal(t, PhaseDelayActive, svc.Phase(1))
	assert.Equal(t, suggestions, svc.Suggestions(1))
	require.Len(t, svc.Notifications(), 1)
	rec.AssertExpectations(t)
	upd.AssertExpectations(t)
}

func TestRebookingService_SimulateDelayRejectsNonConfirmed(t *testing.T) {
	rec := new(MockRecommendationAPI)
	upd := new(MockBookingUpdater)
	svc := newService(rec, upd, refresh.NewBroadcaster())

	upd.On("MyBookings", mock.Anything).Return(confirmedBooking(), nil)

	_, err := svc.SimulateDelay(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, PhaseIdle, svc.Phase(2))
	assert.Empty(t, svc.Notifications())
	rec.AssertNotCalled(t, "NotifyDelay", mock.Anything, mock.Anything)
}

func TestRebookingService_SimulateDelayUnknownBooking(t *testing.T) {
	rec := new(MockRecommendationAPI)
	upd := new(MockBookingUpdater)
	svc := newService(rec, upd, refresh.NewBroadcaster())

	upd.On("MyBookings", mock.Anything).Return(confirmedBooking(), nil)

	_, err := svc.SimulateDelay(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingMissing)
	rec.AssertNotCalled(t, "NotifyDelay", mock.Anything, mock.Anything)
}

func TestRebookingService_NotifyFailure(t *testing.T) {
	rec := new(MockRecommendationAPI)
	upd := new(MockBookingUpdater)
	svc := newService(rec, upd, refresh.NewBroadcaster())

	upd.On("MyBookings", mock.Anything).Return(confirmedBooking(), nil)
	rec.On("NotifyDelay", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.SimulateDelay(context.Background(), 1)
	assert.Error(t, err)
	assert.Equal(t, PhaseError, svc.Phase(1))
	assert.Empty(t, svc.Notifications())
	rec.AssertNotCalled(t, "RebookingSuggestions", mock.Anything, mock.Anything)
}

func TestRebookingService_SuggestionsFailureKeepsNotification(t *testing.T) {
	rec := new(MockRecommendationAPI)
	upd := new(MockBookingUpdater)
	svc := newService(rec, upd, refresh.NewBroadcaster())

	upd.On("MyBookings", mock.Anything).Return(confirmedBooking(), nil)
	rec.On("NotifyDelay", mock.Anything, mock.Anything).Return(nil)
	rec.On("RebookingSuggestions", mock.Anything, int64(1)).Return(nil, assert.AnError).Once()

	notification, err := svc.SimulateDelay(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, notification)
	assert.Equal(t, PhaseError, svc.Phase(1))
	assert.Len(t, svc.Notifications(), 1)
	assert.Empty(t, svc.Suggestions(1))

	// A later retry succeeds, fills the suggestions in and clears the
	// error phase.
	suggestions := []domain.RebookingSuggestion{{FlightID: 2, Priority: 1}}
	rec.On("RebookingSuggestions", mock.Anything, int64(1)).Return(suggestions, nil).Once()

	got, err := svc.FetchSuggestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, suggestions, got)
	assert.Equal(t, suggestions, svc.Suggestions(1))
	assert.Equal(t, PhaseDelayActive, svc.Phase(1))
}

func TestRebookingService_FetchSuggestionsWithoutDelay(t *testing.T) {
	svc := newService(new(MockRecommendationAPI), new(MockBookingUpdater), refresh.NewBroadcaster())

	_, err := svc.FetchSuggestions(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNoActiveDelay)
}

func TestRebookingService_RebookSuccess(t *testing.T) {
	rec := new(MockRecommendationAPI)
	upd := new(MockBookingUpdater)
	broadcaster := refresh.NewBroadcaster()
	svc := newService(rec, upd, broadcaster, WithRefreshDelay(10*time.Millisecond))

	var refreshed atomic.Int32
	unregister := broadcaster.Register(func() { refreshed.Add(1) })
	defer unregister()

	upd.On("MyBookings", mock.Anything).Return(confirmedBooking(), nil)
	rec.On("NotifyDelay", mock.Anything, mock.Anything).Return(nil)
	rec.On("RebookingSuggestions", mock.Anything, int64(1)).
		Return([]domain.RebookingSuggestion{{FlightID: 2, Priority: 1}}, nil)
	_, err := svc.SimulateDelay(context.Background(), 1)
	require.NoError(t, err)

	updated := &domain.Booking{ID: 1, FlightID: 2, Status: domain.BookingStatusConfirmed}
	upd.On("UpdateBooking", mock.Anything, int64(1), int64(2)).Return(updated, nil)

	booking, err := svc.Rebook(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), booking.FlightID)

	assert.Empty(t, svc.Notifications())
	assert.Empty(t, svc.Suggestions(1))
	assert.Equal(t, PhaseIdle, svc.Phase(1))

	assert.Eventually(t, func() bool { return refreshed.Load() == 1 },
		time.Second, 5*time.Millisecond)
	upd.AssertExpectations(t)
}

func TestRebookingService_RebookFailureKeepsDelayState(t *testing.T) {
	rec := new(MockRecommendationAPI)
	upd := new(MockBookingUpdater)
	broadcaster := refresh.NewBroadcaster()
	svc := newService(rec, upd, broadcaster, WithRefreshDelay(time.Millisecond))

	var refreshed atomic.Int32
	unregister := broadcaster.Register(func() { refreshed.Add(1) })
	defer unregister()

	upd.On("MyBookings", mock.Anything).Return(confirmedBooking(), nil)
	rec.On("NotifyDelay", mock.Anything, mock.Anything).Return(nil)
	suggestions := []domain.RebookingSuggestion{{FlightID: 2, Priority: 1}}
	rec.On("RebookingSuggestions", mock.Anything, int64(1)).Return(suggestions, nil)
	_, err := svc.SimulateDelay(context.Background(), 1)
	require.NoError(t, err)

	upd.On("UpdateBooking", mock.Anything, int64(1), int64(2)).Return(nil, assert.AnError)

	_, err = svc.Rebook(context.Background(), 1, 2)
	assert.Error(t, err)

	// The delay stays active so the user can retry with another option.
	assert.Equal(t, PhaseDelayActive, svc.Phase(1))
	assert.Len(t, svc.Notifications(), 1)
	assert.Equal(t, suggestions, svc.Suggestions(1))

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, refreshed.Load())
}

func TestRebookingService_RebookWithoutDelay(t *testing.T) {
	svc := newService(new(MockRecommendationAPI), new(MockBookingUpdater), refresh.NewBroadcaster())

	_, err := svc.Rebook(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNoActiveDelay)
}

func TestRebookingService_ConcurrentSimulateGuard(t *testing.T) {
	rec := new(MockRecommendationAPI)
	upd := new(MockBookingUpdater)
	svc := newService(rec, upd, refresh.NewBroadcaster())

	release := make(chan struct{})
	started := make(chan struct{})
	upd.On("MyBookings", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(confirmedBooking(), nil).Once()
	rec.On("NotifyDelay", mock.Anything, mock.Anything).Return(nil)
	rec.On("RebookingSuggestions", mock.Anything, int64(1)).
		Return([]domain.RebookingSuggestion{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SimulateDelay(context.Background(), 1)
		done <- err
	}()

	<-started
	_, err := svc.SimulateDelay(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInFlight)

	close(release)
	require.NoError(t, <-done)
}

func TestRebookingService_DismissDropsState(t *testing.T) {
	rec := new(MockRecommendationAPI)
	upd := new(MockBookingUpdater)
	svc := newService(rec, upd, refresh.NewBroadcaster())

	upd.On("MyBookings", mock.Anything).Return(confirmedBooking(), nil)
	rec.On("NotifyDelay", mock.Anything, mock.Anything).Return(nil)
	rec.On("RebookingSuggestions", mock.Anything, int64(1)).
		Return([]domain.RebookingSuggestion{{FlightID: 2, Priority: 1}}, nil)

	_, err := svc.SimulateDelay(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, svc.Notifications(), 1)

	svc.Dismiss(1)
	assert.Empty(t, svc.Notifications())
	assert.Equal(t, PhaseIdle, svc.Phase(1))
}
