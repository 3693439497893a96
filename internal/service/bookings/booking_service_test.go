package bookings

import (
	"context"
	"errors"
	"testing"

	"airclient/internal/domain"
	"airclient/internal/refresh"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingAPI struct {
	mock.Mock
}

func (m *MockBookingAPI) MyBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingAPI) CreateBooking(ctx context.Context, flightID int64) (*domain.Booking, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingAPI) CancelBooking(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type MockFlightResolver struct {
	mock.Mock
}

func (m *MockFlightResolver) Resolve(id int64) (domain.Flight, bool) {
	args := m.Called(id)
	return args.Get(0).(domain.Flight), args.Bool(1)
}

func TestBookingService_My_ResolvesFlightsByID(t *testing.T) {
	mockAPI := &MockBookingAPI{}
	mockResolver := &MockFlightResolver{}
	service := NewBookingService(mockAPI, mockResolver, nil)

	ctx := context.Background()
	embedded := &domain.Flight{ID: 2, Origin: "old", Destination: "old"}
	mockAPI.On("MyBookings", ctx).Return([]domain.Booking{
		{ID: 1, FlightID: 1, Status: domain.BookingStatusConfirmed},
		{ID: 2, FlightID: 2, Status: domain.BookingStatusConfirmed, Flight: embedded},
	}, nil).Once()

	resolved := domain.Flight{ID: 1, Origin: "NY", Destination: "LON"}
	mockResolver.On("Resolve", int64(1)).Return(resolved, true).Once()
	// Cache miss: the embedded flight payload stays in place.
	mockResolver.On("Resolve", int64(2)).Return(domain.Flight{}, false).Once()

	bookings, err := service.My(ctx)
	assert.NoError(t, err)
	assert.Equal(t, &resolved, bookings[0].Flight)
	assert.Equal(t, embedded, bookings[1].Flight)

	mockAPI.AssertExpectations(t)
	mockResolver.AssertExpectations(t)
}

func TestBookingService_My_APIError(t *testing.T) {
	mockAPI := &MockBookingAPI{}
	service := NewBookingService(mockAPI, nil, nil)

	ctx := context.Background()
	expectedErr := errors.New("backend down")
	mockAPI.On("MyBookings", ctx).Return(([]domain.Booking)(nil), expectedErr).Once()

	bookings, err := service.My(ctx)
	assert.Nil(t, bookings)
	assert.Equal(t, expectedErr, err)
}

func TestBookingService_Book_NotifiesBroadcaster(t *testing.T) {
	mockAPI := &MockBookingAPI{}
	broadcaster := refresh.NewBroadcaster()
	service := NewBookingService(mockAPI, nil, broadcaster)

	refreshed := false
	broadcaster.Register(func() { refreshed = true })

	ctx := context.Background()
	created := &domain.Booking{ID: 5, FlightID: 1, Status: domain.BookingStatusConfirmed}
	mockAPI.On("CreateBooking", ctx, int64(1)).Return(created, nil).Once()

	booking, err := service.Book(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, created, booking)
	assert.True(t, refreshed)
}

func TestBookingService_Book_ErrorDoesNotNotify(t *testing.T) {
	mockAPI := &MockBookingAPI{}
	broadcaster := refresh.NewBroadcaster()
	service := NewBookingService(mockAPI, nil, broadcaster)

	refreshed := false
	broadcaster.Register(func() { refreshed = true })

	ctx := context.Background()
	mockAPI.On("CreateBooking", ctx, int64(1)).Return(nil, errors.New("sold out")).Once()

	_, err := service.Book(ctx, 1)
	assert.Error(t, err)
	assert.False(t, refreshed)
}

func TestBookingService_Cancel(t *testing.T) {
	mockAPI := &MockBookingAPI{}
	broadcaster := refresh.NewBroadcaster()
	service := NewBookingService(mockAPI, nil, broadcaster)

	refreshed := false
	broadcaster.Register(func() { refreshed = true })

	ctx := context.Background()
	mockAPI.On("CancelBooking", ctx, int64(3)).Return(nil).Once()

	assert.NoError(t, service.Cancel(ctx, 3))
	assert.True(t, refreshed)
}
