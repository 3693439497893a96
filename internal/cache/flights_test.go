package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airclient/internal/domain"
)

func TestFlightCache_GetRespectsTTL(t *testing.T) {
	c := NewFlightCache(20 * time.Millisecond)
	assert.Nil(t, c.Get())

	flights := []domain.Flight{{ID: 1, Origin: "New York"}}
	c.Set(flights)
	assert.Equal(t, flights, c.Get())

	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, c.Get())
}

func TestFlightCache_ZeroTTLNeverExpires(t *testing.T) {
	c := NewFlightCache(0)
	c.Set([]domain.Flight{{ID: 1}})
	time.Sleep(10 * time.Millisecond)
	assert.NotNil(t, c.Get())
}

func TestFlightCache_LookupIgnoresTTL(t *testing.T) {
	c := NewFlightCache(10 * time.Millisecond)
	c.Set([]domain.Flight{{ID: 7, Origin: "Paris"}})

	time.Sleep(20 * time.Millisecond)
	require.Nil(t, c.Get())

	f, ok := c.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "Paris", f.Origin)

	_, ok = c.Lookup(99)
	assert.False(t, ok)
}

func TestFlightCache_Invalidate(t *testing.T) {
	c := NewFlightCache(0)
	c.Set([]domain.Flight{{ID: 1}})
	c.Invalidate()

	assert.Nil(t, c.Get())
	_, ok := c.Lookup(1)
	assert.False(t, ok)
}
