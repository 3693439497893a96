package refresh

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBroadcaster_AllCallbacksInvokedOnce(t *testing.T) {
	b := NewBroadcaster()

	counts := make([]int32, 5)
	for i := range counts {
		i := i
		b.Register(func() { atomic.AddInt32(&counts[i], 1) })
	}

	b.TriggerNow()

	for i := range counts {
		assert.Equal(t, int32(1), atomic.LoadInt32(&counts[i]))
	}
}

func TestBroadcaster_PanickingCallbackIsolated(t *testing.T) {
	b := NewBroadcaster()

	var before, after int32
	b.Register(func() { atomic.AddInt32(&before, 1) })
	b.Register(func() { panic("subscriber blew up") })
	b.Register(func() { atomic.AddInt32(&after, 1) })

	assert.NotPanics(t, b.TriggerNow)
	assert.Equal(t, int32(1), atomic.LoadInt32(&before))
	assert.Equal(t, int32(1), atomic.LoadInt32(&after))
}

func TestBroadcaster_UnregisteredNotInvoked(t *testing.T) {
	b := NewBroadcaster()

	var calls int32
	unregister := b.Register(func() { atomic.AddInt32(&calls, 1) })
	unregister()

	b.TriggerNow()
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestBroadcaster_UnregisterIdempotent(t *testing.T) {
	b := NewBroadcaster()

	var calls int32
	keep := b.Register(func() { atomic.AddInt32(&calls, 1) })
	unregister := b.Register(func() {})
	unregister()
	unregister()

	b.TriggerNow()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	_ = keep
}

func TestBroadcaster_SameFunctionRegisteredTwice(t *testing.T) {
	b := NewBroadcaster()

	var calls int32
	cb := func() { atomic.AddInt32(&calls, 1) }
	b.Register(cb)
	b.Register(cb)

	b.TriggerNow()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestBroadcaster_RegisterDuringBroadcast(t *testing.T) {
	b := NewBroadcaster()

	var lateCalls int32
	b.Register(func() {
		// Registered mid-broadcast; must not run in this broadcast.
		b.Register(func() { atomic.AddInt32(&lateCalls, 1) })
	})

	b.TriggerNow()
	assert.Zero(t, atomic.LoadInt32(&lateCalls))

	b.TriggerNow()
	assert.Equal(t, int32(1), atomic.LoadInt32(&lateCalls))
}

func TestBroadcaster_TriggerAfterDelay(t *testing.T) {
	b := NewBroadcaster()

	fired := make(chan struct{}, 2)
	b.Register(func() { fired <- struct{}{} })

	b.TriggerAfterDelay(10 * time.Millisecond)
	b.TriggerAfterDelay(20 * time.Millisecond)

	// Overlapping delayed triggers both fire.
	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("delayed trigger %d never fired", i+1)
		}
	}
}
