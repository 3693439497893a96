// Package refresh decouples "something changed" from "who needs to know".
// Views register zero-argument callbacks with the Broadcaster; services
// that mutate backend state trigger them, immediately or after a delay.
package refresh

import (
	"log"
	"sync"
	"time"
)

type Broadcaster struct {
	mu        sync.Mutex
	nextID    int
	callbacks map[int]func()
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{callbacks: make(map[int]func())}
}

// Register adds a callback and returns its unregister function. Each
// registration is independent, even for the same function value.
func (b *Broadcaster) Register(callback func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.callbacks[id] = callback

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.callbacks, id)
		})
	}
}

// TriggerNow invokes every registered callback. Iteration is over a
// snapshot, so registration or unregistration during a broadcast neither
// skips nor double-calls anyone. A panicking callback is logged and the
// rest still run.
func (b *Broadcaster) TriggerNow() {
	b.mu.Lock()
	snapshot := make([]func(), 0, len(b.callbacks))
	for _, cb := range b.callbacks {
		snapshot = append(snapshot, cb)
	}
	b.mu.Unlock()

	for _, cb := range snapshot {
		b.invoke(cb)
	}
}

// TriggerAfterDelay schedules a single TriggerNow. Pending delayed triggers
// are not cancelled; overlapping ones may both fire.
func (b *Broadcaster) TriggerAfterDelay(d time.Duration) {
	time.AfterFunc(d, b.TriggerNow)
}

func (b *Broadcaster) invoke(cb func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("refresh callback panicked: %v", r)
		}
	}()
	cb()
}
