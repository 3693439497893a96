package refresh

import (
	"sync"
	"time"
)

type PollerConfig struct {
	Interval  time.Duration
	Enabled   bool
	OnRefresh func()
}

// Poller invokes a refresh function on a fixed cadence while enabled. There
// is no jitter, no backoff, and no overlap guard: if a refresh is still in
// flight when the next tick fires, the calls overlap, so OnRefresh must be
// safe to run concurrently with itself.
type Poller struct {
	mu   sync.Mutex
	stop chan struct{}
	cfg  PollerConfig
}

func NewPoller() *Poller {
	return &Poller{}
}

// Apply rearms the poller with the new configuration. The old timer is
// cleared first, so old and new parameters never mix; disabling tears the
// timer down entirely.
func (p *Poller) Apply(cfg PollerConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.cfg = cfg

	if !cfg.Enabled || cfg.Interval <= 0 || cfg.OnRefresh == nil {
		return
	}

	stop := make(chan struct{})
	p.stop = stop

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cfg.OnRefresh()
			case <-stop:
				return
			}
		}
	}()
}

// Stop clears any armed timer. Safe to call repeatedly.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.cfg.Enabled = false
}

func (p *Poller) stopLocked() {
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}
