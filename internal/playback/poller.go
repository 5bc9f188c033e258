package playback

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is how often the cursor position is sampled. Polling
// rather than event subscription tolerates position sources that emit no
// continuous update signal.
const DefaultPollInterval = 250 * time.Millisecond

// Poller samples a position source on a fixed interval and caches the last
// observed position for the render path. Context cancellation is the only
// stop mechanism, so a torn-down view cannot leak the polling goroutine.
type Poller struct {
	source   PositionSource
	interval time.Duration

	// ticks overrides the timer for tests; nil means a real time.Ticker.
	ticks <-chan time.Time

	mu  sync.Mutex
	pos float64

	wg sync.WaitGroup
}

// NewPoller creates a poller over the given source. A non-positive
// interval falls back to DefaultPollInterval.
func NewPoller(source PositionSource, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{source: source, interval: interval, pos: source.Position()}
}

// NewPollerWithTicks injects the tick channel so tests drive sampling
// deterministically.
func NewPollerWithTicks(source PositionSource, ticks <-chan time.Time) *Poller {
	return &Poller{source: source, interval: DefaultPollInterval, ticks: ticks, pos: source.Position()}
}

// Start launches the sampling loop. Cancel the context to stop it.
func (p *Poller) Start(ctx context.Context) {
	ticks := p.ticks
	var stop func()
	if ticks == nil {
		t := time.NewTicker(p.interval)
		ticks = t.C
		stop = t.Stop
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if stop != nil {
			defer stop()
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticks:
				p.sample()
			}
		}
	}()
}

// Wait blocks until the sampling goroutine exits. Call after canceling
// the context passed to Start.
func (p *Poller) Wait() {
	p.wg.Wait()
}

func (p *Poller) sample() {
	pos := p.source.Position()
	p.mu.Lock()
	p.pos = pos
	p.mu.Unlock()
}

// Position returns the last sampled playback position. At most one poll
// interval stale.
func (p *Poller) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Seek routes a chart interaction to the position source and updates the
// cached position immediately, so the cursor moves on the next render
// rather than the next tick.
func (p *Poller) Seek(seconds float64) error {
	if err := p.source.Seek(seconds); err != nil {
		return err
	}
	pos := p.source.Position()
	p.mu.Lock()
	p.pos = pos
	p.mu.Unlock()
	return nil
}
