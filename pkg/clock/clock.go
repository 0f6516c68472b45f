/*
Package clock schedules the periodic ticks that drive an animated indicator.

The scheduler is kept apart from the animation model so the model can be
tested without real time passing. Two implementations are provided:

	// Ticker fires on a real time.Ticker in its own goroutine
	c := clock.NewTicker(16 * time.Millisecond)

	// Manual fires only when Advance is called
	m := clock.NewManual()
	m.Start(func() { ... })
	m.Advance(10)

Stop is synchronous for both: once it returns, no tick is running and none
will run until Start is called again.
*/
package clock

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is used when a Ticker is created with a non-positive interval
const DefaultInterval = 16 * time.Millisecond

// Clock invokes a tick function periodically between Start and Stop
type Clock interface {
	// Start begins invoking tick. Calling Start on a running clock is a no-op.
	Start(tick func())

	// Stop halts the clock and waits for an in-flight tick to return.
	// Calling Stop on a stopped clock is a no-op.
	Stop()

	// Running reports whether the clock is between Start and Stop
	Running() bool
}

// Ticker is a Clock backed by time.Ticker
type Ticker struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker creates a stopped Ticker firing every interval
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{interval: interval}
}

// Interval returns the tick period
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

func (t *Ticker) Start(tick func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.run(ctx, t.done, tick)
}

func (t *Ticker) run(ctx context.Context, done chan struct{}, tick func()) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// a cancel racing with the ticker must win
			if ctx.Err() != nil {
				return
			}
			tick()
		}
	}
}

func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Manual is a Clock that ticks only when told to
type Manual struct {
	mu    sync.Mutex
	tick  func()
	ticks uint64
}

// NewManual creates a stopped Manual clock
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Start(tick func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tick != nil {
		return
	}
	m.tick = tick
}

// Advance fires n ticks on the caller's goroutine and returns how many ran.
// It fires nothing while the clock is stopped.
func (m *Manual) Advance(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tick == nil {
		return 0
	}
	for i := 0; i < n; i++ {
		m.tick()
		m.ticks++
	}
	return n
}

// Ticks returns the total number of ticks fired
func (m *Manual) Ticks() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick = nil
}

func (m *Manual) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tick != nil
}
