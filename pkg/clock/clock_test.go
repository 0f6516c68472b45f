package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker(t *testing.T) {
	t.Log("Starting ticker tests")

	var count atomic.Int32
	c := NewTicker(5 * time.Millisecond)
	require.False(t, c.Running())

	c.Start(func() { count.Add(1) })
	assert.True(t, c.Running())

	assert.Eventually(t, func() bool {
		return count.Load() >= 3
	}, time.Second, 5*time.Millisecond, "ticker should fire repeatedly")

	c.Stop()
	assert.False(t, c.Running())

	stopped := count.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, count.Load(), "no tick should run after Stop returns")
}

func TestTickerStopWaitsForInFlightTick(t *testing.T) {
	var inTick atomic.Bool
	var finished atomic.Bool

	c := NewTicker(time.Millisecond)
	c.Start(func() {
		if !inTick.CompareAndSwap(false, true) {
			return
		}
		time.Sleep(30 * time.Millisecond)
		finished.Store(true)
	})

	require.Eventually(t, inTick.Load, time.Second, time.Millisecond)
	c.Stop()

	assert.True(t, finished.Load(), "Stop must not return while a tick is running")
}

func TestTickerRestart(t *testing.T) {
	var count atomic.Int32
	c := NewTicker(2 * time.Millisecond)

	c.Start(func() { count.Add(1) })
	c.Start(func() { count.Add(100) }) // ignored while running
	c.Stop()
	c.Stop()

	before := count.Load()
	assert.Less(t, before, int32(100))

	c.Start(func() { count.Add(1) })
	assert.Eventually(t, func() bool { return count.Load() > before }, time.Second, time.Millisecond)
	c.Stop()
}

func TestTickerDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultInterval, NewTicker(0).Interval())
	assert.Equal(t, DefaultInterval, NewTicker(-time.Second).Interval())
	assert.Equal(t, time.Second, NewTicker(time.Second).Interval())
}

func TestManual(t *testing.T) {
	tests := []struct {
		name      string
		operation func(*Manual, *int) int
		wantCalls int
		wantRan   int
	}{
		{
			name: "advance while stopped",
			operation: func(m *Manual, calls *int) int {
				return m.Advance(5)
			},
			wantCalls: 0,
			wantRan:   0,
		},
		{
			name: "advance while running",
			operation: func(m *Manual, calls *int) int {
				m.Start(func() { *calls++ })
				return m.Advance(5)
			},
			wantCalls: 5,
			wantRan:   5,
		},
		{
			name: "advance after stop",
			operation: func(m *Manual, calls *int) int {
				m.Start(func() { *calls++ })
				m.Advance(2)
				m.Stop()
				return m.Advance(3)
			},
			wantCalls: 2,
			wantRan:   0,
		},
		{
			name: "second start is ignored",
			operation: func(m *Manual, calls *int) int {
				m.Start(func() { *calls++ })
				m.Start(func() { *calls += 10 })
				return m.Advance(1)
			},
			wantCalls: 1,
			wantRan:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManual()
			calls := 0
			ran := tt.operation(m, &calls)

			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantRan, ran)
			assert.Equal(t, uint64(tt.wantCalls), m.Ticks())
		})
	}
}
