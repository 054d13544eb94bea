package testutils

import (
	"sync"
	"testing"
	"time"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
	"github.com/stretchr/testify/require"
)

// Epoch is the start time of every FakeClock created by NewFakeClock.
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// FakeClock is a manually advanced ports.Clock.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*FakeTicker
	periods []time.Duration
}

var _ ports.Clock = (*FakeClock)(nil)

// NewFakeClock creates a clock frozen at Epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: Epoch}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) NewTicker(d time.Duration) ports.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &FakeTicker{
		ch:     make(chan time.Time, 1),
		period: d,
		next:   c.now.Add(d),
		clock:  c,
	}
	c.tickers = append(c.tickers, t)
	c.periods = append(c.periods, d)
	return t
}

// Advance moves the clock forward, firing every active ticker whose deadline passed.
// Like time.Ticker, a tick is dropped if the previous one was not consumed.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	for _, t := range c.tickers {
		if t.stopped {
			continue
		}
		for !t.next.After(c.now) {
			select {
			case t.ch <- t.next:
			default:
			}
			t.next = t.next.Add(t.period)
		}
	}
}

// ActiveTickers counts tickers that were created and not stopped.
func (c *FakeClock) ActiveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Periods lists the period of every ticker ever created, in order.
func (c *FakeClock) Periods() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.periods...)
}

// FakeTicker is the ports.Ticker returned by FakeClock.
type FakeTicker struct {
	ch      chan time.Time
	period  time.Duration
	next    time.Time
	stopped bool
	clock   *FakeClock
}

func (t *FakeTicker) C() <-chan time.Time {
	return t.ch
}

func (t *FakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.stopped = true
}

// NextEvent waits for an event on ch, failing the test after timeout.
func NextEvent(t *testing.T, ch <-chan *domain.Event, timeout time.Duration) *domain.Event {
	t.Helper()
	select {
	case evt, ok := <-ch:
		require.True(t, ok, "event channel closed")
		return evt
	case <-time.After(timeout):
		require.FailNow(t, "timed out waiting for event")
		return nil
	}
}

// Bits is shorthand for a complete BitPair literal, e.g. Bits("10").
func Bits(t *testing.T, s string) domain.BitPair {
	t.Helper()
	pair, err := domain.ParseBitPair(s)
	require.NoError(t, err)
	return pair
}
