// Package clock provides the monotonic wall-clock capability the liquidity
// book core consumes as an input to provisioning, swaps and fee
// eligibility checks. The core never reads the clock itself — provisioning
// and swaps take now_ms explicitly (spec.md §6) — but a host
// embedding the core needs a swappable time source to drive it, and tests
// need one that can be advanced deterministically to exercise
// fee-non-retroactivity.
package clock

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Clock is the capability consumed by callers of the keeper package: a
// monotonic millisecond timestamp source.
type Clock interface {
	NowMs() uint64
}

// System is the production Clock, backed by benbjohnson/clock's real-time
// implementation so it can be swapped for a Mock in tests without the
// keeper package itself depending on wall-clock time.
type System struct {
	underlying clock.Clock
}

// NewSystem returns a Clock backed by the real wall clock.
func NewSystem() *System {
	return &System{underlying: clock.New()}
}

// NowMs implements Clock.
func (s *System) NowMs() uint64 {
	return uint64(s.underlying.Now().UnixMilli())
}

// Mock is a Clock that only advances when told to, for deterministic tests
// of time-gated behavior such as fee non-retroactivity (spec.md §4.6).
type Mock struct {
	underlying *clock.Mock
}

// NewMock returns a Mock clock starting at the given millisecond timestamp.
func NewMock(startMs uint64) *Mock {
	m := &Mock{underlying: clock.NewMock()}
	m.underlying.Set(time.UnixMilli(int64(startMs)))
	return m
}

// NowMs implements Clock.
func (m *Mock) NowMs() uint64 {
	return uint64(m.underlying.Now().UnixMilli())
}

// Advance moves the mock clock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.underlying.Add(d)
}
