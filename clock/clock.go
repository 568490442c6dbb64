package clock

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hernoufM/memthol/duration"
	"github.com/hernoufM/memthol/errors"
)

// Clock reads monotonic time as a nanoseconds count from a fixed origin.
// Implementations must be safe for concurrent use.
type Clock interface {
	NowNanos() int64
}

// SystemClock implements Clock on the Go runtime monotonic reading.
type SystemClock struct{}

var sysOrigin = time.Now()

// NowNanos returns nanoseconds since process start.
func (SystemClock) NowNanos() int64 {
	return int64(time.Since(sysOrigin))
}

// ManualClock implements Clock for deterministic tests.
type ManualClock struct {
	mu sync.Mutex
	ns int64
}

// NowNanos returns the manually set reading.
func (c *ManualClock) NowNanos() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ns
}

// Advance moves the clock forward by d. It panics when d does not fit
// a reading: ManualClock is a test helper, misuse is a programming error.
func (c *ManualClock) Advance(d duration.Duration) {
	ns, err := d.AsNanos()
	if err != nil {
		panic(err)
	}
	c.mu.Lock()
	c.ns += ns
	c.mu.Unlock()
}

// Set moves the clock to an absolute reading, backward moves included.
func (c *ManualClock) Set(ns int64) {
	c.mu.Lock()
	c.ns = ns
	c.mu.Unlock()
}

// Instant is a reading of a monotonic clock source. It is meaningful
// only relative to other Instants of the same source within one process
// lifetime and is never persisted or compared across restarts.
type Instant struct {
	ns int64
}

// Before reports whether t reads earlier than o.
func (t Instant) Before(o Instant) bool {
	return t.ns < o.ns
}

// After reports whether t reads later than o.
func (t Instant) After(o Instant) bool {
	return t.ns > o.ns
}

// Sub returns the span since earlier, saturating at zero
// when earlier actually reads later than t.
func (t Instant) Sub(earlier Instant) duration.Duration {
	d, err := t.CheckedSub(earlier)
	if err != nil {
		return duration.Zero()
	}
	return d
}

// CheckedSub is the failing form of Sub.
func (t Instant) CheckedSub(earlier Instant) (duration.Duration, error) {
	if t.ns < earlier.ns {
		return duration.Zero(), fmt.Errorf("%w: %dns", errors.ErrNegativeDuration, earlier.ns-t.ns)
	}
	return duration.FromNanos(t.ns - earlier.ns)
}

// Add returns the instant shifted forward by d.
func (t Instant) Add(d duration.Duration) (Instant, error) {
	ns, err := d.AsNanos()
	if err != nil {
		return Instant{}, err
	}
	if t.ns > 0 && ns > 0 && t.ns+ns < 0 {
		return Instant{}, fmt.Errorf("%w: instant beyond range", errors.ErrOverflow)
	}
	return Instant{ns: t.ns + ns}, nil
}

// Source couples a Clock with skew detection. Readings are clamped so
// a Source is nondecreasing; backward movement of the underlying clock
// beyond the tolerance is reported by Elapsed and never corrected.
type Source struct {
	clock     Clock
	tolerance atomic.Int64
	last      atomic.Int64
}

// NewSource returns a source over c accepting backward movement up to tolerance.
func NewSource(c Clock, tolerance time.Duration) *Source {
	s := &Source{clock: c}
	s.tolerance.Store(int64(tolerance))
	return s
}

// SetTolerance applies configuration.
func (s *Source) SetTolerance(tolerance time.Duration) {
	s.tolerance.Store(int64(tolerance))
}

// Now returns the current reading. It never fails.
func (s *Source) Now() Instant {
	raw := s.clock.NowNanos()
	for {
		last := s.last.Load()
		if raw <= last {
			return Instant{ns: last}
		}
		if s.last.CompareAndSwap(last, raw) {
			return Instant{ns: raw}
		}
	}
}

// Origin returns the zero instant of this source.
func (s *Source) Origin() Instant {
	return Instant{}
}

// Elapsed returns the span since the given instant. Backward movement
// of the clock within tolerance saturates at zero, beyond tolerance it
// fails with ErrClockSkew so the caller decides to retry or abort.
func (s *Source) Elapsed(since Instant) (duration.Duration, error) {
	raw := s.clock.NowNanos()
	if raw < since.ns {
		skew := since.ns - raw
		if skew > s.tolerance.Load() {
			log.Warn().Int64("skewNanos", skew).Msg("clock source moved backward")
			return duration.Zero(), fmt.Errorf("%w: %dns behind", errors.ErrClockSkew, skew)
		}
		return duration.Zero(), nil
	}
	return duration.FromNanos(raw - since.ns)
}

// DefaultTolerance accepts backward movement caused by clock readings
// taken on different CPUs before skew is reported.
const DefaultTolerance = time.Millisecond

// Default is the process-wide source backed by the system clock.
var Default = NewSource(SystemClock{}, DefaultTolerance)

// Now returns the current reading of the Default source.
func Now() Instant {
	return Default.Now()
}

// Elapsed returns the span since the given instant of the Default source.
func Elapsed(since Instant) (duration.Duration, error) {
	return Default.Elapsed(since)
}
