// Package span provides semantic wrappers tagging a Duration with a meaning.
package span

import (
	"github.com/hernoufM/memthol/clock"
	"github.com/hernoufM/memthol/duration"
)

// Lifetime is a span meaning "maximum permitted span before expiry".
// It carries no state beyond the wrapped Duration: the caller supplies
// the start instant the lifetime is counted from.
type Lifetime struct {
	d duration.Duration
}

// NewLifetime wraps d as a lifetime.
func NewLifetime(d duration.Duration) Lifetime {
	return Lifetime{d: d}
}

// Duration returns the wrapped span.
func (lt Lifetime) Duration() duration.Duration {
	return lt.d
}

// RemainingAt returns how much of the lifetime started at start is left
// at now, saturating at zero once expired.
func (lt Lifetime) RemainingAt(start, now clock.Instant) duration.Duration {
	return lt.d.SaturatingSub(now.Sub(start))
}

// Remaining is RemainingAt against the default clock source.
func (lt Lifetime) Remaining(start clock.Instant) duration.Duration {
	return lt.RemainingAt(start, clock.Now())
}

// IsExpiredAt reports whether now exceeds the lifetime started at start.
// The boundary itself is not yet expired.
func (lt Lifetime) IsExpiredAt(start, now clock.Instant) bool {
	return now.Sub(start).Cmp(lt.d) > 0
}

// IsExpired is IsExpiredAt against the default clock source.
func (lt Lifetime) IsExpired(start clock.Instant) bool {
	return lt.IsExpiredAt(start, clock.Now())
}

// SinceStart is a span measured from a fixed reference instant.
// Values captured from different references must not be compared;
// the reference is fixed by the capture call, not stored in the value.
type SinceStart struct {
	d duration.Duration
}

// Zero returns the span of a reference point itself.
func Zero() SinceStart {
	return SinceStart{}
}

// NewSinceStart wraps an already measured span.
func NewSinceStart(d duration.Duration) SinceStart {
	return SinceStart{d: d}
}

// CaptureAt measures the span between start and now,
// saturating at zero when now reads earlier.
func CaptureAt(start, now clock.Instant) SinceStart {
	return SinceStart{d: now.Sub(start)}
}

// Capture measures the span since start on the default clock source.
// The reference of the returned value is that start instant.
func Capture(start clock.Instant) SinceStart {
	return CaptureAt(start, clock.Now())
}

// Duration returns the wrapped span.
func (s SinceStart) Duration() duration.Duration {
	return s.d
}

// Cmp orders two values captured from the same reference.
func (s SinceStart) Cmp(o SinceStart) int {
	return s.d.Cmp(o.d)
}

// IsZero reports the reference point itself.
func (s SinceStart) IsZero() bool {
	return s.d.IsZero()
}
