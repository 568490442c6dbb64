package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hernoufM/memthol/errors"
)

// NanosPerSec is the size of the fractional component.
const NanosPerSec = 1_000_000_000

// Duration is a span of elapsed time: whole seconds plus a fractional
// nanosecond component kept normalized in [0, NanosPerSec).
// The zero value is the zero span. Values are immutable, arithmetic
// returns new values and reports overflow instead of wrapping silently.
// Normalization makes equality structural, so values compare with ==.
type Duration struct {
	secs  uint64
	nanos uint32
}

// Zero returns the zero span.
func Zero() Duration {
	return Duration{}
}

// New builds a span from seconds and nanoseconds, normalizing the carry.
func New(secs, nanos uint64) (Duration, error) {
	carry := nanos / NanosPerSec
	if secs > math.MaxUint64-carry {
		return Duration{}, fmt.Errorf("%w: %d secs and %d nanos", errors.ErrOverflow, secs, nanos)
	}
	return Duration{secs: secs + carry, nanos: uint32(nanos % NanosPerSec)}, nil
}

// FromSeconds builds a span of n whole seconds.
func FromSeconds(n int64) (Duration, error) {
	if n < 0 {
		return Duration{}, fmt.Errorf("%w: %d seconds", errors.ErrUnderflow, n)
	}
	return Duration{secs: uint64(n)}, nil
}

// FromMillis builds a span of n milliseconds.
func FromMillis(n int64) (Duration, error) {
	if n < 0 {
		return Duration{}, fmt.Errorf("%w: %d millis", errors.ErrUnderflow, n)
	}
	return Duration{secs: uint64(n) / 1000, nanos: uint32(uint64(n)%1000) * 1_000_000}, nil
}

// FromNanos builds a span of n nanoseconds.
func FromNanos(n int64) (Duration, error) {
	if n < 0 {
		return Duration{}, fmt.Errorf("%w: %d nanos", errors.ErrUnderflow, n)
	}
	return Duration{secs: uint64(n) / NanosPerSec, nanos: uint32(uint64(n) % NanosPerSec)}, nil
}

// FromStd converts time.Duration.
func FromStd(d time.Duration) (Duration, error) {
	return FromNanos(int64(d))
}

// Secs returns the whole seconds component.
func (d Duration) Secs() uint64 {
	return d.secs
}

// SubsecNanos returns the fractional component, always in [0, NanosPerSec).
func (d Duration) SubsecNanos() uint32 {
	return d.nanos
}

// AsNanos returns the span as a total nanoseconds count.
func (d Duration) AsNanos() (int64, error) {
	if d.secs > (math.MaxInt64-uint64(d.nanos))/NanosPerSec {
		return 0, fmt.Errorf("%w: %d secs as nanos", errors.ErrOverflow, d.secs)
	}
	return int64(d.secs*NanosPerSec + uint64(d.nanos)), nil
}

// AsStd converts to time.Duration.
func (d Duration) AsStd() (time.Duration, error) {
	ns, err := d.AsNanos()
	return time.Duration(ns), err
}

// IsZero reports the zero span.
func (d Duration) IsZero() bool {
	return d.secs == 0 && d.nanos == 0
}

// Cmp compares spans: -1 if d is shorter than o, 0 if equal, +1 if longer.
func (d Duration) Cmp(o Duration) int {
	switch {
	case d.secs < o.secs:
		return -1
	case d.secs > o.secs:
		return 1
	case d.nanos < o.nanos:
		return -1
	case d.nanos > o.nanos:
		return 1
	}
	return 0
}

// Less reports whether d is shorter than o.
func (d Duration) Less(o Duration) bool {
	return d.Cmp(o) < 0
}

// CheckedAdd returns d+o or fails instead of wrapping.
func (d Duration) CheckedAdd(o Duration) (Duration, error) {
	secs := d.secs + o.secs
	if secs < d.secs {
		return Duration{}, fmt.Errorf("%w: %d + %d secs", errors.ErrOverflow, d.secs, o.secs)
	}
	nanos := uint64(d.nanos) + uint64(o.nanos)
	if nanos >= NanosPerSec {
		nanos -= NanosPerSec
		secs++
		if secs == 0 {
			return Duration{}, fmt.Errorf("%w: %d + %d secs", errors.ErrOverflow, d.secs, o.secs)
		}
	}
	return Duration{secs: secs, nanos: uint32(nanos)}, nil
}

// CheckedSub returns d-o or fails if o is longer than d.
func (d Duration) CheckedSub(o Duration) (Duration, error) {
	if d.Less(o) {
		return Duration{}, fmt.Errorf("%w: minuend is shorter", errors.ErrUnderflow)
	}
	secs := d.secs - o.secs
	nanos := int64(d.nanos) - int64(o.nanos)
	if nanos < 0 {
		nanos += NanosPerSec
		secs--
	}
	return Duration{secs: secs, nanos: uint32(nanos)}, nil
}

// SaturatingSub returns d-o, clamping at zero instead of failing.
func (d Duration) SaturatingSub(o Duration) Duration {
	res, err := d.CheckedSub(o)
	if err != nil {
		return Duration{}
	}
	return res
}

// Scale returns d*n or fails instead of wrapping.
func (d Duration) Scale(n uint64) (Duration, error) {
	if n == 0 {
		return Duration{}, nil
	}
	if d.secs > math.MaxUint64/n {
		return Duration{}, fmt.Errorf("%w: %d secs * %d", errors.ErrOverflow, d.secs, n)
	}
	if d.nanos != 0 && n > math.MaxUint64/uint64(d.nanos) {
		return Duration{}, fmt.Errorf("%w: %d nanos * %d", errors.ErrOverflow, d.nanos, n)
	}
	secs := d.secs * n
	nanos := uint64(d.nanos) * n
	carry := nanos / NanosPerSec
	if secs > math.MaxUint64-carry {
		return Duration{}, fmt.Errorf("%w: %d secs * %d", errors.ErrOverflow, d.secs, n)
	}
	return Duration{secs: secs + carry, nanos: uint32(nanos % NanosPerSec)}, nil
}

// HumanString renders a lossy display form like "1.5s" or "2m3s".
// For humans only, never round-tripped.
func (d Duration) HumanString() string {
	switch {
	case d.IsZero():
		return "0s"
	case d.secs == 0 && d.nanos < 1_000:
		return strconv.FormatUint(uint64(d.nanos), 10) + "ns"
	case d.secs == 0 && d.nanos < 1_000_000:
		return formatFrac(float64(d.nanos)/1_000, "µs")
	case d.secs == 0:
		return formatFrac(float64(d.nanos)/1_000_000, "ms")
	case d.secs < 60:
		return formatFrac(float64(d.secs)+float64(d.nanos)/NanosPerSec, "s")
	}
	out := ""
	if hours := d.secs / 3600; hours > 0 {
		out = strconv.FormatUint(hours, 10) + "h"
	}
	out += strconv.FormatUint(d.secs/60%60, 10) + "m"
	return out + formatFrac(float64(d.secs%60)+float64(d.nanos)/NanosPerSec, "s")
}

func formatFrac(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

func (d Duration) String() string {
	return d.HumanString()
}

// MarshalJSON implements json.Marshaler, as quoted nanoseconds count.
func (d Duration) MarshalJSON() ([]byte, error) {
	ns, err := d.AsNanos()
	if err != nil {
		return nil, err
	}
	return []byte(`"` + strconv.FormatInt(ns, 10) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(input []byte) error {
	ns, err := strconv.ParseInt(strings.Trim(string(input), `"`), 10, 64)
	if err != nil {
		return err
	}
	parsed, err := FromNanos(ns)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
