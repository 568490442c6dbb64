package duration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hernoufM/memthol/errors"
)

func mustMillis(t *testing.T, n int64) Duration {
	t.Helper()
	d, err := FromMillis(n)
	assert.NoError(t, err)
	return d
}

func TestNormalization(t *testing.T) {
	a, err := FromSeconds(60)
	assert.NoError(t, err)
	b, err := FromMillis(60_000)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, a == b)

	c, err := New(59, 1_000_000_000)
	assert.NoError(t, err)
	assert.Equal(t, a, c)
	assert.Equal(t, uint64(60), c.Secs())
	assert.Equal(t, uint32(0), c.SubsecNanos())
}

func TestRoundTripNanos(t *testing.T) {
	for _, ns := range []int64{0, 1, 999_999_999, 1_000_000_000, 1_500_000_000, math.MaxInt64} {
		d, err := FromNanos(ns)
		assert.NoError(t, err)
		got, err := d.AsNanos()
		assert.NoError(t, err)
		assert.Equal(t, ns, got)
	}
}

func TestNegativeInput(t *testing.T) {
	for _, fn := range []func(int64) (Duration, error){FromSeconds, FromMillis, FromNanos} {
		_, err := fn(-1)
		assert.Error(t, err)
		assert.True(t, errors.IsUnderflow(err))
	}
}

func TestCheckedAddSub(t *testing.T) {
	a := mustMillis(t, 2_500)
	b := mustMillis(t, 1_700)

	diff, err := a.CheckedSub(b)
	assert.NoError(t, err)
	back, err := diff.CheckedAdd(b)
	assert.NoError(t, err)
	assert.Equal(t, a, back)

	_, err = b.CheckedSub(a)
	assert.Error(t, err)
	assert.True(t, errors.IsUnderflow(err))

	top, err := New(math.MaxUint64, 0)
	assert.NoError(t, err)
	one, err := FromSeconds(1)
	assert.NoError(t, err)
	_, err = top.CheckedAdd(one)
	assert.Error(t, err)
	assert.True(t, errors.IsOverflow(err))
}

func TestSaturatingSub(t *testing.T) {
	a := mustMillis(t, 500)
	b := mustMillis(t, 1_500)
	assert.True(t, a.SaturatingSub(b).IsZero())
	assert.Equal(t, mustMillis(t, 1_000), b.SaturatingSub(a))
}

func TestScale(t *testing.T) {
	d := mustMillis(t, 1_500)
	scaled, err := d.Scale(4)
	assert.NoError(t, err)
	assert.Equal(t, mustMillis(t, 6_000), scaled)

	zero, err := d.Scale(0)
	assert.NoError(t, err)
	assert.True(t, zero.IsZero())

	top, err := New(math.MaxUint64, 0)
	assert.NoError(t, err)
	_, err = top.Scale(2)
	assert.Error(t, err)
	assert.True(t, errors.IsOverflow(err))
}

func TestCmp(t *testing.T) {
	a := mustMillis(t, 999)
	b := mustMillis(t, 1_001)
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}

func TestHumanString(t *testing.T) {
	tests := []struct {
		name string
		d    Duration
		want string
	}{
		{"zero", Zero(), "0s"},
		{"nanos", func() Duration { d, _ := FromNanos(120); return d }(), "120ns"},
		{"micros", func() Duration { d, _ := FromNanos(1_500); return d }(), "1.5µs"},
		{"millis", func() Duration { d, _ := FromNanos(2_250_000); return d }(), "2.25ms"},
		{"frac seconds", mustMillis(t, 1_500), "1.5s"},
		{"minutes", func() Duration { d, _ := FromSeconds(90); return d }(), "1m30s"},
		{"hours", func() Duration { d, _ := FromSeconds(3_725); return d }(), "1h2m5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.HumanString())
		})
	}
	assert.Contains(t, mustMillis(t, 1_500).HumanString(), "1.5")
}

func TestJSON(t *testing.T) {
	d := mustMillis(t, 1_500)
	data, err := d.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, []byte(`"1500000000"`), data)

	var back Duration
	assert.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, d, back)

	assert.Error(t, back.UnmarshalJSON([]byte(`"-1"`)))
	assert.Error(t, back.UnmarshalJSON([]byte(`"nope"`)))
}
