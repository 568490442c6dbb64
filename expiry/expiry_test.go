package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hernoufM/memthol/clock"
	"github.com/hernoufM/memthol/duration"
	"github.com/hernoufM/memthol/span"
)

func mustSeconds(t *testing.T, n int64) duration.Duration {
	t.Helper()
	d, err := duration.FromSeconds(n)
	assert.NoError(t, err)
	return d
}

func TestTrackRemaining(t *testing.T) {
	mc := &clock.ManualClock{}
	src := clock.NewSource(mc, time.Millisecond)
	reg := NewRegistry("test-remaining", WithSource(src))

	assert.NoError(t, reg.Track("alloc", span.NewLifetime(mustSeconds(t, 10))))
	assert.Equal(t, 1, reg.Len())

	mc.Advance(mustSeconds(t, 4))
	left, ok := reg.Remaining("alloc")
	assert.True(t, ok)
	assert.Equal(t, mustSeconds(t, 6), left)
	assert.False(t, reg.IsExpired("alloc"))

	mc.Advance(mustSeconds(t, 7))
	left, ok = reg.Remaining("alloc")
	assert.True(t, ok)
	assert.True(t, left.IsZero())
	assert.True(t, reg.IsExpired("alloc"))
}

func TestUnknownKey(t *testing.T) {
	reg := NewRegistry("test-unknown")
	_, ok := reg.Remaining("nope")
	assert.False(t, ok)
	assert.True(t, reg.IsExpired("nope"))
}

func TestTrackRestarts(t *testing.T) {
	mc := &clock.ManualClock{}
	src := clock.NewSource(mc, time.Millisecond)
	reg := NewRegistry("test-restart", WithSource(src))

	assert.NoError(t, reg.Track("run", span.NewLifetime(mustSeconds(t, 5))))
	mc.Advance(mustSeconds(t, 4))
	assert.NoError(t, reg.Track("run", span.NewLifetime(mustSeconds(t, 5))))

	left, ok := reg.Remaining("run")
	assert.True(t, ok)
	assert.Equal(t, mustSeconds(t, 5), left)
}

func TestOnExpired(t *testing.T) {
	reg := NewRegistry("test-callback")
	fired := make(chan string, 1)
	reg.OnExpired(func(key string) {
		fired <- key
	})

	assert.NoError(t, reg.Track("run", span.NewLifetime(mustSeconds(t, 60))))
	reg.Drop("run")

	select {
	case key := <-fired:
		assert.Equal(t, "run", key)
	case <-time.After(time.Second):
		t.Fatal("expiry callback not fired")
	}
	assert.Equal(t, 0, reg.Len())
}

func TestSweep(t *testing.T) {
	reg := NewRegistry("test-sweep", WithSweep(10*time.Millisecond))
	fired := make(chan string, 1)
	reg.OnExpired(func(key string) {
		fired <- key
	})

	ms, err := duration.FromMillis(5)
	assert.NoError(t, err)
	assert.NoError(t, reg.Track("short", span.NewLifetime(ms)))

	select {
	case key := <-fired:
		assert.Equal(t, "short", key)
	case <-time.After(time.Second):
		t.Fatal("sweep did not evict the expired lifetime")
	}
}

func TestFlush(t *testing.T) {
	reg := NewRegistry("test-flush")
	assert.NoError(t, reg.Track("a", span.NewLifetime(mustSeconds(t, 60))))
	assert.NoError(t, reg.Track("b", span.NewLifetime(mustSeconds(t, 60))))
	assert.Equal(t, 2, reg.Len())
	reg.Flush()
	assert.Equal(t, 0, reg.Len())
}
