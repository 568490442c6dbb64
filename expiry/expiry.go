// Package expiry tracks named lifetimes and reports what is left of them.
package expiry

import (
	"expvar"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/hernoufM/memthol/clock"
	"github.com/hernoufM/memthol/duration"
	"github.com/hernoufM/memthol/span"
)

var xStats = expvar.NewMap("memtholStatsExpiry")

type entry struct {
	start clock.Instant
	lt    span.Lifetime
}

// Registry tracks named deadlines backed by a TTL cache. Entries are
// swept by the cache itself; the registry adds no goroutines of its own.
type Registry struct {
	c      *cache.Cache
	source *clock.Source
	sweep  time.Duration

	xTracked *expvar.Int
	xExpired *expvar.Int
}

// RegistryOption defines registry option
type RegistryOption func(*Registry)

// WithSweep defines the cleanup interval
// if 0 expired entries are only dropped on access
func WithSweep(d time.Duration) RegistryOption {
	return func(r *Registry) {
		r.sweep = d
	}
}

// WithSource defines the clock source, Default if omitted.
// Remaining and IsExpired follow this source, while the cache sweep and
// its OnExpired callbacks run on wall time regardless of it.
func WithSource(s *clock.Source) RegistryOption {
	return func(r *Registry) {
		r.source = s
	}
}

// NewRegistry creates registry
func NewRegistry(name string, opts ...RegistryOption) *Registry {
	r := &Registry{
		source:   clock.Default,
		xTracked: new(expvar.Int),
		xExpired: new(expvar.Int),
	}
	for _, optFn := range opts {
		optFn(r)
	}
	r.c = cache.New(cache.NoExpiration, r.sweep)
	xStats.Set(name+":tracked", r.xTracked)
	xStats.Set(name+":expired", r.xExpired)
	return r
}

// OnExpired sets the callback invoked when a tracked lifetime is
// swept out or dropped. The callback must not call back into the registry.
func (r *Registry) OnExpired(fn func(key string)) {
	r.c.OnEvicted(func(k string, _ interface{}) {
		r.xExpired.Add(1)
		log.Debug().Str("key", k).Msg("lifetime expired")
		if fn != nil {
			fn(k)
		}
	})
}

// Track starts the lifetime now and keeps it under the given key.
// Tracking again under the same key restarts it.
func (r *Registry) Track(key string, lt span.Lifetime) error {
	ttl, err := lt.Duration().AsStd()
	if err != nil {
		return fmt.Errorf("lifetime of %q: %w", key, err)
	}
	if ttl == 0 {
		/* the cache treats 0 as "no ttl", a zero lifetime expires at once */
		ttl = time.Nanosecond
	}
	r.c.Set(key, entry{start: r.source.Now(), lt: lt}, ttl)
	r.xTracked.Add(1)
	return nil
}

// Remaining returns what is left of the tracked lifetime,
// saturating at zero; false if the key is unknown or already swept.
func (r *Registry) Remaining(key string) (duration.Duration, bool) {
	v, found := r.c.Get(key)
	if !found {
		return duration.Zero(), false
	}
	e := v.(entry)
	return e.lt.RemainingAt(e.start, r.source.Now()), true
}

// IsExpired reports whether the key is past its lifetime or unknown.
func (r *Registry) IsExpired(key string) bool {
	v, found := r.c.Get(key)
	if !found {
		return true
	}
	e := v.(entry)
	return e.lt.IsExpiredAt(e.start, r.source.Now())
}

// Drop removes the key, firing the OnExpired callback.
func (r *Registry) Drop(key string) {
	r.c.Delete(key)
}

// Len returns the count of entries not yet swept.
func (r *Registry) Len() int {
	return r.c.ItemCount()
}

// Flush removes all entries without firing callbacks.
func (r *Registry) Flush() {
	r.c.Flush()
}
