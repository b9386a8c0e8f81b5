// file: internal/dedup/dedup.go
// version: 1.0.0
// guid: 7e9f1b3d-5a7c-4e0f-8b2d-4c6e8a0b2d4e

package dedup

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hoangdinhthien/swimadmin/internal/metrics"
)

// Group collapses concurrent calls for the same key into one in-flight
// request; every attached caller receives the same outcome, success or
// error. There is no TTL and no freshness: once a call settles the key is
// released and the next call for it starts fresh. Pair with the TTL cache
// when results should be reused across time.
type Group struct {
	mu      sync.Mutex
	sf      singleflight.Group
	pending map[string]struct{}
}

// NewGroup creates an empty deduplication group.
func NewGroup() *Group {
	return &Group{pending: make(map[string]struct{})}
}

// Do invokes fn once per key among concurrent callers. Callers arriving
// while a call for key is in flight attach to it instead of invoking fn.
func (g *Group) Do(key string, fn func() (any, error)) (any, error) {
	g.mu.Lock()
	if _, inflight := g.pending[key]; inflight {
		metrics.IncDedupCoalesced()
	} else {
		g.pending[key] = struct{}{}
	}
	g.mu.Unlock()

	v, err, _ := g.sf.Do(key, func() (any, error) {
		defer func() {
			g.mu.Lock()
			delete(g.pending, key)
			g.mu.Unlock()
		}()
		return fn()
	})
	return v, err
}

// Clear forgets all pending keys. In-flight requests are not cancelled;
// they run to completion for callers already attached, but a subsequent Do
// for the same key starts a fresh request, possibly concurrent with the
// forgotten one. Used on teardown and logout.
func (g *Group) Clear() {
	g.mu.Lock()
	keys := make([]string, 0, len(g.pending))
	for k := range g.pending {
		keys = append(keys, k)
	}
	g.pending = make(map[string]struct{})
	g.mu.Unlock()

	for _, k := range keys {
		g.sf.Forget(k)
	}
}

// Pending reports the number of in-flight keys.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// Do is the typed wrapper over Group.Do.
func Do[T any](g *Group, key string, fn func() (T, error)) (T, error) {
	v, err := g.Do(key, func() (any, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return typed, nil
}
