// file: internal/cache/cache_test.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-2f3a4b5c6d7e

package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func TestGetSet(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("k", "v")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestGetMissingKey(t *testing.T) {
	c := New[string](time.Minute)
	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestTTLExpiryRemovesEntry(t *testing.T) {
	clk := newFakeClock()
	c := New(time.Minute, WithClock[int](clk.Now))

	c.SetWithTTL("k", 42, 100*time.Millisecond)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	clk.Advance(101 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	// The expired entry is physically removed by the Get that observed it.
	assert.Equal(t, 0, c.Len())
}

func TestEntryFreshAtExactTTL(t *testing.T) {
	clk := newFakeClock()
	c := New(time.Minute, WithClock[int](clk.Now))

	c.SetWithTTL("k", 1, 100*time.Millisecond)
	clk.Advance(100 * time.Millisecond)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry is valid while now - storedAt <= ttl")
}

func TestDefaultTTL(t *testing.T) {
	clk := newFakeClock()
	c := New(DefaultTTL, WithClock[string](clk.Now))

	c.Set("k", "v")
	clk.Advance(5*time.Minute - time.Millisecond)
	_, ok := c.Get("k")
	require.True(t, ok)

	clk.Advance(2 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestZeroTTLNeverFresh(t *testing.T) {
	clk := newFakeClock()
	c := New(time.Minute, WithClock[string](clk.Now))

	c.SetWithTTL("k", "v", 0)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	c.Delete("a") // no-op on absent key
	_, ok := c.Get("a")
	assert.False(t, ok)
	v, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCleanupSweep(t *testing.T) {
	clk := newFakeClock()
	c := New(time.Minute, WithClock[int](clk.Now))

	c.SetWithTTL("short", 1, 10*time.Millisecond)
	c.SetWithTTL("long", 2, time.Hour)
	clk.Advance(time.Second)

	c.Cleanup()
	assert.Equal(t, 1, c.Len())
	v, ok := c.Get("long")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestCleanupIdempotent(t *testing.T) {
	clk := newFakeClock()
	c := New(time.Minute, WithClock[int](clk.Now))

	c.SetWithTTL("a", 1, time.Hour)
	c.SetWithTTL("b", 2, time.Hour)

	c.Cleanup()
	assert.Equal(t, 2, c.Len())
	c.Cleanup()
	assert.Equal(t, 2, c.Len())

	a, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, a)
}

func TestFetchInvokesOncePerTTLWindow(t *testing.T) {
	clk := newFakeClock()
	c := New(time.Minute, WithClock[string](clk.Now))

	calls := 0
	fn := func() (string, error) {
		calls++
		return "result", nil
	}

	v, err := c.FetchTTL("k", 50*time.Millisecond, fn)
	require.NoError(t, err)
	assert.Equal(t, "result", v)

	v, err = c.FetchTTL("k", 50*time.Millisecond, fn)
	require.NoError(t, err)
	assert.Equal(t, "result", v)
	assert.Equal(t, 1, calls, "second call within TTL must hit the cache")

	clk.Advance(51 * time.Millisecond)
	_, err = c.FetchTTL("k", 50*time.Millisecond, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "call after expiry must invoke fn again")
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	c := New[string](time.Minute)

	calls := 0
	boom := errors.New("upstream unavailable")
	fn := func() (string, error) {
		calls++
		return "", boom
	}

	_, err := c.Fetch("k", fn)
	assert.ErrorIs(t, err, boom)
	_, err = c.Fetch("k", fn)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, c.Len())
}

func TestFetchAsTypedMiss(t *testing.T) {
	c := New[any](time.Minute)
	c.Set("k", "a string, not an int")

	calls := 0
	v, err := FetchAs(c, "k", time.Minute, func() (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls, "wrong dynamic type must count as a miss")

	v, err = FetchAs(c, "k", time.Minute, func() (int, error) {
		calls++
		return 0, errors.New("should not run")
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)
}

func TestStartCleanupSweepsInBackground(t *testing.T) {
	c := New[string](time.Minute)
	c.SetWithTTL("k", "v", 20*time.Millisecond)

	stop := c.StartCleanup(10 * time.Millisecond)
	defer stop()

	assert.Eventually(t, func() bool { return c.Len() == 0 },
		time.Second, 5*time.Millisecond)
	stop()
	stop() // stop is idempotent
}

func TestKey(t *testing.T) {
	assert.Equal(t, "courses:tenant-1:2:25", Key("courses", "tenant-1", 2, 25))
	assert.Equal(t, "profile", Key("profile"))
}
