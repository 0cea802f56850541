package ratelimit_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"devsolutions/internal/core/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreStaysBounded(t *testing.T) {
	t.Parallel()
	s := ratelimit.NewMemoryStore(3)
	ctx := context.Background()
	p := ratelimit.Policy{Window: time.Minute, Max: 5}

	for i := range 3 {
		_, ok, err := s.Hit(ctx, fmt.Sprintf("k%d", i), p, t0.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, 3, s.Len())

	// full and nothing expired: the entry closest to reset (k0) goes
	_, _, _ = s.Hit(ctx, "k3", p, t0.Add(5*time.Second))
	assert.Equal(t, 3, s.Len())

	e, ok, _ := s.Hit(ctx, "k1", p, t0.Add(6*time.Second))
	assert.True(t, ok)
	assert.Equal(t, 2, e.Count, "k1 survived eviction")

	e, _, _ = s.Hit(ctx, "k0", p, t0.Add(7*time.Second))
	assert.Equal(t, 1, e.Count, "k0 was evicted and starts over")
}

func TestMemoryStoreSweepsExpiredFirst(t *testing.T) {
	t.Parallel()
	s := ratelimit.NewMemoryStore(2)
	ctx := context.Background()
	short := ratelimit.Policy{Window: time.Second, Max: 5}
	long := ratelimit.Policy{Window: time.Hour, Max: 5}

	_, _, _ = s.Hit(ctx, "old", short, t0)
	_, _, _ = s.Hit(ctx, "keep", long, t0)
	_, _, _ = s.Hit(ctx, "keep", long, t0)

	_, _, _ = s.Hit(ctx, "new", long, t0.Add(time.Minute))
	assert.Equal(t, 2, s.Len())

	e, _, _ := s.Hit(ctx, "keep", long, t0.Add(time.Minute))
	assert.Equal(t, 3, e.Count)
}

func TestMemoryStoreReplacesStaleEntry(t *testing.T) {
	t.Parallel()
	s := ratelimit.NewMemoryStore(0)
	ctx := context.Background()
	p := ratelimit.Policy{Window: time.Minute, Max: 1}

	_, ok, _ := s.Hit(ctx, "k", p, t0)
	require.True(t, ok)
	_, ok, _ = s.Hit(ctx, "k", p, t0.Add(30*time.Second))
	require.False(t, ok)

	e, ok, _ := s.Hit(ctx, "k", p, t0.Add(2*time.Minute))
	assert.True(t, ok)
	assert.Equal(t, ratelimit.Entry{Count: 1, ResetAt: t0.Add(3 * time.Minute)}, e)
}
