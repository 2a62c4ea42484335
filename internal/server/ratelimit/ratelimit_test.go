package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(cfg *Config) (*Limiter, *time.Time) {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_ChatBurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 6, 2))

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("1.2.3.4", "/chat", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 6, info.Limit)
	}

	allowed, info := l.Allow("1.2.3.4", "/chat", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, (10 * time.Second).Seconds(), info.RetryAfter.Seconds(), 0.01)
	assert.True(t, info.ResetTime.After(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestLimiter_Refill(t *testing.T) {
	l, now := newTestLimiter(NewConfig(true, 6, 1))

	allowed, _ := l.Allow("c", "/chat", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/chat", "POST")
	require.False(t, allowed)

	*now = now.Add(10 * time.Second)
	allowed, _ = l.Allow("c", "/chat", "POST")
	assert.True(t, allowed, "one token per 10s at 6/min")
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 1, 1))

	allowed, _ := l.Allow("a", "/chat", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/chat", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/chat", "POST")
	assert.True(t, allowed)
}

func TestLimiter_DefaultBucketSharedAcrossPaths(t *testing.T) {
	cfg := NewConfig(true, 1, 1)
	cfg.DefaultLimit = 2
	l, _ := newTestLimiter(cfg)

	allowed, _ := l.Allow("c", "/document/sections/s1/items/a", "DELETE")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/document/sections/s2/items/b", "DELETE")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/document/sections/s3/items/c", "DELETE")
	assert.False(t, allowed, "distinct ids draw from one default budget")
	assert.Equal(t, 1, l.Size(), "one bucket per client, not per path")

	allowed, _ = l.Allow("other", "/document", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 2, l.Size())
}

func TestLimiter_DefaultAndUnlimited(t *testing.T) {
	cfg := NewConfig(true, 1, 1)
	cfg.DefaultLimit = 2
	l, _ := newTestLimiter(cfg)

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("c", "/document", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("c", "/document", "GET")
	assert.False(t, allowed)

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_DisabledAndWhitelist(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(false, 1, 1))
	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/chat", "POST")
		assert.True(t, allowed)
	}

	cfg := NewConfig(true, 1, 1)
	cfg.Whitelist["127.0.0.1"] = true
	l, _ = newTestLimiter(cfg)
	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/chat", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 60, 10))

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/chat", "POST"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowedCount)
}

func TestLimiter_Cleanup(t *testing.T) {
	l, now := newTestLimiter(NewConfig(true, 10, 1))

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/chat", "POST")
	}
	assert.Equal(t, 3, l.Size())

	*now = now.Add(2 * time.Hour)
	l.Allow("fresh", "/chat", "POST")
	l.cleanupBuckets()

	assert.Equal(t, 1, l.Size())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Route: "POST /chat", Limit: 1},
		{Route: "PUT /document/", Limit: 2},
		{Route: "PUT /document/sections/", Limit: 3},
		{Route: "PUT /document/template", Limit: 4},
	}

	assert.Equal(t, 1, MatchEndpoint("POST", "/chat", configs).Limit)
	assert.Nil(t, MatchEndpoint("GET", "/chat", configs))
	assert.Equal(t, 2, MatchEndpoint("PUT", "/document/theme", configs).Limit)
	assert.Equal(t, 3, MatchEndpoint("PUT", "/document/sections/s1/title", configs).Limit, "longest prefix wins")
	assert.Equal(t, 4, MatchEndpoint("PUT", "/document/template", configs).Limit, "exact route wins")
	assert.Equal(t, 0, MatchEndpoint("GET", "/health", configs).Limit)
	assert.Equal(t, 0, MatchEndpoint("GET", "/preview/stream", configs).Limit)
}

func TestAllow_PrefixRouteSharesBucket(t *testing.T) {
	cfg := NewConfig(true, 10, 3)
	cfg.EndpointConfigs = []EndpointConfig{{Route: "PUT /document/", Limit: 2, Window: time.Minute, Burst: 2}}
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("c", "/document/template", "PUT")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/document/theme", "PUT")
	assert.True(t, allowed)
	allowed, _ = l.Allow("c", "/document/personal/email", "PUT")
	assert.False(t, allowed, "all edits below the prefix draw from one bucket")
}
