package redis

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitStore_KeyIsStableWithinWindow(t *testing.T) {
	s := NewRateLimitStore(nil, 10, time.Minute, zerolog.Nop())

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, s.key("10.0.0.1", start), s.key("10.0.0.1", start.Add(59*time.Second)))
	assert.NotEqual(t, s.key("10.0.0.1", start), s.key("10.0.0.1", start.Add(time.Minute)))
	assert.NotEqual(t, s.key("10.0.0.1", start), s.key("10.0.0.2", start))
}

func TestNewRateLimitStore_DefaultWindow(t *testing.T) {
	s := NewRateLimitStore(nil, 10, 0, zerolog.Nop())
	assert.Equal(t, time.Minute, s.window)
}

func TestRateLimitStore_FailsOpenWhenRedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRateLimitStore(client, 1, time.Minute, zerolog.Nop())

	allowed, err := s.Allow("10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}
