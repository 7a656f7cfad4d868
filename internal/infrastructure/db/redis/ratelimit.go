package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const rateLimitOpTimeout = 250 * time.Millisecond

// RateLimitStore is a fixed-window request counter shared by every replica.
// It satisfies echo's middleware.RateLimiterStore.
// Key format: ratelimit:<identifier>:<window_index>
type RateLimitStore struct {
	client *redis.Client
	limit  int64
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

// NewRateLimitStore allows limit requests per identifier in each window.
func NewRateLimitStore(client *redis.Client, limit int, window time.Duration, log zerolog.Logger) *RateLimitStore {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimitStore{
		client: client,
		limit:  int64(limit),
		window: window,
		log:    log,
		now:    time.Now,
	}
}

// Allow counts the request against the current window. Redis failures fail
// open so an unavailable counter never takes the API down with it.
func (s *RateLimitStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rateLimitOpTimeout)
	defer cancel()

	key := s.key(identifier, s.now())

	var count *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.window)
		return nil
	})
	if err != nil {
		s.log.Warn().Err(err).Str("identifier", identifier).Msg("rate limit check failed, allowing request")
		return true, nil
	}

	return count.Val() <= s.limit, nil
}

func (s *RateLimitStore) key(identifier string, at time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", identifier, at.UnixNano()/int64(s.window))
}
