package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-hint/internal/config"
)

var Log = logrus.New()

type Limiter interface {
	// Allow reports whether one more request identified by key fits in the
	// current window.
	Allow(ctx context.Context, key string) bool
}

type noop struct{}

func (noop) Allow(context.Context, string) bool { return true }

// Noop never limits.
var Noop Limiter = noop{}

// Redis is a fixed-window limiter backed by INCR/EXPIRE. Errors talking to
// redis let the request through.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	return &Redis{client: client, limit: limit, window: window}
}

func (l *Redis) key(ident string) string {
	return "rl:" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + ident
}

func (l *Redis) Allow(ctx context.Context, ident string) bool {
	key := l.key(ident)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		Log.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
		return true
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			Log.WithError(err).WithField("key", key).Warn("unable to set rate limit expiry")
		}
	}
	return n <= int64(l.limit)
}

// FromConfig connects to redis when it is configured and falls back to Noop
// otherwise, or when the server does not answer a ping.
func FromConfig(ctx context.Context, r *config.Redis, hints config.Hints) (Limiter, func() error) {
	if r == nil {
		Log.Info("no redis configured, hint rate limiting disabled")
		return Noop, func() error { return nil }
	}
	client := redis.NewClient(&redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		Log.WithError(err).WithField("addr", r.Addr).Warn("redis ping failed, hint rate limiting disabled")
		client.Close()
		return Noop, func() error { return nil }
	}
	return NewRedis(client, hints.Limit, hints.Window), client.Close
}
