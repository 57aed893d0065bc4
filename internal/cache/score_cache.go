// Package cache keeps computed media average scores in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "mrp:score:"
	genPrefix = "mrp:score:gen:"

	// genTTL outlives any request that read a generation, so an expired counter
	// restarting at 0 cannot revive a stale fill.
	genTTL = 24 * time.Hour
)

// setIfCurrent stores ARGV[2] under KEYS[1] only while the generation in KEYS[2]
// still equals ARGV[1]. A missing counter reads as 0.
var setIfCurrent = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[1] then
  return 0
end
if tonumber(ARGV[3]) > 0 then
  redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
else
  redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`)

// ScoreCache is a best-effort cache: failures are logged and reported as misses.
// A nil *ScoreCache or one without a client is a valid no-op cache.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ScoreCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreCache{client: client, ttl: ttl, logger: logger}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	if !strings.Contains(url, "://") {
		url = "redis://" + url
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (c *ScoreCache) enabled() bool {
	return c != nil && c.client != nil
}

func key(mediaID string) string {
	return keyPrefix + mediaID
}

func genKey(mediaID string) string {
	return genPrefix + mediaID
}

// Get returns the cached score when present. On a miss it returns the media's current
// generation, which the caller hands back to Set after computing the score.
func (c *ScoreCache) Get(ctx context.Context, mediaID string) (float64, int64, bool) {
	if !c.enabled() {
		return 0, 0, false
	}

	var value, gen *redis.StringCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		value = pipe.Get(ctx, key(mediaID))
		gen = pipe.Get(ctx, genKey(mediaID))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("score cache get failed", "media_id", mediaID, "error", err)
		return 0, 0, false
	}

	generation, err := gen.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("score cache holds a bad generation", "media_id", mediaID, "error", err)
	}

	raw, err := value.Result()
	if err != nil {
		return 0, generation, false
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.logger.Warn("score cache holds a bad value", "media_id", mediaID, "value", raw)
		return 0, generation, false
	}
	return score, generation, true
}

// Set stores score unless the media was invalidated after gen was read.
func (c *ScoreCache) Set(ctx context.Context, mediaID string, gen int64, score float64) {
	if !c.enabled() {
		return
	}
	value := strconv.FormatFloat(score, 'f', -1, 64)
	keys := []string{key(mediaID), genKey(mediaID)}
	err := setIfCurrent.Run(ctx, c.client, keys, strconv.FormatInt(gen, 10), value, c.ttl.Milliseconds()).Err()
	if err != nil {
		c.logger.Warn("score cache set failed", "media_id", mediaID, "error", err)
	}
}

// Invalidate drops the cached score after a rating change and bumps the generation,
// so a fill computed before the change is discarded.
func (c *ScoreCache) Invalidate(ctx context.Context, mediaID string) {
	if !c.enabled() {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(mediaID))
		pipe.Expire(ctx, genKey(mediaID), genTTL)
		pipe.Del(ctx, key(mediaID))
		return nil
	})
	if err != nil {
		c.logger.Warn("score cache invalidate failed", "media_id", mediaID, "error", err)
	}
}

func (c *ScoreCache) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.client.Close()
}
