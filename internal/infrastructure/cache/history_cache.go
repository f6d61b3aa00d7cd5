package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	domain "supportchat/internal/domain/chat"
	"supportchat/internal/infrastructure/metrics"
)

// RedisHistoryCache keeps a bounded most-recent-first list of serialized
// {sender, text} entries per conversation. It is a derived, disposable view:
// any failure here degrades to a cache miss, never to a request failure.
type RedisHistoryCache struct {
	client    *redis.Client
	keyPrefix string
	limit     int
	opTimeout time.Duration
	log       zerolog.Logger
}

var _ domain.HistoryCache = (*RedisHistoryCache)(nil)

type cacheEntry struct {
	Sender domain.Sender `json:"sender"`
	Text   string        `json:"text"`
}

// NewRedisHistoryCache connects to Redis and verifies the connection before
// handing the cache out. limit bounds the per-conversation tail.
func NewRedisHistoryCache(redisURL, keyPrefix string, limit int, opTimeout time.Duration, log zerolog.Logger) (*RedisHistoryCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisHistoryCache{
		client:    client,
		keyPrefix: keyPrefix,
		limit:     limit,
		opTimeout: opTimeout,
		log:       log.With().Str("component", "history-cache").Logger(),
	}, nil
}

func (c *RedisHistoryCache) key(conversationID string) string {
	return c.keyPrefix + conversationID
}

// Append prepends the entry and trims the list to the configured bound. The
// push and trim run in one pipeline so the list never grows past the limit
// across concurrent appends. Failures are logged and swallowed.
func (c *RedisHistoryCache) Append(ctx context.Context, conversationID string, sender domain.Sender, text string) {
	payload, err := json.Marshal(cacheEntry{Sender: sender, Text: text})
	if err != nil {
		c.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("serialize cache entry")
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	pipe := c.client.TxPipeline()
	pipe.LPush(opCtx, c.key(conversationID), payload)
	pipe.LTrim(opCtx, c.key(conversationID), 0, int64(c.limit-1))
	if _, err := pipe.Exec(opCtx); err != nil {
		c.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("cache append failed")
	}
}

// ReadRecent returns the cached tail oldest-first. Connectivity errors and
// malformed entries both come back as nil: the caller cannot and should not
// distinguish a broken cache from an empty one.
func (c *RedisHistoryCache) ReadRecent(ctx context.Context, conversationID string) []domain.Turn {
	opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	payloads, err := c.client.LRange(opCtx, c.key(conversationID), 0, -1).Result()
	if err != nil {
		c.log.Warn().Err(err).Str("conversation_id", conversationID).
			Msg("cache read failed, falling back to store")
		metrics.RecordCacheMiss()
		return nil
	}

	turns, err := decodeTurns(payloads)
	if err != nil {
		c.log.Warn().Err(err).Str("conversation_id", conversationID).
			Msg("malformed cache entry, falling back to store")
		metrics.RecordCacheMiss()
		return nil
	}

	if len(turns) == 0 {
		metrics.RecordCacheMiss()
		return nil
	}
	metrics.RecordCacheHit()
	return turns
}

// Close releases the Redis connection.
func (c *RedisHistoryCache) Close() error {
	return c.client.Close()
}

// HealthCheck pings Redis.
func (c *RedisHistoryCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// decodeTurns deserializes a most-recent-first list of payloads and reverses
// it to oldest-first.
func decodeTurns(payloads []string) ([]domain.Turn, error) {
	turns := make([]domain.Turn, len(payloads))
	for i, payload := range payloads {
		var entry cacheEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("decode cache entry: %w", err)
		}
		turns[len(payloads)-1-i] = domain.Turn{Sender: entry.Sender, Text: entry.Text}
	}
	return turns, nil
}
