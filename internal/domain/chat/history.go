package chat

import (
	"context"

	"github.com/rs/zerolog"
)

// HistoryResolver answers "what are the most recent turns of this
// conversation" with a read-through pattern: the cache is authoritative when
// it has anything, the durable store covers misses and failures. There is no
// write-back on fallback; the cache heals through the orchestrator's appends
// on the next turn.
type HistoryResolver struct {
	store Store
	cache HistoryCache
	limit int
	log   zerolog.Logger
}

func NewHistoryResolver(store Store, cache HistoryCache, limit int, log zerolog.Logger) *HistoryResolver {
	return &HistoryResolver{
		store: store,
		cache: cache,
		limit: limit,
		log:   log.With().Str("component", "history-resolver").Logger(),
	}
}

// Resolve returns at most limit turns, oldest-first. A brand-new
// conversation yields an empty slice, not an error. A cache failure is
// indistinguishable from a cache miss by design.
func (r *HistoryResolver) Resolve(ctx context.Context, conversationID string) ([]Turn, error) {
	if cached := r.cache.ReadRecent(ctx, conversationID); len(cached) > 0 {
		return cached, nil
	}

	turns, err := r.store.RecentMessages(ctx, conversationID, r.limit)
	if err != nil {
		return nil, err
	}
	r.log.Debug().Str("conversation_id", conversationID).Int("count", len(turns)).
		Msg("history served from durable store")
	return turns, nil
}
