package chat

import "context"

// Store is the durable source of truth for conversations and messages.
type Store interface {
	CreateConversation(ctx context.Context) (*Conversation, error)
	ConversationExists(ctx context.Context, conversationID string) (bool, error)
	CreateMessage(ctx context.Context, conversationID string, sender Sender, text string) (*Message, error)
	// RecentMessages returns at most limit messages, oldest-first.
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]Turn, error)
	// MessagesAsc returns the full history ordered ascending by creation time.
	MessagesAsc(ctx context.Context, conversationID string) ([]Message, error)
	// ListConversations returns all conversations newest-created first.
	ListConversations(ctx context.Context) ([]ConversationSummary, error)
}

// HistoryCache keeps a bounded, non-authoritative tail of each conversation.
// Both operations are best-effort: Append never reports failure to the
// caller and ReadRecent signals any failure as an empty result.
type HistoryCache interface {
	Append(ctx context.Context, conversationID string, sender Sender, text string)
	// ReadRecent returns the cached tail oldest-first, or nil when the cache
	// is empty, unreachable, or holds malformed entries.
	ReadRecent(ctx context.Context, conversationID string) []Turn
}

// ReplyGenerator produces an assistant reply from resolved history plus the
// new user message. Provider failures are returned as errors; the
// orchestrator owns the fallback policy.
type ReplyGenerator interface {
	Generate(ctx context.Context, history []Turn, userMessage string) (string, error)
}
