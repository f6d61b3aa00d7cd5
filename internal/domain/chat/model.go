package chat

import "time"

// Sender identifies which side of a conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Turn is the minimal {sender, text} pair exchanged with the cache and the
// reply generator. It deliberately omits timestamps: the cached tail has no
// authoritative ordering of its own beyond list position.
type Turn struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Message is a durably persisted conversation message.
type Message struct {
	Sender    Sender
	Text      string
	CreatedAt time.Time
}

// Conversation is a durable, identifier-addressed thread of messages.
// The ID doubles as the client-held session identifier.
type Conversation struct {
	ID        string
	CreatedAt time.Time
}

// ConversationSummary is a listing row. Title is the earliest user message
// of the conversation and nil while none exists yet.
type ConversationSummary struct {
	ID        string
	Title     *string
	CreatedAt time.Time
}

// TurnResult is the outcome of one user turn through the orchestrator.
// Fallback marks a degraded turn: reply generation failed and the fixed
// apology was substituted and persisted instead.
type TurnResult struct {
	Reply     string
	SessionID string
	Fallback  bool
}
