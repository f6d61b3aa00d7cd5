package chatresponses

import (
	"time"

	domain "supportchat/internal/domain/chat"
)

// SendMessageResponse answers POST /chat/message.
type SendMessageResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
}

// HistoryMessage is one row of a conversation history.
type HistoryMessage struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse answers GET /chat/history/:sessionId, ordered ascending
// by creation time.
type HistoryResponse struct {
	SessionID string           `json:"sessionId"`
	Messages  []HistoryMessage `json:"messages"`
}

// ConversationSummaryResponse is one row of GET /chat/conversations.
type ConversationSummaryResponse struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse is the generic error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHistoryResponse maps domain messages onto the wire shape.
func NewHistoryResponse(sessionID string, messages []domain.Message) *HistoryResponse {
	rows := make([]HistoryMessage, len(messages))
	for i, msg := range messages {
		rows[i] = HistoryMessage{
			Sender:    string(msg.Sender),
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		}
	}
	return &HistoryResponse{SessionID: sessionID, Messages: rows}
}

// NewConversationListResponse maps conversation summaries onto the wire shape.
func NewConversationListResponse(summaries []domain.ConversationSummary) []ConversationSummaryResponse {
	rows := make([]ConversationSummaryResponse, len(summaries))
	for i, summary := range summaries {
		rows[i] = ConversationSummaryResponse{
			ID:        summary.ID,
			Title:     summary.Title,
			CreatedAt: summary.CreatedAt,
		}
	}
	return rows
}
