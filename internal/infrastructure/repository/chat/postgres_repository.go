package chat

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "supportchat/internal/domain/chat"
	"supportchat/internal/infrastructure/database/entities"
	"supportchat/internal/infrastructure/metrics"
	"supportchat/internal/utils/idgen"
)

// PostgresRepository persists conversations and messages via PostgreSQL
// using GORM. It is the source of truth: the cache only ever reflects a
// subset of what lives here.
type PostgresRepository struct {
	db *gorm.DB
}

var _ domain.Store = (*PostgresRepository)(nil)

// NewPostgresRepository creates a repository backed by the provided DB.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateConversation inserts a conversation row with a freshly generated
// identifier and returns it with the store-assigned creation time.
func (r *PostgresRepository) CreateConversation(ctx context.Context) (*domain.Conversation, error) {
	id, err := idgen.ConversationID()
	if err != nil {
		return nil, fmt.Errorf("generate conversation id: %w", err)
	}

	record := entities.Conversation{ID: id}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	metrics.RecordConversationCreated()
	return &domain.Conversation{ID: record.ID, CreatedAt: record.CreatedAt}, nil
}

func (r *PostgresRepository) ConversationExists(ctx context.Context, conversationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Conversation{}).
		Where("id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count conversation: %w", err)
	}
	return count > 0, nil
}

// CreateMessage appends one message row. Each insert is an independent
// atomic write; ordering within a conversation comes from the
// store-assigned creation timestamps.
func (r *PostgresRepository) CreateMessage(ctx context.Context, conversationID string, sender domain.Sender, text string) (*domain.Message, error) {
	record := entities.Message{
		ConversationID: conversationID,
		Sender:         string(sender),
		Text:           text,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	return &domain.Message{
		Sender:    domain.Sender(record.Sender),
		Text:      record.Text,
		CreatedAt: record.CreatedAt,
	}, nil
}

// RecentMessages fetches the limit most recent messages descending by
// creation time and reverses them to oldest-first.
func (r *PostgresRepository) RecentMessages(ctx context.Context, conversationID string, limit int) ([]domain.Turn, error) {
	var records []entities.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("fetch recent messages: %w", err)
	}

	return turnsOldestFirst(records), nil
}

// turnsOldestFirst reverses a newest-first record set into oldest-first
// turns.
func turnsOldestFirst(records []entities.Message) []domain.Turn {
	turns := make([]domain.Turn, len(records))
	for i, record := range records {
		turns[len(records)-1-i] = domain.Turn{
			Sender: domain.Sender(record.Sender),
			Text:   record.Text,
		}
	}
	return turns
}

func (r *PostgresRepository) MessagesAsc(ctx context.Context, conversationID string) ([]domain.Message, error) {
	var records []entities.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("fetch message history: %w", err)
	}

	messages := make([]domain.Message, len(records))
	for i, record := range records {
		messages[i] = domain.Message{
			Sender:    domain.Sender(record.Sender),
			Text:      record.Text,
			CreatedAt: record.CreatedAt,
		}
	}
	return messages, nil
}

type conversationListRow struct {
	ID        string
	Title     *string
	CreatedAt time.Time
}

// ListConversations returns all conversations newest-created first. The
// title is the earliest user message of each conversation, null while the
// conversation has none.
func (r *PostgresRepository) ListConversations(ctx context.Context) ([]domain.ConversationSummary, error) {
	var rows []conversationListRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id, c.created_at, m.text AS title
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT text
			FROM messages
			WHERE conversation_id = c.id AND sender = 'user'
			ORDER BY created_at ASC, id ASC
			LIMIT 1
		) m ON true
		ORDER BY c.created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	summaries := make([]domain.ConversationSummary, len(rows))
	for i, row := range rows {
		summaries[i] = domain.ConversationSummary{
			ID:        row.ID,
			Title:     row.Title,
			CreatedAt: row.CreatedAt,
		}
	}
	return summaries, nil
}
