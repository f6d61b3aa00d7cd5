package entities

import "time"

// Message models one persisted message row. Rows are append-only: no
// updates, no deletes.
type Message struct {
	ID             uint      `gorm:"primaryKey"`
	ConversationID string    `gorm:"type:varchar(64);not null;index:idx_messages_conversation_created,priority:1"`
	Sender         string    `gorm:"type:varchar(8);not null"`
	Text           string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_messages_conversation_created,priority:2"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

func (Message) TableName() string {
	return "messages"
}
