package entities

import "time"

// Conversation models the persisted conversation row. The ID is the opaque
// session identifier handed to clients.
type Conversation struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Conversation) TableName() string {
	return "conversations"
}
