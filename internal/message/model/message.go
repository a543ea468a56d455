package model

import (
	"time"

	chatModel "chatline/internal/chat/model"

	"github.com/google/uuid"
)

// Message is immutable once written.
type Message struct {
	ID             uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`
	ConversationID uuid.UUID `bun:",type:uuid,notnull"`
	SenderID       uuid.UUID `bun:",type:uuid,notnull"`
	Text           string    `bun:",notnull"`

	// Assigned by the database on insert
	Timestamp time.Time `bun:"timestamp,nullzero,notnull,default:current_timestamp"`

	Conversation *chatModel.Conversation `bun:"rel:belongs-to,join:conversation_id=id"`
}

func (m *Message) IsOutgoing(self uuid.UUID) bool {
	return m.SenderID == self
}
