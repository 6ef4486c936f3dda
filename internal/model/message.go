package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a peer-to-peer chat record grouped by conversation id; there is no
// separate conversation entity.
type Message struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ConversationID string `gorm:"type:text;not null;index" json:"conversationId"`

	SenderID    uuid.UUID `gorm:"type:uuid;not null" json:"senderId"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null" json:"recipientId"`

	Body string `gorm:"type:text;not null" json:"message"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"timestamp"`
}

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ConversationID derives the deterministic conversation key for a pair of users:
// the two ids sorted and joined, so both sides compute the same key.
func ConversationID(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	if strings.Compare(ids[0], ids[1]) > 0 {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return ids[0] + ":" + ids[1]
}
