package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Connection links two users in the network graph. Creation deduplicates in
// either direction, so (a, b) and (b, a) are the same connection.
type Connection struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	ConnectedUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"connectedUserId"`

	Status    string    `gorm:"type:text;default:'connected'" json:"status"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (c *Connection) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
