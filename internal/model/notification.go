package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types emitted by the contract workflow.
var (
	NotificationEscrowCreated    = "escrow_created"
	NotificationContractAccepted = "contract_accepted"
	NotificationPaymentCompleted = "payment_completed"
)

// Notification is delivered to a recipient's inbox and polled by the client.
type Notification struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SenderID    uuid.UUID `gorm:"type:uuid;not null" json:"senderId"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipientId"`

	Type    string `gorm:"type:text;not null" json:"type"`
	Title   string `gorm:"type:text;not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`

	EscrowID      *uuid.UUID `gorm:"type:uuid" json:"escrowId"`
	ApplicationID *uuid.UUID `gorm:"type:uuid" json:"applicationId"`

	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
