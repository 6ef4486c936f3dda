package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment status progression. A payment either walks pending → wallet_requested →
// wallet_received → completed or ends up failed.
var (
	PaymentStatusPending         = "pending"
	PaymentStatusWalletRequested = "wallet_requested"
	PaymentStatusWalletReceived  = "wallet_received"
	PaymentStatusCompleted       = "completed"
	PaymentStatusFailed          = "failed"
)

// Payment tracks the wallet-exchange steps for settling an escrow contract.
type Payment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EscrowID uuid.UUID `gorm:"type:uuid;not null;index" json:"escrowId"`
	Escrow   Escrow    `gorm:"foreignKey:EscrowID;references:ID" json:"-"`

	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidateId"`

	Amount   string `gorm:"type:text;not null" json:"amount"`
	Currency string `gorm:"type:text;default:'TON'" json:"currency"`

	CandidateWalletAddress *string `gorm:"type:text" json:"candidateWalletAddress"`
	TransactionHash        *string `gorm:"type:text" json:"transactionHash"`

	Status string `gorm:"type:text;default:'pending'" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
