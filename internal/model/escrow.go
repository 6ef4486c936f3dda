package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Escrow contract status
var (
	EscrowStatusActive    = "active"
	EscrowStatusCompleted = "completed"
	EscrowStatusCancelled = "cancelled"
)

// Escrow payment progression
var (
	EscrowPaymentPending   = "pending"
	EscrowPaymentConfirmed = "confirmed"
	EscrowPaymentCompleted = "completed"
)

// Escrow binds a company, a candidate and a monetary amount pending payment
// confirmation. At most one escrow exists per application, enforced by a unique
// index on top of the lookup-before-create guard.
type Escrow struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ApplicationID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"applicationId"`
	Application   Application `gorm:"foreignKey:ApplicationID;references:ID" json:"-"`

	JobID    uuid.UUID `gorm:"type:uuid" json:"jobId"`
	JobTitle string    `gorm:"type:text" json:"jobTitle"`

	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidateId"`

	Amount      string `gorm:"type:text;not null" json:"amount"`
	Currency    string `gorm:"type:text;default:'TON'" json:"currency"`
	Description string `gorm:"type:text" json:"description"`
	Terms       string `gorm:"type:text" json:"terms"`

	StartDate string `gorm:"type:text;not null" json:"startDate"`
	EndDate   string `gorm:"type:text;not null" json:"endDate"`

	Status        string `gorm:"type:text;default:'active'" json:"status"`
	PaymentStatus string `gorm:"type:text;default:'pending'" json:"paymentStatus"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (e *Escrow) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
