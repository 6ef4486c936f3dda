// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
var (
	RoleCompany   = "company"
	RoleCandidate = "candidate"
)

// KYC status values
var (
	KYCStatusPending  = "pending"
	KYCStatusVerified = "verified"
	KYCStatusRejected = "rejected"
)

// User represents a marketplace account. Accounts are created on first login by
// username and are never deleted.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:text" json:"name"`
	Username      string    `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Role          string    `gorm:"type:text;not null" json:"role"`
	WalletAddress *string   `gorm:"type:text" json:"walletAddress"`
	Rating        float64   `gorm:"type:numeric;default:0" json:"rating"`
	PointsBalance int       `gorm:"default:0" json:"pointsBalance"`
	SBTBalance    int       `gorm:"column:sbt_balance;default:0" json:"sbtBalance"`
	KYCStatus     string    `gorm:"column:kyc_status;type:text;default:'pending'" json:"kycStatus"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// BeforeCreate assigns a fresh id when the caller did not set one.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicUser is the projection of User exposed by the user listing endpoints.
type PublicUser struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Rating        float64   `json:"rating"`
	PointsBalance int       `json:"pointsBalance"`
}

// ToPublic strips fields that are not meant to leave the service.
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Role:          u.Role,
		Rating:        u.Rating,
		PointsBalance: u.PointsBalance,
	}
}
