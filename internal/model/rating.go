package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a 1-5 review a company leaves for a candidate on a settled escrow.
// A repeat submission for the same (company, candidate, escrow) triple overwrites
// the previous one instead of duplicating.
type Rating struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_triple" json:"companyId"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_triple" json:"candidateId"`
	EscrowID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_triple" json:"escrowId"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (r *Rating) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
