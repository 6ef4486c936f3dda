package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Job is gorm model for store job posting data in DB. Jobs are immutable once
// posted, only the applicants counter moves.
type Job struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"type:text;not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Company     string         `gorm:"type:text" json:"company"`
	Location    string         `gorm:"type:text;not null" json:"location"`
	Salary      string         `gorm:"type:text" json:"salary"`
	JobType     string         `gorm:"type:text;default:'full-time'" json:"jobType"`
	Skills      pq.StringArray `gorm:"type:text[]" json:"skills"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"createdBy"`
	Creator   User      `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`

	Applicants int       `gorm:"default:0" json:"applicants"`
	CreatedAt  time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
