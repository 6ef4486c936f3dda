package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ApplicationStatusPending indicates that the application is pending review
	ApplicationStatusPending = "pending"
	// ApplicationStatusAccepted indicates that the company accepted the application
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
)

// Resume holds the uploaded resume file inline with the application record.
type Resume struct {
	FileName string `gorm:"type:text" json:"fileName"`
	FileData string `gorm:"type:text" json:"fileData"`
	FileType string `gorm:"type:text" json:"fileType"`
}

// ApplicationDetails carries the candidate contact info and cover letter.
type ApplicationDetails struct {
	Email       string `gorm:"type:text" json:"email"`
	Phone       string `gorm:"type:text" json:"phone"`
	CoverLetter string `gorm:"type:text" json:"coverLetter"`
}

// Application represents a job application record
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	JobID uuid.UUID `gorm:"type:uuid;not null;index" json:"jobId"`
	Job   Job       `gorm:"foreignKey:JobID;references:ID" json:"-"`

	CandidateID   uuid.UUID `gorm:"type:uuid;not null;index" json:"candidateId"`
	Candidate     User      `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	CandidateName string    `gorm:"type:text" json:"candidateName"`

	Resume  Resume             `gorm:"embedded;embeddedPrefix:resume_" json:"resume"`
	Details ApplicationDetails `gorm:"embedded;embeddedPrefix:details_" json:"details"`

	Status string `gorm:"type:text;default:'pending'" json:"status"`

	EscrowContractID   *uuid.UUID `gorm:"type:uuid" json:"escrowContractId"`
	ContractAccepted   bool       `gorm:"default:false" json:"contractAccepted"`
	ContractAcceptedAt *time.Time `gorm:"type:timestamp" json:"contractAcceptedAt"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
