// Package application provides HTTP handlers for job application operations.
package application

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct, log *zap.Logger) *ApplicationController {
	return &ApplicationController{DB: db, Log: log}
}

// GetApplications lists applications, optionally filtered by job or candidate.
// @Summary List applications
// @Tags Application
// @Produce json
// @Param jobId query string false "Filter by job id"
// @Param candidateId query string false "Filter by candidate id"
// @Success 200 {array} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Malformed filter id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
func (ac *ApplicationController) GetApplications(c *gin.Context) {
	jobID, err := utilities.ParseID(c.Query("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid jobId"})
		return
	}
	candidateID, err := utilities.ParseID(c.Query("candidateId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid candidateId"})
		return
	}

	query := ac.DB.Order("created_at DESC")
	if jobID != uuid.Nil {
		query = query.Where("job_id = ?", jobID)
	}
	if candidateID != uuid.Nil {
		query = query.Where("candidate_id = ?", candidateID)
	}

	applications := []model.Application{}
	if err := query.Find(&applications).Error; err != nil {
		ac.Log.Error("failed to fetch applications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, applications)
}

type createApplicationRequest struct {
	JobID         string                   `json:"jobId"`
	CandidateID   string                   `json:"candidateId"`
	CandidateName string                   `json:"candidateName"`
	Resume        model.Resume             `json:"resume"`
	Details       model.ApplicationDetails `json:"details"`
	Status        string                   `json:"status"`
}

// CreateApplicationHandler records a candidate's application to a job.
// @Summary Create application
// @Tags Application
// @Accept json
// @Produce json
// @Param application body createApplicationRequest true "Application information"
// @Success 201 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Missing jobId or candidateId"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [post]
func (ac *ApplicationController) CreateApplicationHandler(c *gin.Context) {
	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.JobID == "" || req.CandidateID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields"})
		return
	}

	jobID, err := utilities.ParseID(req.JobID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid jobId"})
		return
	}
	candidateID, err := utilities.ParseID(req.CandidateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid candidateId"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.ApplicationStatusPending
	}

	application := model.Application{
		JobID:         jobID,
		CandidateID:   candidateID,
		CandidateName: req.CandidateName,
		Resume:        req.Resume,
		Details:       req.Details,
		Status:        status,
	}

	// The applicants counter on the job moves with the insert so the two
	// never drift.
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&application).Error; err != nil {
			return err
		}
		return tx.Model(&model.Job{}).
			Where("id = ?", jobID).
			UpdateColumn("applicants", gorm.Expr("applicants + 1")).Error
	})
	if err != nil {
		ac.Log.Error("failed to create application", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create application"})
		return
	}

	c.JSON(http.StatusCreated, application)
}

type updateApplicationRequest struct {
	ID                 string     `json:"id"`
	Status             string     `json:"status"`
	EscrowContractID   string     `json:"escrowContractId"`
	ContractAccepted   *bool      `json:"contractAccepted"`
	ContractAcceptedAt *time.Time `json:"contractAcceptedAt"`
}

// UpdateApplicationHandler applies partial updates to an application.
// Fields absent from the body are left untouched.
// @Summary Update application
// @Tags Application
// @Accept json
// @Produce json
// @Param application body updateApplicationRequest true "Fields to update"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Missing application id"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [put]
func (ac *ApplicationController) UpdateApplicationHandler(c *gin.Context) {
	var req updateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.ID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing application id"})
		return
	}
	id, err := utilities.ParseID(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return
	}

	var application model.Application
	if err := ac.DB.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		ac.Log.Error("failed to fetch application", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch application"})
		return
	}

	if req.Status != "" {
		application.Status = req.Status
	}
	if req.EscrowContractID != "" {
		escrowID, err := utilities.ParseID(req.EscrowContractID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid escrowContractId"})
			return
		}
		application.EscrowContractID = &escrowID
	}
	if req.ContractAccepted != nil {
		application.ContractAccepted = *req.ContractAccepted
	}
	if req.ContractAcceptedAt != nil {
		application.ContractAcceptedAt = req.ContractAcceptedAt
	}

	if err := ac.DB.Save(&application).Error; err != nil {
		ac.Log.Error("failed to update application", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update application"})
		return
	}

	c.JSON(http.StatusOK, application)
}
