// Package rating provides HTTP handlers for the post-contract rating exchange.
package rating

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

// RatingController handles rating related endpoints
type RatingController struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewRatingController creates a new instance of RatingController
func NewRatingController(db *database.DBinstanceStruct, log *zap.Logger) *RatingController {
	return &RatingController{DB: db, Log: log}
}

// GetRatings lists ratings, optionally filtered by company or candidate.
// @Summary List ratings
// @Tags Rating
// @Produce json
// @Param companyId query string false "Filter by company id"
// @Param candidateId query string false "Filter by candidate id"
// @Success 200 {array} model.Rating
// @Failure 400 {object} utilities.ErrorResponse "Malformed filter id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ratings [get]
func (rc *RatingController) GetRatings(c *gin.Context) {
	companyID, err := utilities.ParseID(c.Query("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid companyId"})
		return
	}
	candidateID, err := utilities.ParseID(c.Query("candidateId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid candidateId"})
		return
	}

	query := rc.DB.Order("created_at DESC")
	if companyID != uuid.Nil {
		query = query.Where("company_id = ?", companyID)
	}
	if candidateID != uuid.Nil {
		query = query.Where("candidate_id = ?", candidateID)
	}

	ratings := []model.Rating{}
	if err := query.Find(&ratings).Error; err != nil {
		rc.Log.Error("failed to fetch ratings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch ratings"})
		return
	}
	c.JSON(http.StatusOK, ratings)
}

type createRatingRequest struct {
	CompanyID   string `json:"companyId"`
	CandidateID string `json:"candidateId"`
	EscrowID    string `json:"escrowId"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// CreateRatingHandler upserts a rating: a repeat submission for the same
// (company, candidate, escrow) triple overwrites the stored value instead of
// duplicating. The candidate's average rating is recomputed in the same
// transaction.
// @Summary Create or overwrite rating
// @Tags Rating
// @Accept json
// @Produce json
// @Param rating body createRatingRequest true "Rating of 1-5 with optional comment"
// @Success 200 {object} model.Rating "Existing rating overwritten"
// @Success 201 {object} model.Rating "New rating"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields or rating out of range"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ratings [post]
func (rc *RatingController) CreateRatingHandler(c *gin.Context) {
	var req createRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.CompanyID == "" || req.CandidateID == "" || req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields or invalid rating"})
		return
	}

	companyID, err := utilities.ParseID(req.CompanyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid companyId"})
		return
	}
	candidateID, err := utilities.ParseID(req.CandidateID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid candidateId"})
		return
	}
	escrowID, err := utilities.ParseID(req.EscrowID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid escrowId"})
		return
	}

	var (
		rating   model.Rating
		existing bool
	)

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("company_id = ? AND candidate_id = ? AND escrow_id = ?",
			companyID, candidateID, escrowID).First(&rating).Error
		switch {
		case err == nil:
			existing = true
			rating.Rating = req.Rating
			rating.Comment = req.Comment
			rating.UpdatedAt = time.Now()
			if err := tx.Save(&rating).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating = model.Rating{
				CompanyID:   companyID,
				CandidateID: candidateID,
				EscrowID:    escrowID,
				Rating:      req.Rating,
				Comment:     req.Comment,
			}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return recomputeAverage(tx, candidateID)
	})
	if err != nil {
		rc.Log.Error("failed to save rating", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to save rating"})
		return
	}

	if existing {
		c.JSON(http.StatusOK, rating)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

type updateRatingRequest struct {
	ID      string  `json:"id"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

// UpdateRatingHandler changes an existing rating by id.
// @Summary Update rating
// @Tags Rating
// @Accept json
// @Produce json
// @Param rating body updateRatingRequest true "Rating id with a new 1-5 value"
// @Success 200 {object} model.Rating
// @Failure 400 {object} utilities.ErrorResponse "Missing id or rating out of range"
// @Failure 404 {object} utilities.ErrorResponse "Rating not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ratings [put]
func (rc *RatingController) UpdateRatingHandler(c *gin.Context) {
	var req updateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.ID == "" || req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields or invalid rating"})
		return
	}
	id, err := utilities.ParseID(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid rating id"})
		return
	}

	var rating model.Rating
	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&rating).Error; err != nil {
			return err
		}

		rating.Rating = req.Rating
		if req.Comment != nil {
			rating.Comment = *req.Comment
		}
		rating.UpdatedAt = time.Now()
		if err := tx.Save(&rating).Error; err != nil {
			return err
		}

		return recomputeAverage(tx, rating.CandidateID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Rating not found"})
			return
		}
		rc.Log.Error("failed to update rating", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update rating"})
		return
	}

	c.JSON(http.StatusOK, rating)
}

// recomputeAverage refreshes the candidate's aggregate rating from all stored
// reviews.
func recomputeAverage(tx *gorm.DB, candidateID uuid.UUID) error {
	var avg float64
	if err := tx.Model(&model.Rating{}).
		Where("candidate_id = ?", candidateID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}
	return tx.Model(&model.User{}).
		Where("id = ?", candidateID).
		UpdateColumn("rating", avg).Error
}
