// Package user provides HTTP handlers for user listing, the points
// leaderboard and KYC status updates.
package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/utilities"
)

const leaderboardSize = 50

// UserController handles user related endpoints
type UserController struct {
	DB    *database.DBinstanceStruct
	Redis *database.RedisClient
	Log   *zap.Logger
}

// NewUserController creates a new instance of UserController
func NewUserController(db *database.DBinstanceStruct, rdb *database.RedisClient, log *zap.Logger) *UserController {
	return &UserController{DB: db, Redis: rdb, Log: log}
}

// GetUsers lists every user in the public projection.
// @Summary List users
// @Tags User
// @Produce json
// @Success 200 {array} model.PublicUser
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users [get]
func (uc *UserController) GetUsers(c *gin.Context) {
	users := []model.User{}
	if err := uc.DB.Find(&users).Error; err != nil {
		uc.Log.Error("failed to fetch users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch users"})
		return
	}

	public := make([]model.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].ToPublic())
	}
	c.JSON(http.StatusOK, public)
}

// GetLeaderboard returns users ordered by points, highest first. The ordering
// comes from the redis sorted set when available and falls back to the
// database otherwise.
// @Summary Points leaderboard
// @Tags User
// @Produce json
// @Success 200 {array} model.PublicUser
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /leaderboard [get]
func (uc *UserController) GetLeaderboard(c *gin.Context) {
	entries, err := uc.Redis.TopUsers(c.Request.Context(), leaderboardSize)
	if err == nil && len(entries) > 0 {
		ids := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			id, err := uuid.Parse(e.UserID)
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}

		users := []model.User{}
		if err := uc.DB.Where("id IN ?", ids).Find(&users).Error; err == nil {
			byID := make(map[uuid.UUID]model.User, len(users))
			for i := range users {
				byID[users[i].ID] = users[i]
			}

			public := make([]model.PublicUser, 0, len(ids))
			for _, id := range ids {
				if u, ok := byID[id]; ok {
					public = append(public, u.ToPublic())
				}
			}
			c.JSON(http.StatusOK, public)
			return
		}
	}

	// cache miss or redis unavailable
	users := []model.User{}
	if err := uc.DB.Order("points_balance DESC").Limit(leaderboardSize).Find(&users).Error; err != nil {
		uc.Log.Error("failed to fetch leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch leaderboard"})
		return
	}

	public := make([]model.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].ToPublic())
	}
	c.JSON(http.StatusOK, public)
}

type kycRequest struct {
	UserID    string `json:"userId"`
	KYCStatus string `json:"kycStatus"`
}

// UpdateKYCHandler sets a user's KYC status, defaulting to verified.
// @Summary Update KYC status
// @Tags User
// @Accept json
// @Produce json
// @Param body body kycRequest true "User id and optional status"
// @Success 200 {object} model.User
// @Failure 400 {object} utilities.ErrorResponse "Missing user id or unknown status"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/kyc [patch]
func (uc *UserController) UpdateKYCHandler(c *gin.Context) {
	var req kycRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing user id"})
		return
	}
	id, err := utilities.ParseID(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid user id"})
		return
	}

	status := req.KYCStatus
	if status == "" {
		status = model.KYCStatusVerified
	}
	switch status {
	case model.KYCStatusPending, model.KYCStatusVerified, model.KYCStatusRejected:
	default:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Unknown KYC status"})
		return
	}

	var user model.User
	if err := uc.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
			return
		}
		uc.Log.Error("failed to fetch user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch user"})
		return
	}

	user.KYCStatus = status
	if err := uc.DB.Save(&user).Error; err != nil {
		uc.Log.Error("failed to update KYC status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
