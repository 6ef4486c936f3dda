// Package auth provides the login endpoint. There is no credential check:
// login is a lookup-or-create by username, matching the marketplace onboarding
// flow where identity comes from the connected wallet.
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/utilities"
)

// AuthController handles login related endpoints
type AuthController struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewAuthController creates a new instance of AuthController with the provided database connection.
func NewAuthController(db *database.DBinstanceStruct, log *zap.Logger) *AuthController {
	return &AuthController{DB: db, Log: log}
}

type loginInfo struct {
	Username      string `json:"username" binding:"required"`
	WalletAddress string `json:"walletAddress"`
	Role          string `json:"role" binding:"required,oneof=company candidate"`
}

// LoginHandler looks up a user by username and creates one when absent.
// @Summary Login or register by username
// @Description Returns the existing user for the username, creating a fresh account when none exists. A wallet address provided on re-login replaces the stored one.
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "role can be only 'company' or 'candidate'"
// @Success 200 {object} model.User "Existing or newly created user"
// @Failure 400 {object} utilities.ErrorResponse "Username or role missing"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (a *AuthController) LoginHandler(c *gin.Context) {
	var info loginInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Username and role are required"})
		return
	}

	var user model.User
	err := a.DB.Where("username = ?", info.Username).First(&user).Error
	switch {
	case err == nil:
		if info.WalletAddress != "" {
			user.WalletAddress = &info.WalletAddress
			if err := a.DB.Save(&user).Error; err != nil {
				a.Log.Error("failed to update wallet address", zap.Error(err))
				c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update user"})
				return
			}
		}
		c.JSON(http.StatusOK, user)

	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{
			Name:      info.Username,
			Username:  info.Username,
			Role:      info.Role,
			KYCStatus: model.KYCStatusPending,
		}
		if info.WalletAddress != "" {
			user.WalletAddress = &info.WalletAddress
		}
		if err := a.DB.Create(&user).Error; err != nil {
			a.Log.Error("failed to create user on login", zap.Error(err))
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create user"})
			return
		}
		c.JSON(http.StatusOK, user)

	default:
		a.Log.Error("login lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to look up user"})
	}
}
