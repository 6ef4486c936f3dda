// Package connection provides HTTP handlers for the user network graph.
package connection

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

// ConnectionController handles connection related endpoints
type ConnectionController struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewConnectionController creates a new instance of ConnectionController
func NewConnectionController(db *database.DBinstanceStruct, log *zap.Logger) *ConnectionController {
	return &ConnectionController{DB: db, Log: log}
}

// GetConnections lists connections, optionally those involving a given user on
// either side.
// @Summary List connections
// @Tags Connection
// @Produce json
// @Param userId query string false "Filter by user on either side"
// @Success 200 {array} model.Connection
// @Failure 400 {object} utilities.ErrorResponse "Malformed filter id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /connections [get]
func (cc *ConnectionController) GetConnections(c *gin.Context) {
	userID, err := utilities.ParseID(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid userId"})
		return
	}

	query := cc.DB.Order("created_at DESC")
	if userID != uuid.Nil {
		query = query.Where("user_id = ? OR connected_user_id = ?", userID, userID)
	}

	connections := []model.Connection{}
	if err := query.Find(&connections).Error; err != nil {
		cc.Log.Error("failed to fetch connections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch connections"})
		return
	}
	c.JSON(http.StatusOK, connections)
}

type createConnectionRequest struct {
	UserID          string `json:"userId"`
	ConnectedUserID string `json:"connectedUserId"`
}

// CreateConnectionHandler links two users. The pair is deduplicated in either
// direction; an existing connection is returned as-is.
// @Summary Create connection
// @Tags Connection
// @Accept json
// @Produce json
// @Param connection body createConnectionRequest true "The two user ids"
// @Success 200 {object} model.Connection "Existing connection"
// @Success 201 {object} model.Connection "New connection"
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /connections [post]
func (cc *ConnectionController) CreateConnectionHandler(c *gin.Context) {
	var req createConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.UserID == "" || req.ConnectedUserID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields"})
		return
	}

	userID, err := utilities.ParseID(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid userId"})
		return
	}
	connectedUserID, err := utilities.ParseID(req.ConnectedUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid connectedUserId"})
		return
	}

	var existing model.Connection
	err = cc.DB.Where(
		"(user_id = ? AND connected_user_id = ?) OR (user_id = ? AND connected_user_id = ?)",
		userID, connectedUserID, connectedUserID, userID,
	).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		cc.Log.Error("failed to check existing connection", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create connection"})
		return
	}

	connection := model.Connection{
		UserID:          userID,
		ConnectedUserID: connectedUserID,
		Status:          "connected",
	}
	if err := cc.DB.Create(&connection).Error; err != nil {
		cc.Log.Error("failed to create connection", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create connection"})
		return
	}

	c.JSON(http.StatusCreated, connection)
}
