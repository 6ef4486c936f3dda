// Package notification provides HTTP handlers for the notification inbox.
package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/metrics"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/utilities"
)

// NotificationController handles notification related endpoints
type NotificationController struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewNotificationController creates a new instance of NotificationController
func NewNotificationController(db *database.DBinstanceStruct, log *zap.Logger) *NotificationController {
	return &NotificationController{DB: db, Log: log}
}

// GetNotifications lists notifications, optionally scoped to a recipient.
// @Summary List notifications
// @Tags Notification
// @Produce json
// @Param userId query string false "Filter by recipient id"
// @Success 200 {array} model.Notification
// @Failure 400 {object} utilities.ErrorResponse "Malformed filter id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notifications [get]
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID, err := utilities.ParseID(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid userId"})
		return
	}

	query := nc.DB.Order("created_at DESC")
	if userID != uuid.Nil {
		query = query.Where("recipient_id = ?", userID)
	}

	notifications := []model.Notification{}
	if err := query.Find(&notifications).Error; err != nil {
		nc.Log.Error("failed to fetch notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

type createNotificationRequest struct {
	SenderID      string `json:"senderId"`
	RecipientID   string `json:"recipientId"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	EscrowID      string `json:"escrowId"`
	ApplicationID string `json:"applicationId"`
}

// CreateNotificationHandler delivers a notification to a recipient's inbox.
// @Summary Create notification
// @Tags Notification
// @Accept json
// @Produce json
// @Param notification body createNotificationRequest true "Notification content"
// @Success 201 {object} model.Notification
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notifications [post]
func (nc *NotificationController) CreateNotificationHandler(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.SenderID == "" || req.RecipientID == "" || req.Type == "" || req.Title == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields"})
		return
	}

	senderID, err := utilities.ParseID(req.SenderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid senderId"})
		return
	}
	recipientID, err := utilities.ParseID(req.RecipientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid recipientId"})
		return
	}

	notification := model.Notification{
		SenderID:    senderID,
		RecipientID: recipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
	}

	if req.EscrowID != "" {
		escrowID, err := utilities.ParseID(req.EscrowID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid escrowId"})
			return
		}
		notification.EscrowID = &escrowID
	}
	if req.ApplicationID != "" {
		applicationID, err := utilities.ParseID(req.ApplicationID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid applicationId"})
			return
		}
		notification.ApplicationID = &applicationID
	}

	if err := nc.DB.Create(&notification).Error; err != nil {
		nc.Log.Error("failed to create notification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create notification"})
		return
	}

	metrics.NotificationsCreated.Inc()
	c.JSON(http.StatusCreated, notification)
}

type updateNotificationRequest struct {
	ID   string `json:"id"`
	Read *bool  `json:"read"`
}

// UpdateNotificationHandler toggles the read flag of a notification.
// @Summary Mark notification read or unread
// @Tags Notification
// @Accept json
// @Produce json
// @Param notification body updateNotificationRequest true "Notification id and read flag"
// @Success 200 {object} model.Notification
// @Failure 400 {object} utilities.ErrorResponse "Missing notification id"
// @Failure 404 {object} utilities.ErrorResponse "Notification not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notifications [put]
func (nc *NotificationController) UpdateNotificationHandler(c *gin.Context) {
	var req updateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.ID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing notification id"})
		return
	}
	id, err := utilities.ParseID(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid notification id"})
		return
	}

	var notification model.Notification
	if err := nc.DB.Where("id = ?", id).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Notification not found"})
			return
		}
		nc.Log.Error("failed to fetch notification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch notification"})
		return
	}

	if req.Read != nil {
		notification.Read = *req.Read
		if err := nc.DB.Save(&notification).Error; err != nil {
			nc.Log.Error("failed to update notification", zap.Error(err))
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update notification"})
			return
		}
	}

	c.JSON(http.StatusOK, notification)
}

type deleteNotificationRequest struct {
	ID string `json:"id"`
}

// DeleteNotificationHandler removes a notification from the inbox.
// @Summary Delete notification
// @Tags Notification
// @Accept json
// @Produce json
// @Param notification body deleteNotificationRequest true "Notification id"
// @Success 200 {object} utilities.SuccessResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing notification id"
// @Failure 404 {object} utilities.ErrorResponse "Notification not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notifications [delete]
func (nc *NotificationController) DeleteNotificationHandler(c *gin.Context) {
	var req deleteNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing notification id"})
		return
	}
	id, err := utilities.ParseID(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid notification id"})
		return
	}

	result := nc.DB.Where("id = ?", id).Delete(&model.Notification{})
	if result.Error != nil {
		nc.Log.Error("failed to delete notification", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to delete notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.SuccessResponse{Success: true})
}
