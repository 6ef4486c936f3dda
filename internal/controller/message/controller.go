// Package message provides HTTP handlers for peer-to-peer chat messages.
package message

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/utilities"
)

// MessageController handles chat message related endpoints
type MessageController struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewMessageController creates a new instance of MessageController
func NewMessageController(db *database.DBinstanceStruct, log *zap.Logger) *MessageController {
	return &MessageController{DB: db, Log: log}
}

// GetMessages lists messages, optionally scoped to a conversation.
// @Summary List messages
// @Tags Message
// @Produce json
// @Param conversationId query string false "Filter by conversation id"
// @Success 200 {array} model.Message
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /messages [get]
func (mc *MessageController) GetMessages(c *gin.Context) {
	query := mc.DB.Order("created_at ASC")
	if conversationID := c.Query("conversationId"); conversationID != "" {
		query = query.Where("conversation_id = ?", conversationID)
	}

	messages := []model.Message{}
	if err := query.Find(&messages).Error; err != nil {
		mc.Log.Error("failed to fetch messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

type createMessageRequest struct {
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	ReceiverID     string `json:"receiverId"`
	Message        string `json:"message"`
}

// CreateMessageHandler appends a message to a conversation.
// @Summary Send message
// @Tags Message
// @Accept json
// @Produce json
// @Param message body createMessageRequest true "Message content"
// @Success 201 {object} model.Message
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /messages [post]
func (mc *MessageController) CreateMessageHandler(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.ConversationID == "" || req.SenderID == "" || req.ReceiverID == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields"})
		return
	}

	senderID, err := utilities.ParseID(req.SenderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid senderId"})
		return
	}
	receiverID, err := utilities.ParseID(req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid receiverId"})
		return
	}

	message := model.Message{
		ConversationID: req.ConversationID,
		SenderID:       senderID,
		RecipientID:    receiverID,
		Body:           req.Message,
	}

	if err := mc.DB.Create(&message).Error; err != nil {
		mc.Log.Error("failed to create message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create message"})
		return
	}

	c.JSON(http.StatusCreated, message)
}

type deleteMessageRequest struct {
	MessageID string `json:"messageId"`
}

// DeleteMessageHandler removes a message from a conversation.
// @Summary Delete message
// @Tags Message
// @Accept json
// @Produce json
// @Param message body deleteMessageRequest true "Message id"
// @Success 200 {object} utilities.SuccessResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing message id"
// @Failure 404 {object} utilities.ErrorResponse "Message not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /messages [delete]
func (mc *MessageController) DeleteMessageHandler(c *gin.Context) {
	var req deleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MessageID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing message id"})
		return
	}
	id, err := utilities.ParseID(req.MessageID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid message id"})
		return
	}

	result := mc.DB.Where("id = ?", id).Delete(&model.Message{})
	if result.Error != nil {
		mc.Log.Error("failed to delete message", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to delete message"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Message not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.SuccessResponse{Success: true})
}
