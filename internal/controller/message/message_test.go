package message

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func newRouter() *gin.Engine {
	r := gin.Default()
	mc := NewMessageController(testDB, zap.NewNop())
	r.GET("/messages", mc.GetMessages)
	r.POST("/messages", mc.CreateMessageHandler)
	r.DELETE("/messages", mc.DeleteMessageHandler)
	return r
}

func TestConversationID_Deterministic(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	// both sides compute the same key regardless of argument order
	assert.Equal(t, model.ConversationID(a, b), model.ConversationID(b, a))
	assert.NotEqual(t, model.ConversationID(a, b), model.ConversationID(a, uuid.New()))
}

func TestCreateMessageHandler_Success(t *testing.T) {
	r := newRouter()

	conversationID := model.ConversationID(database.TestCompany1.ID, database.TestCandidate1.ID)
	body := gin.H{
		"conversationId": conversationID,
		"senderId":       database.TestCompany1.ID,
		"receiverId":     database.TestCandidate1.ID,
		"message":        "When can you start?",
	}

	rec, resp := testutil.MakeJSONRequest(body, r, "/messages", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, conversationID, resp["conversationId"])
	assert.Equal(t, "When can you start?", resp["message"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestCreateMessageHandler_MissingBody(t *testing.T) {
	r := newRouter()

	body := gin.H{
		"conversationId": "a:b",
		"senderId":       database.TestCompany1.ID,
		"receiverId":     database.TestCandidate1.ID,
	}
	rec, resp := testutil.MakeJSONRequest(body, r, "/messages", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", resp["error"])
}

func TestGetMessages_ConversationOrderedOldestFirst(t *testing.T) {
	r := newRouter()

	conversationID := model.ConversationID(database.TestCompany2.ID, database.TestCandidate2.ID)
	for i, text := range []string{"first", "second", "third"} {
		message := model.Message{
			ConversationID: conversationID,
			SenderID:       database.TestCompany2.ID,
			RecipientID:    database.TestCandidate2.ID,
			Body:           text,
			CreatedAt:      time.Now().Add(time.Duration(i) * time.Second),
		}
		assert.NoError(t, testDB.Create(&message).Error)
	}

	rec, resp := testutil.MakeListRequest(r, fmt.Sprintf("/messages?conversationId=%s", conversationID))

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.Len(t, resp, 3) {
		assert.Equal(t, "first", resp[0]["message"])
		assert.Equal(t, "third", resp[2]["message"])
	}
}

func TestDeleteMessageHandler_Success(t *testing.T) {
	r := newRouter()

	message := model.Message{
		ConversationID: model.ConversationID(database.TestCompany1.ID, database.TestCandidate2.ID),
		SenderID:       database.TestCompany1.ID,
		RecipientID:    database.TestCandidate2.ID,
		Body:           "deleted soon",
	}
	assert.NoError(t, testDB.Create(&message).Error)

	rec, resp := testutil.MakeJSONRequest(gin.H{"messageId": message.ID}, r, "/messages", http.MethodDelete)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])

	rec2, resp2 := testutil.MakeJSONRequest(gin.H{"messageId": message.ID}, r, "/messages", http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec2.Code)
	assert.Equal(t, "Message not found", resp2["error"])
}
