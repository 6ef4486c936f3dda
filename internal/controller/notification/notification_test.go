package notification

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
	nc := NewNotificationController(testDB, zap.NewNop())
	r.GET("/notifications", nc.GetNotifications)
	r.POST("/notifications", nc.CreateNotificationHandler)
	r.PUT("/notifications", nc.UpdateNotificationHandler)
	r.DELETE("/notifications", nc.DeleteNotificationHandler)
	return r
}

func TestCreateNotificationHandler_Success(t *testing.T) {
	r := newRouter()

	body := gin.H{
		"senderId":    database.TestCompany1.ID,
		"recipientId": database.TestCandidate1.ID,
		"type":        model.NotificationEscrowCreated,
		"title":       "New Escrow Contract",
		"message":     "Please review the contract.",
	}

	rec, resp := testutil.MakeJSONRequest(body, r, "/notifications", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, false, resp["read"])
}

func TestCreateNotificationHandler_MissingTitle(t *testing.T) {
	r := newRouter()

	body := gin.H{
		"senderId":    database.TestCompany1.ID,
		"recipientId": database.TestCandidate1.ID,
		"type":        model.NotificationEscrowCreated,
	}
	rec, resp := testutil.MakeJSONRequest(body, r, "/notifications", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", resp["error"])
}

func TestGetNotifications_ScopedToRecipient(t *testing.T) {
	r := newRouter()

	notification := model.Notification{
		SenderID:    database.TestCompany2.ID,
		RecipientID: database.TestCandidate2.ID,
		Type:        model.NotificationPaymentCompleted,
		Title:       "Payment Completed",
	}
	assert.NoError(t, testDB.Create(&notification).Error)

	rec, resp := testutil.MakeListRequest(r, fmt.Sprintf("/notifications?userId=%s", database.TestCandidate2.ID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(resp), 1)
	for _, n := range resp {
		assert.Equal(t, database.TestCandidate2.ID.String(), n["recipientId"])
	}
}

func TestUpdateNotificationHandler_MarkRead(t *testing.T) {
	r := newRouter()

	notification := model.Notification{
		SenderID:    database.TestCompany1.ID,
		RecipientID: database.TestCandidate1.ID,
		Type:        model.NotificationContractAccepted,
		Title:       "Contract Accepted",
	}
	assert.NoError(t, testDB.Create(&notification).Error)

	body := gin.H{"id": notification.ID, "read": true}
	rec, resp := testutil.MakeJSONRequest(body, r, "/notifications", http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["read"])
}

func TestDeleteNotificationHandler_Success(t *testing.T) {
	r := newRouter()

	notification := model.Notification{
		SenderID:    database.TestCompany1.ID,
		RecipientID: database.TestCandidate1.ID,
		Type:        model.NotificationEscrowCreated,
		Title:       "New Escrow Contract",
	}
	assert.NoError(t, testDB.Create(&notification).Error)

	body := gin.H{"id": notification.ID}
	rec, resp := testutil.MakeJSONRequest(body, r, "/notifications", http.MethodDelete)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])

	// a second delete finds nothing
	rec2, resp2 := testutil.MakeJSONRequest(body, r, "/notifications", http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec2.Code)
	assert.Equal(t, "Notification not found", resp2["error"])
}

func TestDeleteNotificationHandler_NotFound(t *testing.T) {
	r := newRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"id": uuid.New()}, r, "/notifications", http.MethodDelete)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Notification not found", resp["error"])
}
