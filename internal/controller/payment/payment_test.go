package payment

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

// the nil redis client degrades to a no-op, which is exactly what these tests want
func newRouter() *gin.Engine {
	r := gin.Default()
	pc := NewPaymentController(testDB, nil, zap.NewNop())
	r.GET("/payments", pc.GetPayments)
	r.POST("/payments", pc.CreatePaymentHandler)
	r.PUT("/payments", pc.UpdatePaymentHandler)
	r.POST("/payments/complete", pc.CompletePaymentHandler)
	return r
}

func createEscrow(t *testing.T) model.Escrow {
	t.Helper()
	application := model.Application{
		JobID:       database.TestJob1.ID,
		CandidateID: database.TestCandidate1.ID,
		Status:      model.ApplicationStatusAccepted,
	}
	if err := testDB.Create(&application).Error; err != nil {
		t.Fatalf("failed to create application: %v", err)
	}
	escrow := model.Escrow{
		ApplicationID: application.ID,
		JobID:         database.TestJob1.ID,
		JobTitle:      database.TestJob1.Title,
		CompanyID:     database.TestCompany1.ID,
		CandidateID:   database.TestCandidate1.ID,
		Amount:        "100",
		Currency:      "TON",
		StartDate:     "2026-09-01",
		EndDate:       "2026-12-01",
		Status:        model.EscrowStatusActive,
		PaymentStatus: model.EscrowPaymentConfirmed,
	}
	if err := testDB.Create(&escrow).Error; err != nil {
		t.Fatalf("failed to create escrow: %v", err)
	}
	return escrow
}

func paymentBody(escrow model.Escrow) gin.H {
	return gin.H{
		"escrowId":    escrow.ID,
		"companyId":   escrow.CompanyID,
		"candidateId": escrow.CandidateID,
		"amount":      escrow.Amount,
	}
}

func TestCreatePaymentHandler_Success(t *testing.T) {
	r := newRouter()
	escrow := createEscrow(t)

	rec, resp := testutil.MakeJSONRequest(paymentBody(escrow), r, "/payments", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, model.PaymentStatusPending, resp["status"])
	assert.Equal(t, "TON", resp["currency"])
	assert.Nil(t, resp["transactionHash"])
}

func TestCreatePaymentHandler_MissingFields(t *testing.T) {
	r := newRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"amount": "100"}, r, "/payments", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", resp["error"])
}

func TestGetPayments_FilterByEscrow(t *testing.T) {
	r := newRouter()
	escrow := createEscrow(t)

	_, _ = testutil.MakeJSONRequest(paymentBody(escrow), r, "/payments", http.MethodPost)

	rec, resp := testutil.MakeListRequest(r, fmt.Sprintf("/payments?escrowId=%s", escrow.ID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp, 1)
	assert.Equal(t, escrow.ID.String(), resp[0]["escrowId"])
}

func TestUpdatePaymentHandler_WalletExchange(t *testing.T) {
	r := newRouter()
	escrow := createEscrow(t)

	_, created := testutil.MakeJSONRequest(paymentBody(escrow), r, "/payments", http.MethodPost)

	body := gin.H{"id": created["id"], "status": model.PaymentStatusWalletRequested}
	rec, resp := testutil.MakeJSONRequest(body, r, "/payments", http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.PaymentStatusWalletRequested, resp["status"])

	wallet := "UQCandidateWalletForPaymentTest000000000000000"
	body = gin.H{
		"id":                     created["id"],
		"status":                 model.PaymentStatusWalletReceived,
		"candidateWalletAddress": wallet,
	}
	rec, resp = testutil.MakeJSONRequest(body, r, "/payments", http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.PaymentStatusWalletReceived, resp["status"])
	assert.Equal(t, wallet, resp["candidateWalletAddress"])
}

func TestUpdatePaymentHandler_NotFound(t *testing.T) {
	r := newRouter()

	body := gin.H{"id": uuid.New(), "status": model.PaymentStatusFailed}
	rec, resp := testutil.MakeJSONRequest(body, r, "/payments", http.MethodPut)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Payment not found", resp["error"])
}

func TestCompletePaymentHandler_SettlesEverything(t *testing.T) {
	r := newRouter()
	escrow := createEscrow(t)

	_, created := testutil.MakeJSONRequest(paymentBody(escrow), r, "/payments", http.MethodPost)

	var candidateBefore model.User
	assert.NoError(t, testDB.Where("id = ?", escrow.CandidateID).First(&candidateBefore).Error)

	body := gin.H{
		"paymentId":       created["id"],
		"transactionHash": "te6ccgebademohash",
	}
	rec, resp := testutil.MakeJSONRequest(body, r, "/payments/complete", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.PaymentStatusCompleted, resp["status"])
	assert.Equal(t, "te6ccgebademohash", resp["transactionHash"])

	// escrow settles with the payment
	var storedEscrow model.Escrow
	assert.NoError(t, testDB.Where("id = ?", escrow.ID).First(&storedEscrow).Error)
	assert.Equal(t, model.EscrowStatusCompleted, storedEscrow.Status)
	assert.Equal(t, model.EscrowPaymentCompleted, storedEscrow.PaymentStatus)

	// the candidate earns points and an SBT
	var candidateAfter model.User
	assert.NoError(t, testDB.Where("id = ?", escrow.CandidateID).First(&candidateAfter).Error)
	assert.Equal(t, candidateBefore.PointsBalance+completionPoints, candidateAfter.PointsBalance)
	assert.Equal(t, candidateBefore.SBTBalance+1, candidateAfter.SBTBalance)

	// and gets a completion notification
	var count int64
	assert.NoError(t, testDB.Model(&model.Notification{}).
		Where("recipient_id = ? AND type = ?", escrow.CandidateID, model.NotificationPaymentCompleted).
		Count(&count).Error)
	assert.GreaterOrEqual(t, count, int64(1))
}

func TestCompletePaymentHandler_Idempotent(t *testing.T) {
	r := newRouter()
	escrow := createEscrow(t)

	_, created := testutil.MakeJSONRequest(paymentBody(escrow), r, "/payments", http.MethodPost)

	body := gin.H{"paymentId": created["id"], "transactionHash": "te6ccgebademohash"}

	rec1, _ := testutil.MakeJSONRequest(body, r, "/payments/complete", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec1.Code)

	var candidateBetween model.User
	assert.NoError(t, testDB.Where("id = ?", escrow.CandidateID).First(&candidateBetween).Error)

	rec2, resp2 := testutil.MakeJSONRequest(body, r, "/payments/complete", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, model.PaymentStatusCompleted, resp2["status"])

	// no double points on the second call
	var candidateAfter model.User
	assert.NoError(t, testDB.Where("id = ?", escrow.CandidateID).First(&candidateAfter).Error)
	assert.Equal(t, candidateBetween.PointsBalance, candidateAfter.PointsBalance)
	assert.Equal(t, candidateBetween.SBTBalance, candidateAfter.SBTBalance)
}

func TestCompletePaymentHandler_MissingHash(t *testing.T) {
	r := newRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"paymentId": uuid.New()}, r, "/payments/complete", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing payment id or transaction hash", resp["error"])
}

func TestCompletePaymentHandler_AlreadyFailed(t *testing.T) {
	r := newRouter()
	escrow := createEscrow(t)

	_, created := testutil.MakeJSONRequest(paymentBody(escrow), r, "/payments", http.MethodPost)
	_, _ = testutil.MakeJSONRequest(gin.H{"id": created["id"], "status": model.PaymentStatusFailed}, r, "/payments", http.MethodPut)

	body := gin.H{"paymentId": created["id"], "transactionHash": "te6ccgebademohash"}
	rec, resp := testutil.MakeJSONRequest(body, r, "/payments/complete", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Payment already failed", resp["error"])
}
