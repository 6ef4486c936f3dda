// Package payment provides HTTP handlers for the wallet-exchange payment flow.
package payment

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/database"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/metrics"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/model"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/utilities"
)

// Points awarded to the candidate when a contract settles.
const completionPoints = 50

// PaymentController handles payment related endpoints
type PaymentController struct {
	DB    *database.DBinstanceStruct
	Redis *database.RedisClient
	Log   *zap.Logger
}

// NewPaymentController creates a new instance of PaymentController
func NewPaymentController(db *database.DBinstanceStruct, rdb *database.RedisClient, log *zap.Logger) *PaymentController {
	return &PaymentController{DB: db, Redis: rdb, Log: log}
}

// GetPayments lists payments, optionally filtered by escrow, company or candidate.
// @Summary List payments
// @Tags Payment
// @Produce json
// @Param escrowId query string false "Filter by escrow id"
// @Param companyId query string false "Filter by company id"
// @Param candidateId query string false "Filter by candidate id"
// @Success 200 {array} model.Payment
// @Failure 400 {object} utilities.ErrorResponse "Malformed filter id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /payments [get]
func (pc *PaymentController) GetPayments(c *gin.Context) {
	escrowID, err := utilities.ParseID(c.Query("escrowId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid escrowId"})
		return
	}
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

	query := pc.DB.Order("created_at DESC")
	if escrowID != uuid.Nil {
		query = query.Where("escrow_id = ?", escrowID)
	}
	if companyID != uuid.Nil {
		query = query.Where("company_id = ?", companyID)
	}
	if candidateID != uuid.Nil {
		query = query.Where("candidate_id = ?", candidateID)
	}

	payments := []model.Payment{}
	if err := query.Find(&payments).Error; err != nil {
		pc.Log.Error("failed to fetch payments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

type createPaymentRequest struct {
	EscrowID               string `json:"escrowId"`
	CompanyID              string `json:"companyId"`
	CandidateID            string `json:"candidateId"`
	Amount                 string `json:"amount"`
	Currency               string `json:"currency"`
	CandidateWalletAddress string `json:"candidateWalletAddress"`
	TransactionHash        string `json:"transactionHash"`
	Status                 string `json:"status"`
}

// CreatePaymentHandler records a payment attempt against an escrow contract.
// @Summary Create payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param payment body createPaymentRequest true "Payment information"
// @Success 201 {object} model.Payment
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /payments [post]
func (pc *PaymentController) CreatePaymentHandler(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.EscrowID == "" || req.CompanyID == "" || req.CandidateID == "" || req.Amount == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields"})
		return
	}

	escrowID, err := utilities.ParseID(req.EscrowID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid escrowId"})
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

	currency := req.Currency
	if currency == "" {
		currency = "TON"
	}
	status := req.Status
	if status == "" {
		status = model.PaymentStatusPending
	}

	payment := model.Payment{
		EscrowID:    escrowID,
		CompanyID:   companyID,
		CandidateID: candidateID,
		Amount:      req.Amount,
		Currency:    currency,
		Status:      status,
	}
	if req.CandidateWalletAddress != "" {
		payment.CandidateWalletAddress = &req.CandidateWalletAddress
	}
	if req.TransactionHash != "" {
		payment.TransactionHash = &req.TransactionHash
	}

	if err := pc.DB.Create(&payment).Error; err != nil {
		pc.Log.Error("failed to create payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

type updatePaymentRequest struct {
	ID                     string `json:"id"`
	Status                 string `json:"status"`
	CandidateWalletAddress string `json:"candidateWalletAddress"`
	TransactionHash        string `json:"transactionHash"`
}

// UpdatePaymentHandler applies partial updates to a payment; updatedAt is
// touched on every update.
// @Summary Update payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param payment body updatePaymentRequest true "Fields to update"
// @Success 200 {object} model.Payment
// @Failure 400 {object} utilities.ErrorResponse "Missing payment id"
// @Failure 404 {object} utilities.ErrorResponse "Payment not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /payments [put]
func (pc *PaymentController) UpdatePaymentHandler(c *gin.Context) {
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.ID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing payment id"})
		return
	}
	id, err := utilities.ParseID(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid payment id"})
		return
	}

	var payment model.Payment
	if err := pc.DB.Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Payment not found"})
			return
		}
		pc.Log.Error("failed to fetch payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch payment"})
		return
	}

	if req.Status != "" {
		payment.Status = req.Status
	}
	if req.CandidateWalletAddress != "" {
		payment.CandidateWalletAddress = &req.CandidateWalletAddress
	}
	if req.TransactionHash != "" {
		payment.TransactionHash = &req.TransactionHash
	}
	payment.UpdatedAt = time.Now()

	if err := pc.DB.Save(&payment).Error; err != nil {
		pc.Log.Error("failed to update payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update payment"})
		return
	}

	c.JSON(http.StatusOK, payment)
}

type completePaymentRequest struct {
	PaymentID              string `json:"paymentId"`
	TransactionHash        string `json:"transactionHash"`
	CandidateWalletAddress string `json:"candidateWalletAddress"`
}

// CompletePaymentHandler settles a payment: the payment, its escrow contract,
// the candidate's balances and the completion notification move in a single
// transaction. The leaderboard cache is refreshed after commit.
// @Summary Complete payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param body body completePaymentRequest true "Payment id and transaction hash"
// @Success 200 {object} model.Payment
// @Failure 400 {object} utilities.ErrorResponse "Missing fields or payment already failed"
// @Failure 404 {object} utilities.ErrorResponse "Payment not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /payments/complete [post]
func (pc *PaymentController) CompletePaymentHandler(c *gin.Context) {
	var req completePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentID == "" || req.TransactionHash == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing payment id or transaction hash"})
		return
	}
	id, err := utilities.ParseID(req.PaymentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid payment id"})
		return
	}

	var (
		payment   model.Payment
		candidate model.User
	)
	errFailed := errors.New("payment already failed")

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&payment).Error; err != nil {
			return err
		}
		if payment.Status == model.PaymentStatusFailed {
			return errFailed
		}
		if payment.Status == model.PaymentStatusCompleted {
			// settle is idempotent
			return nil
		}

		payment.Status = model.PaymentStatusCompleted
		payment.TransactionHash = &req.TransactionHash
		if req.CandidateWalletAddress != "" {
			payment.CandidateWalletAddress = &req.CandidateWalletAddress
		}
		payment.UpdatedAt = time.Now()
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Escrow{}).
			Where("id = ?", payment.EscrowID).
			Updates(map[string]interface{}{
				"status":         model.EscrowStatusCompleted,
				"payment_status": model.EscrowPaymentCompleted,
			}).Error; err != nil {
			return err
		}

		// SBT balance is the count of settled contracts, points feed the
		// leaderboard.
		if err := tx.Model(&model.User{}).
			Where("id = ?", payment.CandidateID).
			Updates(map[string]interface{}{
				"points_balance": gorm.Expr("points_balance + ?", completionPoints),
				"sbt_balance":    gorm.Expr("sbt_balance + 1"),
			}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", payment.CandidateID).First(&candidate).Error; err != nil {
			return err
		}

		notification := model.Notification{
			SenderID:    payment.CompanyID,
			RecipientID: payment.CandidateID,
			Type:        model.NotificationPaymentCompleted,
			Title:       "Payment Completed",
			Message:     fmt.Sprintf("Payment of %s %s has been completed.", payment.Amount, payment.Currency),
			EscrowID:    &payment.EscrowID,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Payment not found"})
		case errors.Is(err, errFailed):
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Payment already failed"})
		default:
			pc.Log.Error("failed to complete payment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to complete payment"})
		}
		return
	}

	if candidate.ID != uuid.Nil {
		if err := pc.Redis.SetPoints(c.Request.Context(), candidate.ID.String(), float64(candidate.PointsBalance)); err != nil {
			pc.Log.Warn("failed to refresh leaderboard", zap.Error(err))
		}
	}

	metrics.PaymentsCompleted.Inc()
	metrics.NotificationsCreated.Inc()
	c.JSON(http.StatusOK, payment)
}
