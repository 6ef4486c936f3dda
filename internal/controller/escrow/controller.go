// Package escrow provides HTTP handlers for escrow contract operations,
// including the server-side contract workflow: creation links the application
// and notifies the candidate in one transaction, acceptance flips application
// and contract state together.
package escrow

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

// EscrowController handles escrow contract related endpoints
type EscrowController struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewEscrowController creates a new instance of EscrowController
func NewEscrowController(db *database.DBinstanceStruct, log *zap.Logger) *EscrowController {
	return &EscrowController{DB: db, Log: log}
}

// GetEscrows lists escrow contracts. With applicationId the response is the
// single matching contract or JSON null; candidate and company filters return
// arrays.
// @Summary List escrow contracts
// @Tags Escrow
// @Produce json
// @Param applicationId query string false "Return the single escrow for this application, or null"
// @Param candidateId query string false "Filter by candidate id"
// @Param companyId query string false "Filter by company id"
// @Success 200 {array} model.Escrow
// @Failure 400 {object} utilities.ErrorResponse "Malformed filter id"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /escrow [get]
func (ec *EscrowController) GetEscrows(c *gin.Context) {
	applicationID, err := utilities.ParseID(c.Query("applicationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid applicationId"})
		return
	}
	candidateID, err := utilities.ParseID(c.Query("candidateId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid candidateId"})
		return
	}
	companyID, err := utilities.ParseID(c.Query("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid companyId"})
		return
	}

	if applicationID != uuid.Nil {
		var escrow model.Escrow
		err := ec.DB.Where("application_id = ?", applicationID).First(&escrow).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		if err != nil {
			ec.Log.Error("failed to fetch escrow", zap.Error(err))
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch escrows"})
			return
		}
		c.JSON(http.StatusOK, escrow)
		return
	}

	query := ec.DB.Order("created_at DESC")
	if candidateID != uuid.Nil {
		query = query.Where("candidate_id = ?", candidateID)
	}
	if companyID != uuid.Nil {
		query = query.Where("company_id = ?", companyID)
	}

	escrows := []model.Escrow{}
	if err := query.Find(&escrows).Error; err != nil {
		ec.Log.Error("failed to fetch escrows", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch escrows"})
		return
	}
	c.JSON(http.StatusOK, escrows)
}

type createEscrowRequest struct {
	ApplicationID string `json:"applicationId"`
	CompanyID     string `json:"companyId"`
	CandidateID   string `json:"candidateId"`
	JobTitle      string `json:"jobTitle"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
	Terms         string `json:"terms"`
}

// CreateEscrowHandler creates an escrow contract for an accepted application.
// Creation is idempotent per application: a second call returns the existing
// contract. The application link and the candidate notification are written in
// the same transaction as the contract itself.
// @Summary Create escrow contract
// @Tags Escrow
// @Accept json
// @Produce json
// @Param escrow body createEscrowRequest true "Contract terms"
// @Success 200 {object} model.Escrow "Existing contract for the application"
// @Success 201 {object} model.Escrow "Newly created contract"
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /escrow [post]
func (ec *EscrowController) CreateEscrowHandler(c *gin.Context) {
	var req createEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.ApplicationID == "" || req.CompanyID == "" || req.CandidateID == "" ||
		req.StartDate == "" || req.EndDate == "" || req.Amount == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields"})
		return
	}

	applicationID, err := utilities.ParseID(req.ApplicationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid applicationId"})
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

	var (
		escrow   model.Escrow
		existing bool
	)

	err = ec.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the application row so two concurrent creates for the same
		// application serialize here instead of racing the existence check.
		var application model.Application
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", applicationID).First(&application).Error; err != nil {
			return err
		}

		err := tx.Where("application_id = ?", applicationID).First(&escrow).Error
		if err == nil {
			existing = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		escrow = model.Escrow{
			ApplicationID: applicationID,
			JobID:         application.JobID,
			JobTitle:      req.JobTitle,
			CompanyID:     companyID,
			CandidateID:   candidateID,
			Amount:        req.Amount,
			Currency:      currency,
			Description:   req.Description,
			Terms:         req.Terms,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			Status:        model.EscrowStatusActive,
			PaymentStatus: model.EscrowPaymentPending,
		}
		if err := tx.Create(&escrow).Error; err != nil {
			return err
		}

		application.EscrowContractID = &escrow.ID
		if err := tx.Save(&application).Error; err != nil {
			return err
		}

		notification := model.Notification{
			SenderID:      companyID,
			RecipientID:   candidateID,
			Type:          model.NotificationEscrowCreated,
			Title:         "New Escrow Contract",
			Message:       fmt.Sprintf("An escrow contract has been created for the position of %s. Please review and approve the contract.", escrow.JobTitle),
			EscrowID:      &escrow.ID,
			ApplicationID: &applicationID,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		ec.Log.Error("failed to create escrow", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create escrow"})
		return
	}

	if existing {
		c.JSON(http.StatusOK, escrow)
		return
	}

	metrics.EscrowsCreated.Inc()
	metrics.NotificationsCreated.Inc()
	c.JSON(http.StatusCreated, escrow)
}

type updateEscrowRequest struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	ConfirmationStatus string `json:"confirmationStatus"`
	PaymentStatus      string `json:"paymentStatus"`
}

// UpdateEscrowHandler applies partial updates to an escrow contract. The
// confirmationStatus field is an alias for paymentStatus kept for callers of
// the old wire format; paymentStatus wins when both are present.
// @Summary Update escrow contract
// @Tags Escrow
// @Accept json
// @Produce json
// @Param escrow body updateEscrowRequest true "Fields to update"
// @Success 200 {object} model.Escrow
// @Failure 400 {object} utilities.ErrorResponse "Missing escrow id"
// @Failure 404 {object} utilities.ErrorResponse "Escrow not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /escrow [put]
func (ec *EscrowController) UpdateEscrowHandler(c *gin.Context) {
	var req updateEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.ID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing escrow id"})
		return
	}
	id, err := utilities.ParseID(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid escrow id"})
		return
	}

	var escrow model.Escrow
	if err := ec.DB.Where("id = ?", id).First(&escrow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Escrow not found"})
			return
		}
		ec.Log.Error("failed to fetch escrow", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to fetch escrow"})
		return
	}

	if req.Status != "" {
		escrow.Status = req.Status
	}
	if req.ConfirmationStatus != "" {
		escrow.PaymentStatus = req.ConfirmationStatus
	}
	if req.PaymentStatus != "" {
		escrow.PaymentStatus = req.PaymentStatus
	}

	if err := ec.DB.Save(&escrow).Error; err != nil {
		ec.Log.Error("failed to update escrow", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to update escrow"})
		return
	}

	c.JSON(http.StatusOK, escrow)
}

type acceptContractRequest struct {
	EscrowID string `json:"escrowId"`
}

// AcceptContractHandler marks a contract as accepted by the candidate. The
// application flags, the contract payment status and the company notification
// are committed atomically; partial failure rolls everything back.
// @Summary Accept escrow contract
// @Tags Escrow
// @Accept json
// @Produce json
// @Param body body acceptContractRequest true "Escrow id"
// @Success 200 {object} model.Escrow
// @Failure 400 {object} utilities.ErrorResponse "Missing escrow id or contract not active"
// @Failure 404 {object} utilities.ErrorResponse "Escrow not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /escrow/accept [post]
func (ec *EscrowController) AcceptContractHandler(c *gin.Context) {
	var req acceptContractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EscrowID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing escrow id"})
		return
	}
	id, err := utilities.ParseID(req.EscrowID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid escrow id"})
		return
	}

	var escrow model.Escrow
	errNotActive := errors.New("contract is not active")

	err = ec.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&escrow).Error; err != nil {
			return err
		}
		if escrow.Status != model.EscrowStatusActive {
			return errNotActive
		}

		now := time.Now()
		if err := tx.Model(&model.Application{}).
			Where("id = ?", escrow.ApplicationID).
			Updates(map[string]interface{}{
				"status":               model.ApplicationStatusAccepted,
				"contract_accepted":    true,
				"contract_accepted_at": now,
			}).Error; err != nil {
			return err
		}

		escrow.PaymentStatus = model.EscrowPaymentConfirmed
		if err := tx.Save(&escrow).Error; err != nil {
			return err
		}

		notification := model.Notification{
			SenderID:      escrow.CandidateID,
			RecipientID:   escrow.CompanyID,
			Type:          model.NotificationContractAccepted,
			Title:         "Contract Accepted",
			Message:       fmt.Sprintf("The candidate has accepted the escrow contract for %s. You can now proceed with the payment.", escrow.JobTitle),
			EscrowID:      &escrow.ID,
			ApplicationID: &escrow.ApplicationID,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Escrow not found"})
		case errors.Is(err, errNotActive):
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Contract is not active"})
		default:
			ec.Log.Error("failed to accept contract", zap.Error(err))
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to accept contract"})
		}
		return
	}

	metrics.ContractsAccepted.Inc()
	metrics.NotificationsCreated.Inc()
	c.JSON(http.StatusOK, escrow)
}
