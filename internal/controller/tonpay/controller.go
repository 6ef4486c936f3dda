// Package tonpay handles the TON blockchain payment hand-off. The endpoint
// validates address formats and echoes the transfer parameters back for the
// wallet app to execute; it performs no ledger verification.
package tonpay

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/utilities"
)

// TonPaymentController handles TON payment initiation endpoints
type TonPaymentController struct {
	Log *zap.Logger
}

// NewTonPaymentController creates a new instance of TonPaymentController
func NewTonPaymentController(log *zap.Logger) *TonPaymentController {
	return &TonPaymentController{Log: log}
}

type tonPaymentRequest struct {
	SenderAddress      string `json:"senderAddress"`
	DestinationAddress string `json:"destinationAddress"`
	Amount             string `json:"amount"`
	Comment            string `json:"comment"`
	PaymentID          string `json:"paymentId"`
}

type tonPaymentResponse struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	SenderAddress      string `json:"senderAddress"`
	DestinationAddress string `json:"destinationAddress"`
	Amount             string `json:"amount"`
	Comment            string `json:"comment"`
	PaymentID          string `json:"paymentId"`
}

// InitiatePaymentHandler validates the transfer parameters and acknowledges the
// hand-off to the wallet. Verifying the transaction on chain is out of scope;
// the caller reports completion through the payments endpoints.
// @Summary Initiate TON payment
// @Tags TonPayment
// @Accept json
// @Produce json
// @Param body body tonPaymentRequest true "Transfer parameters"
// @Success 200 {object} tonPaymentResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing fields or invalid address format"
// @Router /ton-payment [post]
func (tc *TonPaymentController) InitiatePaymentHandler(c *gin.Context) {
	var req tonPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if req.SenderAddress == "" || req.DestinationAddress == "" || req.Amount == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields"})
		return
	}

	if !IsValidTonAddress(req.SenderAddress) || !IsValidTonAddress(req.DestinationAddress) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid TON address format"})
		return
	}

	tc.Log.Info("ton payment initiated",
		zap.String("paymentId", req.PaymentID),
		zap.String("amount", req.Amount),
	)

	c.JSON(http.StatusOK, tonPaymentResponse{
		Success:            true,
		Message:            "Payment initiated. Please complete the transaction in your wallet.",
		SenderAddress:      req.SenderAddress,
		DestinationAddress: req.DestinationAddress,
		Amount:             req.Amount,
		Comment:            req.Comment,
		PaymentID:          req.PaymentID,
	})
}
