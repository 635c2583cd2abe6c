// controllers/payment.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readerspace-backend/models"
	"readerspace-backend/services"
	"readerspace-backend/utils"
)

// RecordPaymentInput defines the expected JSON structure for a payment
type RecordPaymentInput struct {
	Months int `json:"months"`
}

// PaymentController handles dues and payments
type PaymentController struct {
	Service *services.MembershipService
}

// RecordPayment books months*fee for the member, dated today
func (pc *PaymentController) RecordPayment(c *gin.Context) {
	var input RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := pc.Service.RecordPayment(c.Request.Context(), c.Param("code"), input.Months)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetPendingPayments lists every member's dues. Overdue members are sent a
// reminder unless notify=false.
func (pc *PaymentController) GetPendingPayments(c *gin.Context) {
	asOf := pc.Service.Registry().Today()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "as_of must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	notify := true
	if raw := c.Query("notify"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "notify must be true or false")
			return
		}
		notify = parsed
	}

	entries, err := pc.Service.PendingPayments(c.Request.Context(), asOf, notify)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	overdue := 0
	totalDue := 0
	for _, entry := range entries {
		if entry.Overdue() {
			overdue++
			totalDue += entry.DueAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"asOf":     asOf,
		"overdue":  overdue,
		"totalDue": totalDue,
		"members":  entries,
	})
}
