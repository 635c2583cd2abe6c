package services

import (
	"readerspace-backend/apperrors"
	"readerspace-backend/models"
)

// RecordPayment appends a payment for months*fee dated asOf and moves
// LastPayment to asOf. Paying for several months does not push LastPayment
// into the future; the ledger has no separate paid-through date.
func (r *Registry) RecordPayment(m *models.Member, months int, asOf models.Date) (models.Payment, error) {
	if months < 1 {
		return models.Payment{}, apperrors.NewValidationError("months", "must be at least 1")
	}

	payment := models.Payment{Date: asOf, Amount: months * r.fee}
	m.Payments = append(m.Payments, payment)
	m.LastPayment = asOf
	return payment, nil
}
