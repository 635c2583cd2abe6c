package services

import (
	"strconv"
	"strings"
	"time"

	"readerspace-backend/apperrors"
	"readerspace-backend/models"
	"readerspace-backend/utils"
)

const (
	codePrefix      = "L"
	firstCodeNumber = 2025001
)

// Registry holds the business rules for members and their payments. It works
// on a Dataset passed in by the caller and never touches storage.
type Registry struct {
	fee int
	now func() time.Time
}

// NewRegistry creates a registry that charges fee per month. now defaults to time.Now.
func NewRegistry(fee int, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{fee: fee, now: now}
}

func (r *Registry) MonthlyFee() int {
	return r.fee
}

// Today is the registry clock truncated to a calendar day
func (r *Registry) Today() models.Date {
	return models.NewDate(r.now())
}

type RegisterInput struct {
	Name       string
	FatherName string
	Address    string
	Email      string
	Contact    string
	SeatNo     string
}

// MemberEntry pairs a member with its code for listings
type MemberEntry struct {
	Code string `json:"code"`
	*models.Member
}

// PendingEntry is one line of the pending payments report
type PendingEntry struct {
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	Contact       string      `json:"contact"`
	LastPayment   models.Date `json:"last_payment"`
	MonthsOverdue int         `json:"months_overdue"`
	DueAmount     int         `json:"due_amount"`

	Member *models.Member `json:"-"`
}

func (p PendingEntry) Overdue() bool {
	return p.MonthsOverdue > 0
}

// NextCode is the code the next registration would receive. Codes are derived
// from the member count, so they only stay unique while nothing is deleted.
func (r *Registry) NextCode(ds models.Dataset) string {
	return codePrefix + strconv.Itoa(firstCodeNumber+len(ds))
}

// Register validates the input, books the first month's fee as paid today and
// inserts the member. Nothing is changed when validation fails.
func (r *Registry) Register(ds models.Dataset, in RegisterInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	fatherName := strings.TrimSpace(in.FatherName)
	contact := strings.TrimSpace(in.Contact)

	switch {
	case name == "":
		return "", apperrors.NewValidationError("name", "is required")
	case fatherName == "":
		return "", apperrors.NewValidationError("father_name", "is required")
	case contact == "":
		return "", apperrors.NewValidationError("contact", "is required")
	}

	code := r.NextCode(ds)
	if _, taken := ds[code]; taken {
		return "", &apperrors.ConflictError{Code: code}
	}

	today := r.Today()
	ds[code] = &models.Member{
		Name:          name,
		FatherName:    fatherName,
		Address:       strings.TrimSpace(in.Address),
		Email:         strings.TrimSpace(in.Email),
		Contact:       contact,
		SeatNo:        strings.TrimSpace(in.SeatNo),
		AdmissionDate: today,
		LastPayment:   today,
		Payments:      []models.Payment{{Date: today, Amount: r.fee}},
	}
	return code, nil
}

// Lookup finds a member by exact code
func (r *Registry) Lookup(ds models.Dataset, code string) (*models.Member, error) {
	member, ok := ds[code]
	if !ok {
		return nil, &apperrors.NotFoundError{Code: code}
	}
	return member, nil
}

// List returns every member ordered by code
func (r *Registry) List(ds models.Dataset) []MemberEntry {
	entries := make([]MemberEntry, 0, len(ds))
	for _, code := range ds.Codes() {
		entries = append(entries, MemberEntry{Code: code, Member: ds[code]})
	}
	return entries
}

// MonthsOverdue counts calendar months between the last payment and asOf.
// Billing is per calendar month: a payment on the 31st is one month overdue on
// the 1st of the next month.
func MonthsOverdue(m *models.Member, asOf models.Date) int {
	return utils.MonthsBetween(m.LastPayment.Time, asOf.Time)
}

// PendingReport lists every member, in code order, with months overdue and
// the amount due as of asOf. Members who are up to date have zero months.
func (r *Registry) PendingReport(ds models.Dataset, asOf models.Date) []PendingEntry {
	entries := make([]PendingEntry, 0, len(ds))
	for _, code := range ds.Codes() {
		member := ds[code]
		months := MonthsOverdue(member, asOf)
		entries = append(entries, PendingEntry{
			Code:          code,
			Name:          member.Name,
			Contact:       member.Contact,
			LastPayment:   member.LastPayment,
			MonthsOverdue: months,
			DueAmount:     months * r.fee,
			Member:        member,
		})
	}
	return entries
}
