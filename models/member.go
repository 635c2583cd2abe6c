package models

import (
	"fmt"
	"sort"
	"strings"
)

// Payment is one entry in a member's ledger. Date is the day the payment was
// recorded, not the month it covers.
type Payment struct {
	Date   Date `json:"date"`
	Amount int  `json:"amount"`
}

// Member is a registered reader. Field order matches the persisted file.
type Member struct {
	Name          string    `json:"name"`
	FatherName    string    `json:"father_name"`
	Address       string    `json:"address"`
	Email         string    `json:"email"`
	Contact       string    `json:"contact"`
	SeatNo        string    `json:"seatno"`
	AdmissionDate Date      `json:"admission_date"`
	LastPayment   Date      `json:"last_payment"`
	Payments      []Payment `json:"payments"`
}

// Dataset maps member code to member record
type Dataset map[string]*Member

// Codes returns the member codes in ascending order
func (ds Dataset) Codes() []string {
	codes := make([]string, 0, len(ds))
	for code := range ds {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Validate checks that a loaded record has every field the registry relies on
func (m *Member) Validate() error {
	if m == nil {
		return fmt.Errorf("record is null")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is missing")
	}
	if strings.TrimSpace(m.FatherName) == "" {
		return fmt.Errorf("father_name is missing")
	}
	if strings.TrimSpace(m.Contact) == "" {
		return fmt.Errorf("contact is missing")
	}
	if m.AdmissionDate.IsZero() {
		return fmt.Errorf("admission_date is missing")
	}
	if m.LastPayment.IsZero() {
		return fmt.Errorf("last_payment is missing")
	}
	for i, p := range m.Payments {
		if p.Date.IsZero() {
			return fmt.Errorf("payments[%d].date is missing", i)
		}
		if p.Amount <= 0 {
			return fmt.Errorf("payments[%d].amount must be positive", i)
		}
	}
	return nil
}

// Validate checks every record in the dataset
func (ds Dataset) Validate() error {
	for _, code := range ds.Codes() {
		if code == "" {
			return fmt.Errorf("empty member code")
		}
		if err := ds[code].Validate(); err != nil {
			return fmt.Errorf("member %s: %w", code, err)
		}
	}
	return nil
}
