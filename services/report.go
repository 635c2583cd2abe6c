package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"readerspace-backend/models"
)

const reportSheet = "Sheet1"

// ReportHeader names the report columns in order
var ReportHeader = []string{
	"Library Code",
	"Name",
	"Father's Name",
	"Address",
	"Contact",
	"Admission Date",
	"Payment Date",
	"Amount Paid",
}

// ReportRow is one payment with its member's details repeated
type ReportRow struct {
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	FatherName    string      `json:"father_name"`
	Address       string      `json:"address"`
	Contact       string      `json:"contact"`
	AdmissionDate models.Date `json:"admission_date"`
	PaymentDate   models.Date `json:"payment_date"`
	Amount        int         `json:"amount"`
}

func (r ReportRow) record() []string {
	return []string{
		r.Code,
		r.Name,
		r.FatherName,
		r.Address,
		r.Contact,
		r.AdmissionDate.String(),
		r.PaymentDate.String(),
		strconv.Itoa(r.Amount),
	}
}

// Flatten produces one row per payment, members in code order and payments in
// ledger order. A member without payments produces no rows.
func Flatten(ds models.Dataset) []ReportRow {
	var rows []ReportRow
	for _, code := range ds.Codes() {
		member := ds[code]
		if member == nil {
			continue
		}
		for _, payment := range member.Payments {
			rows = append(rows, ReportRow{
				Code:          code,
				Name:          member.Name,
				FatherName:    member.FatherName,
				Address:       member.Address,
				Contact:       member.Contact,
				AdmissionDate: member.AdmissionDate,
				PaymentDate:   payment.Date,
				Amount:        payment.Amount,
			})
		}
	}
	return rows
}

// WriteCSV writes the header and rows as CSV
func WriteCSV(w io.Writer, rows []ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the header and rows to a single-sheet workbook
func WriteXLSX(w io.Writer, rows []ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(ReportHeader))
	for i, h := range ReportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Code,
			row.Name,
			row.FatherName,
			row.Address,
			row.Contact,
			row.AdmissionDate.String(),
			row.PaymentDate.String(),
			row.Amount,
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}
