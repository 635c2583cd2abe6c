// controllers/report.go
package controllers

import (
	"bytes"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"readerspace-backend/services"
	"readerspace-backend/utils"
)

const (
	csvReportName  = "library_report.csv"
	xlsxReportName = "library_report.xlsx"
	xlsxMimeType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportController handles exports and revenue summaries
type ReportController struct {
	Service *services.MembershipService
}

// RevenueSummary represents collected fees per period
type RevenueSummary struct {
	CurrentMonthRevenue   int             `json:"currentMonthRevenue"`
	MonthGrowth           float64         `json:"monthGrowth"`
	CurrentQuarterRevenue int             `json:"currentQuarterRevenue"`
	QuarterGrowth         float64         `json:"quarterGrowth"`
	CurrentYearRevenue    int             `json:"currentYearRevenue"`
	YearGrowth            float64         `json:"yearGrowth"`
	TopMembers            []MemberSummary `json:"topMembers"`
	QuickStats            QuickStatistics `json:"quickStats"`
}

type MemberSummary struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Payments int    `json:"payments"`
	Paid     int    `json:"paid"`
}

type QuickStatistics struct {
	TotalMembers     int     `json:"totalMembers"`
	TotalPayments    int     `json:"totalPayments"`
	TotalCollected   int     `json:"totalCollected"`
	AvgPaymentAmount float64 `json:"avgPaymentAmount"`
}

// DownloadCSV returns the payment report as CSV
func (rc *ReportController) DownloadCSV(c *gin.Context) {
	rows, err := rc.Service.Report(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteCSV(&buf, rows); err != nil {
		log.Printf("[ERROR] CSV report: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build CSV report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+csvReportName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// DownloadXLSX returns the payment report as a spreadsheet
func (rc *ReportController) DownloadXLSX(c *gin.Context) {
	rows, err := rc.Service.Report(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteXLSX(&buf, rows); err != nil {
		log.Printf("[ERROR] XLSX report: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build spreadsheet report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+xlsxReportName+`"`)
	c.Data(http.StatusOK, xlsxMimeType, buf.Bytes())
}

// GetReportRows returns the flattened report as JSON
func (rc *ReportController) GetReportRows(c *gin.Context) {
	rows, err := rc.Service.Report(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	if rows == nil {
		rows = []services.ReportRow{}
	}

	c.JSON(http.StatusOK, rows)
}

// GetRevenueSummary returns collected fees this month, quarter and year with
// growth against the previous period
func (rc *ReportController) GetRevenueSummary(c *gin.Context) {
	rows, err := rc.Service.Report(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	now := rc.Service.Registry().Today().Time
	c.JSON(http.StatusOK, rc.summarize(rows, now))
}

func (rc *ReportController) summarize(rows []services.ReportRow, now time.Time) RevenueSummary {
	currentYear, currentMonth, _ := now.Date()
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, now.Location())
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue := rc.getRevenue(rows, firstOfMonth, lastOfMonth)
	lastMonthRevenue := rc.getRevenue(rows, firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1))

	quarterStart := rc.getQuarterStart(now)
	currentQuarterRevenue := rc.getRevenue(rows, quarterStart, rc.getQuarterEnd(now))
	lastQuarterStart := quarterStart.AddDate(0, -3, 0)
	lastQuarterRevenue := rc.getRevenue(rows, lastQuarterStart, rc.getQuarterEnd(lastQuarterStart))

	currentYearRevenue := rc.getRevenue(rows,
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, now.Location()),
		time.Date(currentYear, 12, 31, 0, 0, 0, 0, now.Location()))
	lastYearRevenue := rc.getRevenue(rows,
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, now.Location()),
		time.Date(currentYear-1, 12, 31, 0, 0, 0, 0, now.Location()))

	return RevenueSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TopMembers:            rc.getTopMembers(rows, 4),
		QuickStats:            rc.getQuickStatistics(rows),
	}
}

// Helper functions for reports

// getRevenue sums payments dated within [start, end], both inclusive days
func (rc *ReportController) getRevenue(rows []services.ReportRow, start, end time.Time) int {
	start = utils.BeginningOfDay(start)
	end = utils.BeginningOfDay(end)
	total := 0
	for _, row := range rows {
		day := time.Date(row.PaymentDate.Year(), row.PaymentDate.Month(), row.PaymentDate.Day(), 0, 0, 0, 0, start.Location())
		if !day.Before(start) && !day.After(end) {
			total += row.Amount
		}
	}
	return total
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous int) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (float64(current-previous) / float64(previous)) * 100
}

func (rc *ReportController) getTopMembers(rows []services.ReportRow, limit int) []MemberSummary {
	byCode := map[string]*MemberSummary{}
	for _, row := range rows {
		summary, ok := byCode[row.Code]
		if !ok {
			summary = &MemberSummary{Code: row.Code, Name: row.Name}
			byCode[row.Code] = summary
		}
		summary.Payments++
		summary.Paid += row.Amount
	}

	members := make([]MemberSummary, 0, len(byCode))
	for _, summary := range byCode {
		members = append(members, *summary)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Paid != members[j].Paid {
			return members[i].Paid > members[j].Paid
		}
		return members[i].Code < members[j].Code
	})

	if len(members) > limit {
		members = members[:limit]
	}
	return members
}

func (rc *ReportController) getQuickStatistics(rows []services.ReportRow) QuickStatistics {
	var stats QuickStatistics

	members := map[string]bool{}
	for _, row := range rows {
		members[row.Code] = true
		stats.TotalCollected += row.Amount
	}
	stats.TotalMembers = len(members)
	stats.TotalPayments = len(rows)

	if stats.TotalPayments > 0 {
		stats.AvgPaymentAmount = float64(stats.TotalCollected) / float64(stats.TotalPayments)
	}

	return stats
}
