package controllers

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"readerspace-backend/models"
	"readerspace-backend/services"
)

type DashboardOverview struct {
	TotalMembers   int             `json:"totalMembers"`
	NewMembers     int             `json:"newMembers"` // admitted this month
	MonthlyRevenue int             `json:"monthlyRevenue"`
	OverdueMembers int             `json:"overdueMembers"`
	TotalDue       int             `json:"totalDue"`
	RecentPayments []RecentPayment `json:"recentPayments"`
	LongestOverdue []OverdueMember `json:"longestOverdue"`
}

type RecentPayment struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Amount   int    `json:"amount"`
	PaidDate string `json:"paidDate"` // e.g. "Today", "Yesterday"
}

type OverdueMember struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	MonthsOverdue int    `json:"monthsOverdue"`
	DueAmount     int    `json:"dueAmount"`
}

// DashboardController serves the front desk overview
type DashboardController struct {
	Service *services.MembershipService
}

// GetDashboardOverview summarizes members, dues and recent payments as of today.
// No reminders are sent from here.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	today := dc.Service.Registry().Today()

	overview, err := dc.Service.Overview(c.Request.Context(), today)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildOverview(today, overview.Pending, overview.Rows))
}

func buildOverview(today models.Date, pending []services.PendingEntry, rows []services.ReportRow) DashboardOverview {
	overview := DashboardOverview{
		TotalMembers:   len(pending),
		RecentPayments: []RecentPayment{},
		LongestOverdue: []OverdueMember{},
	}

	for _, entry := range pending {
		if entry.Member != nil && sameMonth(entry.Member.AdmissionDate, today) {
			overview.NewMembers++
		}
		if !entry.Overdue() {
			continue
		}
		overview.OverdueMembers++
		overview.TotalDue += entry.DueAmount
		overview.LongestOverdue = append(overview.LongestOverdue, OverdueMember{
			Code:          entry.Code,
			Name:          entry.Name,
			MonthsOverdue: entry.MonthsOverdue,
			DueAmount:     entry.DueAmount,
		})
	}
	sort.SliceStable(overview.LongestOverdue, func(i, j int) bool {
		return overview.LongestOverdue[i].MonthsOverdue > overview.LongestOverdue[j].MonthsOverdue
	})
	if len(overview.LongestOverdue) > 5 {
		overview.LongestOverdue = overview.LongestOverdue[:5]
	}

	for _, row := range rows {
		if sameMonth(row.PaymentDate, today) && !row.PaymentDate.After(today.Time) {
			overview.MonthlyRevenue += row.Amount
		}
	}

	// Recent payments (last 3 members to pay)
	recent := append([]services.ReportRow(nil), rows...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PaymentDate.After(recent[j].PaymentDate.Time)
	})
	seen := make(map[string]bool)
	for _, row := range recent {
		if seen[row.Code] {
			continue
		}
		seen[row.Code] = true
		overview.RecentPayments = append(overview.RecentPayments, RecentPayment{
			Code:     row.Code,
			Name:     row.Name,
			Amount:   row.Amount,
			PaidDate: daysAgoLabel(row.PaymentDate, today),
		})
		if len(overview.RecentPayments) >= 3 {
			break
		}
	}

	return overview
}

func sameMonth(a, b models.Date) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// daysAgoLabel renders "Today", "Yesterday" or "N days ago"
func daysAgoLabel(day, today models.Date) string {
	daysAgo := int(today.Sub(day.Time).Hours() / 24)
	switch daysAgo {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", daysAgo)
	}
}
