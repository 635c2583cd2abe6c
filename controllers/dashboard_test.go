package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readerspace-backend/models"
)

func TestGetDashboardOverview(t *testing.T) {
	ts := newTestServer(t, "")
	ts.registerAsha(t)
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/members",
		RegisterMemberInput{Name: "Ravi", FatherName: "Mohan", Contact: "+919876543210"}).Code)

	ts.setDate(2025, time.March, 15)
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/members/L2025001/payments", RecordPaymentInput{Months: 1}).Code)
	sentBefore := len(ts.notifier.sent())

	w := ts.do(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"totalMembers": 2,
		"newMembers": 0,
		"monthlyRevenue": 500,
		"overdueMembers": 1,
		"totalDue": 1000,
		"recentPayments": [
			{"code": "L2025001", "name": "Asha", "amount": 500, "paidDate": "Today"},
			{"code": "L2025002", "name": "Ravi", "amount": 500, "paidDate": "64 days ago"}
		],
		"longestOverdue": [
			{"code": "L2025002", "name": "Ravi", "monthsOverdue": 2, "dueAmount": 1000}
		]
	}`, w.Body.String())

	assert.Len(t, ts.notifier.sent(), sentBefore)
}

func TestGetDashboardOverviewEmpty(t *testing.T) {
	ts := newTestServer(t, "")

	w := ts.do(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"totalMembers": 0,
		"newMembers": 0,
		"monthlyRevenue": 0,
		"overdueMembers": 0,
		"totalDue": 0,
		"recentPayments": [],
		"longestOverdue": []
	}`, w.Body.String())
}

func TestDaysAgoLabel(t *testing.T) {
	today := models.DateOf(2025, time.March, 15)
	assert.Equal(t, "Today", daysAgoLabel(today, today))
	assert.Equal(t, "Yesterday", daysAgoLabel(models.DateOf(2025, time.March, 14), today))
	assert.Equal(t, "5 days ago", daysAgoLabel(models.DateOf(2025, time.March, 10), today))
}
