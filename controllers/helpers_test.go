package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"readerspace-backend/services"
	"readerspace-backend/store"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(ctx context.Context, contact, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, contact+": "+message)
}

func (r *recordingNotifier) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

type testServer struct {
	router   *gin.Engine
	notifier *recordingNotifier
	history  *services.NotificationHistory
	now      time.Time
}

func (ts *testServer) setDate(year int, month time.Month, day int) {
	ts.now = time.Date(year, month, day, 11, 0, 0, 0, time.Local)
}

func newTestServer(t *testing.T, dataFile string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		notifier: &recordingNotifier{},
		history:  services.NewNotificationHistory(10),
	}
	ts.setDate(2025, time.January, 10)

	if dataFile == "" {
		dataFile = filepath.Join(t.TempDir(), "library_users.json")
	}
	registry := services.NewRegistry(500, func() time.Time { return ts.now })
	svc := services.NewMembershipService(store.NewJSONStore(dataFile), registry, ts.notifier)

	memberController := MemberController{Service: svc}
	paymentController := PaymentController{Service: svc}
	reportController := ReportController{Service: svc}
	dashboardController := DashboardController{Service: svc}
	notificationController := NotificationController{History: ts.history}

	r := gin.New()
	r.POST("/api/members", memberController.RegisterMember)
	r.GET("/api/members", memberController.GetMembers)
	r.GET("/api/members/:code", memberController.GetMember)
	r.POST("/api/members/:code/payments", paymentController.RecordPayment)
	r.GET("/api/payments/pending", paymentController.GetPendingPayments)
	r.GET("/api/reports/members.csv", reportController.DownloadCSV)
	r.GET("/api/reports/members.xlsx", reportController.DownloadXLSX)
	r.GET("/api/reports/rows", reportController.GetReportRows)
	r.GET("/api/reports/summary", reportController.GetRevenueSummary)
	r.GET("/api/dashboard", dashboardController.GetDashboardOverview)
	r.GET("/api/notifications", notificationController.GetNotifications)
	ts.router = r

	return ts
}

func (ts *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (ts *testServer) registerAsha(t *testing.T) {
	t.Helper()
	w := ts.do(http.MethodPost, "/api/members", RegisterMemberInput{
		Name:       "Asha",
		FatherName: "Ram",
		Address:    "12 MG Road",
		Email:      "asha@example.com",
		Contact:    "+911234567890",
		SeatNo:     "A1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
