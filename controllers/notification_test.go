package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readerspace-backend/models"
)

func TestGetNotifications(t *testing.T) {
	ts := newTestServer(t, "")

	w := ts.do(http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	ts.history.Add(models.NotificationLog{Contact: "+911234567890", Message: "first", Status: models.NotificationSent, Channel: "sms", SentAt: time.Now()})
	ts.history.Add(models.NotificationLog{Contact: "+911234567890", Message: "second", Status: models.NotificationFailed, Channel: "sms", SentAt: time.Now()})

	w = ts.do(http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var logs []models.NotificationLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, "second", logs[0].Message)
	assert.Equal(t, models.NotificationFailed, logs[0].Status)
}
