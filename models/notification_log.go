// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationLog struct {
	ID           uuid.UUID `json:"id"`
	Contact      string    `json:"contact"`
	Message      string    `json:"message"`
	Status       string    `json:"status"` // sent, failed, skipped
	ErrorMessage string    `json:"errorMessage,omitempty"`
	Channel      string    `json:"channel"` // sms
	SentAt       time.Time `json:"sentAt"`
}

const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)
