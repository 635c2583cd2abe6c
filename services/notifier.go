// services/notifier.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"readerspace-backend/apperrors"
	"readerspace-backend/config"
	"readerspace-backend/models"
	"readerspace-backend/utils"
)

// Notifier delivers a text message on a best-effort basis. Implementations
// never return an error: a failed delivery must not affect the operation
// that triggered it. A cancelled ctx skips the delivery.
type Notifier interface {
	Notify(ctx context.Context, contact, message string)
}

// NoopNotifier is used when no SMS channel is configured
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, contact, message string) {}

// messageCreator is the part of the Twilio API the notifier uses
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier sends SMS through Twilio and records every attempt
type TwilioNotifier struct {
	api     messageCreator
	from    string
	history *NotificationHistory
}

func NewTwilioNotifier(cfg config.TwilioConfig, history *NotificationHistory) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioNotifier{
		api:     client.Api,
		from:    cfg.PhoneNumber,
		history: history,
	}
}

// NewNotifier returns a Twilio notifier when all credentials are present, and a no-op otherwise
func NewNotifier(cfg config.TwilioConfig, history *NotificationHistory) Notifier {
	if !cfg.Enabled() {
		log.Println("Twilio credentials not set, SMS notifications disabled")
		return NoopNotifier{}
	}
	log.Println("SMS notifications enabled")
	return NewTwilioNotifier(cfg, history)
}

func (n *TwilioNotifier) Notify(ctx context.Context, contact, message string) {
	entry := models.NotificationLog{
		ID:      uuid.New(),
		Contact: contact,
		Message: message,
		Channel: "sms",
		SentAt:  time.Now(),
	}

	if err := ctx.Err(); err != nil {
		log.Printf("[WARN] Skipping SMS to %s: %v", contact, err)
		entry.Status = models.NotificationSkipped
		entry.ErrorMessage = err.Error()
		n.history.Add(entry)
		return
	}

	if err := n.send(contact, message); err != nil {
		notifyErr := &apperrors.NotificationError{Contact: contact, Err: err}
		log.Printf("[WARN] %v", notifyErr)
		entry.Status = models.NotificationFailed
		entry.ErrorMessage = err.Error()
	} else {
		entry.Status = models.NotificationSent
	}

	n.history.Add(entry)
}

func (n *TwilioNotifier) send(contact, message string) (err error) {
	// the Twilio client is third-party code, keep a panic there from reaching the caller
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("twilio client panic: %v", r)
		}
	}()

	if !utils.ValidatePhone(contact) {
		return errors.New("invalid phone number")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(utils.CleanPhone(contact))
	params.SetFrom(n.from)
	params.SetBody(message)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", contact, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", contact)
	}
	return nil
}

// NotificationHistory keeps the most recent notification attempts in memory
type NotificationHistory struct {
	mu      sync.Mutex
	limit   int
	entries []models.NotificationLog
}

func NewNotificationHistory(limit int) *NotificationHistory {
	if limit <= 0 {
		limit = 100
	}
	return &NotificationHistory{limit: limit}
}

func (h *NotificationHistory) Add(entry models.NotificationLog) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Recent returns the recorded attempts, newest first
func (h *NotificationHistory) Recent() []models.NotificationLog {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]models.NotificationLog, 0, len(h.entries))
	for i := len(h.entries) - 1; i >= 0; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// Message texts sent to members

func welcomeMessage(name, code string, admitted models.Date, fee int) string {
	return fmt.Sprintf("Welcome %s! Your Library Code is %s. Admission Date: %s. First payment of ₹%d recorded.",
		name, code, admitted, fee)
}

func overdueMessage(name string, months, due int) string {
	return fmt.Sprintf("Dear %s, you have %d month(s) due. Total = ₹%d. Please pay soon.", name, months, due)
}

func paymentMessage(name string, amount int) string {
	return fmt.Sprintf("Payment received: ₹%d. Thank you %s! Next due will be next month.", amount, name)
}
