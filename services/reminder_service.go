// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// ReminderScheduler periodically runs the pending payments check with
// notifications turned on
type ReminderScheduler struct {
	svc  *MembershipService
	spec string
	cron *cron.Cron
}

func NewReminderScheduler(svc *MembershipService, spec string) *ReminderScheduler {
	return &ReminderScheduler{
		svc:  svc,
		spec: spec,
		cron: cron.New(),
	}
}

// Start registers the job and starts the cron runner
func (s *ReminderScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.SendPendingReminders(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	log.Printf("Reminder scheduler started (%s)", s.spec)
	return nil
}

// Stop waits for a running job to finish
func (s *ReminderScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// SendPendingReminders notifies every overdue member as of today and returns
// how many were overdue
func (s *ReminderScheduler) SendPendingReminders(ctx context.Context) int {
	log.Println("Starting pending payment reminders...")

	entries, err := s.svc.PendingPayments(ctx, s.svc.Registry().Today(), true)
	if err != nil {
		log.Printf("Failed to load members for reminders: %v", err)
		return 0
	}

	overdue := 0
	for _, entry := range entries {
		if entry.Overdue() {
			overdue++
		}
	}

	log.Printf("Pending payment reminders completed: %d of %d members overdue", overdue, len(entries))
	return overdue
}
