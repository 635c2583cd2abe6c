package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"readerspace-backend/models"
	"readerspace-backend/store"
)

// MembershipService runs one operation at a time: load the dataset, apply the
// registry rules, save the whole dataset, then notify. Processes sharing the
// same store are not coordinated; the last save wins.
type MembershipService struct {
	mu       sync.Mutex
	store    store.Store
	registry *Registry
	notifier Notifier
}

func NewMembershipService(st store.Store, registry *Registry, notifier Notifier) *MembershipService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &MembershipService{
		store:    st,
		registry: registry,
		notifier: notifier,
	}
}

func (s *MembershipService) Registry() *Registry {
	return s.registry
}

// Register adds a member and sends the welcome message. A storage error is
// returned as is; the registration must then be treated as not saved.
func (s *MembershipService) Register(ctx context.Context, in RegisterInput) (MemberEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return MemberEntry{}, err
	}

	code, err := s.registry.Register(ds, in)
	if err != nil {
		return MemberEntry{}, err
	}
	member := ds[code]

	if err := s.store.Save(ctx, ds); err != nil {
		return MemberEntry{}, fmt.Errorf("register %s: %w", code, err)
	}
	log.Printf("Registered member %s (%s)", code, member.Name)

	s.notifier.Notify(ctx, member.Contact, welcomeMessage(member.Name, code, member.AdmissionDate, s.registry.MonthlyFee()))
	return MemberEntry{Code: code, Member: member}, nil
}

// Lookup returns the member with the given code
func (s *MembershipService) Lookup(ctx context.Context, code string) (MemberEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return MemberEntry{}, err
	}
	member, err := s.registry.Lookup(ds, code)
	if err != nil {
		return MemberEntry{}, err
	}
	return MemberEntry{Code: code, Member: member}, nil
}

func (s *MembershipService) List(ctx context.Context) ([]MemberEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.registry.List(ds), nil
}

// PendingPayments reports every member's dues as of asOf. When notify is set,
// each overdue member gets a reminder.
func (s *MembershipService) PendingPayments(ctx context.Context, asOf models.Date, notify bool) ([]PendingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.registry.PendingReport(ds, asOf)
	if notify {
		for _, entry := range entries {
			if !entry.Overdue() {
				continue
			}
			s.notifier.Notify(ctx, entry.Contact, overdueMessage(entry.Name, entry.MonthsOverdue, entry.DueAmount))
		}
	}
	return entries, nil
}

// PaymentResult is the member after a payment together with the payment itself
type PaymentResult struct {
	MemberEntry
	Payment models.Payment `json:"payment"`
}

// RecordPayment books months of fees for the member dated today
func (s *MembershipService) RecordPayment(ctx context.Context, code string, months int) (PaymentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return PaymentResult{}, err
	}

	member, err := s.registry.Lookup(ds, code)
	if err != nil {
		return PaymentResult{}, err
	}
	payment, err := s.registry.RecordPayment(member, months, s.registry.Today())
	if err != nil {
		return PaymentResult{}, err
	}

	if err := s.store.Save(ctx, ds); err != nil {
		return PaymentResult{}, fmt.Errorf("payment for %s: %w", code, err)
	}
	log.Printf("Recorded payment of %d for member %s", payment.Amount, code)

	s.notifier.Notify(ctx, member.Contact, paymentMessage(member.Name, payment.Amount))
	return PaymentResult{
		MemberEntry: MemberEntry{Code: code, Member: member},
		Payment:     payment,
	}, nil
}

// Report flattens the dataset for export
func (s *MembershipService) Report(ctx context.Context) ([]ReportRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Flatten(ds), nil
}

// Overview is the pending report and the flattened payments taken from one
// load of the dataset
type Overview struct {
	Pending []PendingEntry
	Rows    []ReportRow
}

// Overview builds both views as of asOf without sending reminders
func (s *MembershipService) Overview(ctx context.Context, asOf models.Date) (Overview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Pending: s.registry.PendingReport(ds, asOf),
		Rows:    Flatten(ds),
	}, nil
}
