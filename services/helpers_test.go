package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"readerspace-backend/models"
)

// memoryStore keeps a serialized copy of the dataset so tests see exactly
// what a real store would have persisted
type memoryStore struct {
	mu      sync.Mutex
	data    []byte
	loadErr error
	saveErr error
	saves   int
	loads   int
}

func (m *memoryStore) Load(ctx context.Context) (models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	ds := models.Dataset{}
	if m.data == nil {
		return ds, nil
	}
	if err := json.Unmarshal(m.data, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (m *memoryStore) Save(ctx context.Context, ds models.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}

func (m *memoryStore) snapshot(t *testing.T) models.Dataset {
	t.Helper()
	ds, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	return ds
}

type sentMessage struct {
	Contact string
	Message string
}

// recordingNotifier captures notifications instead of sending them
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (r *recordingNotifier) Notify(ctx context.Context, contact, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMessage{Contact: contact, Message: message})
}

func (r *recordingNotifier) messages() []sentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentMessage(nil), r.sent...)
}

// fakeClock is a settable clock for the registry
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(year int, month time.Month, day int) *fakeClock {
	return &fakeClock{now: time.Date(year, month, day, 10, 30, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(year int, month time.Month, day int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.Date(year, month, day, 10, 30, 0, 0, time.Local)
}

func ashaInput() RegisterInput {
	return RegisterInput{
		Name:       "Asha",
		FatherName: "Ram",
		Address:    "12 MG Road",
		Email:      "asha@example.com",
		Contact:    "+911234567890",
		SeatNo:     "A1",
	}
}
