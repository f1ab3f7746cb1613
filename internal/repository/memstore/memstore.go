// Package memstore keeps every collection in process memory. It backs
// STORE_BACKEND=memory and the service and handler tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"clientbook/internal/model"
	"clientbook/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds all collections behind one lock.
type Store struct {
	mu        sync.Mutex
	settings  map[string]*model.UserSettings
	teams     map[string]*model.Team
	clients   map[string]*model.Client
	notes     map[string]*model.ClientNote
	feedback  []*model.Feedback
	reminders map[string]*model.ReminderLog
	mail      []*model.MailMessage

	faults map[string]error
	now    func() time.Time
	last   time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		settings:  make(map[string]*model.UserSettings),
		teams:     make(map[string]*model.Team),
		clients:   make(map[string]*model.Client),
		notes:     make(map[string]*model.ClientNote),
		reminders: make(map[string]*model.ReminderLog),
		faults:    make(map[string]error),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Settings:  &settingsRepo{s},
		Teams:     &teamRepo{s},
		Clients:   &clientRepo{s},
		Notes:     &noteRepo{s},
		Feedback:  &feedbackRepo{s},
		Reminders: &reminderRepo{s},
	}
}

// Fail makes the named operation (for example "settings.Merge") return err
// until cleared with a nil err.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

// SetClock replaces the time source used for creation timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.last = time.Time{}
}

// Enqueue appends to the in-memory mail queue.
func (s *Store) Enqueue(ctx context.Context, msg *model.MailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fault("mail.Enqueue"); err != nil {
		return err
	}
	cp := *msg
	s.mail = append(s.mail, &cp)
	return nil
}

// Mail returns a copy of the queued messages in order.
func (s *Store) Mail() []model.MailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MailMessage, len(s.mail))
	for i, m := range s.mail {
		out[i] = *m
	}
	return out
}

// NoteCount returns the number of stored notes across all clients.
func (s *Store) NoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// fault must be called with mu held.
func (s *Store) fault(op string) error {
	return s.faults[op]
}

// stamp returns a strictly increasing creation time with Mongo's
// millisecond precision. Called with mu held.
func (s *Store) stamp() time.Time {
	t := s.now().Truncate(time.Millisecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Millisecond)
	}
	s.last = t
	return t
}

func newID() primitive.ObjectID {
	return primitive.NewObjectID()
}
