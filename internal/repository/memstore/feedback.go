package memstore

import (
	"context"

	"clientbook/internal/model"
)

type feedbackRepo struct{ s *Store }

func (r *feedbackRepo) Create(ctx context.Context, f *model.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("feedback.Create"); err != nil {
		return err
	}
	f.SetID(newID())
	f.SetCreatedAt(r.s.stamp())
	cp := *f
	r.s.feedback = append(r.s.feedback, &cp)
	return nil
}

// FindAll returns newest first; entries are appended in creation order.
func (r *feedbackRepo) FindAll(ctx context.Context) ([]*model.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("feedback.FindAll"); err != nil {
		return nil, err
	}
	out := make([]*model.Feedback, 0, len(r.s.feedback))
	for i := len(r.s.feedback) - 1; i >= 0; i-- {
		cp := *r.s.feedback[i]
		out = append(out, &cp)
	}
	return out, nil
}

type reminderRepo struct{ s *Store }

func (r *reminderRepo) MarkSent(ctx context.Context, entry *model.ReminderLog) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("reminders.MarkSent"); err != nil {
		return false, err
	}
	if _, ok := r.s.reminders[entry.Key]; ok {
		return false, nil
	}
	cp := *entry
	r.s.reminders[entry.Key] = &cp
	return true, nil
}

func (r *reminderRepo) Release(ctx context.Context, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("reminders.Release"); err != nil {
		return err
	}
	delete(r.s.reminders, key)
	return nil
}
