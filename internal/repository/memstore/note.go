package memstore

import (
	"context"
	"sort"

	"clientbook/internal/model"
)

type noteRepo struct{ s *Store }

func (r *noteRepo) Create(ctx context.Context, n *model.ClientNote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("notes.Create"); err != nil {
		return err
	}
	n.SetID(newID())
	n.SetCreatedAt(r.s.stamp())
	cp := *n
	r.s.notes[n.ID.Hex()] = &cp
	return nil
}

func (r *noteRepo) FindByClient(ctx context.Context, clientID string) ([]*model.ClientNote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("notes.FindByClient"); err != nil {
		return nil, err
	}
	out := []*model.ClientNote{}
	for _, n := range r.s.notes {
		if n.ClientID.Hex() == clientID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *noteRepo) Delete(ctx context.Context, clientID, noteID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("notes.Delete"); err != nil {
		return false, err
	}
	n, ok := r.s.notes[noteID]
	if !ok || n.ClientID.Hex() != clientID {
		return false, nil
	}
	delete(r.s.notes, noteID)
	return true, nil
}

func (r *noteRepo) DeleteByClient(ctx context.Context, clientID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("notes.DeleteByClient"); err != nil {
		return 0, err
	}
	var n int64
	for id, note := range r.s.notes {
		if note.ClientID.Hex() == clientID {
			delete(r.s.notes, id)
			n++
		}
	}
	return n, nil
}
