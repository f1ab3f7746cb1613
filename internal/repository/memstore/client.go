package memstore

import (
	"context"

	"clientbook/internal/model"
)

type clientRepo struct{ s *Store }

func copyClient(in *model.Client) *model.Client {
	if in == nil {
		return nil
	}
	out := *in
	out.Interests = append([]string(nil), in.Interests...)
	if in.TeamID != nil {
		out.TeamID = model.Ptr(*in.TeamID)
	}
	return &out
}

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("clients.Create"); err != nil {
		return err
	}
	c.SetID(newID())
	c.SetCreatedAt(r.s.stamp())
	r.s.clients[c.ID.Hex()] = copyClient(c)
	return nil
}

func (r *clientRepo) FindByID(ctx context.Context, id string) (*model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("clients.FindByID"); err != nil {
		return nil, err
	}
	return copyClient(r.s.clients[id]), nil
}

func (r *clientRepo) FindByTeam(ctx context.Context, teamID string) ([]*model.Client, error) {
	return r.filter("clients.FindByTeam", func(c *model.Client) bool {
		return c.TeamID != nil && *c.TeamID == teamID
	})
}

func (r *clientRepo) FindByUser(ctx context.Context, userID string) ([]*model.Client, error) {
	return r.filter("clients.FindByUser", func(c *model.Client) bool {
		return c.UserID == userID
	})
}

// filter returns matches in map order, like an unsorted store query.
func (r *clientRepo) filter(op string, keep func(*model.Client) bool) ([]*model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault(op); err != nil {
		return nil, err
	}
	out := []*model.Client{}
	for _, c := range r.s.clients {
		if keep(c) {
			out = append(out, copyClient(c))
		}
	}
	return out, nil
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("clients.Update"); err != nil {
		return false, err
	}
	cur, ok := r.s.clients[c.ID.Hex()]
	if !ok {
		return false, nil
	}
	next := copyClient(c)
	next.ID = cur.ID
	next.UserID = cur.UserID
	next.TeamID = cur.TeamID
	next.CreatedAt = cur.CreatedAt
	r.s.clients[cur.ID.Hex()] = next
	return true, nil
}

func (r *clientRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("clients.Delete"); err != nil {
		return false, err
	}
	if _, ok := r.s.clients[id]; !ok {
		return false, nil
	}
	delete(r.s.clients, id)
	return true, nil
}
