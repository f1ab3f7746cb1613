package memstore

import (
	"context"

	"clientbook/internal/model"
)

type teamRepo struct{ s *Store }

func copyTeam(in *model.Team) *model.Team {
	if in == nil {
		return nil
	}
	out := *in
	out.Members = append([]model.TeamMember(nil), in.Members...)
	return &out
}

func (r *teamRepo) Create(ctx context.Context, t *model.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("teams.Create"); err != nil {
		return err
	}
	t.SetID(newID())
	t.SetCreatedAt(r.s.stamp())
	r.s.teams[t.ID.Hex()] = copyTeam(t)
	return nil
}

func (r *teamRepo) FindByID(ctx context.Context, id string) (*model.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("teams.FindByID"); err != nil {
		return nil, err
	}
	return copyTeam(r.s.teams[id]), nil
}

func (r *teamRepo) AddMember(ctx context.Context, teamID string, m model.TeamMember) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("teams.AddMember"); err != nil {
		return false, err
	}
	t, ok := r.s.teams[teamID]
	if !ok {
		return false, nil
	}
	if _, exists := t.Member(m.UID); exists {
		return false, nil
	}
	t.Members = append(t.Members, m)
	return true, nil
}

func (r *teamRepo) RemoveMember(ctx context.Context, teamID, uid string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("teams.RemoveMember"); err != nil {
		return false, err
	}
	t, ok := r.s.teams[teamID]
	if !ok {
		return false, nil
	}
	kept := t.Members[:0]
	for _, m := range t.Members {
		if m.UID == uid && m.Role != model.RoleOwner {
			continue
		}
		kept = append(kept, m)
	}
	t.Members = kept
	return true, nil
}
