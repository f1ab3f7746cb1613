package memstore

import (
	"context"
	"sort"

	"clientbook/internal/model"
)

type settingsRepo struct{ s *Store }

func copySettings(in *model.UserSettings) *model.UserSettings {
	if in == nil {
		return nil
	}
	out := &model.UserSettings{UserID: in.UserID}
	(&model.SettingsPatch{
		Name:              in.Name,
		Email:             in.Email,
		CompanyName:       in.CompanyName,
		Timezone:          in.Timezone,
		AccountType:       in.AccountType,
		NotificationHours: in.NotificationHours,
		TeamID:            in.TeamID,
	}).ApplyTo(out)
	return out
}

func (r *settingsRepo) FindByID(ctx context.Context, userID string) (*model.UserSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("settings.FindByID"); err != nil {
		return nil, err
	}
	return copySettings(r.s.settings[userID]), nil
}

func (r *settingsRepo) FindByEmail(ctx context.Context, email string) (*model.UserSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("settings.FindByEmail"); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(r.s.settings))
	for id := range r.s.settings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if st := r.s.settings[id]; st.EmailAddress() == email {
			return copySettings(st), nil
		}
	}
	return nil, nil
}

func (r *settingsRepo) Merge(ctx context.Context, userID string, patch *model.SettingsPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("settings.Merge"); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}
	st, ok := r.s.settings[userID]
	if !ok {
		st = &model.UserSettings{UserID: userID}
		r.s.settings[userID] = st
	}
	patch.ApplyTo(st)
	return nil
}

func (r *settingsRepo) CreateIfAbsent(ctx context.Context, in *model.UserSettings) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("settings.CreateIfAbsent"); err != nil {
		return false, err
	}
	if _, ok := r.s.settings[in.UserID]; ok {
		return false, nil
	}
	r.s.settings[in.UserID] = copySettings(in)
	return true, nil
}

func (r *settingsRepo) List(ctx context.Context) ([]*model.UserSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("settings.List"); err != nil {
		return nil, err
	}
	out := make([]*model.UserSettings, 0, len(r.s.settings))
	for _, st := range r.s.settings {
		out = append(out, copySettings(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
