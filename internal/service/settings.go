package service

import (
	"context"
	"strings"

	"clientbook/internal/apperr"
	"clientbook/internal/auth"
	"clientbook/internal/model"
	"clientbook/internal/repository"
	"clientbook/pkg/util"
)

// SettingsService is the settings store: one record per user.
type SettingsService struct {
	repo repository.ISettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repository.ISettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the user's settings, or nil for a user who has none yet.
func (s *SettingsService) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	st, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeFailure(apperr.ErrSettingsUnavailable, "settings", "Get", err)
	}
	return st, nil
}

// TeamOf returns the user's team pointer, "" when there is none.
func (s *SettingsService) TeamOf(ctx context.Context, userID string) (string, error) {
	st, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return st.Team(), nil
}

// Save merge-writes the supplied fields. Fields absent from patch keep their
// stored values. The e-mail is only written from the sign-in identity, so any
// Email in patch is dropped; invite lookups resolve users by it.
func (s *SettingsService) Save(ctx context.Context, userID string, patch *model.SettingsPatch) error {
	if patch == nil {
		return nil
	}
	patch.Email = nil
	return s.merge(ctx, userID, patch)
}

func (s *SettingsService) merge(ctx context.Context, userID string, patch *model.SettingsPatch) error {
	if patch.Email != nil {
		patch.Email = model.Ptr(util.NormalizeEmail(*patch.Email))
	}
	if patch.CompanyName != nil {
		patch.CompanyName = model.Ptr(strings.TrimSpace(*patch.CompanyName))
	}
	if err := util.ValidateStruct(patch); err != nil {
		return err
	}
	if err := s.repo.Merge(ctx, userID, patch); err != nil {
		return storeFailure(apperr.ErrSettingsUnavailable, "settings", "Save", err)
	}
	return nil
}

// EnsureExists seeds the settings of id from its display name and e-mail
// unless a record already exists. It reports whether one was created.
func (s *SettingsService) EnsureExists(ctx context.Context, id auth.Identity) (bool, error) {
	if id.UID == "" {
		return false, apperr.Invalid("uid", "is required")
	}
	seed := &model.UserSettings{UserID: id.UID}
	if name := strings.TrimSpace(id.Name); name != "" {
		seed.Name = model.Ptr(name)
	}
	if email := util.NormalizeEmail(id.Email); email != "" {
		seed.Email = model.Ptr(email)
	}
	created, err := s.repo.CreateIfAbsent(ctx, seed)
	if err != nil {
		return false, storeFailure(apperr.ErrSettingsUnavailable, "settings", "EnsureExists", err)
	}
	return created, nil
}

// Register writes the profile captured by the sign-up form.
func (s *SettingsService) Register(ctx context.Context, id auth.Identity, req *model.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateStruct(req); err != nil {
		return err
	}
	patch := &model.SettingsPatch{
		Name:        model.Ptr(req.Name),
		AccountType: model.Ptr(req.AccountType),
	}
	if email := util.NormalizeEmail(id.Email); email != "" {
		patch.Email = model.Ptr(email)
	}
	return s.merge(ctx, id.UID, patch)
}

// All returns every settings record.
func (s *SettingsService) All(ctx context.Context) ([]*model.UserSettings, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(apperr.ErrSettingsUnavailable, "settings", "All", err)
	}
	return all, nil
}
