package service

import (
	"context"
	"log"
	"strings"

	"clientbook/internal/apperr"
	"clientbook/internal/auth"
	"clientbook/internal/model"
	"clientbook/internal/repository"
	"clientbook/pkg/util"
)

// Phases of a membership change, reported by apperr.InconsistencyError.
const (
	PhaseOwnerSettings  = "owner-settings"
	PhaseMemberSettings = "member-settings"
)

// TeamService is the team registry plus the owner-facing membership flows.
// A membership change writes the roster first and the member's settings
// pointer second; the two writes are not atomic.
type TeamService struct {
	teams    repository.ITeamRepository
	settings repository.ISettingsRepository
}

// NewTeamService creates a new team service
func NewTeamService(teams repository.ITeamRepository, settings repository.ISettingsRepository) *TeamService {
	return &TeamService{teams: teams, settings: settings}
}

// FindByEmail resolves a registered user for an invitation. The role is
// always member, whatever team the user is in.
func (s *TeamService) FindByEmail(ctx context.Context, email string) (*model.TeamMember, error) {
	st, err := s.settings.FindByEmail(ctx, util.NormalizeEmail(email))
	if err != nil {
		return nil, storeFailure(apperr.ErrSettingsUnavailable, "team", "FindByEmail", err)
	}
	if st == nil {
		return nil, nil
	}
	return &model.TeamMember{
		UID:   st.UserID,
		Email: st.EmailAddress(),
		Name:  st.DisplayName(),
		Role:  model.RoleMember,
	}, nil
}

// Create starts a team whose only member is its owner.
func (s *TeamService) Create(ctx context.Context, ownerUID, ownerEmail, ownerName string) (string, error) {
	if ownerUID == "" {
		return "", apperr.Invalid("ownerUid", "is required")
	}
	team := &model.Team{
		OwnerID: ownerUID,
		Members: []model.TeamMember{{
			UID:   ownerUID,
			Email: util.NormalizeEmail(ownerEmail),
			Name:  strings.TrimSpace(ownerName),
			Role:  model.RoleOwner,
		}},
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return "", storeFailure(apperr.ErrTeamUnavailable, "team", "Create", err)
	}
	log.Printf("[team] created %s for %s", team.ID.Hex(), ownerUID)
	return team.ID.Hex(), nil
}

// Get returns the team or apperr.ErrTeamNotFound.
func (s *TeamService) Get(ctx context.Context, teamID string) (*model.Team, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, storeFailure(apperr.ErrTeamUnavailable, "team", "Get", err)
	}
	if team == nil {
		return nil, apperr.ErrTeamNotFound
	}
	return team, nil
}

// AddMember appends member with the member role. It neither checks that the
// team exists nor fails on a uid already on the roster; it reports whether
// the roster changed.
func (s *TeamService) AddMember(ctx context.Context, teamID string, member model.TeamMember) (bool, error) {
	member.Role = model.RoleMember
	added, err := s.teams.AddMember(ctx, teamID, member)
	if err != nil {
		return false, storeFailure(apperr.ErrTeamUnavailable, "team", "AddMember", err)
	}
	return added, nil
}

// RemoveMember drops uid from the roster. Removing an absent uid is a no-op;
// a missing team is apperr.ErrTeamNotFound. The owner entry is never removed.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, uid string) error {
	found, err := s.teams.RemoveMember(ctx, teamID, uid)
	if err != nil {
		return storeFailure(apperr.ErrTeamUnavailable, "team", "RemoveMember", err)
	}
	if !found {
		return apperr.ErrTeamNotFound
	}
	return nil
}

// Current returns the team the user's settings point at.
func (s *TeamService) Current(ctx context.Context, uid string) (*model.Team, error) {
	teamID, err := s.teamOf(ctx, uid)
	if err != nil {
		return nil, err
	}
	if teamID == "" {
		return nil, apperr.ErrTeamNotFound
	}
	return s.Get(ctx, teamID)
}

// Lookup finds the user with email on behalf of owner, applying the same
// checks as Invite.
func (s *TeamService) Lookup(ctx context.Context, owner auth.Identity, email string) (*model.TeamMember, error) {
	target, _, _, err := s.prepareInvite(ctx, owner, email)
	if err != nil {
		return nil, err
	}
	return target, nil
}

// Invite adds the user with email to owner's team, creating the team on the
// first invitation, then points the member's settings at it.
func (s *TeamService) Invite(ctx context.Context, owner auth.Identity, email string) (*model.Team, error) {
	target, team, teamID, err := s.prepareInvite(ctx, owner, email)
	if err != nil {
		return nil, err
	}

	if team == nil {
		teamID, err = s.Create(ctx, owner.UID, owner.Email, owner.Name)
		if err != nil {
			return nil, err
		}
		if err := s.settings.Merge(ctx, owner.UID, &model.SettingsPatch{TeamID: model.Ptr(teamID)}); err != nil {
			return nil, s.inconsistent(teamID, owner.UID, PhaseOwnerSettings, err)
		}
	}

	if _, err := s.AddMember(ctx, teamID, *target); err != nil {
		return nil, err
	}
	if err := s.settings.Merge(ctx, target.UID, &model.SettingsPatch{TeamID: model.Ptr(teamID)}); err != nil {
		return nil, s.inconsistent(teamID, target.UID, PhaseMemberSettings, err)
	}
	log.Printf("[team] %s added %s to %s", owner.UID, target.UID, teamID)
	return s.Get(ctx, teamID)
}

// Remove takes uid off owner's team and clears the member's team pointer if
// it still points at this team.
func (s *TeamService) Remove(ctx context.Context, owner auth.Identity, uid string) (*model.Team, error) {
	team, err := s.Current(ctx, owner.UID)
	if err != nil {
		return nil, err
	}
	if !team.IsOwner(owner.UID) {
		return nil, apperr.ErrNotTeamOwner
	}
	if uid == team.OwnerID {
		return nil, apperr.ErrOwnerRemoval
	}
	teamID := team.ID.Hex()

	if err := s.RemoveMember(ctx, teamID, uid); err != nil {
		return nil, err
	}

	st, err := s.settings.FindByID(ctx, uid)
	if err == nil && st.Team() == teamID {
		err = s.settings.Merge(ctx, uid, &model.SettingsPatch{TeamID: model.Ptr("")})
	}
	if err != nil {
		return nil, s.inconsistent(teamID, uid, PhaseMemberSettings, err)
	}
	log.Printf("[team] %s removed %s from %s", owner.UID, uid, teamID)
	return s.Get(ctx, teamID)
}

// prepareInvite resolves the invitee and the owner's team. team is nil when
// the owner has none yet.
func (s *TeamService) prepareInvite(ctx context.Context, owner auth.Identity, email string) (*model.TeamMember, *model.Team, string, error) {
	req := model.InviteRequest{Email: util.NormalizeEmail(email)}
	if err := util.ValidateStruct(&req); err != nil {
		return nil, nil, "", err
	}
	if req.Email == util.NormalizeEmail(owner.Email) {
		return nil, nil, "", apperr.ErrSelfInvite
	}

	team, err := s.Current(ctx, owner.UID)
	switch {
	case apperr.IsNotFound(err):
		team = nil
	case err != nil:
		return nil, nil, "", err
	case !team.IsOwner(owner.UID):
		return nil, nil, "", apperr.ErrNotTeamOwner
	}

	target, err := s.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, "", err
	}
	if target == nil {
		return nil, nil, "", apperr.ErrUserNotFound
	}
	if target.UID == owner.UID {
		return nil, nil, "", apperr.ErrSelfInvite
	}

	teamID := ""
	if team != nil {
		teamID = team.ID.Hex()
		if _, ok := team.Member(target.UID); ok {
			return nil, nil, "", apperr.ErrAlreadyMember
		}
	}
	other, err := s.teamOf(ctx, target.UID)
	if err != nil {
		return nil, nil, "", err
	}
	if other != "" && other != teamID {
		return nil, nil, "", apperr.ErrMemberOfOtherTeam
	}
	return target, team, teamID, nil
}

func (s *TeamService) teamOf(ctx context.Context, uid string) (string, error) {
	st, err := s.settings.FindByID(ctx, uid)
	if err != nil {
		return "", storeFailure(apperr.ErrSettingsUnavailable, "team", "teamOf", err)
	}
	return st.Team(), nil
}

// inconsistent logs and reports a membership change whose roster write
// landed but whose settings write did not.
func (s *TeamService) inconsistent(teamID, uid, phase string, cause error) error {
	log.Printf("[team] INCONSISTENT team=%s uid=%s phase=%s: %v", teamID, uid, phase, cause)
	return apperr.NewInconsistency(teamID, uid, phase, cause)
}
