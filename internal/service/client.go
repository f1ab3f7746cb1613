package service

import (
	"context"
	"log"
	"sort"
	"strings"

	"clientbook/internal/apperr"
	"clientbook/internal/model"
	"clientbook/internal/notify"
	"clientbook/internal/repository"
	"clientbook/pkg/timer"
	"clientbook/pkg/util"
)

// ClientService is the client repository: client records, their notes and
// the contact-client e-mail.
type ClientService struct {
	clients  repository.IClientRepository
	notes    repository.INoteRepository
	settings *SettingsService
	mail     *notify.Dispatcher
}

// NewClientService creates a new client service
func NewClientService(clients repository.IClientRepository, notes repository.INoteRepository, settings *SettingsService, mail *notify.Dispatcher) *ClientService {
	return &ClientService{clients: clients, notes: notes, settings: settings, mail: mail}
}

// Add creates a client owned by userID and stamped with the user's team at
// this moment. Later team changes do not move the record.
func (s *ClientService) Add(ctx context.Context, userID string, in *model.ClientInput) (*model.Client, error) {
	normalizeClientInput(in)
	if err := util.ValidateStruct(in); err != nil {
		return nil, err
	}
	teamID, err := s.settings.TeamOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := &model.Client{UserID: userID}
	in.Apply(c)
	c.Status = model.ClientStatusActive
	if teamID != "" {
		c.TeamID = model.Ptr(teamID)
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, storeFailure(apperr.ErrClientUnavailable, "clients", "Add", err)
	}
	return c, nil
}

// List returns the clients visible to userID, newest first: the whole team's
// clients when the user has a team, otherwise the user's own.
func (s *ClientService) List(ctx context.Context, userID string) ([]*model.Client, error) {
	defer timer.Track("clients.List")()

	teamID, err := s.settings.TeamOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []*model.Client
	if teamID != "" {
		out, err = s.clients.FindByTeam(ctx, teamID)
	} else {
		out, err = s.clients.FindByUser(ctx, userID)
	}
	if err != nil {
		return nil, storeFailure(apperr.ErrClientUnavailable, "clients", "List", err)
	}
	sortNewestFirst(out)
	return out, nil
}

// Get returns a client by id regardless of who can see it.
func (s *ClientService) Get(ctx context.Context, id string) (*model.Client, error) {
	if _, err := util.ParseID("clientId", id); err != nil {
		return nil, err
	}
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, storeFailure(apperr.ErrClientUnavailable, "clients", "Get", err)
	}
	if c == nil {
		return nil, apperr.ErrClientNotFound
	}
	return c, nil
}

// GetVisible returns the client only if it would appear in List for
// userID. Hidden clients are reported as not found.
func (s *ClientService) GetVisible(ctx context.Context, userID, id string) (*model.Client, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	teamID, err := s.settings.TeamOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(c, userID, teamID) {
		return nil, apperr.ErrClientNotFound
	}
	return c, nil
}

func visibleTo(c *model.Client, userID, teamID string) bool {
	if teamID != "" {
		return c.TeamID != nil && *c.TeamID == teamID
	}
	return c.UserID == userID
}

// Update overwrites the editable fields of a client. Id, owner, team and
// creation time are kept; an empty status keeps the stored one.
func (s *ClientService) Update(ctx context.Context, id string, in *model.ClientInput) (*model.Client, error) {
	normalizeClientInput(in)
	if err := util.ValidateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(c)
	ok, err := s.clients.Update(ctx, c)
	if err != nil {
		return nil, storeFailure(apperr.ErrClientUnavailable, "clients", "Update", err)
	}
	if !ok {
		return nil, apperr.ErrClientNotFound
	}
	return c, nil
}

// Delete removes a client's notes and then the client.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := util.ParseID("clientId", id); err != nil {
		return err
	}
	removed, err := s.notes.DeleteByClient(ctx, id)
	if err != nil {
		return storeFailure(apperr.ErrClientUnavailable, "clients", "Delete", err)
	}
	ok, err := s.clients.Delete(ctx, id)
	if err != nil {
		return storeFailure(apperr.ErrClientUnavailable, "clients", "Delete", err)
	}
	if !ok {
		return apperr.ErrClientNotFound
	}
	if removed > 0 {
		log.Printf("[clients] deleted %s with %d notes", id, removed)
	}
	return nil
}

// AddNote appends a note written by userID to an existing client.
func (s *ClientService) AddNote(ctx context.Context, clientID string, in *model.NoteInput, userID string) (*model.ClientNote, error) {
	in.Text = strings.TrimSpace(in.Text)
	if err := util.ValidateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	n := &model.ClientNote{ClientID: c.ID, Text: in.Text, UserID: userID}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, storeFailure(apperr.ErrClientUnavailable, "clients", "AddNote", err)
	}
	return n, nil
}

// ListNotes returns a client's notes, newest first.
func (s *ClientService) ListNotes(ctx context.Context, clientID string) ([]*model.ClientNote, error) {
	if _, err := util.ParseID("clientId", clientID); err != nil {
		return nil, err
	}
	notes, err := s.notes.FindByClient(ctx, clientID)
	if err != nil {
		return nil, storeFailure(apperr.ErrClientUnavailable, "clients", "ListNotes", err)
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })
	return notes, nil
}

// DeleteNote removes one note of a client.
func (s *ClientService) DeleteNote(ctx context.Context, clientID, noteID string) error {
	if _, err := util.ParseID("clientId", clientID); err != nil {
		return err
	}
	if _, err := util.ParseID("noteId", noteID); err != nil {
		return err
	}
	ok, err := s.notes.Delete(ctx, clientID, noteID)
	if err != nil {
		return storeFailure(apperr.ErrClientUnavailable, "clients", "DeleteNote", err)
	}
	if !ok {
		return apperr.ErrNoteNotFound
	}
	return nil
}

// Contact queues an e-mail to the client. Success means the message was
// accepted by the mail queue.
func (s *ClientService) Contact(ctx context.Context, clientID string, in *model.ContactInput) error {
	in.Subject = strings.TrimSpace(in.Subject)
	if err := util.ValidateStruct(in); err != nil {
		return err
	}
	c, err := s.Get(ctx, clientID)
	if err != nil {
		return err
	}
	html, err := notify.ContactHTML(in.Message)
	if err != nil {
		return apperr.Invalid("message", "cannot be rendered")
	}
	return s.mail.Enqueue(ctx, c.Email, in.Subject, html)
}

func normalizeClientInput(in *model.ClientInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = util.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	in.Nationality = strings.TrimSpace(in.Nationality)
}

// sortNewestFirst orders by creation time, descending. A zero creation time
// sorts last.
func sortNewestFirst(cs []*model.Client) {
	sort.SliceStable(cs, func(i, j int) bool {
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.After(cs[j].CreatedAt)
		}
		return cs[i].ID.Hex() > cs[j].ID.Hex()
	})
}
