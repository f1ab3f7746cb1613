package service

import (
	"context"
	"testing"

	"clientbook/internal/auth"
	"clientbook/internal/model"
	"clientbook/internal/notify"
	"clientbook/internal/repository/memstore"

	"github.com/google/uuid"
)

type testEnv struct {
	store    *memstore.Store
	settings *SettingsService
	teams    *TeamService
	clients  *ClientService
	feedback *FeedbackService
	insight  *InsightService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	repos := store.Repositories()
	mail := notify.NewDispatcher(store)
	settings := NewSettingsService(repos.Settings)
	clients := NewClientService(repos.Clients, repos.Notes, settings, mail)
	return &testEnv{
		store:    store,
		settings: settings,
		teams:    NewTeamService(repos.Teams, repos.Settings),
		clients:  clients,
		feedback: NewFeedbackService(repos.Feedback, mail, []string{"admin@example.com"}),
		insight:  NewInsightService(clients, settings),
	}
}

// newUser registers a user with settings and returns its identity.
func (e *testEnv) newUser(t *testing.T, name string) auth.Identity {
	t.Helper()
	id := auth.Identity{
		UID:   uuid.NewString(),
		Email: name + "-" + uuid.NewString()[:8] + "@example.com",
		Name:  name,
	}
	if _, err := e.settings.EnsureExists(context.Background(), id); err != nil {
		t.Fatalf("ensure %s: %v", name, err)
	}
	return id
}

func (e *testEnv) addClient(t *testing.T, uid, name string) *model.Client {
	t.Helper()
	c, err := e.clients.Add(context.Background(), uid, &model.ClientInput{Name: name, Email: name + "@clients.example.com"})
	if err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	return c
}

func clientIDs(cs []*model.Client) map[string]bool {
	out := make(map[string]bool, len(cs))
	for _, c := range cs {
		out[c.ID.Hex()] = true
	}
	return out
}
