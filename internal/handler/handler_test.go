package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clientbook/internal/apperr"
	"clientbook/internal/auth"
	"clientbook/internal/middleware"
	"clientbook/internal/model"
	"clientbook/internal/notify"
	"clientbook/internal/repository/memstore"
	"clientbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	store  *memstore.Store
	tokens *auth.Verifier
}

func newTestAPI(t *testing.T, admins ...string) *testAPI {
	t.Helper()
	store := memstore.New()
	repos := store.Repositories()
	mail := notify.NewDispatcher(store)
	settings := service.NewSettingsService(repos.Settings)
	clients := service.NewClientService(repos.Clients, repos.Notes, settings, mail)
	feedback := service.NewFeedbackService(repos.Feedback, mail, admins)

	tokens, err := auth.NewVerifier("handler-test-secret", "clientbook", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	isAdmin := func(email string) bool {
		for _, a := range admins {
			if a == email {
				return true
			}
		}
		return false
	}

	sh := NewSettingsHandler(settings)
	ch := NewClientHandler(clients)
	th := NewTeamHandler(service.NewTeamService(repos.Teams, repos.Settings))
	fh := NewFeedbackHandler(feedback, isAdmin)
	ih := NewInsightHandler(service.NewInsightService(clients, settings))

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/health", Health)
	api := r.Group("/api")
	api.GET("/timezones", Timezones)
	api.GET("/interests", Interests)
	p := api.Group("")
	p.Use(middleware.AuthMiddleware(tokens))
	p.POST("/session", sh.Session)
	p.POST("/register", sh.Register)
	p.GET("/settings", sh.Get)
	p.PUT("/settings", sh.Save)
	p.GET("/clients", ch.List)
	p.POST("/clients", ch.Create)
	p.GET("/clients/:id", ch.Get)
	p.PUT("/clients/:id", ch.Update)
	p.DELETE("/clients/:id", ch.Delete)
	p.GET("/clients/:id/notes", ch.ListNotes)
	p.POST("/clients/:id/notes", ch.AddNote)
	p.DELETE("/clients/:id/notes/:noteId", ch.DeleteNote)
	p.POST("/clients/:id/contact", ch.Contact)
	p.GET("/team", th.Current)
	p.GET("/team/lookup", th.Lookup)
	p.POST("/team/members", th.Invite)
	p.DELETE("/team/members/:uid", th.Remove)
	p.POST("/feedback", fh.Submit)
	p.GET("/feedback", fh.List)
	p.GET("/calendar", ih.Calendar)
	p.GET("/analytics", ih.Analytics)
	p.GET("/dashboard", ih.Dashboard)

	return &testAPI{t: t, router: r, store: store, tokens: tokens}
}

// user signs a new identity in through POST /session.
func (a *testAPI) user(name string) auth.Identity {
	a.t.Helper()
	id := auth.Identity{UID: uuid.NewString(), Email: name + "-" + uuid.NewString()[:8] + "@example.com", Name: name}
	if w := a.do(id, http.MethodPost, "/api/session", nil); w.Code != http.StatusCreated {
		a.t.Fatalf("session for %s: %d %s", name, w.Code, w.Body.String())
	}
	return id
}

func (a *testAPI) do(id auth.Identity, method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if id.UID != "" {
		token, err := a.tokens.Issue(id)
		if err != nil {
			a.t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

// envelope decodes a model.Response whose data is T.
type envelope[T any] struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
	Data    T                 `json:"data"`
}

func TestRespondErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.ErrClientNotFound, http.StatusNotFound},
		{"validation", apperr.Invalid("email", "is required"), http.StatusBadRequest},
		{"conflict", apperr.ErrAlreadyMember, http.StatusConflict},
		{"forbidden", apperr.ErrNotTeamOwner, http.StatusForbidden},
		{"unavailable", apperr.Wrap(apperr.ErrClientUnavailable, "clients.List", errors.New("dial tcp 10.0.0.1")), http.StatusServiceUnavailable},
		{"inconsistent", apperr.NewInconsistency("t", "u", "member-settings", errors.New("x")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(c, tt.err)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if strings.Contains(w.Body.String(), "10.0.0.1") || strings.Contains(w.Body.String(), "boom") {
				t.Errorf("cause leaked: %s", w.Body.String())
			}
		})
	}
}

func TestPublicRoutes(t *testing.T) {
	api := newTestAPI(t)
	if w := api.do(auth.Identity{}, http.MethodGet, "/health", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"version"`) {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}
	w := api.do(auth.Identity{}, http.MethodGet, "/api/timezones", nil)
	zones := decode[[]model.Timezone](t, w)
	if w.Code != http.StatusOK || len(zones) != len(model.Timezones) {
		t.Errorf("timezones = %d, %d entries", w.Code, len(zones))
	}
	if interests := decode[[]string](t, api.do(auth.Identity{}, http.MethodGet, "/api/interests", nil)); len(interests) != 6 {
		t.Errorf("interests = %v", interests)
	}
	if w := api.do(auth.Identity{}, http.MethodGet, "/api/clients", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous clients = %d", w.Code)
	}
}

func TestSessionAndSettings(t *testing.T) {
	api := newTestAPI(t)
	ana := api.user("ana")

	if w := api.do(ana, http.MethodPost, "/api/session", nil); w.Code != http.StatusOK {
		t.Errorf("second session = %d", w.Code)
	}

	w := api.do(ana, http.MethodGet, "/api/settings", nil)
	view := decode[model.SettingsView](t, w)
	if view.EffectiveTimezone != "UTC" || view.EffectiveHours != 24 || view.UserSettings == nil || view.EmailAddress() != ana.Email {
		t.Errorf("settings = %s", w.Body.String())
	}

	w = api.do(ana, http.MethodPut, "/api/settings", map[string]interface{}{"timezone": "Mars/Olympus", "companyName": "A"})
	bad := decode[envelope[any]](t, w)
	if w.Code != http.StatusBadRequest || bad.Details["timezone"] == "" || bad.Details["companyName"] == "" {
		t.Errorf("invalid save = %d %s", w.Code, w.Body.String())
	}

	w = api.do(ana, http.MethodPut, "/api/settings", map[string]interface{}{"timezone": "Europe/Madrid", "teamId": "sneaky"})
	saved := decode[envelope[model.UserSettings]](t, w)
	if w.Code != http.StatusOK || saved.Data.TimezoneName() != "Europe/Madrid" || saved.Data.Team() != "" {
		t.Errorf("save = %d %s", w.Code, w.Body.String())
	}

	w = api.do(ana, http.MethodPost, "/api/register", model.RegisterRequest{Name: "Ana Ruiz", AccountType: model.AccountIndividual})
	reg := decode[envelope[model.UserSettings]](t, w)
	if w.Code != http.StatusCreated || reg.Data.DisplayName() != "Ana Ruiz" || reg.Data.TimezoneName() != "Europe/Madrid" {
		t.Errorf("register = %d %s", w.Code, w.Body.String())
	}

	w = api.do(ana, http.MethodPut, "/api/settings", map[string]interface{}{"email": "someone-else@example.com", "companyName": "Ruiz Studio"})
	if w.Code != http.StatusOK {
		t.Fatalf("save with email = %d %s", w.Code, w.Body.String())
	}
	view = decode[model.SettingsView](t, api.do(ana, http.MethodGet, "/api/settings", nil))
	if view.EmailAddress() != ana.Email || view.CompanyName == nil || *view.CompanyName != "Ruiz Studio" {
		t.Errorf("stored email = %q, company = %v", view.EmailAddress(), view.CompanyName)
	}
}

func TestClientLifecycle(t *testing.T) {
	api := newTestAPI(t)
	ana := api.user("ana")
	bob := api.user("bob")

	w := api.do(ana, http.MethodPost, "/api/clients", model.ClientInput{Name: "Lucia", Email: "lucia@example.com"})
	created := decode[envelope[model.Client]](t, w)
	if w.Code != http.StatusCreated || created.Data.Status != model.ClientStatusActive {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	path := "/api/clients/" + created.Data.ID.Hex()

	if w := api.do(bob, http.MethodGet, path, nil); w.Code != http.StatusNotFound {
		t.Errorf("stranger get = %d", w.Code)
	}
	if w := api.do(bob, http.MethodDelete, path, nil); w.Code != http.StatusNotFound {
		t.Errorf("stranger delete = %d", w.Code)
	}
	if w := api.do(ana, http.MethodGet, "/api/clients/nope", nil); w.Code != http.StatusBadRequest {
		t.Errorf("malformed id = %d", w.Code)
	}

	w = api.do(ana, http.MethodPut, path, model.ClientInput{Name: "Lucia Perez", Email: "lucia@example.com", Status: model.ClientStatusInactive})
	updated := decode[envelope[model.Client]](t, w)
	if w.Code != http.StatusOK || updated.Data.Name != "Lucia Perez" || updated.Data.UserID != ana.UID {
		t.Errorf("update = %d %s", w.Code, w.Body.String())
	}

	w = api.do(ana, http.MethodPost, path+"/notes", model.NoteInput{Text: "Prefers mornings"})
	note := decode[envelope[model.ClientNote]](t, w)
	if w.Code != http.StatusCreated || note.Data.UserID != ana.UID {
		t.Fatalf("add note = %d %s", w.Code, w.Body.String())
	}
	notes := decode[[]model.ClientNote](t, api.do(ana, http.MethodGet, path+"/notes", nil))
	if len(notes) != 1 || notes[0].Text != "Prefers mornings" {
		t.Errorf("notes = %+v", notes)
	}
	if w := api.do(ana, http.MethodDelete, path+"/notes/"+note.Data.ID.Hex(), nil); w.Code != http.StatusOK {
		t.Errorf("delete note = %d", w.Code)
	}
	if w := api.do(ana, http.MethodDelete, path+"/notes/"+note.Data.ID.Hex(), nil); w.Code != http.StatusNotFound {
		t.Errorf("delete note twice = %d", w.Code)
	}

	if w := api.do(ana, http.MethodPost, path+"/contact", model.ContactInput{Subject: "Hello", Message: "<b>hi</b>"}); w.Code != http.StatusAccepted {
		t.Errorf("contact = %d %s", w.Code, w.Body.String())
	}
	mail := api.store.Mail()
	if len(mail) != 1 || strings.Contains(mail[0].Message.HTML, "<b>") {
		t.Errorf("mail = %+v", mail)
	}

	if w := api.do(ana, http.MethodDelete, path, nil); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	list := decode[[]model.Client](t, api.do(ana, http.MethodGet, "/api/clients", nil))
	if len(list) != 0 {
		t.Errorf("list after delete = %+v", list)
	}
}

func TestCreateClientValidation(t *testing.T) {
	api := newTestAPI(t)
	ana := api.user("ana")

	w := api.do(ana, http.MethodPost, "/api/clients", model.ClientInput{Name: "L", Email: "x", Interests: []string{"golf"}})
	resp := decode[envelope[any]](t, w)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	for _, field := range []string{"name", "email", "interests[0]"} {
		if resp.Details[field] == "" {
			t.Errorf("no detail for %s: %v", field, resp.Details)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader("{"))
	token, _ := api.tokens.Issue(ana)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("broken json = %d", rec.Code)
	}
}

func TestStoreOutageIs503(t *testing.T) {
	api := newTestAPI(t)
	ana := api.user("ana")
	api.store.Fail("clients.FindByUser", errors.New("connection reset by 10.1.2.3"))

	w := api.do(ana, http.MethodGet, "/api/clients", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[envelope[any]](t, w)
	if resp.Error != retryMessage || strings.Contains(w.Body.String(), "10.1.2.3") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestTeamRoutes(t *testing.T) {
	api := newTestAPI(t)
	owner := api.user("owner")
	ana := api.user("ana")

	if w := api.do(owner, http.MethodGet, "/api/team", nil); w.Code != http.StatusNotFound {
		t.Errorf("no team yet = %d", w.Code)
	}
	w := api.do(owner, http.MethodGet, "/api/team/lookup?email="+ana.Email, nil)
	found := decode[model.TeamMember](t, w)
	if w.Code != http.StatusOK || found.UID != ana.UID {
		t.Errorf("lookup = %d %s", w.Code, w.Body.String())
	}

	w = api.do(owner, http.MethodPost, "/api/team/members", model.InviteRequest{Email: ana.Email})
	team := decode[envelope[model.Team]](t, w)
	if w.Code != http.StatusOK || len(team.Data.Members) != 2 {
		t.Fatalf("invite = %d %s", w.Code, w.Body.String())
	}
	if w := api.do(owner, http.MethodPost, "/api/team/members", model.InviteRequest{Email: ana.Email}); w.Code != http.StatusConflict {
		t.Errorf("duplicate invite = %d", w.Code)
	}
	if w := api.do(owner, http.MethodPost, "/api/team/members", model.InviteRequest{Email: owner.Email}); w.Code != http.StatusConflict {
		t.Errorf("self invite = %d", w.Code)
	}
	if w := api.do(ana, http.MethodDelete, "/api/team/members/"+owner.UID, nil); w.Code != http.StatusForbidden {
		t.Errorf("member removing owner = %d", w.Code)
	}

	current := decode[model.Team](t, api.do(ana, http.MethodGet, "/api/team", nil))
	if current.ID != team.Data.ID {
		t.Errorf("member's team = %+v", current)
	}

	w = api.do(owner, http.MethodDelete, "/api/team/members/"+ana.UID, nil)
	after := decode[envelope[model.Team]](t, w)
	if w.Code != http.StatusOK || len(after.Data.Members) != 1 {
		t.Errorf("remove = %d %s", w.Code, w.Body.String())
	}
	if w := api.do(ana, http.MethodGet, "/api/team", nil); w.Code != http.StatusNotFound {
		t.Errorf("removed member still has a team: %d", w.Code)
	}
}

func TestFeedbackRoutes(t *testing.T) {
	api := newTestAPI(t, "boss@example.com")
	ana := api.user("ana")
	boss := auth.Identity{UID: "boss", Email: "boss@example.com"}

	w := api.do(ana, http.MethodPost, "/api/feedback", map[string]interface{}{"rating": 4, "comment": "nice"})
	f := decode[envelope[model.Feedback]](t, w)
	if w.Code != http.StatusCreated || f.Data.UserEmail != ana.Email {
		t.Errorf("submit = %d %s", w.Code, w.Body.String())
	}
	if mail := api.store.Mail(); len(mail) != 1 || mail[0].To != "boss@example.com" {
		t.Errorf("admin mail = %+v", mail)
	}

	w = api.do(ana, http.MethodPost, "/api/feedback", map[string]interface{}{"rating": 2, "comment": "meh", "userEmail": "someone-else@example.com"})
	forged := decode[envelope[model.Feedback]](t, w)
	if w.Code != http.StatusCreated || forged.Data.UserEmail != ana.Email {
		t.Errorf("submit with userEmail = %d %s", w.Code, w.Body.String())
	}

	if w := api.do(ana, http.MethodGet, "/api/feedback", nil); w.Code != http.StatusForbidden {
		t.Errorf("non-admin list = %d", w.Code)
	}
	w = api.do(boss, http.MethodGet, "/api/feedback", nil)
	all := decode[[]model.Feedback](t, w)
	if w.Code != http.StatusOK || len(all) != 2 {
		t.Errorf("admin list = %d %s", w.Code, w.Body.String())
	}
}

func TestInsightRoutes(t *testing.T) {
	api := newTestAPI(t)
	ana := api.user("ana")
	next := time.Now().UTC().Add(48 * time.Hour).Format(model.AppointmentLayout)
	api.do(ana, http.MethodPost, "/api/clients", model.ClientInput{Name: "Lucia", Email: "lucia@example.com", AppointmentDateTime: next})

	d := decode[model.Dashboard](t, api.do(ana, http.MethodGet, "/api/dashboard", nil))
	if d.TotalClients != 1 || d.NextAppointment == nil || len(d.WeeklyClients) != 6 {
		t.Errorf("dashboard = %+v", d)
	}
	a := decode[model.Analytics](t, api.do(ana, http.MethodGet, "/api/analytics", nil))
	if a.UpcomingAppointments != 1 || len(a.Monthly) != 6 {
		t.Errorf("analytics = %+v", a)
	}
	day := next[:10]
	cal := decode[model.CalendarView](t, api.do(ana, http.MethodGet, "/api/calendar?from="+day+"&to="+day, nil))
	if len(cal.Days) != 1 || cal.Days[0].Date != day {
		t.Errorf("calendar = %+v", cal)
	}
	if w := api.do(ana, http.MethodGet, "/api/calendar?from=yesterday", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad range = %d", w.Code)
	}
}
