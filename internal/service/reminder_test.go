package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"clientbook/internal/model"
	"clientbook/internal/notify"
)

type fakeSMS struct {
	sent []string
	err  error
}

func (f *fakeSMS) Send(ctx context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+": "+body)
	return nil
}

func newReminderFixture(t *testing.T) (*testEnv, *ReminderService, *fakeSMS) {
	t.Helper()
	env := newTestEnv(t)
	repos := env.store.Repositories()
	sms := &fakeSMS{}
	svc := NewReminderService(env.settings, repos.Clients, repos.Reminders, notify.NewDispatcher(env.store), sms)
	svc.now = func() time.Time { return time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC) }
	return env, svc, sms
}

func addAppointment(t *testing.T, env *testEnv, uid, name, phone, appt string) {
	t.Helper()
	if _, err := env.clients.Add(context.Background(), uid, &model.ClientInput{
		Name:                name,
		Email:               name + "@example.com",
		Phone:               phone,
		AppointmentDateTime: appt,
	}); err != nil {
		t.Fatal(err)
	}
}

func TestReminderSendsOncePerAppointment(t *testing.T) {
	env, svc, sms := newReminderFixture(t)
	ctx := context.Background()
	ana := env.newUser(t, "ana")
	_ = env.settings.Save(ctx, ana.UID, &model.SettingsPatch{CompanyName: model.Ptr("Acme Studio")})

	addAppointment(t, env, ana.UID, "tomorrow", "+34600000000", "2026-03-19T09:00")
	addAppointment(t, env, ana.UID, "nextweek", "", "2026-03-25T09:00")
	addAppointment(t, env, ana.UID, "past", "", "2026-03-18T11:00")
	addAppointment(t, env, ana.UID, "unscheduled", "", "")

	stats, err := svc.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Users != 1 || stats.Sent != 1 || stats.SMS != 1 || stats.Failed != 0 {
		t.Errorf("first run = %+v", stats)
	}
	mail := env.store.Mail()
	if len(mail) != 1 || mail[0].To != ana.Email || !strings.Contains(mail[0].Message.Subject, "tomorrow") {
		t.Fatalf("mail = %+v", mail)
	}
	if len(sms.sent) != 1 || !strings.HasPrefix(sms.sent[0], "+34600000000: ") || !strings.Contains(sms.sent[0], "Acme Studio") {
		t.Errorf("sms = %v", sms.sent)
	}

	stats, _ = svc.Run(ctx)
	if stats.Sent != 0 || stats.Skipped != 1 {
		t.Errorf("second run = %+v", stats)
	}
	if len(env.store.Mail()) != 1 {
		t.Error("reminder sent twice")
	}
}

func TestReminderRespectsUserSettings(t *testing.T) {
	env, svc, _ := newReminderFixture(t)
	ctx := context.Background()

	off := env.newUser(t, "off")
	_ = env.settings.Save(ctx, off.UID, &model.SettingsPatch{NotificationHours: model.Ptr(0.0)})
	addAppointment(t, env, off.UID, "x", "", "2026-03-18T13:00")

	// 2026-03-18T20:00 in Tokyo is 11:00 UTC, already past
	tokyo := env.newUser(t, "tokyo")
	_ = env.settings.Save(ctx, tokyo.UID, &model.SettingsPatch{Timezone: model.Ptr("Asia/Tokyo"), NotificationHours: model.Ptr(2.0)})
	addAppointment(t, env, tokyo.UID, "gone", "", "2026-03-18T20:00")
	addAppointment(t, env, tokyo.UID, "inwindow", "", "2026-03-18T22:30")
	addAppointment(t, env, tokyo.UID, "toolate", "", "2026-03-19T01:00")

	stats, err := svc.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Users != 1 || stats.Sent != 1 {
		t.Errorf("stats = %+v", stats)
	}
	mail := env.store.Mail()
	if len(mail) != 1 || mail[0].To != tokyo.Email || !strings.Contains(mail[0].Message.Subject, "inwindow") {
		t.Errorf("mail = %+v", mail)
	}
}

func TestReminderReleasesClaimOnMailFailure(t *testing.T) {
	env, svc, sms := newReminderFixture(t)
	ctx := context.Background()
	ana := env.newUser(t, "ana")
	addAppointment(t, env, ana.UID, "tomorrow", "+34600000000", "2026-03-19T09:00")

	env.store.Fail("mail.Enqueue", errors.New("quota"))
	stats, err := svc.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Failed != 1 || stats.Sent != 0 || len(sms.sent) != 0 {
		t.Errorf("failed run = %+v, sms %v", stats, sms.sent)
	}

	env.store.Fail("mail.Enqueue", nil)
	stats, _ = svc.Run(ctx)
	if stats.Sent != 1 {
		t.Errorf("retry = %+v", stats)
	}
}

func TestReminderSMSFailureKeepsMail(t *testing.T) {
	env, svc, sms := newReminderFixture(t)
	sms.err = errors.New("unverified number")
	ana := env.newUser(t, "ana")
	addAppointment(t, env, ana.UID, "tomorrow", "+34600000000", "2026-03-19T09:00")

	stats, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sent != 1 || stats.SMS != 0 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
}
