package service

import (
	"context"
	"log"
	"time"

	"clientbook/internal/model"
	"clientbook/internal/notify"
	"clientbook/internal/repository"
	"clientbook/pkg/timer"
)

// ReminderStats summarises one sweep.
type ReminderStats struct {
	Users   int `json:"users"`
	Sent    int `json:"sent"`
	SMS     int `json:"sms"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// ReminderService e-mails users about their clients' upcoming appointments,
// each appointment once, within the user's notificationHours.
type ReminderService struct {
	settings  *SettingsService
	clients   repository.IClientRepository
	reminders repository.IReminderRepository
	mail      *notify.Dispatcher
	sms       notify.SMSSender
	now       func() time.Time
}

// NewReminderService creates a reminder service. sms may be nil.
func NewReminderService(settings *SettingsService, clients repository.IClientRepository, reminders repository.IReminderRepository, mail *notify.Dispatcher, sms notify.SMSSender) *ReminderService {
	return &ReminderService{
		settings:  settings,
		clients:   clients,
		reminders: reminders,
		mail:      mail,
		sms:       sms,
		now:       time.Now,
	}
}

// Run performs one sweep over every user with reminders enabled.
func (s *ReminderService) Run(ctx context.Context) (ReminderStats, error) {
	var stats ReminderStats
	sw := timer.NewStopwatch("reminder sweep")
	defer sw.Total()

	users, err := s.settings.All(ctx)
	if err != nil {
		return stats, err
	}
	now := s.now()
	for _, u := range users {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		if u.Hours() <= 0 || u.EmailAddress() == "" {
			continue
		}
		stats.Users++
		s.remindUser(ctx, u, now, &stats)
		sw.Lap()
	}
	log.Printf("[reminder] users=%d sent=%d sms=%d skipped=%d failed=%d",
		stats.Users, stats.Sent, stats.SMS, stats.Skipped, stats.Failed)
	return stats, nil
}

func (s *ReminderService) remindUser(ctx context.Context, u *model.UserSettings, now time.Time, stats *ReminderStats) {
	clients, err := s.clients.FindByUser(ctx, u.UserID)
	if err != nil {
		log.Printf("[reminder] load clients of %s: %v", u.UserID, err)
		stats.Failed++
		return
	}
	loc := u.Location()
	horizon := now.Add(time.Duration(u.Hours() * float64(time.Hour)))

	for _, c := range clients {
		start, ok := c.AppointmentIn(loc)
		if !ok || !start.After(now) || start.After(horizon) {
			continue
		}
		key := model.ReminderKey(c.ID.Hex(), c.AppointmentDateTime)
		claimed, err := s.reminders.MarkSent(ctx, &model.ReminderLog{
			Key:                 key,
			ClientID:            c.ID.Hex(),
			UserID:              u.UserID,
			AppointmentDateTime: c.AppointmentDateTime,
			SentAt:              now.UTC(),
		})
		if err != nil {
			log.Printf("[reminder] claim %s: %v", key, err)
			stats.Failed++
			continue
		}
		if !claimed {
			stats.Skipped++
			continue
		}

		when := start.Format("Mon Jan 2, 15:04")
		subject, html, err := notify.ReminderMail(notify.ReminderDetails{
			Owner:    u.DisplayName(),
			Client:   c.Name,
			Email:    c.Email,
			Phone:    c.Phone,
			When:     when,
			Timezone: u.TimezoneName(),
		})
		if err == nil {
			err = s.mail.Enqueue(ctx, u.EmailAddress(), subject, html)
		}
		if err != nil {
			log.Printf("[reminder] mail for %s: %v", key, err)
			if rerr := s.reminders.Release(ctx, key); rerr != nil {
				log.Printf("[reminder] release %s: %v", key, rerr)
			}
			stats.Failed++
			continue
		}
		stats.Sent++

		if s.sms != nil && c.Phone != "" {
			company := ""
			if u.CompanyName != nil {
				company = *u.CompanyName
			}
			if err := s.sms.Send(ctx, c.Phone, notify.ReminderSMS(company, when)); err != nil {
				log.Printf("[reminder] sms for %s: %v", key, err)
			} else {
				stats.SMS++
			}
		}
	}
}
