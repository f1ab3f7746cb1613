package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"clientbook/internal/auth"
	"clientbook/internal/config"
	"clientbook/internal/handler"
	"clientbook/internal/notify"
	"clientbook/internal/repository"
	"clientbook/internal/repository/memstore"
	"clientbook/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Backends are the stores and queues a server runs on.
type Backends struct {
	Repos *repository.Repositories
	Mail  notify.Queue
	SMS   notify.SMSSender

	mongo     *mongo.Client
	firestore *notify.FirestoreQueue
}

// OpenBackends connects the store and mail queue selected by cfg.
func OpenBackends(ctx context.Context, cfg *config.Config) (*Backends, error) {
	b := &Backends{}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		store := memstore.New()
		b.Repos = store.Repositories()
		b.Mail = store
		log.Printf("[store] using in-memory backend, data is lost on exit")
	case config.BackendMongo, "":
		client, err := Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		b.mongo = client
		db := client.Database(cfg.Mongo.Database)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			b.Close(ctx)
			return nil, err
		}
		b.Repos = repository.NewMongo(db)
		b.Mail = repository.NewMailRepository(db, cfg.Mail.Collection)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.Mail.Backend == config.BackendFirestore {
		q, err := notify.NewFirestoreQueue(ctx, cfg.Mail.FirestoreProject, cfg.Mail.FirestoreCredentials, cfg.Mail.Collection)
		if err != nil {
			b.Close(ctx)
			return nil, err
		}
		b.firestore = q
		b.Mail = q
	}

	if cfg.Reminder.SMSEnabled {
		if cfg.Twilio.SMSConfigured() {
			b.SMS = notify.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
		} else {
			log.Printf("[reminder] SMS enabled but Twilio is not configured, sending e-mail only")
		}
	}
	return b, nil
}

// Connect opens and pings a Mongo client.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Database returns the Mongo database, or nil on the memory backend.
func (b *Backends) Database(name string) *mongo.Database {
	if b.mongo == nil {
		return nil
	}
	return b.mongo.Database(name)
}

// Close releases every connection opened by OpenBackends.
func (b *Backends) Close(ctx context.Context) error {
	var first error
	if b.firestore != nil {
		if err := b.firestore.Close(); err != nil {
			first = err
		}
	}
	if b.mongo != nil {
		if err := b.mongo.Disconnect(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Services bundles the application services.
type Services struct {
	Settings  *service.SettingsService
	Teams     *service.TeamService
	Clients   *service.ClientService
	Feedback  *service.FeedbackService
	Insight   *service.InsightService
	Reminders *service.ReminderService
	Tokens    *auth.Verifier
}

// InitServices builds the services over b.
func InitServices(cfg *config.Config, b *Backends) (*Services, error) {
	tokens, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	mail := notify.NewDispatcher(b.Mail)
	settings := service.NewSettingsService(b.Repos.Settings)
	clients := service.NewClientService(b.Repos.Clients, b.Repos.Notes, settings, mail)
	return &Services{
		Settings:  settings,
		Teams:     service.NewTeamService(b.Repos.Teams, b.Repos.Settings),
		Clients:   clients,
		Feedback:  service.NewFeedbackService(b.Repos.Feedback, mail, cfg.Mail.AdminEmails),
		Insight:   service.NewInsightService(clients, settings),
		Reminders: service.NewReminderService(settings, b.Repos.Clients, b.Repos.Reminders, mail, b.SMS),
		Tokens:    tokens,
	}, nil
}

// Handlers bundles the HTTP handlers.
type Handlers struct {
	Settings *handler.SettingsHandler
	Clients  *handler.ClientHandler
	Team     *handler.TeamHandler
	Feedback *handler.FeedbackHandler
	Insight  *handler.InsightHandler
}

// InitHandlers builds the handlers over s.
func InitHandlers(cfg *config.Config, s *Services) *Handlers {
	return &Handlers{
		Settings: handler.NewSettingsHandler(s.Settings),
		Clients:  handler.NewClientHandler(s.Clients),
		Team:     handler.NewTeamHandler(s.Teams),
		Feedback: handler.NewFeedbackHandler(s.Feedback, cfg.Mail.IsAdmin),
		Insight:  handler.NewInsightHandler(s.Insight),
	}
}
