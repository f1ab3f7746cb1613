package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server configuration
type ServerConfig struct {
	Port           string
	Host           string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Store configuration
type StoreConfig struct {
	Backend string // mongo or memory
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Auth configuration for bearer tokens
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

// Mail queue configuration
type MailConfig struct {
	Backend              string // mongo or firestore
	Collection           string
	FirestoreProject     string
	FirestoreCredentials string
	AdminEmails          []string
}

// Reminder scheduler configuration
type ReminderConfig struct {
	Enabled    bool
	Schedule   string
	SMSEnabled bool
}

// Twilio configuration for SMS reminders
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Auth     AuthConfig
	Mail     MailConfig
	Reminder ReminderConfig
	Twilio   TwilioConfig
}

// Store and mail backends
const (
	BackendMongo     = "mongo"
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Default configuration values
const (
	DefaultServerPort       = "8080"
	DefaultServerHost       = ""
	DefaultCORSOrigins      = "http://localhost:3000"
	DefaultRateLimitRPS     = 10.0
	DefaultRateLimitBurst   = 20
	DefaultStoreBackend     = BackendMongo
	DefaultMongoURI         = "mongodb://localhost:27017/clientbook"
	DefaultMongoDB          = "clientbook"
	DefaultAuthIssuer       = "clientbook"
	DefaultTokenTTLMinutes  = 60
	DefaultMailBackend      = BackendMongo
	DefaultMailCollection   = "mail"
	DefaultReminderEnabled  = true
	DefaultReminderSchedule = "*/15 * * * *"
	DefaultReminderSMS      = false
)

// New returns a new Config with default values
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", DefaultServerPort),
			Host:           getEnv("SERVER_HOST", DefaultServerHost),
			CORSOrigins:    getEnvList("CORS_ORIGINS", DefaultCORSOrigins),
			RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", DefaultRateLimitRPS),
			RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("STORE_BACKEND", DefaultStoreBackend)),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			Issuer:    getEnv("AUTH_ISSUER", DefaultAuthIssuer),
			TokenTTL:  time.Duration(getEnvInt("AUTH_TOKEN_TTL_MINUTES", DefaultTokenTTLMinutes)) * time.Minute,
		},
		Mail: MailConfig{
			Backend:              strings.ToLower(getEnv("MAIL_BACKEND", DefaultMailBackend)),
			Collection:           getEnv("MAIL_COLLECTION", DefaultMailCollection),
			FirestoreProject:     getEnv("FIRESTORE_PROJECT_ID", ""),
			FirestoreCredentials: getEnv("FIRESTORE_CREDENTIALS_FILE", ""),
			AdminEmails:          getEnvList("ADMIN_EMAILS", ""),
		},
		Reminder: ReminderConfig{
			Enabled:    getEnvBool("REMINDER_ENABLED", DefaultReminderEnabled),
			Schedule:   getEnv("REMINDER_SCHEDULE", DefaultReminderSchedule),
			SMSEnabled: getEnvBool("REMINDER_SMS_ENABLED", DefaultReminderSMS),
		},
		Twilio: TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// IsAdmin reports whether email receives admin feedback notifications and
// may list all feedback.
func (c *MailConfig) IsAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range c.AdminEmails {
		if strings.ToLower(a) == email && email != "" {
			return true
		}
	}
	return false
}

// SMSConfigured reports whether Twilio credentials are present.
func (c *TwilioConfig) SMSConfigured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
