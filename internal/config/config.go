package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/xavierca1/lead-intake/internal/entity"
)

const (
	DocumentStoreNone      = ""
	DocumentStoreFirestore = "firestore"
	DocumentStorePostgres  = "postgres"
)

var defaultAllowedOrigins = []string{
	"https://datalabsync.com",
	"https://www.datalabsync.com",
	"http://localhost:3000",
	"http://localhost:8888",
}

type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string
	RateLimit      int

	SpreadsheetID      string
	SheetName          string
	GoogleCredentials  string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string

	DocumentStore          string
	FirebaseServiceAccount string
	FirestoreProjectID     string
	DatabaseURL            string

	ResendAPIKey string
	MailHost     string
	MailPort     int
	MailUser     string
	MailPass     string
	MailFrom     string
	NotifyTo     string
	BrandName    string
	SenderName   string
	BookingURL   string

	FollowupAssignee string
	AMQPURL          string
	SentryDSN        string
}

// Load reads the process environment. It never fails; settings that must be
// present are checked by Validate or by the component that needs them.
func Load() *Config {
	brand := envOr("BRAND_NAME", "DataLabSync")
	return &Config{
		Port:           envOr("PORT", "3000"),
		Environment:    envOr("ENVIRONMENT", "development"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		AllowedOrigins: envList("ALLOWED_ORIGINS", defaultAllowedOrigins),
		RateLimit:      envInt("RATE_LIMIT_PER_MINUTE", 10),

		SpreadsheetID:      os.Getenv("SPREADSHEET_ID"),
		SheetName:          envOr("SHEET_NAME", "Sheet1"),
		GoogleCredentials:  os.Getenv("GOOGLE_CREDENTIALS"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),

		DocumentStore:          strings.ToLower(strings.TrimSpace(os.Getenv("DOCUMENT_STORE"))),
		FirebaseServiceAccount: os.Getenv("FIREBASE_SERVICE_ACCOUNT"),
		FirestoreProjectID:     os.Getenv("FIRESTORE_PROJECT_ID"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailHost:     os.Getenv("MAIL_HOST"),
		MailPort:     envInt("MAIL_PORT", 587),
		MailUser:     os.Getenv("MAIL_USER"),
		MailPass:     os.Getenv("MAIL_PASS"),
		MailFrom:     envOr("MAIL_FROM", brand+" <no-reply@datalabsync.com>"),
		NotifyTo:     os.Getenv("NOTIFY_TO"),
		BrandName:    brand,
		SenderName:   envOr("SENDER_NAME", brand),
		BookingURL:   os.Getenv("BOOKING_URL"),

		FollowupAssignee: envOr("FOLLOWUP_ASSIGNEE", "va"),
		AMQPURL:          os.Getenv("AMQP_URL"),
		SentryDSN:        os.Getenv("SENTRY_DSN"),
	}
}

// Validate reports settings that make startup pointless. A missing
// SPREADSHEET_ID is not one of them: it surfaces per request.
func (c *Config) Validate() error {
	switch c.DocumentStore {
	case DocumentStoreNone, DocumentStoreFirestore:
	case DocumentStorePostgres:
		if c.DatabaseURL == "" {
			return &entity.ConfigError{Setting: "DATABASE_URL"}
		}
	default:
		return &entity.ConfigError{Setting: "DOCUMENT_STORE", Reason: "must be firestore, postgres or empty"}
	}

	if c.RateLimit <= 0 {
		return &entity.ConfigError{Setting: "RATE_LIMIT_PER_MINUTE", Reason: "must be positive"}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
