package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quickplate/quickplate/internal/auth/oauth"
)

// ProviderCredentials holds the per-provider OAuth client credentials.
type ProviderCredentials struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// SMTPConfig holds outbound mail settings for OTP delivery. An empty Host
// means codes are logged instead of mailed.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

type Config struct {
	Issuer         string        // Issuer claim for session tokens (default: quickplate-auth)
	KeyID          string        // Key identifier placed in token headers (default: quickplate-auth-key-001)
	SigningKeyFile string        // Optional: path to Ed25519 PEM signing key; empty means ephemeral
	SessionTTL     time.Duration // Session token lifetime (default: 24h)

	DatabaseFile string // Path to SQLite database file (default: ./auth.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	PublicBaseURL string // Externally reachable base URL, used for SSO redirect URLs
	FrontendURL   string // Where SSO callbacks send the browser afterwards (default: /)
	SSOFixture    bool   // Use the in-process fixture provider instead of real SSO endpoints

	Providers map[string]ProviderCredentials // Keyed by provider name: google, facebook, github
	SMTP      SMTPConfig

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-token cleanup interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               getEnvOrDefault("AUTH_ISSUER", "quickplate-auth"),
		KeyID:                getEnvOrDefault("AUTH_KEY_ID", "quickplate-auth-key-001"),
		SigningKeyFile:       os.Getenv("AUTH_SIGNING_KEY_FILE"),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:           getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		PublicBaseURL:        getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "/"),
		SSOFixture:           os.Getenv("SSO_FIXTURE") == "true",
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	cfg.Providers = make(map[string]ProviderCredentials)
	for _, name := range oauth.KnownProviders() {
		prefix := "SSO_" + strings.ToUpper(name) + "_"
		creds := ProviderCredentials{
			ClientID:     os.Getenv(prefix + "CLIENT_ID"),
			ClientSecret: os.Getenv(prefix + "CLIENT_SECRET"),
			RedirectURL:  os.Getenv(prefix + "REDIRECT_URL"),
		}
		if creds.RedirectURL == "" {
			creds.RedirectURL = cfg.PublicBaseURL + "/auth/" + name + "/callback"
		}
		cfg.Providers[name] = creds
	}

	cfg.SMTP = SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     getEnvIntOrDefault("SMTP_PORT", 587),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     getEnvOrDefault("SMTP_FROM", "no-reply@quickplate.app"),
		FromName: getEnvOrDefault("SMTP_FROM_NAME", "Quickplate"),
		UseTLS:   os.Getenv("SMTP_TLS") != "false",
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are treated as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
