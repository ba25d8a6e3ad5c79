package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Provider identifies which identity backend the auth service uses.
type Provider string

const (
	// ProviderLocal keeps accounts in the application database with bcrypt hashes.
	ProviderLocal Provider = "local"
	// ProviderHosted delegates credentials to the managed identity service.
	ProviderHosted Provider = "hosted"
)

// RatingSeeds holds the baseline counters shown before a tool has organic
// votes. The values are presentation choices, not derived from any record.
type RatingSeeds struct {
	// Returned verbatim when a tool has no aggregate at all.
	PlaceholderVotes   int     `yaml:"placeholder_votes"`
	PlaceholderAverage float64 `yaml:"placeholder_average"`

	// Baseline an aggregate is created from before the first real vote is applied.
	SeedVotes int `yaml:"seed_votes"`
	SeedScore int `yaml:"seed_score"`
}

// Identity holds the hosted identity provider credentials.
type Identity struct {
	APIKey    string `yaml:"api_key"`
	ProjectID string `yaml:"project_id"`
	Endpoint  string `yaml:"endpoint"`
}

// Config is the full deployment configuration. Defaults are overridden by an
// optional YAML file, which is in turn overridden by environment variables.
type Config struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"-"`

	// CrossOrigin toggles between the same-origin variant (static files served
	// from StaticDir, Lax cookies) and the cross-origin variant (allow-listed
	// origins, SameSite=None + Secure cookies behind a TLS-terminating proxy).
	CrossOrigin    bool     `yaml:"cross_origin"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	StaticDir      string   `yaml:"static_dir"`

	SessionTTLHours int `yaml:"session_ttl_hours"`

	AuthProvider Provider    `yaml:"auth_provider"`
	Identity     Identity    `yaml:"identity"`
	Ratings      RatingSeeds `yaml:"ratings"`
}

// SessionTTL is the lifetime of a session and its cookie.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is empty")
	ErrMissingIdentityKey = errors.New("IDENTITY_API_KEY is required when AUTH_PROVIDER=hosted")
)

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE (default ./config.yaml), and environment variables, in that order.
func Load() (Config, error) {
	cfg := Config{
		Port:            "3000",
		AllowedOrigins:  []string{"https://parthjadhav85.github.io", "http://localhost:5173"},
		StaticDir:       ".",
		SessionTTLHours: 24,
		AuthProvider:    ProviderLocal,
		Ratings: RatingSeeds{
			PlaceholderVotes:   125,
			PlaceholderAverage: 4.8,
			SeedVotes:          120,
			SeedScore:          576,
		},
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if v := os.Getenv("CROSS_ORIGIN"); v != "" {
		cfg.CrossOrigin = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitOrigins(v)
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse SESSION_TTL_HOURS: %w", err)
		}
		cfg.SessionTTLHours = hours
	}
	if v := os.Getenv("AUTH_PROVIDER"); v != "" {
		cfg.AuthProvider = Provider(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv("IDENTITY_API_KEY"); v != "" {
		cfg.Identity.APIKey = v
	}
	if v := os.Getenv("IDENTITY_PROJECT_ID"); v != "" {
		cfg.Identity.ProjectID = v
	}
	if v := os.Getenv("IDENTITY_ENDPOINT"); v != "" {
		cfg.Identity.Endpoint = v
	}

	return cfg, nil
}

// Validate checks that the configuration is usable for the selected provider.
// The database is required in both modes; sessions always live locally.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.AuthProvider == ProviderHosted && c.Identity.APIKey == "" {
		return ErrMissingIdentityKey
	}
	return nil
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
