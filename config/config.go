package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreNATS     = "nats"
)

// Event bus backends.
const (
	EventsGoChannel = "gochannel"
	EventsNATS      = "nats"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Store         StoreConfig         `yaml:"store"`
	Events        EventsConfig        `yaml:"events"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit"` // requests per second per IP on write routes
	RateBurst      int      `yaml:"rate_burst"`
	PublicBaseURL  string   `yaml:"public_base_url"` // used for round share links
}

// StoreConfig selects and configures the key-value store.
type StoreConfig struct {
	Backend     string `yaml:"backend"`
	PostgresDSN string `yaml:"postgres_dsn"`
	SQLitePath  string `yaml:"sqlite_path"`
	NATSURL     string `yaml:"nats_url"`
	NATSBucket  string `yaml:"nats_bucket"`
}

// EventsConfig selects the pub/sub used between modules.
type EventsConfig struct {
	Backend string `yaml:"backend"`
	NATSURL string `yaml:"nats_url"`
}

// ScoringConfig holds round defaults.
type ScoringConfig struct {
	DefaultVariant string `yaml:"default_variant"`
	MaxHandicap    int    `yaml:"max_handicap"`
	MaxStrokes     int    `yaml:"max_strokes"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // json|text
	Environment    string `yaml:"environment"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// LoadConfig loads the configuration from a YAML file. When the file does not exist the
// configuration is built from environment variables alone. Environment variables always
// override file values.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		cfg.Observability.MetricsEnabled = true
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT value: %w", err)
		}
		cfg.HTTP.RateLimit = f
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_BURST value: %w", err)
		}
		cfg.HTTP.RateBurst = n
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		cfg.HTTP.PublicBaseURL = v
	}

	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Store.PostgresDSN = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.Store.NATSURL = v
		cfg.Events.NATSURL = v
	}
	if v := os.Getenv("NATS_BUCKET"); v != "" {
		cfg.Store.NATSBucket = v
	}
	if v := os.Getenv("EVENTS_BACKEND"); v != "" {
		cfg.Events.Backend = v
	}

	if v := os.Getenv("DEFAULT_VARIANT"); v != "" {
		cfg.Scoring.DefaultVariant = v
	}
	if v := os.Getenv("MAX_HANDICAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_HANDICAP value: %w", err)
		}
		cfg.Scoring.MaxHandicap = n
	}
	if v := os.Getenv("MAX_STROKES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_STROKES value: %w", err)
		}
		cfg.Scoring.MaxStrokes = n
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Observability.MetricsEnabled = v == "true"
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.RateLimit <= 0 {
		c.HTTP.RateLimit = 5
	}
	if c.HTTP.RateBurst <= 0 {
		c.HTTP.RateBurst = 10
	}
	if c.HTTP.PublicBaseURL == "" {
		c.HTTP.PublicBaseURL = "http://localhost" + c.HTTP.Address
	}
	c.HTTP.PublicBaseURL = strings.TrimRight(c.HTTP.PublicBaseURL, "/")

	if c.Store.Backend == "" {
		c.Store.Backend = StoreMemory
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = "stableford.db"
	}
	if c.Store.NATSBucket == "" {
		c.Store.NATSBucket = "stableford"
	}
	if c.Events.Backend == "" {
		c.Events.Backend = EventsGoChannel
	}
	if c.Events.NATSURL == "" {
		c.Events.NATSURL = c.Store.NATSURL
	}

	if c.Scoring.DefaultVariant == "" {
		c.Scoring.DefaultVariant = string(scoringdomain.VariantHandicap)
	}
	if c.Scoring.MaxHandicap <= 0 {
		c.Scoring.MaxHandicap = scoringdomain.MaxHandicap
	}
	if c.Scoring.MaxStrokes <= 0 {
		c.Scoring.MaxStrokes = 15
	}

	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
	if c.Observability.LogFormat == "" {
		c.Observability.LogFormat = "json"
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
}

// Validate reports configuration that cannot produce a working server.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("store backend %q requires DATABASE_URL or store.postgres_dsn", c.Store.Backend)
		}
	case StoreNATS:
		if c.Store.NATSURL == "" {
			return fmt.Errorf("store backend %q requires NATS_URL or store.nats_url", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	switch c.Events.Backend {
	case EventsGoChannel:
	case EventsNATS:
		if c.Events.NATSURL == "" {
			return fmt.Errorf("events backend %q requires NATS_URL or events.nats_url", c.Events.Backend)
		}
	default:
		return fmt.Errorf("unknown events backend %q", c.Events.Backend)
	}

	if !scoringdomain.PointsVariant(c.Scoring.DefaultVariant).Valid() {
		return fmt.Errorf("unknown scoring variant %q", c.Scoring.DefaultVariant)
	}
	if c.Scoring.MaxHandicap > scoringdomain.MaxHandicap {
		return fmt.Errorf("max_handicap %d exceeds %d", c.Scoring.MaxHandicap, scoringdomain.MaxHandicap)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
