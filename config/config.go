package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"bootcamp/database"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Store configuration
	StoreDriver  string // "postgres" or "sqlite"
	DatabaseURL  string
	DatabaseName string
	SQLitePath   string

	// HTTP adapter
	HTTPAddr string

	// Points configuration
	MaxAwardRetries int // Attempts before an award gives up on version conflicts
	LeaderboardSize int // Default leaderboard length

	// NATS configuration
	NATSEnabled bool
	NATSServers string // NATS server addresses (comma-separated)

	// Discord announcements (disabled when token is empty)
	DiscordToken     string
	DiscordChannelID string

	// OpenTelemetry metrics
	OTelEnabled             bool
	OTelExporterType        string // "console", "otlp" or "none"
	OTelOTLPEndpoint        string
	OTelServiceName         string
	OTelExportIntervalMilli int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = Load(viper.New())
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Load reads configuration from an optional .env file, an optional
// config.yaml and the environment, in increasing order of precedence
func Load(v *viper.Viper) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := &Config{
		StoreDriver:             strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseURL:             v.GetString("DATABASE_URL"),
		DatabaseName:            v.GetString("DATABASE_NAME"),
		SQLitePath:              v.GetString("SQLITE_PATH"),
		HTTPAddr:                v.GetString("HTTP_ADDR"),
		MaxAwardRetries:         v.GetInt("MAX_AWARD_RETRIES"),
		LeaderboardSize:         v.GetInt("LEADERBOARD_SIZE"),
		NATSEnabled:             v.GetBool("NATS_ENABLED"),
		NATSServers:             v.GetString("NATS_SERVERS"),
		DiscordToken:            v.GetString("DISCORD_TOKEN"),
		DiscordChannelID:        v.GetString("DISCORD_CHANNEL_ID"),
		OTelEnabled:             v.GetBool("OTEL_ENABLED"),
		OTelExporterType:        v.GetString("OTEL_EXPORTER_TYPE"),
		OTelOTLPEndpoint:        v.GetString("OTEL_OTLP_ENDPOINT"),
		OTelServiceName:         v.GetString("OTEL_SERVICE_NAME"),
		OTelExportIntervalMilli: v.GetInt("OTEL_EXPORT_INTERVAL_MILLIS"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		Environment:             v.GetString("ENVIRONMENT"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("SQLITE_PATH", "bootcamp.db")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("MAX_AWARD_RETRIES", 5)
	v.SetDefault("LEADERBOARD_SIZE", 10)
	v.SetDefault("NATS_ENABLED", false)
	v.SetDefault("NATS_SERVERS", "nats://nats:4222")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_TYPE", "console")
	v.SetDefault("OTEL_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_SERVICE_NAME", "bootcamp-points")
	v.SetDefault("OTEL_EXPORT_INTERVAL_MILLIS", 30000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENVIRONMENT", "development")
}

// Validate checks that required settings are present for the chosen store
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" && c.Environment != "test" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case StoreDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.MaxAwardRetries <= 0 {
		return fmt.Errorf("MAX_AWARD_RETRIES must be positive, got %d", c.MaxAwardRetries)
	}
	if c.DiscordToken != "" && c.DiscordChannelID == "" {
		return fmt.Errorf("DISCORD_CHANNEL_ID is required when DISCORD_TOKEN is set")
	}

	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SetTestConfig sets a test configuration (only for use in tests)
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		StoreDriver:     StoreDriverSQLite,
		SQLitePath:      "file::memory:?cache=shared",
		HTTPAddr:        ":0",
		MaxAwardRetries: 5,
		LeaderboardSize: 10,
		LogLevel:        "debug",
		Environment:     "test",
	}
}
