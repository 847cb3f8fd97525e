package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"dinepick/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Database  DatabaseConfig  `koanf:"database"`
	Model     ModelConfig     `koanf:"model"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port            string        `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatasetConfig selects where restaurants are loaded from.
type DatasetConfig struct {
	// Source is "csv" or "postgres".
	Source           string `koanf:"source"`
	Path             string `koanf:"path"`
	CountryCodesPath string `koanf:"country_codes_path"`
}

// DatabaseConfig holds the PostgreSQL connection string.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// ModelConfig points at the optional similarity artifact shipped with the
// dataset. It is checked at startup and otherwise unused.
type ModelConfig struct {
	Path string `koanf:"path"`
}

// RecommendConfig holds the engine result cap and the API's default mode.
type RecommendConfig struct {
	Limit       int    `koanf:"limit"`
	DefaultMode string `koanf:"default_mode"`
}

// SecurityConfig holds CORS origins and the per-IP rate limit on /api.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds the zerolog level and output format.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

// ConfigPathEnvVar names the variable pointing at an explicit YAML file.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3003",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Dataset: DatasetConfig{
			Source: "csv",
			Path:   "Dataset_Updated.csv",
		},
		Recommend: RecommendConfig{
			Limit:       recommend.DefaultLimit,
			DefaultMode: "guided",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// envKeys maps flat environment variable names onto config paths.
var envKeys = map[string]string{
	"PORT":                "server.port",
	"READ_TIMEOUT":        "server.read_timeout",
	"WRITE_TIMEOUT":       "server.write_timeout",
	"SHUTDOWN_TIMEOUT":    "server.shutdown_timeout",
	"DATASET_SOURCE":      "dataset.source",
	"DATASET_PATH":        "dataset.path",
	"COUNTRY_CODES_PATH":  "dataset.country_codes_path",
	"DATABASE_URL":        "database.url",
	"MODEL_PATH":          "model.path",
	"RESULT_LIMIT":        "recommend.limit",
	"DEFAULT_MODE":        "recommend.default_mode",
	"CORS_ORIGINS":        "security.cors_origins",
	"RATE_LIMIT_REQUESTS": "security.rate_limit_requests",
	"RATE_LIMIT_WINDOW":   "security.rate_limit_window",
	"LOG_LEVEL":           "logging.level",
	"LOG_FORMAT":          "logging.format",
}

func envTransform(key string) string {
	if path, ok := envKeys[key]; ok {
		return path
	}
	// Unknown variables are dropped so the process environment does not
	// leak into the config tree.
	return ""
}

// Load reads .env (if present), then layers defaults, an optional YAML file
// and environment variables, and validates the result.
func Load() (*Config, error) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if v, ok := k.Get("security.cors_origins").(string); ok {
		if err := k.Set("security.cors_origins", splitList(v)); err != nil {
			return nil, fmt.Errorf("config: cors origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	switch c.Dataset.Source {
	case "csv":
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path is required for csv source")
		}
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for postgres source")
		}
	default:
		return fmt.Errorf("dataset.source must be csv or postgres, got %q", c.Dataset.Source)
	}
	if c.Recommend.Limit <= 0 || c.Recommend.Limit > recommend.DefaultLimit {
		return fmt.Errorf("recommend.limit must be between 1 and %d, got %d", recommend.DefaultLimit, c.Recommend.Limit)
	}
	switch c.Recommend.DefaultMode {
	case "guided", "search":
	default:
		return fmt.Errorf("recommend.default_mode must be guided or search, got %q", c.Recommend.DefaultMode)
	}
	if c.Security.RateLimitRequests < 0 {
		return fmt.Errorf("security.rate_limit_requests must not be negative")
	}
	if c.Security.RateLimitRequests > 0 && c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("security.rate_limit_window must be positive when rate limiting is on")
	}
	return nil
}
