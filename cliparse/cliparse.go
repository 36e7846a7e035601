package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port         int    `koanf:"port"`
	DatabaseURL  string `koanf:"database_url"`
	DatabaseType string `koanf:"database_type"`

	// Media storage
	UseCloudUploads   bool   `koanf:"use_cloud_uploads"`
	UploadDir         string `koanf:"upload_dir"`
	MaxUploadBytes    int64  `koanf:"max_upload_bytes"`
	StorageBucket     string `koanf:"storage_bucket"`
	GoogleCredentials string `koanf:"google_credentials"`

	// Cross-instance event fan-out (disabled when empty)
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisChannel  string `koanf:"redis_channel"`

	IPHashSalt        string        `koanf:"ip_hash_salt"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

func defaults() Config {
	return Config{
		Port:              3001,
		DatabaseType:      "sqlite",
		UploadDir:         "uploads",
		MaxUploadBytes:    50 << 20,
		RedisChannel:      "portfolio-events",
		CORSOrigins:       []string{"*"},
		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,
		LogLevel:          "info",
		LogFormat:         "json",
	}
}

// envKeys maps environment variable names (lowercased) to config keys
var envKeys = map[string]string{
	"port":                "port",
	"database_url":        "database_url",
	"database_type":       "database_type",
	"use_cloud_uploads":   "use_cloud_uploads",
	"upload_dir":          "upload_dir",
	"max_upload_bytes":    "max_upload_bytes",
	"storage_bucket":      "storage_bucket",
	"google_credentials":  "google_credentials",
	"redis_addr":          "redis_addr",
	"redis_password":      "redis_password",
	"redis_channel":       "redis_channel",
	"ip_hash_salt":        "ip_hash_salt",
	"cors_origins":        "cors_origins",
	"rate_limit_requests": "rate_limit_requests",
	"rate_limit_window":   "rate_limit_window",
	"log_level":           "log_level",
	"log_format":          "log_format",
}

// ParseFlags builds the config from defaults, an optional YAML file,
// the environment (.env included), then CLI flags
func ParseFlags(args []string) (Config, error) {
	flags := flag.NewFlagSet("portfolio-backend", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	port := flags.Int("p", 0, "Server port")
	dbURL := flags.String("d", "", "Database URL")
	dbType := flags.String("t", "", "Database type (sqlite or postgres)")

	configPath := flags.String("c", "", "Path to a YAML config file")
	uploadDir := flags.String("upload-dir", "", "Local upload directory")
	logLevel := flags.String("log-level", "", "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	if raw, ok := k.Get("cors_origins").(string); ok {
		if err := k.Set("cors_origins", splitList(raw)); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	// CLI overrides everything else, but only for flags actually passed
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = *port
		case "d":
			cfg.DatabaseURL = *dbURL
		case "t":
			cfg.DatabaseType = *dbType
		case "upload-dir":
			cfg.UploadDir = *uploadDir
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks cross-field requirements
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	c.DatabaseType = strings.ToLower(c.DatabaseType)
	switch c.DatabaseType {
	case "sqlite":
		if c.DatabaseURL == "" {
			c.DatabaseURL = "portfolio.db"
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unsupported database type %q (use sqlite or postgres)", c.DatabaseType)
	}

	if c.UseCloudUploads && c.StorageBucket == "" {
		return errors.New("STORAGE_BUCKET required when USE_CLOUD_UPLOADS is set")
	}
	if !c.UseCloudUploads && c.UploadDir == "" {
		return errors.New("upload directory required (use -upload-dir or UPLOAD_DIR env)")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}

	return nil
}

func envTransform(key string) string {
	return envKeys[strings.ToLower(key)]
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
