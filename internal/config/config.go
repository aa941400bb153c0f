package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sngm3741/talentflow/api/internal/infrastructure/kv"
)

// StorageConfig selects the kv backend holding the four collections.
type StorageConfig struct {
	Backend             string
	Dir                 string
	MongoURI            string
	MongoDatabase       string
	MongoCollection     string
	MongoConnectTimeout time.Duration
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisNamespace      string
	SeedOnEmpty         bool
}

// WriteSimulationConfig tunes the artificial latency and failure rate of writes.
type WriteSimulationConfig struct {
	MinDelay       time.Duration
	MaxDelay       time.Duration
	MinFailureRate float64
	MaxFailureRate float64
	RandomSeed     int64
}

// JWTConfig defines the issuer/secret pair for auth verification.
// An empty Secret disables auth on write routes.
type JWTConfig struct {
	Issuer   string
	Audience string
	Secret   []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Storage        StorageConfig
	Writes         WriteSimulationConfig
	JWT            JWTConfig
	LogLevel       string
	LogPretty      bool
}

// LoadDotEnv reads the given env files in order, skipping missing ones.
// A later file overrides an earlier one; variables set before the call always win.
func LoadDotEnv(files ...string) error {
	preset := make(map[string]bool)
	for _, entry := range os.Environ() {
		if key, _, ok := strings.Cut(entry, "="); ok {
			preset[key] = true
		}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		values, err := godotenv.Read(file)
		if err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
		for key, value := range values {
			if preset[key] {
				continue
			}
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("set %s from %s: %w", key, file, err)
			}
		}
	}
	return nil
}

// Load reads environment variables and returns a fully populated Config.
func Load() (Config, error) {
	var errs []string
	duration := func(key string, fallback time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			errs = append(errs, fmt.Sprintf("%s: invalid duration %q", key, raw))
			return fallback
		}
		return parsed
	}
	rate := func(key string, fallback float64) float64 {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			errs = append(errs, fmt.Sprintf("%s: invalid rate %q", key, raw))
			return fallback
		}
		return parsed
	}
	integer := func(key string, fallback int64) int64 {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid integer %q", key, raw))
			return fallback
		}
		return parsed
	}

	cfg := Config{
		Addr:           envOrDefault("HTTP_ADDR", ":8080"),
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		Storage: StorageConfig{
			Backend:             strings.ToLower(envOrDefault("STORAGE_BACKEND", "file")),
			Dir:                 envOrDefault("STORAGE_DIR", "./data"),
			MongoURI:            envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
			MongoDatabase:       envOrDefault("MONGO_DB", "talentflow"),
			MongoCollection:     envOrDefault("MONGO_COLLECTION", "talentflow_documents"),
			MongoConnectTimeout: duration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			RedisAddr:           envOrDefault("REDIS_ADDR", "redis:6379"),
			RedisPassword:       os.Getenv("REDIS_PASSWORD"),
			RedisDB:             int(integer("REDIS_DB", 0)),
			RedisNamespace:      envOrDefault("REDIS_NAMESPACE", "talentflow"),
			SeedOnEmpty:         parseBool("SEED_ON_EMPTY", true),
		},
		Writes: WriteSimulationConfig{
			MinDelay:       duration("WRITE_DELAY_MIN", 200*time.Millisecond),
			MaxDelay:       duration("WRITE_DELAY_MAX", 1200*time.Millisecond),
			MinFailureRate: rate("WRITE_FAILURE_RATE_MIN", 0.05),
			MaxFailureRate: rate("WRITE_FAILURE_RATE_MAX", 0.10),
			RandomSeed:     integer("WRITE_RANDOM_SEED", 0),
		},
		JWT: JWTConfig{
			Issuer:   strings.TrimSpace(os.Getenv("AUTH_JWT_ISSUER")),
			Audience: strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
			Secret:   []byte(strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))),
		},
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogPretty: parseBool("LOG_PRETTY", false),
	}

	if cfg.Writes.MaxDelay < cfg.Writes.MinDelay {
		errs = append(errs, "WRITE_DELAY_MAX must not be below WRITE_DELAY_MIN")
	}
	if cfg.Writes.MaxFailureRate < cfg.Writes.MinFailureRate {
		errs = append(errs, "WRITE_FAILURE_RATE_MAX must not be below WRITE_FAILURE_RATE_MIN")
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// KV maps the storage settings onto the backend selector.
func (c StorageConfig) KV() kv.Config {
	return kv.Config{
		Kind:                c.Backend,
		Dir:                 c.Dir,
		MongoURI:            c.MongoURI,
		MongoDatabase:       c.MongoDatabase,
		MongoCollection:     c.MongoCollection,
		MongoConnectTimeout: c.MongoConnectTimeout,
		RedisAddr:           c.RedisAddr,
		RedisPassword:       c.RedisPassword,
		RedisDB:             c.RedisDB,
		RedisNamespace:      c.RedisNamespace,
	}
}

// AuthEnabled reports whether write routes require a bearer token.
func (c Config) AuthEnabled() bool {
	return len(c.JWT.Secret) > 0
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
