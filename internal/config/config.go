package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Static defaults matching a local Chinook setup. Every value can be
// overridden through the environment.
const (
	defaultDBHost   = "localhost"
	defaultDBPort   = "5432"
	defaultDBName   = "chinook"
	defaultDBUser   = "razdinesaid"
	defaultDBPass   = "0000"
	defaultPort     = "8080"
	defaultCacheTTL = 5 * time.Minute
)

var validSSLModes = map[string]bool{
	"disable":     true,
	"allow":       true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

type Config struct {
	AppEnv     string
	Port       string
	LogLevel   string
	LogFormat  string
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	RedisURL   string
	CacheTTL   time.Duration
	ThemeFile  string
}

// Load reads configuration from the environment, falling back to static
// defaults. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", defaultPort),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		DBHost:     getEnv("DB_HOST", defaultDBHost),
		DBName:     getEnv("DB_NAME", defaultDBName),
		DBUser:     getEnv("DB_USER", defaultDBUser),
		DBPassword: getEnv("DB_PASSWORD", defaultDBPass),
		DBSSLMode:  getEnv("DB_SSLMODE", ""),
		RedisURL:   getEnv("REDIS_URL", ""),
		CacheTTL:   defaultCacheTTL,
		ThemeFile:  getEnv("THEME_FILE", "theme.toml"),
	}

	port, err := strconv.Atoi(getEnv("DB_PORT", defaultDBPort))
	if err != nil {
		return nil, fmt.Errorf("DB_PORT must be numeric: %w", err)
	}
	cfg.DBPort = port

	if cfg.DBSSLMode != "" && !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("DB_SSLMODE %q is not a valid sslmode", cfg.DBSSLMode)
	}

	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL must be a duration: %w", err)
		}
		cfg.CacheTTL = d
	}

	return cfg, nil
}

// DSN assembles the PostgreSQL connection string, appending an sslmode
// suffix only when one is configured.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   c.DBName,
	}
	if c.DBSSLMode != "" {
		u.RawQuery = "sslmode=" + c.DBSSLMode
	}
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
