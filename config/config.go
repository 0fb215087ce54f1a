package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

type ServerConfig struct {
	Port            string
	Mode            string // gin mode: debug, release, test
	LogLevel        string
	StorageDriver   string
	ErrorTypeBase   string
	CORSOrigins     []string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled bool
	// Rate uses the limiter formatted notation, e.g. "100-M" (100 per minute).
	Rate  string
	Store string // memory or redis
}

// CacheConfig controls the redis read-through cache for venues.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// DSN returns the key/value connection string understood by pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s timezone=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode, "UTC")
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// UsesRedis reports whether any configured component needs a redis client.
func (c *Config) UsesRedis() bool {
	return c.Cache.Enabled || (c.RateLimit.Enabled && c.RateLimit.Store == "redis")
}

// LoadConfig reads the environment and validates the result. All problems
// are reported together.
func LoadConfig() (*Config, error) {
	var problems []string

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		problems = append(problems, "REDIS_DB must be an integer")
	}
	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be a positive integer")
	}
	shutdown, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "15s"))
	if err != nil {
		problems = append(problems, "SHUTDOWN_TIMEOUT must be a duration")
	}
	rateEnabled, err := strconv.ParseBool(getEnv("RATE_LIMIT_ENABLED", "false"))
	if err != nil {
		problems = append(problems, "RATE_LIMIT_ENABLED must be a boolean")
	}
	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))
	if err != nil {
		problems = append(problems, "CACHE_ENABLED must be a boolean")
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil || cacheTTL <= 0 {
		problems = append(problems, "CACHE_TTL must be a positive duration")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Mode:            getEnv("GIN_MODE", "release"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
			ErrorTypeBase:   strings.TrimRight(getEnv("ERROR_TYPE_BASE", "https://api.tiqueteracatalogo.com/errors"), "/"),
			CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
			MaxBodyBytes:    maxBody,
			ShutdownTimeout: shutdown,
		},
		Database: GetDatabaseConfig(),
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		RateLimit: RateLimitConfig{
			Enabled: rateEnabled,
			Rate:    getEnv("RATE_LIMIT", "100-M"),
			Store:   strings.ToLower(getEnv("RATE_LIMIT_STORE", StorageMemory)),
		},
		Cache: CacheConfig{
			Enabled: cacheEnabled,
			TTL:     cacheTTL,
		},
	}

	switch cfg.Server.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_DRIVER must be %q or %q", StorageMemory, StoragePostgres))
	}
	switch cfg.RateLimit.Store {
	case StorageMemory, "redis":
	default:
		problems = append(problems, `RATE_LIMIT_STORE must be "memory" or "redis"`)
	}
	if cfg.Server.StorageDriver == StoragePostgres && os.Getenv("DB_HOST") == "" {
		problems = append(problems, "DB_HOST is required when STORAGE_DRIVER=postgres")
	}
	// redis outlives the process, the memory store does not; cached ids would
	// point at venues of a previous run
	if cfg.Cache.Enabled && cfg.Server.StorageDriver == StorageMemory {
		problems = append(problems, "CACHE_ENABLED requires STORAGE_DRIVER=postgres")
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "0",
			Mode:            "test",
			LogLevel:        "debug",
			StorageDriver:   StorageMemory,
			ErrorTypeBase:   "https://api.tiqueteracatalogo.com/errors",
			CORSOrigins:     []string{"http://localhost:5173"},
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5433", // test DB runs on 5433
			User:     "postgres",
			Password: "postgres",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     "6380", // test redis runs on 6380
			Password: "",
			DB:       1,
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
			Rate:    "100-M",
			Store:   StorageMemory,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "catalog"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
