package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Server    ServerConfig
	Auth      AuthConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	PrimaryDSN      string
	ReplicaDSNs     []string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ServerConfig struct {
	Port            string
	BaseURL         string
	ShutdownTimeout time.Duration
}

type AuthConfig struct {
	MinPasswordLength int
	TokenBytes        int
}

type CacheConfig struct {
	L1Capacity int
	L2TTL      time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not (K8s uses ConfigMaps/Secrets)
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			PrimaryDSN: getEnv("DB_PRIMARY_DSN", ""),
			ReplicaDSNs: []string{
				getEnv("DB_REPLICA1_DSN", ""),
			},
			MaxConns:        int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:        int32(getEnvAsInt("DB_MIN_CONNS", 5)),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Server: ServerConfig{
			Port:            getEnv("API_SERVER_PORT", "8080"),
			BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			MinPasswordLength: getEnvAsInt("AUTH_MIN_PASSWORD_LENGTH", 5),
			TokenBytes:        getEnvAsInt("AUTH_TOKEN_BYTES", 20),
		},
		Cache: CacheConfig{
			L1Capacity: getEnvAsInt("CACHE_L1_CAPACITY", 1000),
			L2TTL:      getEnvAsDuration("CACHE_L2_TTL", time.Hour),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 30),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
