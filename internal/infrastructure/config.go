package infrastructure

import (
	"os"
	"strings"
)

// Config aggregates runtime configuration, read from environment variables
// with development fallbacks.
type Config struct {
	Port         string
	JWTSecret    string
	RedisAddr    string
	KafkaBrokers []string // empty disables event publishing
	KafkaTopic   string
	Database     *DatabaseConfig
}

// LoadConfig reads configuration from the environment.
func LoadConfig() *Config {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaTopic: getEnv("KAFKA_TOPIC", "orders"),
		Database:   DefaultDatabaseConfig(),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
