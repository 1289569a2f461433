package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Completion CompletionConfig
	Classifier ClassifierConfig
	Scoring    ScoringWeights
	OTEL       OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CompletionConfig holds text-completion service configuration
type CompletionConfig struct {
	BaseURL        string
	Model          string
	TimeoutSeconds int
	RateLimitRPM   int
	RateLimitBurst int
}

// ClassifierConfig holds disease classification service configuration
type ClassifierConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// ScoringWeights holds the contextual risk-factor multipliers. All weights
// default to 1.0; they are summed (additive risk model) and multiplied by
// the top candidate's classification probability.
type ScoringWeights struct {
	Symptom    float64
	Chronic    float64
	Age        float64
	Gender     float64
	BMI        float64
	Medication float64
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bodycheck"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Completion: CompletionConfig{
			BaseURL:        getEnv("COMPLETION_BASE_URL", "http://localhost:11434"),
			Model:          getEnv("COMPLETION_MODEL", "mistral"),
			TimeoutSeconds: getEnvAsInt("COMPLETION_TIMEOUT_SECONDS", 10),
			RateLimitRPM:   getEnvAsInt("COMPLETION_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("COMPLETION_RATE_LIMIT_BURST", 5),
		},
		Classifier: ClassifierConfig{
			BaseURL:        getEnv("CLASSIFIER_BASE_URL", "http://localhost:8001"),
			TimeoutSeconds: getEnvAsInt("CLASSIFIER_TIMEOUT_SECONDS", 30),
		},
		Scoring: ScoringWeights{
			Symptom:    getEnvAsFloat("RISK_WEIGHT_SYMPTOM", 1.0),
			Chronic:    getEnvAsFloat("RISK_WEIGHT_CHRONIC", 1.0),
			Age:        getEnvAsFloat("RISK_WEIGHT_AGE", 1.0),
			Gender:     getEnvAsFloat("RISK_WEIGHT_GENDER", 1.0),
			BMI:        getEnvAsFloat("RISK_WEIGHT_BMI", 1.0),
			Medication: getEnvAsFloat("RISK_WEIGHT_MEDICATION", 1.0),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "bodycheck-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Sum returns the total of all six weights.
func (w ScoringWeights) Sum() float64 {
	return w.Symptom + w.Chronic + w.Age + w.Gender + w.BMI + w.Medication
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
