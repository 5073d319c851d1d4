package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Face     FaceConfig
	Tenant   TenantConfig
	Jobs     JobsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MinIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds operator token configuration
type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// FaceConfig holds feature extractor and matching configuration
type FaceConfig struct {
	ExtractorURL       string
	ExtractTimeout     time.Duration
	GalleryScanTimeout time.Duration
	MatchThreshold     float64
	// ThresholdStore is "memory" (per process) or "redis" (shared by all instances)
	ThresholdStore string
}

// TenantConfig holds bank/branch code resolution settings
type TenantConfig struct {
	CodeMaxLen int
	CacheSize  int
	CacheTTL   time.Duration
}

// JobsConfig holds background job settings
type JobsConfig struct {
	// LegacyMigrationInterval of 0 disables the legacy authorization backfill
	LegacyMigrationInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "gold_loan_appraisal"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MinIdleConns:    getEnvAsInt("DB_MIN_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", 12*time.Hour),
		},
		Face: FaceConfig{
			ExtractorURL:       getEnv("FACE_EXTRACTOR_URL", "http://localhost:8500"),
			ExtractTimeout:     getEnvAsDuration("FACE_EXTRACT_TIMEOUT", 10*time.Second),
			GalleryScanTimeout: getEnvAsDuration("GALLERY_SCAN_TIMEOUT", 5*time.Second),
			MatchThreshold:     getEnvAsFloat("FACE_MATCH_THRESHOLD", 0.5),
			ThresholdStore:     strings.ToLower(getEnv("THRESHOLD_STORE", "memory")),
		},
		Tenant: TenantConfig{
			CodeMaxLen: getEnvAsInt("TENANT_CODE_MAX_LEN", 20),
			CacheSize:  getEnvAsInt("TENANT_CACHE_SIZE", 512),
			CacheTTL:   getEnvAsDuration("TENANT_CACHE_TTL", 10*time.Minute),
		},
		Jobs: JobsConfig{
			LegacyMigrationInterval: getEnvAsDuration("LEGACY_MIGRATION_INTERVAL", 0),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
