package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	// Service
	ServiceName string
	ServicePort string
	Environment string
	LogLevel    string

	// Database (audit trail)
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	AuditEnabled bool

	// Redis (permission cache)
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	CacheEnabled       bool
	PermissionCacheTTL int // minutes

	// Roles
	RolesFile             string
	FirmHierarchy         bool
	ManagerUserManagement bool
	UserClientData        bool

	SeedDemoData bool

	// Rate Limiting
	RateLimitRequestsPerSecond float64
	RateLimitBurst             int

	// Scheduled jobs (cron specs, empty disables)
	UsageResetSchedule string
	QuotaSweepSchedule string

	// Frontend URL
	FrontendURL string

	// EnvFile is the .env file that was loaded, empty when none was found.
	EnvFile string
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig loads configuration from a .env file when one exists, then
// from the environment.
func LoadConfig() *Config {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	envFile := ""
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			envFile = path
			break
		}
	}

	return &Config{
		ServiceName: getEnv("SERVICE_NAME", "tenancy-service"),
		ServicePort: getEnv("SERVICE_PORT", "8003"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", ""),
		DBName:       getEnv("DB_NAME", "contaia"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		AuditEnabled: getEnvAsBool("AUDIT_ENABLED", false),

		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		CacheEnabled:       getEnvAsBool("CACHE_ENABLED", false),
		PermissionCacheTTL: getEnvAsInt("PERMISSION_CACHE_TTL_MINUTES", 15),

		RolesFile:             getEnv("ROLES_FILE", ""),
		FirmHierarchy:         getEnvAsBool("FIRM_HIERARCHY", true),
		ManagerUserManagement: getEnvAsBool("MANAGER_USER_MANAGEMENT", true),
		UserClientData:        getEnvAsBool("USER_CLIENT_DATA", false),

		SeedDemoData: getEnvAsBool("SEED_DEMO_DATA", false),

		RateLimitRequestsPerSecond: getEnvAsFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 10),
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 20),

		UsageResetSchedule: getEnv("USAGE_RESET_SCHEDULE", "0 0 1 * *"),
		QuotaSweepSchedule: getEnv("QUOTA_SWEEP_SCHEDULE", "*/15 * * * *"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		EnvFile: envFile,
	}
}

// GetConfig returns the process-wide configuration, loading it on first use.
func GetConfig() *Config {
	once.Do(func() {
		cfg = LoadConfig()
	})
	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DatabaseDSN returns the Postgres connection string for the audit store.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
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
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
