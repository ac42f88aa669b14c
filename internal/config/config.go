package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/saeid-a/TennisCoachBack/pkg/utils"
)

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	Port                string
	DBUrl               string
	JWTSecret           string
	JWTIssuer           string
	JWTAudience         string
	JWTExpiry           time.Duration
	AppEnv              string
	CORSAllowedOrigins  string
	EnableDocs          bool
	AutoMigrate         bool
	MigrationsPath      string
	RedisURL            string
	LoginMaxFailures    int
	LoginFailureWindow  time.Duration
	AuthRateLimitPerMin int
	FeatureFlagsFile    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DBUrl:               getEnv("DB_URL", ""),
		JWTSecret:           jwtSecret,
		JWTIssuer:           getEnv("JWT_ISSUER", "TennisCoach"),
		JWTAudience:         getEnv("JWT_AUDIENCE", "TennisCoachApp"),
		JWTExpiry:           time.Duration(getEnvInt("JWT_EXPIRY_MINUTES", 60)) * time.Minute,
		AppEnv:              NormalizeEnv(getEnv("APP_ENV", EnvProduction)),
		CORSAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		EnableDocs:          getEnvBool("ENABLE_API_DOCS", false),
		AutoMigrate:         getEnvBool("AUTO_MIGRATE", false),
		MigrationsPath:      getEnv("MIGRATIONS_PATH", "migrations"),
		RedisURL:            getEnv("REDIS_URL", ""),
		LoginMaxFailures:    getEnvInt("LOGIN_MAX_FAILURES", 5),
		LoginFailureWindow:  time.Duration(getEnvInt("LOGIN_FAILURE_WINDOW_MINUTES", 15)) * time.Minute,
		AuthRateLimitPerMin: getEnvInt("AUTH_RATE_LIMIT_PER_MINUTE", 60),
		FeatureFlagsFile:    getEnv("FEATURE_FLAGS_FILE", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// NormalizeEnv trims and lower-cases an environment name. It does not map
// aliases, so "dev" or "stage" are environments of their own.
func NormalizeEnv(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == EnvDevelopment
}

func (c *Config) DocsEnabled() bool {
	return c.IsDevelopment() && c.EnableDocs
}

func (c *Config) AutoMigrateEnabled() bool {
	return c.IsDevelopment() && c.AutoMigrate
}

func (c *Config) LoginThrottleEnabled() bool {
	return c != nil && c.RedisURL != ""
}

func (c *Config) AllowedOrigins() string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return strings.Join(origins, ",")
}

func (c *Config) TokenConfig() utils.TokenConfig {
	return utils.TokenConfig{
		Secret:   c.JWTSecret,
		Issuer:   c.JWTIssuer,
		Audience: c.JWTAudience,
		TTL:      c.JWTExpiry,
	}
}
