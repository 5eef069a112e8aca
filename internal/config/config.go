package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Clinic calendar
	ClinicTimezone      string
	BookingWindowDays   int
	BookingEnforceSlots bool

	// Visitor state storage: memory, file, redis, postgres, s3 or dynamodb.
	StorageBackend string
	StorageDir     string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisTLS       bool
	S3Bucket       string
	S3Prefix       string
	DynamoDBTable  string

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Calendar download references: memory or redis.
	ArtifactBackend string
	ArtifactTTL     time.Duration

	// Confirmation email: none, sendgrid or ses.
	EmailProvider    string
	SendGridAPIKey   string
	EmailFromAddress string
	EmailFromName    string

	CORSAllowedOrigins         []string
	RateLimitBookingsPerMinute int
	SessionCookieSecure        bool
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; real environment
// variables always win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		ClinicTimezone:      getEnv("CLINIC_TIMEZONE", "Asia/Kolkata"),
		BookingWindowDays:   getEnvAsInt("BOOKING_WINDOW_DAYS", 14),
		BookingEnforceSlots: getEnvAsBool("BOOKING_ENFORCE_SLOTS", false),

		StorageBackend: strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", "memory"))),
		StorageDir:     getEnv("STORAGE_DIR", "./data"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisTLS:       getEnvAsBool("REDIS_TLS", false),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Prefix:       getEnv("S3_PREFIX", "visitor-state/"),
		DynamoDBTable:  getEnv("DYNAMODB_TABLE", "physio_visitor_state"),

		AWSRegion:           getEnv("AWS_REGION", "ap-south-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		ArtifactBackend: strings.ToLower(strings.TrimSpace(getEnv("ARTIFACT_BACKEND", "memory"))),
		ArtifactTTL:     getEnvAsDuration("ARTIFACT_TTL", 30*time.Minute),

		EmailProvider:    strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "none"))),
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "hello@karpagam.physio"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Karpagam Physiotherapy"),

		CORSAllowedOrigins:         getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitBookingsPerMinute: getEnvAsInt("RATE_LIMIT_BOOKINGS_PER_MINUTE", 20),
		SessionCookieSecure:        getEnvAsBool("SESSION_COOKIE_SECURE", false),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
