package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const PROD_STRING = "prod"

// Storage, queue and notifier backends selectable through the environment.
const (
	StorageS3    = "s3"
	StorageLocal = "local"

	QueueSQS   = "sqs"
	QueueRedis = "redis"

	NotifierLambda  = "lambda"
	NotifierWebhook = "webhook"
	NotifierLog     = "log"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	LogLevel  string
	LogFormat string

	AWS AWSConfig

	StorageBackend   string
	LocalStoragePath string

	QueueBackend string
	RedisAddr    string

	NotifierBackend  string
	NotifyWebhookURL string

	CatalogEnabled bool
	EnableTracing  bool

	BookingTaxRate  decimal.Decimal
	BookingFixedFee decimal.Decimal
}

// AWSConfig names every AWS resource the service talks to.
// It is handed to the collaborator constructors instead of being read from globals.
type AWSConfig struct {
	Region            string
	S3Bucket          string
	S3PublicBaseURL   string
	RoomsTable        string
	SupportQueueName  string
	BookingLambdaName string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Logging: json in production, console otherwise
	defaultFormat := "console"
	if cfg.IsProduction {
		defaultFormat = "json"
	}
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", defaultFormat)

	cfg.AWS = AWSConfig{
		Region:            getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", "yugo-accommodation-buckets"),
		RoomsTable:        getEnv("DYNAMODB_ROOMS_TABLE", "YugoRooms"),
		SupportQueueName:  getEnv("SUPPORT_QUEUE_NAME", "yugo-support-tickets"),
		BookingLambdaName: getEnv("BOOKING_LAMBDA_NAME", "yugo-booking"),
	}
	cfg.AWS.S3PublicBaseURL = getEnv("S3_PUBLIC_BASE_URL",
		fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.AWS.S3Bucket, cfg.AWS.Region))

	cfg.StorageBackend, err = getEnvOneOf("STORAGE_BACKEND", StorageS3, StorageS3, StorageLocal)
	if err != nil {
		return nil, err
	}
	cfg.LocalStoragePath = getEnv("LOCAL_STORAGE_PATH", "./data/media")

	cfg.QueueBackend, err = getEnvOneOf("QUEUE_BACKEND", QueueSQS, QueueSQS, QueueRedis)
	if err != nil {
		return nil, err
	}
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")

	cfg.NotifierBackend, err = getEnvOneOf("NOTIFIER_BACKEND", NotifierLambda, NotifierLambda, NotifierWebhook, NotifierLog)
	if err != nil {
		return nil, err
	}
	cfg.NotifyWebhookURL = getEnv("NOTIFY_WEBHOOK_URL", "")
	if cfg.NotifierBackend == NotifierWebhook && cfg.NotifyWebhookURL == "" {
		return nil, fmt.Errorf("NOTIFY_WEBHOOK_URL is required when NOTIFIER_BACKEND=%s", NotifierWebhook)
	}

	if cfg.CatalogEnabled, err = getEnvAsBool("CATALOG_ENABLED", true); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_ENABLED: %w", err)
	}
	if cfg.EnableTracing, err = getEnvAsBool("ENABLE_TRACING", false); err != nil {
		return nil, fmt.Errorf("invalid ENABLE_TRACING: %w", err)
	}

	// Booking surcharges (default: none)
	if cfg.BookingTaxRate, err = getEnvAsDecimal("BOOKING_TAX_RATE", decimal.Zero); err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TAX_RATE: %w", err)
	}
	if cfg.BookingFixedFee, err = getEnvAsDecimal("BOOKING_FIXED_FEE", decimal.Zero); err != nil {
		return nil, fmt.Errorf("invalid BOOKING_FIXED_FEE: %w", err)
	}
	if cfg.BookingTaxRate.IsNegative() || cfg.BookingFixedFee.IsNegative() {
		return nil, fmt.Errorf("BOOKING_TAX_RATE and BOOKING_FIXED_FEE must not be negative")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		// Return 0 and a wrapped error to provide context
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}
	return val, nil
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := decimal.NewFromString(valStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("env %s value %q is not a valid decimal: %w", key, valStr, err)
	}
	return val, nil
}

// getEnvOneOf returns the lower-cased value of key, which must be one of allowed.
func getEnvOneOf(key, defaultValue string, allowed ...string) (string, error) {
	val := strings.ToLower(getEnv(key, defaultValue))
	for _, a := range allowed {
		if val == a {
			return val, nil
		}
	}
	return "", fmt.Errorf("env %s value %q must be one of %s", key, val, strings.Join(allowed, ", "))
}
