// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	apperrors "github.com/allisson/credstash/internal/errors"
)

// Supported credential store drivers.
const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
)

// Config holds all application configuration.
type Config struct {
	// AWSRegion selects the region for KMS and DynamoDB.
	AWSRegion string
	// Table is the DynamoDB table holding credentials.
	Table string
	// KMSMasterKeyID is the AWS KMS key used to wrap data keys (key ID, ARN or alias).
	KMSMasterKeyID string
	// KMSKeyURI selects a gocloud.dev/secrets keeper instead of native AWS KMS when set.
	KMSKeyURI string
	// KMSEndpoint overrides the AWS KMS endpoint (e.g., LocalStack).
	KMSEndpoint string
	// DynamoDBEndpoint overrides the DynamoDB endpoint (e.g., DynamoDB Local).
	DynamoDBEndpoint string

	// StoreDriver is the credential store backend ("dynamodb", "postgres", "mysql").
	StoreDriver string
	// DBConnectionString is the connection string for the SQL stores.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPushgatewayURL is where metrics are pushed when the command finishes.
	MetricsPushgatewayURL string

	// GetAllConcurrency bounds concurrent lookups in getall.
	GetAllConcurrency int
	// GetAllRateLimit caps getall lookups per second. Zero disables the limit.
	GetAllRateLimit float64
	// GetAllRateBurst is the burst size for the getall rate limit.
	GetAllRateBurst int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// AWS
		AWSRegion:        env.GetString("AWS_REGION", env.GetString("AWS_DEFAULT_REGION", "us-east-1")),
		Table:            env.GetString("CREDSTASH_TABLE", "credential-store"),
		KMSMasterKeyID:   env.GetString("KMS_MASTER_KEY_ID", "alias/credstash"),
		KMSKeyURI:        env.GetString("KMS_KEY_URI", ""),
		KMSEndpoint:      env.GetString("KMS_ENDPOINT", ""),
		DynamoDBEndpoint: env.GetString("DYNAMODB_ENDPOINT", ""),

		// Store
		StoreDriver:          env.GetString("STORE_DRIVER", StoreDynamoDB),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", ""),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "warn"),

		// Metrics
		MetricsEnabled:        env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace:      env.GetString("METRICS_NAMESPACE", "credstash"),
		MetricsPushgatewayURL: env.GetString("METRICS_PUSHGATEWAY_URL", ""),

		// Batch reads
		GetAllConcurrency: env.GetInt("GETALL_CONCURRENCY", 10),
		GetAllRateLimit:   env.GetFloat64("GETALL_RATE_LIMIT", 0),
		GetAllRateBurst:   env.GetInt("GETALL_RATE_BURST", 1),
	}
}

// Validate checks the configuration after flags have been applied.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.StoreDriver, validation.Required,
			validation.In(StoreDynamoDB, StorePostgres, StoreMySQL)),
		validation.Field(&c.AWSRegion, validation.Required),
		validation.Field(&c.Table, validation.When(c.StoreDriver == StoreDynamoDB, validation.Required)),
		validation.Field(&c.KMSMasterKeyID, validation.When(c.KMSKeyURI == "", validation.Required)),
		validation.Field(&c.DBConnectionString, validation.When(c.StoreDriver != StoreDynamoDB, validation.Required)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.GetAllRateLimit, validation.Min(0.0)),
		validation.Field(&c.GetAllRateBurst, validation.Min(1)),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
