package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

const (
	// DefaultJWKSURL serves the public keys Firebase signs ID tokens with
	DefaultJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

	// DefaultIssuerBase is prefixed to the project ID to form the expected "iss" claim
	DefaultIssuerBase = "https://securetoken.google.com/"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Firebase      FirebaseConfig
	Storage       StorageConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// DatabaseConfig holds MySQL database configuration.
// When ConnectionString (from DATABASE_URL) is set, it takes precedence over individual fields.
type DatabaseConfig struct {
	ConnectionString string
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// FirebaseConfig holds the token verification policy. It is built once at
// startup and only read afterwards.
type FirebaseConfig struct {
	ProjectID                string
	RequireEmailVerification bool
	JWKSURL                  string
	IssuerBase               string
	HTTPTimeout              time.Duration
	// KeySetCacheTTL of zero fetches the key set on every verification
	KeySetCacheTTL time.Duration
}

// StorageConfig holds the Cloudflare R2 (S3 compatible) bucket configuration
type StorageConfig struct {
	BucketName      string
	EndpointURL     string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	PublicBaseURL   string
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or console
	LogFile   string // rotated with lumberjack when set
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	_ = godotenv.Load(".env")

	requireEmailVerification, err := getEnvAsStrictBool("REQUIRE_EMAIL_VERIFICATION", true)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 90*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:  getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 75*time.Second),
		},
		Database: loadDatabaseConfig(),
		Firebase: FirebaseConfig{
			ProjectID:                getEnv("FIREBASE_PROJECT_ID", ""),
			RequireEmailVerification: requireEmailVerification,
			JWKSURL:                  getEnv("FIREBASE_JWKS_URL", DefaultJWKSURL),
			IssuerBase:               getEnv("FIREBASE_ISSUER_BASE", DefaultIssuerBase),
			HTTPTimeout:              getEnvAsDuration("FIREBASE_HTTP_TIMEOUT", 60*time.Second),
			KeySetCacheTTL:           getEnvAsDuration("FIREBASE_KEYSET_CACHE_TTL", 0),
		},
		Storage: StorageConfig{
			BucketName:      getEnv("BUCKET_NAME", ""),
			EndpointURL:     getEnv("R2_ENDPOINT_URL", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("R2_REGION", "auto"),
			PublicBaseURL:   getEnv("R2_PUBLIC_BASE_URL", "https://r2.autotrack.work"),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
			LogFile:   getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID must be set")
	}
	if c.Firebase.JWKSURL == "" {
		return fmt.Errorf("firebase JWKS URL is required")
	}
	if c.Firebase.HTTPTimeout <= 0 {
		return fmt.Errorf("firebase HTTP timeout must be positive")
	}
	if c.Firebase.KeySetCacheTTL < 0 {
		return fmt.Errorf("firebase key set cache TTL cannot be negative")
	}

	if c.Database.ConnectionString == "" && c.Database.Host == "" {
		return fmt.Errorf("database configuration required: set DATABASE_URL or DB_HOST")
	}
	if c.Database.ConnectionString == "" {
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// Configured reports whether every setting needed to reach the bucket is present
func (c *StorageConfig) Configured() bool {
	return c.BucketName != "" && c.EndpointURL != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// DSN returns the MySQL data source name.
// Uses ConnectionString (from DATABASE_URL) when set; otherwise builds from individual fields.
func (c *DatabaseConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Database
	mc.ParseTime = true
	return mc.FormatDSN()
}

// LogString returns a safe string for logging (no password)
func (c *DatabaseConfig) LogString() string {
	if c.ConnectionString != "" {
		mc, err := mysql.ParseDSN(c.ConnectionString)
		if err != nil {
			return "addr=<from DATABASE_URL>"
		}
		return fmt.Sprintf("addr=%s database=%s", mc.Addr, mc.DBName)
	}
	return fmt.Sprintf("addr=%s database=%s", net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Database)
}

func loadDatabaseConfig() DatabaseConfig {
	dbURL := getEnv("DATABASE_URL", "")
	if dbURL != "" {
		return DatabaseConfig{
			ConnectionString: dbURL,
			MaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:  getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		}
	}
	return DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 3306),
		User:            getEnv("DB_USER", "autotrack"),
		Password:        getEnv("DB_PASSWORD", ""),
		Database:        getEnv("DB_NAME", "autotrack"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8369)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8369
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsStrictBool falls back to defaultValue only when the variable is unset;
// a value that does not parse is an error.
func getEnvAsStrictBool(key string, defaultValue bool) (bool, error) {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, valueStr)
	}
	return value, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
