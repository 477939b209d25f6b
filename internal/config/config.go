package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Auth      AuthConfig
	Mux       MuxConfig
	Workflow  WorkflowConfig
	RateLimit RateLimitConfig
	App       AppConfig
	Logging   LoggingConfig
	Tracing   TracingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration for the rate limiter and the
// category cache.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StorageConfig holds object storage configuration for thumbnails and
// banners.
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
	PublicBaseURL   string
}

// AuthConfig holds the auth provider's token verification settings.
type AuthConfig struct {
	JWTSecret     string
	WebhookSecret string
}

// MuxConfig holds video provider credentials and the webhook signing
// secret. The signing secret is mandatory: without it every incoming
// lifecycle event would be unverifiable.
type MuxConfig struct {
	TokenID       string
	TokenSecret   string
	WebhookSecret string
	BaseURL       string
	ImageBaseURL  string
}

// WorkflowConfig holds the external workflow trigger service settings.
type WorkflowConfig struct {
	BaseURL string
	Token   string
}

// RateLimitConfig holds per-user limiter settings (requests per
// window) and the per-IP fallback rate for unauthenticated surfaces.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	IPRate   int
	IPBurst  int
}

// AppConfig holds the application's own base URL.
type AppConfig struct {
	BaseURL string
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// TracingConfig holds Jaeger settings.
type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	JaegerEndpoint string
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate enforces the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Mux.WebhookSecret == "" {
		return fmt.Errorf("mux.webhookSecret is required: webhook events cannot be verified without it")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret is required")
	}
	return nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.readTimeout", "30s")
	viper.SetDefault("server.writeTimeout", "30s")
	viper.SetDefault("server.shutdownTimeout", "10s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "vidtube")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxConns", 25)
	viper.SetDefault("database.minConns", 5)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Storage defaults
	viper.SetDefault("storage.endpoint", "localhost:9000")
	viper.SetDefault("storage.accessKeyID", "minioadmin")
	viper.SetDefault("storage.secretAccessKey", "minioadmin")
	viper.SetDefault("storage.bucketName", "vidtube-images")
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.useSSL", false)
	viper.SetDefault("storage.publicBaseURL", "http://localhost:9000/vidtube-images")

	// Video provider defaults
	viper.SetDefault("mux.baseURL", "https://api.mux.com")
	viper.SetDefault("mux.imageBaseURL", "https://image.mux.com")

	// Rate limit defaults: 10 requests per 10 seconds per user,
	// matching the limiter the frontend was tuned against.
	viper.SetDefault("ratelimit.requests", 10)
	viper.SetDefault("ratelimit.window", "10s")
	viper.SetDefault("ratelimit.ipRate", 20)
	viper.SetDefault("ratelimit.ipBurst", 40)

	// App defaults
	viper.SetDefault("app.baseURL", "http://localhost:8080")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	// Tracing defaults
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.serviceName", "vidtube-api")
	viper.SetDefault("tracing.jaegerEndpoint", "http://localhost:14268/api/traces")
}
