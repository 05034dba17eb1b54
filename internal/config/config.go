// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	AWS         AWSConfig
	Catalog     CatalogConfig
	Storefront  StorefrontConfig
	I18n        I18nConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// DatabaseConfig selects where cart snapshots are persisted.
// Driver is one of "memory", "sqlite", "postgres" or "s3".
type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Prefix        string
	Endpoint        string
}

type CatalogConfig struct {
	Endpoint         string
	Collection       string
	PageSize         int
	Timeout          int // in seconds
	PlaceholderImage string
	RefreshOnStart   bool
}

type StorefrontConfig struct {
	BusinessName      string
	WhatsAppNumber    string
	MessagingBaseURL  string
	StorageKey        string
	PreferredOrder    []string
	NotificationTTL   time.Duration
	ConfirmWindow     time.Duration
	SessionTTL        time.Duration
	SessionSweepEvery time.Duration
	CartRetention     time.Duration
}

type I18nConfig struct {
	DefaultLocale string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	GeneralPerSecond float64
	GeneralBurst     int
	OrdersPerMinute  float64
	OrdersBurst      int
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "storefront"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:   getEnv("SQLITE_PATH", "storefront.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", ""),
			S3Prefix:        getEnv("AWS_S3_PREFIX", "carts/"),
			Endpoint:        getEnv("AWS_S3_ENDPOINT", ""),
		},
		Catalog: CatalogConfig{
			Endpoint:         strings.TrimRight(getEnv("POCKETBASE_URL", "http://127.0.0.1:8090"), "/"),
			Collection:       getEnv("COLLECTION_NAME", "produtos"),
			PageSize:         getEnvAsInt("CATALOG_PAGE_SIZE", 100),
			Timeout:          getEnvAsInt("CATALOG_TIMEOUT", 10),
			PlaceholderImage: getEnv("CATALOG_PLACEHOLDER_IMAGE", "https://placehold.co/300x200/cccccc/FFFFFF?text=Sem+Imagem&font=Inter"),
			RefreshOnStart:   getEnvAsBool("CATALOG_REFRESH_ON_START", true),
		},
		Storefront: StorefrontConfig{
			BusinessName:      getEnv("NOME_LANCHONETE", "Lanchonete"),
			WhatsAppNumber:    getEnv("NUMERO_WHATSAPP", ""),
			MessagingBaseURL:  strings.TrimRight(getEnv("MESSAGING_BASE_URL", "https://wa.me"), "/"),
			StorageKey:        getEnv("CART_STORAGE_KEY", "deliveryAppCart"),
			PreferredOrder:    getEnvAsList("PREFERRED_CATEGORY_ORDER", []string{"Promoção", "Lanche"}),
			NotificationTTL:   getEnvAsDuration("NOTIFICATION_TTL", 3*time.Second),
			ConfirmWindow:     getEnvAsDuration("ORDER_CONFIRM_WINDOW", 2*time.Minute),
			SessionTTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			SessionSweepEvery: getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Minute),
			CartRetention:     getEnvAsDuration("CART_RETENTION", 30*24*time.Hour),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "pt_BR"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		RateLimit: RateLimitConfig{
			GeneralPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
			GeneralBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
			OrdersPerMinute:  getEnvAsFloat("ORDER_RATE_LIMIT_PER_MINUTE", 6),
			OrdersBurst:      getEnvAsInt("ORDER_RATE_LIMIT_BURST", 3),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Catalog.Endpoint == "" {
		return fmt.Errorf("catalog endpoint is required")
	}

	if c.Catalog.Collection == "" {
		return fmt.Errorf("catalog collection name is required")
	}

	if c.Storefront.WhatsAppNumber == "" && c.Environment == "production" {
		return fmt.Errorf("whatsapp number is required in production")
	}

	switch c.Database.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	case DriverS3:
		if c.AWS.S3Bucket == "" {
			return fmt.Errorf("s3 storage driver requires AWS_S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Database.Driver)
	}

	if c.Database.Driver == DriverPostgres && c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

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
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Comma separated, blanks dropped.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
