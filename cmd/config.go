package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for images without one

	"github.com/joho/godotenv"
)

// Backends selectable through configuration.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AttachmentsLocal = "local"
	AttachmentsGCS   = "gcs"

	LocksMemory = "memory"
	LocksRedis  = "redis"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	AttachmentBackend  string
	AttachmentDir      string
	AttachmentBaseURL  string
	GCSBucket          string
	GCSCredentialsJSON string

	LockBackend   string
	RedisAddr     string
	RedisPassword string
	LockTTL       time.Duration
	LockWait      time.Duration

	PersistenceTimeout time.Duration

	PubSubEnabled   bool
	PubSubProjectID string
	PubSubTopic     string

	// DefaultCountry is the region used to read client phone numbers
	// written without a country code.
	DefaultCountry string
	// Timezone decides where "today" starts for the ledger.
	Timezone string

	RateRPS   float64
	RateBurst int

	OverdueScanSchedule string
	SwaggerEnabled      bool

	OTelEnabled     bool
	OTelEndpoint    string
	OTelInsecure    bool
	OTelServiceName string
	OTelSampleRatio float64
}

// LoadConfig reads the environment, after merging a .env file when present,
// and validates the result.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort: getenv("HTTP_PORT", "8080"),
		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "info")),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBName:     getenv("DB_NAME", "workshop"),
		DBSslMode:  getenv("DB_SSLMODE", "disable"),
		SQLitePath: getenv("SQLITE_PATH", "workshop.db"),

		AttachmentBackend:  strings.ToLower(getenv("ATTACHMENT_BACKEND", AttachmentsLocal)),
		AttachmentDir:      getenv("ATTACHMENT_DIR", "attachments"),
		AttachmentBaseURL:  getenv("ATTACHMENT_BASE_URL", "/attachments"),
		GCSBucket:          getenv("GCS_BUCKET", ""),
		GCSCredentialsJSON: getenv("GCS_CREDENTIALS_JSON", ""),

		LockBackend:   strings.ToLower(getenv("LOCK_BACKEND", LocksMemory)),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		LockTTL:       getdur("LOCK_TTL", 30*time.Second),
		LockWait:      getdur("LOCK_WAIT", 5*time.Second),

		PersistenceTimeout: getdur("PERSISTENCE_TIMEOUT", 15*time.Second),

		PubSubEnabled:   getbool("PUBSUB_ENABLED", false),
		PubSubProjectID: getenv("PUBSUB_PROJECT_ID", ""),
		PubSubTopic:     getenv("PUBSUB_TOPIC", "workshop-orders"),

		DefaultCountry: strings.ToUpper(getenv("DEFAULT_COUNTRY", "IN")),
		Timezone:       getenv("WORKSHOP_TIMEZONE", "Asia/Kolkata"),

		RateRPS:   getfloat("RATE_RPS", 20),
		RateBurst: getint("RATE_BURST", 40),

		OverdueScanSchedule: getenv("OVERDUE_SCAN_SCHEDULE", "0 */5 * * * *"),
		SwaggerEnabled:      getbool("SWAGGER_ENABLED", true),

		OTelEnabled:     getbool("OTEL_ENABLED", false),
		OTelEndpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelInsecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTelServiceName: getenv("OTEL_SERVICE_NAME", "workshop"),
		OTelSampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
	}

	return cfg, cfg.Validate()
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPPort) == "" {
		return errors.New("HTTP_PORT must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}

	switch c.DBDriver {
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for postgres")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("SQLITE_PATH must not be empty")
		}
	default:
		return errors.New("DB_DRIVER must be postgres or sqlite")
	}

	switch c.AttachmentBackend {
	case AttachmentsLocal:
		if strings.TrimSpace(c.AttachmentDir) == "" {
			return errors.New("ATTACHMENT_DIR must not be empty")
		}
	case AttachmentsGCS:
		if c.GCSBucket == "" {
			return errors.New("GCS_BUCKET is required for the gcs backend")
		}
	default:
		return errors.New("ATTACHMENT_BACKEND must be local or gcs")
	}

	switch c.LockBackend {
	case LocksMemory:
	case LocksRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis lock backend")
		}
		if c.LockTTL <= 0 {
			return errors.New("LOCK_TTL must be > 0")
		}
	default:
		return errors.New("LOCK_BACKEND must be memory or redis")
	}

	if c.PersistenceTimeout <= 0 {
		return errors.New("PERSISTENCE_TIMEOUT must be > 0")
	}
	if c.LockWait <= 0 {
		return errors.New("LOCK_WAIT must be > 0")
	}
	if c.PubSubEnabled && (c.PubSubProjectID == "" || c.PubSubTopic == "") {
		return errors.New("PUBSUB_PROJECT_ID and PUBSUB_TOPIC are required when PUBSUB_ENABLED is set")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("WORKSHOP_TIMEZONE: %w", err)
	}
	if c.RateRPS < 0 {
		return errors.New("RATE_RPS must be >= 0")
	}
	if c.RateBurst < 1 {
		return errors.New("RATE_BURST must be >= 1")
	}
	if c.OTelSampleRatio < 0 || c.OTelSampleRatio > 1 {
		return errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return nil
}

// PostgresDSN renders the connection string for gorm.io/driver/postgres.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
