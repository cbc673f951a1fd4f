package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultRefreshSchedule = "*/5 * * * *"
	minJWTSecretLength     = 32
)

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Driver      string
	DatabaseURL string
	SQLitePath  string
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is believed.
	// Empty means the client is always RemoteAddr.
	TrustedProxies []string
}

// KafkaConfig configures the optional change-event publisher.
// Publishing is disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	// MaxPerSecond caps the produce rate. Zero means unlimited.
	MaxPerSecond float64
	Burst        int
}

// Enabled reports whether at least one broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// AppConfig is the full runtime configuration of the API server.
type AppConfig struct {
	HTTPAddr       string
	Version        string
	LogLevel       string
	LogFormat      string
	JWTSecret      string
	SwaggerEnabled bool
	Storage        StorageConfig
	RateLimit      RateLimitConfig
	// CORSAllowedOrigins enables CORS for the listed front-end origins.
	CORSAllowedOrigins []string
	// CSPReportOnly sends the CSP as report-only instead of enforcing it.
	CSPReportOnly bool
	// MetricsRefreshSchedule is the cron spec for refreshing record-count gauges.
	MetricsRefreshSchedule string
	ShutdownTimeout        time.Duration
	// RequestTimeout bounds the handling time of one request (504 after).
	RequestTimeout time.Duration
	// MaxBodyBytes limits PUT bodies.
	MaxBodyBytes int64
	// TraceSampleRatio is the fraction of root spans sampled, 0 to 1.
	TraceSampleRatio float64
	Kafka                  KafkaConfig
	// ConfigFile is an optional YAML file with access-policy overrides.
	ConfigFile string
}

// Load reads AppConfig from the environment.
//
// Invalid optional values fall back to their defaults and are reported in
// the returned warnings. Missing or invalid required values are errors.
func Load() (*AppConfig, []string, error) {
	cfg := &AppConfig{
		HTTPAddr:       GetEnvString("HTTP_ADDR", defaultHTTPAddr),
		Version:        GetEnvString("VERSION", "dev"),
		LogLevel:       GetEnvString("LOG_LEVEL", "info"),
		LogFormat:      GetEnvString("LOG_FORMAT", "json"),
		JWTSecret:      GetEnvString("JWT_SECRET", ""),
		SwaggerEnabled: GetEnvBool("SWAGGER_ENABLED", true),
		Storage: StorageConfig{
			Driver:      strings.ToLower(GetEnvString("STORAGE_DRIVER", DriverPostgres)),
			DatabaseURL: GetEnvString("DATABASE_URL", ""),
			SQLitePath:  GetEnvString("SQLITE_PATH", "campus.db"),
		},
		RateLimit: RateLimitConfig{
			Enabled: GetEnvBool("RATE_LIMIT_ENABLED", true),
			RPS:     GetEnvFloat("RATE_LIMIT_RPS", 20),
			Burst:   GetEnvInt("RATE_LIMIT_BURST", 40),

			TrustedProxies: GetEnvStringList("TRUSTED_PROXIES", nil),
		},
		CORSAllowedOrigins: GetEnvStringList("CORS_ALLOWED_ORIGINS", nil),
		CSPReportOnly:      GetEnvBool("CSP_REPORT_ONLY", false),
		MetricsRefreshSchedule: GetEnvString("METRICS_REFRESH_SCHEDULE", defaultRefreshSchedule),
		ShutdownTimeout:        GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		RequestTimeout:         GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxBodyBytes:           int64(GetEnvInt("MAX_BODY_BYTES", 1<<20)),
		TraceSampleRatio:       GetEnvFloat("TRACE_SAMPLE_RATIO", 1.0),
		Kafka: KafkaConfig{
			Brokers:      GetEnvStringList("KAFKA_BROKERS", nil),
			Topic:        GetEnvString("KAFKA_TOPIC", "campus-api.changes"),
			WriteTimeout: GetEnvDuration("KAFKA_WRITE_TIMEOUT", 5*time.Second),
			MaxPerSecond: GetEnvFloat("KAFKA_MAX_PER_SECOND", 0),
			Burst:        GetEnvInt("KAFKA_BURST", 10),
		},
		ConfigFile: GetEnvString("CONFIG_FILE", ""),
	}

	var warnings []string
	fallback := func(field, value string, err error, def string) {
		warnings = append(warnings,
			fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%s'", field, value, err, def))
	}

	if err := ValidateCronSchedule(cfg.MetricsRefreshSchedule); err != nil {
		fallback("METRICS_REFRESH_SCHEDULE", cfg.MetricsRefreshSchedule, err, defaultRefreshSchedule)
		cfg.MetricsRefreshSchedule = defaultRefreshSchedule
	}
	if cfg.RateLimit.RPS <= 0 {
		fallback("RATE_LIMIT_RPS", fmt.Sprint(cfg.RateLimit.RPS), errors.New("must be positive"), "20")
		cfg.RateLimit.RPS = 20
	}
	if err := ValidateIntRange(cfg.RateLimit.Burst, 1, 10000); err != nil {
		fallback("RATE_LIMIT_BURST", fmt.Sprint(cfg.RateLimit.Burst), err, "40")
		cfg.RateLimit.Burst = 40
	}
	if err := ValidatePositiveDuration(cfg.ShutdownTimeout); err != nil {
		fallback("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout.String(), err, "10s")
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if err := ValidatePositiveDuration(cfg.RequestTimeout); err != nil {
		fallback("REQUEST_TIMEOUT", cfg.RequestTimeout.String(), err, "30s")
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		fallback("MAX_BODY_BYTES", fmt.Sprint(cfg.MaxBodyBytes), errors.New("must be positive"), "1048576")
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.TraceSampleRatio < 0 || cfg.TraceSampleRatio > 1 {
		fallback("TRACE_SAMPLE_RATIO", fmt.Sprint(cfg.TraceSampleRatio), errors.New("must be between 0 and 1"), "1")
		cfg.TraceSampleRatio = 1.0
	}

	if err := ValidatePositiveDuration(cfg.Kafka.WriteTimeout); err != nil {
		fallback("KAFKA_WRITE_TIMEOUT", cfg.Kafka.WriteTimeout.String(), err, "5s")
		cfg.Kafka.WriteTimeout = 5 * time.Second
	}
	if cfg.Kafka.MaxPerSecond < 0 {
		fallback("KAFKA_MAX_PER_SECOND", fmt.Sprint(cfg.Kafka.MaxPerSecond), errors.New("must not be negative"), "0")
		cfg.Kafka.MaxPerSecond = 0
	}
	if err := ValidateIntRange(cfg.Kafka.Burst, 1, 10000); err != nil {
		fallback("KAFKA_BURST", fmt.Sprint(cfg.Kafka.Burst), err, "10")
		cfg.Kafka.Burst = 10
	}

	if err := cfg.Validate(); err != nil {
		return nil, warnings, err
	}
	return cfg, warnings, nil
}

// Validate checks the required settings.
func (c *AppConfig) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_DRIVER=sqlite")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of %s, %s, %s (got %q)",
			DriverPostgres, DriverSQLite, DriverMemory, c.Storage.Driver)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters (256 bits)", minJWTSecretLength)
	}

	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC must be set when KAFKA_BROKERS is configured")
	}
	return nil
}
