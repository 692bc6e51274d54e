package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pgpkg "github.com/loanflow/loanflow/pkg/postgres"
)

// Audit store backends.
const (
	AuditStoreMemory   = "memory"
	AuditStorePostgres = "postgres"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// Postgres converts to the shared pool configuration.
func (d DatabaseConfig) Postgres(appName string) pgpkg.Config {
	return pgpkg.Config{
		Host:            d.Host,
		Port:            d.Port,
		User:            d.User,
		Password:        d.Password,
		Database:        d.Name,
		SSLMode:         d.SSLMode,
		ApplicationName: appName,
		MaxConns:        int32(d.MaxConns),
	}
}

type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
	// OutboxInterval is how often the relay polls the outbox in postgres mode.
	OutboxInterval time.Duration
	OutboxBatch    int
}

type AuthConfig struct {
	JWTSecret    string
	JWTPublicKey string
	Issuer       string
}

// Enabled reports whether bearer authentication is switched on.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != "" || a.JWTPublicKey != ""
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether both halves of the key pair are configured.
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

type Config struct {
	GRPCPort        int
	HTTPPort        int
	AuditStore      string
	DB              DatabaseConfig
	Kafka           KafkaConfig
	Auth            AuthConfig
	TLS             TLSConfig
	RateLimit       RateLimitConfig
	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	OTLPEndpoint    string
	ShutdownTimeout time.Duration
	ServiceName     string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		GRPCPort:   getEnvInt("GRPC_PORT", 9090),
		HTTPPort:   getEnvInt("HTTP_PORT", 8080),
		AuditStore: strings.ToLower(getEnv("AUDIT_STORE", AuditStoreMemory)),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loanflow"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "loanflow"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:  getEnvList("KAFKA_BROKERS"),
			Topic:    getEnv("KAFKA_TOPIC", "loanflow.loan.events"),
			ClientID: getEnv("KAFKA_CLIENT_ID", "loan-service"),

			OutboxInterval: time.Duration(getEnvInt("OUTBOX_POLL_MS", 1000)) * time.Millisecond,
			OutboxBatch:    getEnvInt("OUTBOX_BATCH_SIZE", 100),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			JWTPublicKey: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:       getEnv("JWT_ISSUER", "loanflow"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvInt("RATE_LIMIT_RPS", 50),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 100),
		},
		CORSOrigins:     getEnvListDefault("CORS_ORIGINS", []string{"*"}),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 15)) * time.Second,
		ServiceName:     "loan-service",
	}
}

// Validate reports configuration that cannot be served.
func (c Config) Validate() error {
	var errs []error
	switch c.AuditStore {
	case AuditStoreMemory:
	case AuditStorePostgres:
		if c.DB.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required when AUDIT_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUDIT_STORE must be %q or %q, got %q", AuditStoreMemory, AuditStorePostgres, c.AuditStore))
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, fmt.Errorf("HTTP_PORT and GRPC_PORT must differ (both %d)", c.HTTPPort))
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate limit values must not be negative"))
	}
	return errors.Join(errs...)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	return getEnvListDefault(key, nil)
}

// getEnvListDefault splits a comma-separated variable, dropping blanks.
func getEnvListDefault(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
