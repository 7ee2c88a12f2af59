package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"TravelLedger/database/postgres"
	"TravelLedger/pkg/amqp"
	"TravelLedger/pkg/redis"
	"TravelLedger/pkg/smtp"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Env struct {
	Port   string
	AppEnv string

	DBDriver     string
	Postgres     postgres.Config
	SQLiteDBPath string

	JWTSecret      string
	AccessTokenTTL time.Duration

	Redis redis.Config
	SMTP  smtp.Config
	AMQP  amqp.Config

	InvitationTTL time.Duration
}

func Load() *Env {
	return &Env{
		Port:   getEnv("APP_PORT", "3000"),
		AppEnv: getEnv("APP_ENV", "development"),

		DBDriver: getEnv("DB_DRIVER", DriverPostgres),
		Postgres: postgres.Config{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "travel_ledger"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		},
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/travel-ledger.db"),

		JWTSecret:      getEnv("JWT_ACCESS_TOKEN_SECRET", ""),
		AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),

		Redis: redis.Config{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		SMTP: smtp.Config{
			Host:        getEnv("SMTP_HOST", "localhost"),
			Port:        getEnv("SMTP_PORT", "587"),
			Mail:        getEnv("SMTP_MAIL", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		AMQP: amqp.Config{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "travel_ledger"),
			Queue:    getEnv("AMQP_QUEUE", "expense_events"),
		},

		InvitationTTL: getEnvDuration("INVITATION_TTL", 7*24*time.Hour),
	}
}

// Validate collects every configuration problem into a single error.
func (e *Env) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(e.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", e.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch e.DBDriver {
	case DriverPostgres:
		if e.Postgres.Host == "" || e.Postgres.Name == "" {
			errs = append(errs, "DB_HOST and DB_NAME are required for the postgres driver")
		}
	case DriverSQLite:
		if e.SQLiteDBPath == "" {
			errs = append(errs, "SQLITE_DB_PATH cannot be empty for the sqlite driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid database driver '%s': must be one of [%s %s]", e.DBDriver, DriverPostgres, DriverSQLite))
	}

	if e.JWTSecret == "" {
		errs = append(errs, "JWT_ACCESS_TOKEN_SECRET is required")
	}

	if e.AccessTokenTTL <= 0 {
		errs = append(errs, fmt.Sprintf("invalid access token ttl %v: must be positive", e.AccessTokenTTL))
	}

	if e.InvitationTTL < time.Hour {
		errs = append(errs, fmt.Sprintf("invalid invitation ttl %v: must be at least 1 hour", e.InvitationTTL))
	}

	if e.AMQP.URL != "" {
		if parsedURL, err := url.Parse(e.AMQP.URL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", e.AMQP.URL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if e.AMQP.Exchange == "" || e.AMQP.Queue == "" {
			errs = append(errs, "AMQP exchange and queue names cannot be empty when AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
