// Package config reads the service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"

	StatsModeSync  = "sync"
	StatsModeAsync = "async"
)

// Config holds every setting the binaries consume.
type Config struct {
	HTTPPort string
	LogLevel string

	CommissionFraction         float64
	DomesticCommissionFraction float64
	CommissionPolicy           string
	MaxWalletsPerUser          int
	NewWalletDepositBTC        float64
	AdminAPIKey                string

	StorageDriver string
	DatabaseDSN   string
	Tables        TableNames

	StatsMode   string
	SQSQueueURL string

	PriceAPIDomain   string
	PriceAPIEndpoint string
	USDSymbol        string
	PriceFieldName   string
	PriceAPITimeout  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PriceCacheTTL time.Duration

	StaleTransactionAge time.Duration
}

// TableNames are the DynamoDB tables used by the dynamodb driver.
type TableNames struct {
	Users        string
	Wallets      string
	Transactions string
	Stats        string
}

// Load reads .env, if present, and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment and validates it.
func FromEnv() (*Config, error) {
	var errs []error
	cfg := &Config{
		HTTPPort:         getString("HTTP_PORT", "8080"),
		LogLevel:         getString("LOG_LEVEL", "info"),
		CommissionPolicy: getString("COMMISSION_POLICY", "flat"),
		AdminAPIKey:      os.Getenv("ADMIN_API_KEY"),
		StorageDriver:    getString("STORAGE_DRIVER", DriverMemory),
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
		Tables: TableNames{
			Users:        os.Getenv("DYNAMODB_USERS_TABLE_NAME"),
			Wallets:      os.Getenv("DYNAMODB_WALLETS_TABLE_NAME"),
			Transactions: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
			Stats:        os.Getenv("DYNAMODB_STATS_TABLE_NAME"),
		},
		StatsMode:        getString("STATS_MODE", StatsModeSync),
		SQSQueueURL:      os.Getenv("SQS_QUEUE_URL"),
		PriceAPIDomain:   getString("PRICE_API_DOMAIN", "https://blockchain.info"),
		PriceAPIEndpoint: getString("PRICE_API_ENDPOINT", "/ticker"),
		USDSymbol:        getString("USD_SYMBOL", "USD"),
		PriceFieldName:   getString("PRICE_FIELD_NAME", "last"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
	}

	cfg.CommissionFraction = getFloat("COMMISSION_FRACTION", 0.015, &errs)
	cfg.DomesticCommissionFraction = getFloat("DOMESTIC_TRANSFER_COMMISSION_FRACTION", 0, &errs)
	cfg.MaxWalletsPerUser = getInt("MAX_WALLETS_PER_USER", 3, &errs)
	cfg.NewWalletDepositBTC = getFloat("NEW_WALLET_DEPOSIT_BTC", 1.0, &errs)
	cfg.PriceAPITimeout = getDuration("PRICE_API_TIMEOUT", 5*time.Second, &errs)
	cfg.RedisDB = getInt("REDIS_DB", 0, &errs)
	cfg.PriceCacheTTL = getDuration("PRICE_CACHE_TTL", 0, &errs)
	cfg.StaleTransactionAge = getDuration("STALE_TRANSACTION_AGE", 20*time.Minute, &errs)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every setting that is out of range or missing.
func (c *Config) Validate() error {
	var errs []error

	if c.CommissionFraction < 0 || c.CommissionFraction > 1 {
		errs = append(errs, fmt.Errorf("COMMISSION_FRACTION must be within [0, 1], got %v", c.CommissionFraction))
	}
	if c.DomesticCommissionFraction < 0 || c.DomesticCommissionFraction > 1 {
		errs = append(errs, fmt.Errorf("DOMESTIC_TRANSFER_COMMISSION_FRACTION must be within [0, 1], got %v", c.DomesticCommissionFraction))
	}
	if c.MaxWalletsPerUser <= 0 {
		errs = append(errs, fmt.Errorf("MAX_WALLETS_PER_USER must be positive, got %d", c.MaxWalletsPerUser))
	}
	if c.NewWalletDepositBTC < 0 {
		errs = append(errs, fmt.Errorf("NEW_WALLET_DEPOSIT_BTC must not be negative, got %v", c.NewWalletDepositBTC))
	}
	if c.AdminAPIKey == "" {
		errs = append(errs, errors.New("ADMIN_API_KEY environment variable not set"))
	}

	switch c.StorageDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("DATABASE_DSN environment variable not set"))
		}
	case DriverDynamoDB:
		if c.Tables.Users == "" || c.Tables.Wallets == "" || c.Tables.Transactions == "" || c.Tables.Stats == "" {
			errs = append(errs, errors.New("one or more DynamoDB table name environment variables are not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	switch c.StatsMode {
	case StatsModeSync:
	case StatsModeAsync:
		if c.SQSQueueURL == "" {
			errs = append(errs, errors.New("SQS_QUEUE_URL environment variable not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STATS_MODE %q", c.StatsMode))
	}
	if c.StatsMode == StatsModeAsync && c.StorageDriver == DriverMemory {
		errs = append(errs, errors.New("STATS_MODE=async requires a shared STORAGE_DRIVER (postgres or dynamodb)"))
	}

	return errors.Join(errs...)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64, errs *[]error) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return f
}

func getInt(key string, fallback int, errs *[]error) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}
