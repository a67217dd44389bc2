package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"HTTP_PORT", "LOG_LEVEL", "COMMISSION_FRACTION", "DOMESTIC_TRANSFER_COMMISSION_FRACTION",
	"COMMISSION_POLICY", "MAX_WALLETS_PER_USER", "NEW_WALLET_DEPOSIT_BTC", "ADMIN_API_KEY",
	"STORAGE_DRIVER", "DATABASE_DSN", "DYNAMODB_USERS_TABLE_NAME", "DYNAMODB_WALLETS_TABLE_NAME",
	"DYNAMODB_TRANSACTIONS_TABLE_NAME", "DYNAMODB_STATS_TABLE_NAME", "STATS_MODE", "SQS_QUEUE_URL",
	"PRICE_API_DOMAIN", "PRICE_API_ENDPOINT", "USD_SYMBOL", "PRICE_FIELD_NAME", "PRICE_API_TIMEOUT",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "PRICE_CACHE_TTL", "STALE_TRANSACTION_AGE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ADMIN_API_KEY", "secret")

		cfg, err := FromEnv()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 0.015, cfg.CommissionFraction)
		assert.Zero(t, cfg.DomesticCommissionFraction)
		assert.Equal(t, "flat", cfg.CommissionPolicy)
		assert.Equal(t, 3, cfg.MaxWalletsPerUser)
		assert.Equal(t, 1.0, cfg.NewWalletDepositBTC)
		assert.Equal(t, DriverMemory, cfg.StorageDriver)
		assert.Equal(t, StatsModeSync, cfg.StatsMode)
		assert.Equal(t, "https://blockchain.info", cfg.PriceAPIDomain)
		assert.Equal(t, "/ticker", cfg.PriceAPIEndpoint)
		assert.Equal(t, "USD", cfg.USDSymbol)
		assert.Equal(t, "last", cfg.PriceFieldName)
		assert.Equal(t, 5*time.Second, cfg.PriceAPITimeout)
		assert.Zero(t, cfg.PriceCacheTTL)
		assert.Equal(t, 20*time.Minute, cfg.StaleTransactionAge)
	})

	t.Run("Overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ADMIN_API_KEY", "secret")
		t.Setenv("COMMISSION_FRACTION", "0.02")
		t.Setenv("MAX_WALLETS_PER_USER", "5")
		t.Setenv("STORAGE_DRIVER", "dynamodb")
		t.Setenv("DYNAMODB_USERS_TABLE_NAME", "users")
		t.Setenv("DYNAMODB_WALLETS_TABLE_NAME", "wallets")
		t.Setenv("DYNAMODB_TRANSACTIONS_TABLE_NAME", "transactions")
		t.Setenv("DYNAMODB_STATS_TABLE_NAME", "stats")
		t.Setenv("STATS_MODE", "async")
		t.Setenv("SQS_QUEUE_URL", "https://sqs.local/q")
		t.Setenv("PRICE_CACHE_TTL", "30s")

		cfg, err := FromEnv()

		require.NoError(t, err)
		assert.Equal(t, 0.02, cfg.CommissionFraction)
		assert.Equal(t, 5, cfg.MaxWalletsPerUser)
		assert.Equal(t, TableNames{Users: "users", Wallets: "wallets", Transactions: "transactions", Stats: "stats"}, cfg.Tables)
		assert.Equal(t, 30*time.Second, cfg.PriceCacheTTL)
	})

	t.Run("Malformed Number", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ADMIN_API_KEY", "secret")
		t.Setenv("MAX_WALLETS_PER_USER", "three")

		_, err := FromEnv()

		assert.ErrorContains(t, err, "MAX_WALLETS_PER_USER")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			CommissionFraction: 0.015,
			MaxWalletsPerUser:  3,
			AdminAPIKey:        "secret",
			StorageDriver:      DriverMemory,
			StatsMode:          StatsModeSync,
		}
	}

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"Fraction Above One", func(c *Config) { c.CommissionFraction = 1.5 }, "COMMISSION_FRACTION"},
		{"Negative Domestic Fraction", func(c *Config) { c.DomesticCommissionFraction = -0.1 }, "DOMESTIC_TRANSFER_COMMISSION_FRACTION"},
		{"Zero Wallet Limit", func(c *Config) { c.MaxWalletsPerUser = 0 }, "MAX_WALLETS_PER_USER"},
		{"Negative Deposit", func(c *Config) { c.NewWalletDepositBTC = -1 }, "NEW_WALLET_DEPOSIT_BTC"},
		{"Missing Admin Key", func(c *Config) { c.AdminAPIKey = "" }, "ADMIN_API_KEY"},
		{"Postgres Without DSN", func(c *Config) { c.StorageDriver = DriverPostgres }, "DATABASE_DSN"},
		{"DynamoDB Without Tables", func(c *Config) { c.StorageDriver = DriverDynamoDB }, "DynamoDB table name"},
		{"Unknown Driver", func(c *Config) { c.StorageDriver = "sqlite" }, "STORAGE_DRIVER"},
		{"Async Without Queue", func(c *Config) { c.StatsMode = StatsModeAsync }, "SQS_QUEUE_URL"},
		{"Async With Memory Storage", func(c *Config) {
			c.StatsMode = StatsModeAsync
			c.SQSQueueURL = "queue"
		}, "STATS_MODE=async"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{}).SlogLevel())
}
