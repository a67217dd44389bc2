// Package bootstrap builds the repository, services and observers described
// by a config.Config. Every binary goes through it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/btc-wallet-ledger/pkg/commission"
	"github.com/chris/btc-wallet-ledger/pkg/config"
	"github.com/chris/btc-wallet-ledger/pkg/events"
	"github.com/chris/btc-wallet-ledger/pkg/pricing"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
	dydbstore "github.com/chris/btc-wallet-ledger/pkg/storage/dynamodb"
	"github.com/chris/btc-wallet-ledger/pkg/storage/memory"
	"github.com/chris/btc-wallet-ledger/pkg/storage/postgres"
	"github.com/chris/btc-wallet-ledger/pkg/transactions"
	"github.com/chris/btc-wallet-ledger/pkg/users"
	"github.com/chris/btc-wallet-ledger/pkg/wallets"
)

// App is the wired application.
type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	Repo         storage.Repository
	Dispatcher   *events.Dispatcher
	Users        *users.Service
	Wallets      *wallets.Service
	Transactions *transactions.Service

	closers []func() error
}

// NewLogger returns a JSON slog logger writing to stdout at the configured level.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg.SlogLevel())
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// New wires the application. The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = NewLogger(cfg)
	}
	app := &App{Config: cfg, Logger: logger}

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		loaded, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
		}
		awsCfg = &loaded
		return loaded, nil
	}

	repo, err := app.newRepository(ctx, loadAWS)
	if err != nil {
		return nil, err
	}
	app.Repo = repo

	dispatcher, err := newDispatcher(cfg, repo, logger, loadAWS)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Dispatcher = dispatcher

	policy, err := commission.New(cfg.CommissionPolicy, cfg.CommissionFraction, cfg.DomesticCommissionFraction)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Users = users.NewService(repo, logger)
	app.Wallets = wallets.NewService(repo, app.newPriceSource(), wallets.Config{
		MaxWalletsPerUser:   cfg.MaxWalletsPerUser,
		NewWalletDepositBTC: cfg.NewWalletDepositBTC,
	}, logger)
	app.Transactions = transactions.NewService(repo, app.Wallets, policy, dispatcher, cfg.AdminAPIKey, logger)

	return app, nil
}

// Close releases the connections opened by New.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) newRepository(ctx context.Context, loadAWS func() (aws.Config, error)) (storage.Repository, error) {
	cfg := a.Config
	switch cfg.StorageDriver {
	case config.DriverMemory, "":
		a.Logger.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil

	case config.DriverPostgres:
		db, err := postgres.Open(cfg.DatabaseDSN, postgres.PoolConfig{})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		a.closers = append(a.closers, sqlDB.Close)

		store := postgres.New(db)
		if err := store.Migrate(ctx); err != nil {
			_ = a.Close()
			return nil, err
		}
		return store, nil

	case config.DriverDynamoDB:
		awsCfg, err := loadAWS()
		if err != nil {
			return nil, err
		}
		return dydbstore.New(dynamodb.NewFromConfig(awsCfg), dydbstore.Tables{
			Users:        cfg.Tables.Users,
			Wallets:      cfg.Tables.Wallets,
			Transactions: cfg.Tables.Transactions,
			Stats:        cfg.Tables.Stats,
		}), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newDispatcher(cfg *config.Config, repo storage.StatisticsStore, logger *slog.Logger, loadAWS func() (aws.Config, error)) (*events.Dispatcher, error) {
	switch cfg.StatsMode {
	case config.StatsModeSync, "":
		return events.NewDispatcher(events.NewStatisticsObserver(repo, logger)), nil
	case config.StatsModeAsync:
		awsCfg, err := loadAWS()
		if err != nil {
			return nil, err
		}
		publisher := events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
		return events.NewDispatcher(&events.PublishingObserver{Publisher: publisher}), nil
	default:
		return nil, fmt.Errorf("unknown stats mode %q", cfg.StatsMode)
	}
}

func (a *App) newPriceSource() pricing.Source {
	cfg := a.Config
	var source pricing.Source = pricing.NewBlockchainClient(pricing.BlockchainConfig{
		Domain:    cfg.PriceAPIDomain,
		Endpoint:  cfg.PriceAPIEndpoint,
		Symbol:    cfg.USDSymbol,
		FieldName: cfg.PriceFieldName,
		Timeout:   cfg.PriceAPITimeout,
	})
	if cfg.RedisAddr == "" || cfg.PriceCacheTTL <= 0 {
		return source
	}

	client := pricing.NewRedisClient(pricing.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	a.closers = append(a.closers, client.Close)
	return pricing.NewCachedSource(source, pricing.NewRedisCache(client), cfg.PriceCacheTTL, a.Logger)
}
