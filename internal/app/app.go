// Package app wires configuration, storage, clients, and services into a
// single application core shared by entry points and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/neurotrade/neurotrade/internal/clients/alphavantage"
	"github.com/neurotrade/neurotrade/internal/common"
	"github.com/neurotrade/neurotrade/internal/interfaces"
	"github.com/neurotrade/neurotrade/internal/services/market"
	"github.com/neurotrade/neurotrade/internal/services/trading"
	"github.com/neurotrade/neurotrade/internal/services/valuation"
	badgerstore "github.com/neurotrade/neurotrade/internal/storage/badger"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Store            interfaces.PortfolioStore
	QuoteClient      interfaces.QuoteClient
	TradingService   interfaces.TradingService
	ValuationService interfaces.ValuationService
	MarketService    interfaces.MarketService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, NEUROTRADE_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("NEUROTRADE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "neurotrade.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/neurotrade.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := badgerstore.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	portfolioStore := badgerstore.NewPortfolioStorage(store, config.Portfolio.AccountID, logger)

	if config.Clients.AlphaVantage.APIKey == "" {
		logger.Warn().Msg("Alpha Vantage API key not configured - live quotes will be unavailable")
	}

	quoteClient := alphavantage.NewClient(config.Clients.AlphaVantage.APIKey,
		alphavantage.WithBaseURL(config.Clients.AlphaVantage.BaseURL),
		alphavantage.WithLogger(logger),
		alphavantage.WithRateLimit(config.Clients.AlphaVantage.RateLimit),
		alphavantage.WithTimeout(config.Clients.AlphaVantage.GetTimeout()),
	)

	tradingService, err := trading.NewService(context.Background(), quoteClient, portfolioStore, config.Portfolio.StartingCash, logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize trading service: %w", err)
	}
	valuationService := valuation.NewService(quoteClient, logger)
	marketService := market.NewService(quoteClient, config.Ticker.Symbols, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Store:            portfolioStore,
		QuoteClient:      quoteClient,
		TradingService:   tradingService,
		ValuationService: valuationService,
		MarketService:    marketService,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
