// Package interfaces defines service contracts for neurotrade
package interfaces

import (
	"context"

	"github.com/neurotrade/neurotrade/internal/models"
)

// TradingService is the single authoritative entry point for changing the
// portfolio. Execute runs validate-then-mutate-then-persist as one atomic
// unit; no other transaction or valuation read observes intermediate state.
type TradingService interface {
	// Execute validates and applies a buy or sell at the current quoted
	// price. Business-rule failures return one of the models rejection
	// errors and leave the portfolio untouched.
	Execute(ctx context.Context, tradeType models.TradeType, symbol string, shares int64) (*models.TradeResult, error)

	// Portfolio returns a read snapshot of the current account state.
	Portfolio() *models.Portfolio

	// Transactions returns journal entries, newest first.
	Transactions(ctx context.Context, limit int) ([]*models.Transaction, error)
}

// ValuationService computes the display figures: total value, P/L against
// the initial baseline, and per-holding market values. It never mutates the
// portfolio and is safe to call concurrently.
type ValuationService interface {
	Valuate(ctx context.Context, portfolio *models.Portfolio) (*models.Valuation, error)
}

// MarketService handles read-only market data: quotes, ticker tape, news,
// and historical series for charting.
type MarketService interface {
	// GetQuote retrieves a live quote for a symbol.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetTickerTape retrieves quotes for the configured tape symbols.
	// Symbols whose quote fails are omitted.
	GetTickerTape(ctx context.Context) ([]models.TickerItem, error)

	// GetNews retrieves news with classified sentiment for a symbol.
	GetNews(ctx context.Context, symbol string) ([]models.NewsItem, error)

	// GetSeries retrieves the historical close series for a timeframe.
	GetSeries(ctx context.Context, symbol string, timeframe models.Timeframe) ([]models.SeriesPoint, error)

	// RenderChart renders the series as a PNG line chart.
	RenderChart(ctx context.Context, symbol string, timeframe models.Timeframe) ([]byte, error)
}
