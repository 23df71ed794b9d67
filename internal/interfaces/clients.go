// Package interfaces defines service contracts for neurotrade
package interfaces

import (
	"context"

	"github.com/neurotrade/neurotrade/internal/models"
)

// QuoteClient provides access to the upstream market data API. The core
// treats it as an external collaborator: failures are propagated, never
// retried here. Implementations must distinguish "symbol not found" from
// transport or rate-limit errors via typed sentinel errors.
type QuoteClient interface {
	// GetQuote retrieves the current quote for a symbol.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetSeries retrieves the historical close series at the resolution
	// backing the given timeframe, ordered oldest to newest.
	GetSeries(ctx context.Context, symbol string, timeframe models.Timeframe) ([]models.SeriesPoint, error)

	// GetNews retrieves recent news articles for a symbol.
	GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)
}
