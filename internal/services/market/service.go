// Package market provides read-only market data: quotes, ticker tape,
// news, and historical series.
package market

import (
	"context"
	"fmt"
	"sync"

	"github.com/neurotrade/neurotrade/internal/common"
	"github.com/neurotrade/neurotrade/internal/interfaces"
	"github.com/neurotrade/neurotrade/internal/models"
)

// DefaultNewsLimit caps the number of articles returned per symbol.
const DefaultNewsLimit = 10

// Service implements MarketService on top of a QuoteClient. Everything here
// is read-only and never touches the portfolio, so calls may run
// concurrently with each other and with valuation.
type Service struct {
	client      interfaces.QuoteClient
	tapeSymbols []string
	logger      *common.Logger
}

// NewService creates a new market data service. tapeSymbols is the symbol
// list for the ticker tape.
func NewService(client interfaces.QuoteClient, tapeSymbols []string, logger *common.Logger) *Service {
	return &Service{
		client:      client,
		tapeSymbols: tapeSymbols,
		logger:      logger,
	}
}

// GetQuote retrieves a live quote for a symbol.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	return s.client.GetQuote(ctx, symbol)
}

// GetTickerTape fetches quotes for the configured tape symbols
// concurrently. Failed symbols are logged and omitted; tape order follows
// the configured symbol order.
func (s *Service) GetTickerTape(ctx context.Context) ([]models.TickerItem, error) {
	results := make([]*models.TickerItem, len(s.tapeSymbols))

	var wg sync.WaitGroup
	for i, symbol := range s.tapeSymbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			quote, err := s.client.GetQuote(ctx, symbol)
			if err != nil {
				s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Ticker tape quote failed")
				return
			}
			results[i] = &models.TickerItem{
				Symbol:    quote.Symbol,
				Price:     quote.Price,
				ChangePct: quote.ChangePct,
			}
		}(i, symbol)
	}
	wg.Wait()

	items := make([]models.TickerItem, 0, len(results))
	for _, r := range results {
		if r != nil {
			items = append(items, *r)
		}
	}
	return items, nil
}

// GetNews retrieves news with classified sentiment for a symbol.
func (s *Service) GetNews(ctx context.Context, symbol string) ([]models.NewsItem, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	return s.client.GetNews(ctx, symbol, DefaultNewsLimit)
}

// GetSeries retrieves the historical close series for a timeframe.
func (s *Service) GetSeries(ctx context.Context, symbol string, timeframe models.Timeframe) ([]models.SeriesPoint, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if !timeframe.Valid() {
		return nil, fmt.Errorf("unsupported timeframe %q", timeframe)
	}
	return s.client.GetSeries(ctx, symbol, timeframe)
}

// RenderChart renders the series for a timeframe as a PNG line chart.
func (s *Service) RenderChart(ctx context.Context, symbol string, timeframe models.Timeframe) ([]byte, error) {
	points, err := s.GetSeries(ctx, symbol, timeframe)
	if err != nil {
		return nil, err
	}
	return RenderSeriesChart(models.NormalizeSymbol(symbol), points)
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
