// Package valuation computes the display figures for a portfolio from live
// prices. It never mutates the portfolio.
package valuation

import (
	"context"
	"sync"
	"time"

	"github.com/neurotrade/neurotrade/internal/common"
	"github.com/neurotrade/neurotrade/internal/interfaces"
	"github.com/neurotrade/neurotrade/internal/models"
)

// Service implements ValuationService on top of a QuoteClient.
type Service struct {
	quotes interfaces.QuoteClient
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewService creates a new valuation service.
func NewService(quotes interfaces.QuoteClient, logger *common.Logger) *Service {
	return &Service{
		quotes: quotes,
		logger: logger,
		now:    time.Now,
	}
}

// Valuate computes total value, P/L against the initial baseline, and
// per-holding market values. Price lookups for distinct symbols run
// concurrently; they are read-only. A holding whose price cannot be
// fetched is excluded from the total, listed under Missing, and marks the
// valuation as Partial; it never silently contributes zero.
func (s *Service) Valuate(ctx context.Context, portfolio *models.Portfolio) (*models.Valuation, error) {
	symbols := portfolio.Symbols()

	prices := make(map[string]float64, len(symbols))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			quote, err := s.quotes.GetQuote(ctx, symbol)
			if err != nil || quote == nil || quote.Price <= 0 {
				if err != nil {
					s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Valuation price unavailable")
				}
				return
			}
			mu.Lock()
			prices[symbol] = quote.Price
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	return Compute(portfolio, prices, symbols, s.now().UTC()), nil
}

// Compute aggregates known prices over the portfolio. It is a pure
// function: symbols absent from prices are treated as unavailable.
func Compute(portfolio *models.Portfolio, prices map[string]float64, symbols []string, computedAt time.Time) *models.Valuation {
	v := &models.Valuation{
		TotalValue: portfolio.Cash,
		Cash:       portfolio.Cash,
		Holdings:   make([]models.HoldingValue, 0, len(symbols)),
		ComputedAt: computedAt,
	}

	for _, symbol := range symbols {
		h := portfolio.Holdings[symbol]
		hv := models.HoldingValue{
			Symbol:      symbol,
			Shares:      h.Shares,
			AverageCost: h.AverageCost,
		}

		if price, ok := prices[symbol]; ok {
			hv.Price = price
			hv.MarketValue = float64(h.Shares) * price
			hv.UnrealizedReturn = float64(h.Shares) * (price - h.AverageCost)
			hv.PriceAvailable = true
			v.TotalValue += hv.MarketValue
		} else {
			v.Partial = true
			v.Missing = append(v.Missing, symbol)
		}

		v.Holdings = append(v.Holdings, hv)
	}

	v.ProfitLoss = v.TotalValue - portfolio.InitialValue
	if portfolio.InitialValue != 0 {
		v.ProfitLossPct = v.ProfitLoss / portfolio.InitialValue * 100
	}

	return v
}

// Ensure Service implements ValuationService
var _ interfaces.ValuationService = (*Service)(nil)
