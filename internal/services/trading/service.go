// Package trading implements the transaction engine: the single
// authoritative entry point for changing the portfolio.
package trading

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neurotrade/neurotrade/internal/common"
	"github.com/neurotrade/neurotrade/internal/interfaces"
	"github.com/neurotrade/neurotrade/internal/models"
)

// Service owns the in-memory portfolio and serializes all mutation.
// Execute runs validate-then-mutate-then-persist under one lock, so no
// other transaction or snapshot read ever observes intermediate state.
type Service struct {
	mu        sync.Mutex
	portfolio *models.Portfolio
	quotes    interfaces.QuoteClient
	store     interfaces.PortfolioStore
	logger    *common.Logger
	now       func() time.Time // injectable clock for testing
}

// NewService restores the portfolio from the store, falling back to a fresh
// account with the given starting cash when the slot is absent or unusable.
func NewService(ctx context.Context, quotes interfaces.QuoteClient, store interfaces.PortfolioStore, startingCash float64, logger *common.Logger) (*Service, error) {
	portfolio, err := store.LoadPortfolio(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to restore portfolio: %w", err)
	}
	if portfolio == nil {
		portfolio = models.NewPortfolio(startingCash)
		logger.Info().Float64("starting_cash", startingCash).Msg("Starting fresh portfolio")
	} else {
		logger.Info().
			Float64("cash", portfolio.Cash).
			Int("holdings", len(portfolio.Holdings)).
			Msg("Portfolio restored from storage")
	}

	return &Service{
		portfolio: portfolio,
		quotes:    quotes,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Execute validates and applies a buy or sell at the current quoted price.
//
// Validation short-circuits in order: quantity, price availability, then
// funds (buy) or shares (sell) sufficiency. Any rejection leaves the
// portfolio byte-for-byte unchanged. A persistence failure after a
// successful mutation does not roll the trade back; it is surfaced on the
// result so the caller can retry the save.
//
// Replaying an identical call produces a second, independent fill; there
// is no double-submit deduplication.
func (s *Service) Execute(ctx context.Context, tradeType models.TradeType, symbol string, shares int64) (*models.TradeResult, error) {
	if !tradeType.Valid() {
		return nil, fmt.Errorf("unknown trade type %q", tradeType)
	}
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if shares <= 0 {
		return nil, models.ErrInvalidQuantity
	}

	quote, err := s.quotes.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPriceUnavailable, err)
	}
	if quote == nil || quote.Price <= 0 {
		return nil, models.ErrPriceUnavailable
	}
	price := quote.Price

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &models.TradeResult{}

	switch tradeType {
	case models.TradeTypeBuy:
		cost := float64(shares) * price
		if cost > s.portfolio.Cash {
			return nil, fmt.Errorf("%w: need %.2f, have %.2f", models.ErrInsufficientFunds, cost, s.portfolio.Cash)
		}
		h := s.portfolio.ApplyBuy(symbol, shares, price)
		result.Holding = &h

	case models.TradeTypeSell:
		held, ok := s.portfolio.GetHolding(symbol)
		if !ok || held.Shares < shares {
			return nil, fmt.Errorf("%w: have %d shares of %s, tried to sell %d", models.ErrInsufficientShares, held.Shares, symbol, shares)
		}
		h, closed := s.portfolio.ApplySell(symbol, shares, price)
		result.Closed = closed
		if !closed {
			result.Holding = &h
		}
	}

	result.Cash = s.portfolio.Cash
	result.Transaction = models.Transaction{
		ID:         uuid.NewString(),
		Type:       tradeType,
		Symbol:     symbol,
		Shares:     shares,
		FillPrice:  price,
		CashAfter:  s.portfolio.Cash,
		ExecutedAt: s.now().UTC(),
	}

	s.logger.Info().
		Str("type", string(tradeType)).
		Str("symbol", symbol).
		Int64("shares", shares).
		Float64("fill_price", price).
		Float64("cash", s.portfolio.Cash).
		Msg("Trade executed")

	if err := s.store.AppendTransaction(ctx, &result.Transaction); err != nil {
		s.logger.Error().Err(err).Str("txn_id", result.Transaction.ID).Msg("Failed to journal transaction")
		result.PersistError = err.Error()
	}
	if err := s.store.SavePortfolio(ctx, s.portfolio); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist portfolio")
		result.PersistError = err.Error()
	}

	return result, nil
}

// Portfolio returns a deep-copied snapshot of the current account state.
func (s *Service) Portfolio() *models.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolio.Clone()
}

// Transactions returns journal entries, newest first.
func (s *Service) Transactions(ctx context.Context, limit int) ([]*models.Transaction, error) {
	return s.store.ListTransactions(ctx, limit)
}

// Ensure Service implements TradingService
var _ interfaces.TradingService = (*Service)(nil)
