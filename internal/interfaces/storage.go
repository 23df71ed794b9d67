// Package interfaces defines service contracts for neurotrade
package interfaces

import (
	"context"

	"github.com/neurotrade/neurotrade/internal/models"
)

// PortfolioStore persists the whole portfolio as one blob under a fixed
// account key, plus the append-only transaction journal.
type PortfolioStore interface {
	// SavePortfolio serializes the full portfolio to the durable slot.
	SavePortfolio(ctx context.Context, portfolio *models.Portfolio) error

	// LoadPortfolio deserializes the stored portfolio. Returns (nil, nil)
	// when the slot is absent, corrupt, or has an unknown schema version;
	// the caller falls back to a default portfolio rather than failing.
	LoadPortfolio(ctx context.Context) (*models.Portfolio, error)

	// AppendTransaction records one executed fill in the journal.
	AppendTransaction(ctx context.Context, txn *models.Transaction) error

	// ListTransactions returns journal entries, newest first. limit <= 0
	// returns all.
	ListTransactions(ctx context.Context, limit int) ([]*models.Transaction, error)

	Close() error
}
