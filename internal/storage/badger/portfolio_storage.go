package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/neurotrade/neurotrade/internal/common"
	"github.com/neurotrade/neurotrade/internal/interfaces"
	"github.com/neurotrade/neurotrade/internal/models"
)

// SlotEntry holds the whole-portfolio JSON blob under the account key.
type SlotEntry struct {
	Key   string `badgerhold:"key"`
	Value []byte
}

// TransactionEntry is one journal record.
type TransactionEntry struct {
	ID         string `badgerhold:"key"`
	Type       string
	Symbol     string
	Shares     int64
	FillPrice  float64
	CashAfter  float64
	ExecutedAt time.Time
}

// portfolioStorage implements interfaces.PortfolioStore on BadgerHold.
type portfolioStorage struct {
	store     *Store
	accountID string
	logger    *common.Logger
}

// NewPortfolioStorage creates a PortfolioStore persisting under the given
// account identifier.
func NewPortfolioStorage(store *Store, accountID string, logger *common.Logger) interfaces.PortfolioStore {
	return &portfolioStorage{store: store, accountID: accountID, logger: logger}
}

func (s *portfolioStorage) slotKey() string {
	return "portfolio:" + s.accountID
}

// SavePortfolio serializes the full portfolio into the account slot.
func (s *portfolioStorage) SavePortfolio(_ context.Context, portfolio *models.Portfolio) error {
	envelope := models.PortfolioEnvelope{
		SchemaVersion: models.SchemaVersion,
		AccountID:     s.accountID,
		Portfolio:     portfolio,
		SavedAt:       time.Now().UTC(),
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to serialize portfolio: %w", err)
	}

	entry := SlotEntry{Key: s.slotKey(), Value: data}
	if err := s.store.db.Upsert(entry.Key, &entry); err != nil {
		return fmt.Errorf("failed to save portfolio slot: %w", err)
	}
	return nil
}

// LoadPortfolio deserializes the stored portfolio. Absent, corrupt, or
// schema-mismatched slots return (nil, nil): the caller starts a fresh
// default portfolio instead of failing startup.
func (s *portfolioStorage) LoadPortfolio(_ context.Context) (*models.Portfolio, error) {
	var entry SlotEntry
	err := s.store.db.Get(s.slotKey(), &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load portfolio slot: %w", err)
	}

	var envelope models.PortfolioEnvelope
	if err := json.Unmarshal(entry.Value, &envelope); err != nil {
		s.logger.Warn().Err(err).Msg("Portfolio slot is corrupt, starting fresh")
		return nil, nil
	}
	if envelope.SchemaVersion != models.SchemaVersion || envelope.Portfolio == nil {
		s.logger.Warn().
			Int("found", envelope.SchemaVersion).
			Int("expected", models.SchemaVersion).
			Msg("Portfolio slot schema mismatch, starting fresh")
		return nil, nil
	}

	p := envelope.Portfolio
	if p.Holdings == nil {
		p.Holdings = make(map[string]models.Holding)
	}
	return p, nil
}

// AppendTransaction records one executed fill.
func (s *portfolioStorage) AppendTransaction(_ context.Context, txn *models.Transaction) error {
	entry := TransactionEntry{
		ID:         txn.ID,
		Type:       string(txn.Type),
		Symbol:     txn.Symbol,
		Shares:     txn.Shares,
		FillPrice:  txn.FillPrice,
		CashAfter:  txn.CashAfter,
		ExecutedAt: txn.ExecutedAt,
	}
	if err := s.store.db.Insert(entry.ID, &entry); err != nil {
		return fmt.Errorf("failed to append transaction %s: %w", txn.ID, err)
	}
	return nil
}

// ListTransactions returns journal entries, newest first.
func (s *portfolioStorage) ListTransactions(_ context.Context, limit int) ([]*models.Transaction, error) {
	var entries []TransactionEntry
	if err := s.store.db.Find(&entries, nil); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ExecutedAt.After(entries[j].ExecutedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	txns := make([]*models.Transaction, 0, len(entries))
	for _, e := range entries {
		txns = append(txns, &models.Transaction{
			ID:         e.ID,
			Type:       models.TradeType(e.Type),
			Symbol:     e.Symbol,
			Shares:     e.Shares,
			FillPrice:  e.FillPrice,
			CashAfter:  e.CashAfter,
			ExecutedAt: e.ExecutedAt,
		})
	}
	return txns, nil
}

// Close closes the underlying store.
func (s *portfolioStorage) Close() error {
	return s.store.Close()
}
