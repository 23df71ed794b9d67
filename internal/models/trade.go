package models

import (
	"errors"
	"time"
)

// TradeType distinguishes buys from sells.
type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// Valid reports whether the trade type is buy or sell.
func (t TradeType) Valid() bool {
	return t == TradeTypeBuy || t == TradeTypeSell
}

// Business-rule rejections. These are recoverable, reported to the caller,
// and never mutate portfolio state.
var (
	ErrInvalidQuantity    = errors.New("share quantity must be a positive integer")
	ErrPriceUnavailable   = errors.New("live price is not available")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
)

// RejectionCode returns the wire code for a business-rule rejection, or ""
// when the error is not a rejection.
func RejectionCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrPriceUnavailable):
		return "price_unavailable"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrInsufficientShares):
		return "insufficient_shares"
	default:
		return ""
	}
}

// IsRejection reports whether err is a business-rule rejection.
func IsRejection(err error) bool {
	return RejectionCode(err) != ""
}

// Transaction is a journal record of one executed fill. Replayed identical
// submissions produce independent fills with distinct IDs; the journal is
// an audit trail, not a deduplication mechanism.
type Transaction struct {
	ID         string    `json:"id"`
	Type       TradeType `json:"type"`
	Symbol     string    `json:"symbol"`
	Shares     int64     `json:"shares"`
	FillPrice  float64   `json:"fill_price"`
	CashAfter  float64   `json:"cash_after"`
	ExecutedAt time.Time `json:"executed_at"`
}

// TradeResult is the outcome of a successful trade execution.
type TradeResult struct {
	Transaction Transaction `json:"transaction"`
	Holding     *Holding    `json:"holding,omitempty"` // nil when a sell closed the position
	Closed      bool        `json:"closed"`            // true when the sell emptied the position
	Cash        float64     `json:"cash"`

	// PersistError is set when the in-memory mutation succeeded but the
	// save to durable storage failed. The trade stands; the caller may
	// retry the save.
	PersistError string `json:"persist_error,omitempty"`
}
