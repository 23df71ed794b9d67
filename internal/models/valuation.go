package models

import "time"

// HoldingValue is the live market value of one position.
type HoldingValue struct {
	Symbol           string  `json:"symbol"`
	Shares           int64   `json:"shares"`
	AverageCost      float64 `json:"average_cost"`
	Price            float64 `json:"price,omitempty"`
	MarketValue      float64 `json:"market_value,omitempty"`
	UnrealizedReturn float64 `json:"unrealized_return,omitempty"`
	PriceAvailable   bool    `json:"price_available"`
}

// Valuation aggregates live prices over the portfolio. Holdings whose price
// could not be fetched are excluded from TotalValue, listed in Missing, and
// flag the result as Partial rather than silently contributing zero.
type Valuation struct {
	TotalValue     float64        `json:"total_value"`
	Cash           float64        `json:"cash"`
	ProfitLoss     float64        `json:"profit_loss"`
	ProfitLossPct  float64        `json:"profit_loss_pct"`
	Holdings       []HoldingValue `json:"holdings"`
	Partial        bool           `json:"partial"`
	Missing        []string       `json:"missing,omitempty"`
	ComputedAt     time.Time      `json:"computed_at"`
}
