// Package models defines data structures for neurotrade
package models

import (
	"fmt"
	"sort"
	"strings"
)

// Holding represents an open position in one symbol.
type Holding struct {
	Symbol      string  `json:"symbol"`
	Shares      int64   `json:"shares"`
	AverageCost float64 `json:"average_cost"`
}

// Portfolio is the paper-trading account state. Cash is the uninvested
// balance, Holdings maps symbol to position, and InitialValue is the fixed
// P/L baseline set once at account creation.
//
// Mutation goes through ApplyBuy and ApplySell only. Those methods enforce
// the structural invariants (cash >= 0, no zero-share holding, average cost
// recomputed only on buys) and panic when asked to violate them; business
// validation such as funds or shares sufficiency belongs to the caller.
type Portfolio struct {
	Cash         float64            `json:"cash"`
	Holdings     map[string]Holding `json:"holdings"`
	InitialValue float64            `json:"initial_value"`
}

// NewPortfolio creates an empty portfolio with the given starting cash.
// InitialValue is fixed to the starting cash and never changes afterwards.
func NewPortfolio(startingCash float64) *Portfolio {
	if startingCash < 0 {
		panic(fmt.Sprintf("portfolio: negative starting cash %.2f", startingCash))
	}
	return &Portfolio{
		Cash:         startingCash,
		Holdings:     make(map[string]Holding),
		InitialValue: startingCash,
	}
}

// NormalizeSymbol returns the canonical uppercase form of a symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// GetHolding returns the holding for a symbol, if present.
func (p *Portfolio) GetHolding(symbol string) (Holding, bool) {
	h, ok := p.Holdings[NormalizeSymbol(symbol)]
	return h, ok
}

// Symbols returns all held symbols in sorted order.
func (p *Portfolio) Symbols() []string {
	symbols := make([]string, 0, len(p.Holdings))
	for s := range p.Holdings {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// ApplyBuy deducts shares*fillPrice from cash and creates or updates the
// holding, recomputing the weighted average cost:
//
//	newAvg = (oldShares*oldAvg + shares*fillPrice) / (oldShares + shares)
//
// Funds sufficiency must already have been checked by the caller; a buy that
// would drive cash negative is a programming error and panics.
func (p *Portfolio) ApplyBuy(symbol string, shares int64, fillPrice float64) Holding {
	if shares <= 0 {
		panic(fmt.Sprintf("portfolio: buy with non-positive shares %d", shares))
	}
	if fillPrice <= 0 {
		panic(fmt.Sprintf("portfolio: buy with non-positive fill price %.4f", fillPrice))
	}

	symbol = NormalizeSymbol(symbol)
	cost := float64(shares) * fillPrice
	if p.Cash-cost < 0 {
		panic(fmt.Sprintf("portfolio: buy cost %.2f exceeds cash %.2f", cost, p.Cash))
	}

	existing := p.Holdings[symbol]
	totalShares := existing.Shares + shares
	totalCost := float64(existing.Shares)*existing.AverageCost + cost

	h := Holding{
		Symbol:      symbol,
		Shares:      totalShares,
		AverageCost: totalCost / float64(totalShares),
	}

	p.Cash -= cost
	p.Holdings[symbol] = h
	return h
}

// ApplySell credits shares*fillPrice to cash and decrements the position.
// Selling the full position removes the holding; removed is true in that
// case and the returned holding is the zero value. Average cost of the
// remaining position is never altered by a sell.
//
// Shares sufficiency must already have been checked by the caller; selling
// more than held is a programming error and panics.
func (p *Portfolio) ApplySell(symbol string, shares int64, fillPrice float64) (Holding, bool) {
	if shares <= 0 {
		panic(fmt.Sprintf("portfolio: sell with non-positive shares %d", shares))
	}
	if fillPrice <= 0 {
		panic(fmt.Sprintf("portfolio: sell with non-positive fill price %.4f", fillPrice))
	}

	symbol = NormalizeSymbol(symbol)
	existing, ok := p.Holdings[symbol]
	if !ok || existing.Shares < shares {
		panic(fmt.Sprintf("portfolio: sell %d shares of %s with %d held", shares, symbol, existing.Shares))
	}

	p.Cash += float64(shares) * fillPrice

	remaining := existing.Shares - shares
	if remaining == 0 {
		delete(p.Holdings, symbol)
		return Holding{}, true
	}

	h := Holding{
		Symbol:      symbol,
		Shares:      remaining,
		AverageCost: existing.AverageCost,
	}
	p.Holdings[symbol] = h
	return h, false
}

// Clone returns a deep copy for read-only consumers such as valuation.
func (p *Portfolio) Clone() *Portfolio {
	holdings := make(map[string]Holding, len(p.Holdings))
	for s, h := range p.Holdings {
		holdings[s] = h
	}
	return &Portfolio{
		Cash:         p.Cash,
		Holdings:     holdings,
		InitialValue: p.InitialValue,
	}
}
