package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/neurotrade/neurotrade/internal/models"
)

// globalQuote mirrors the GLOBAL_QUOTE payload. Alpha Vantage returns all
// numeric fields as strings under positional keys.
type globalQuote struct {
	Symbol        string `json:"01. symbol"`
	Price         string `json:"05. price"`
	LatestDay     string `json:"07. latest trading day"`
	Change        string `json:"09. change"`
	ChangePercent string `json:"10. change percent"`
}

// GetQuote retrieves the current quote for a symbol. An empty "Global
// Quote" object means the API knows no such symbol and maps to
// ErrSymbolNotFound.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = models.NormalizeSymbol(symbol)

	params := url.Values{}
	params.Set("symbol", symbol)

	raw, err := c.query(ctx, "GLOBAL_QUOTE", params)
	if err != nil {
		return nil, err
	}

	payload, ok := raw["Global Quote"]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	var gq globalQuote
	if err := json.Unmarshal(payload, &gq); err != nil {
		return nil, fmt.Errorf("failed to parse global quote: %w", err)
	}
	if gq.Symbol == "" || gq.Price == "" {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	price, err := strconv.ParseFloat(gq.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q for %s: %w", gq.Price, symbol, err)
	}
	change, _ := strconv.ParseFloat(gq.Change, 64)
	changePct, _ := strconv.ParseFloat(strings.TrimSuffix(gq.ChangePercent, "%"), 64)

	timestamp := time.Now().UTC()
	if t, err := time.Parse("2006-01-02", gq.LatestDay); err == nil {
		timestamp = t
	}

	return &models.Quote{
		Symbol:    gq.Symbol,
		Price:     price,
		Change:    change,
		ChangePct: changePct,
		Timestamp: timestamp,
	}, nil
}
