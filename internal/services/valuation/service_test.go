package valuation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/neurotrade/neurotrade/internal/common"
	"github.com/neurotrade/neurotrade/internal/models"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

type mockQuoteClient struct {
	prices map[string]float64
}

func (m *mockQuoteClient) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	price, ok := m.prices[symbol]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return &models.Quote{Symbol: symbol, Price: price}, nil
}

func (m *mockQuoteClient) GetSeries(_ context.Context, _ string, _ models.Timeframe) ([]models.SeriesPoint, error) {
	return nil, nil
}

func (m *mockQuoteClient) GetNews(_ context.Context, _ string, _ int) ([]models.NewsItem, error) {
	return nil, nil
}

func TestValuateAllPricesAvailable(t *testing.T) {
	p := models.NewPortfolio(10000)
	p.ApplyBuy("MSFT", 10, 100) // cash 9000
	p.ApplyBuy("AAPL", 5, 200)  // cash 8000

	svc := NewService(&mockQuoteClient{prices: map[string]float64{"MSFT": 110, "AAPL": 190}}, common.NewSilentLogger())

	v, err := svc.Valuate(context.Background(), p)
	if err != nil {
		t.Fatalf("Valuate: %v", err)
	}

	// 8000 + 10*110 + 5*190 = 10050
	if !approxEqual(v.TotalValue, 10050) {
		t.Errorf("total value: got %.2f, want 10050", v.TotalValue)
	}
	if !approxEqual(v.ProfitLoss, 50) {
		t.Errorf("profit/loss: got %.2f, want 50", v.ProfitLoss)
	}
	if !approxEqual(v.ProfitLossPct, 0.5) {
		t.Errorf("profit/loss pct: got %.4f, want 0.5", v.ProfitLossPct)
	}
	if v.Partial {
		t.Error("valuation should not be partial")
	}
	if len(v.Holdings) != 2 {
		t.Fatalf("holdings: got %d, want 2", len(v.Holdings))
	}

	// Symbols() sorts, so AAPL comes first.
	aapl := v.Holdings[0]
	if aapl.Symbol != "AAPL" || !aapl.PriceAvailable {
		t.Fatalf("unexpected first holding: %+v", aapl)
	}
	if !approxEqual(aapl.UnrealizedReturn, 5*(190-200.0)) {
		t.Errorf("AAPL unrealized return: got %.2f, want -50", aapl.UnrealizedReturn)
	}
}

func TestValuateMissingPriceMarksPartial(t *testing.T) {
	p := models.NewPortfolio(10000)
	p.ApplyBuy("MSFT", 10, 100)
	p.ApplyBuy("AAPL", 5, 200)

	svc := NewService(&mockQuoteClient{prices: map[string]float64{"MSFT": 110}}, common.NewSilentLogger())

	v, err := svc.Valuate(context.Background(), p)
	if err != nil {
		t.Fatalf("Valuate: %v", err)
	}

	if !v.Partial {
		t.Error("valuation should be partial")
	}
	if len(v.Missing) != 1 || v.Missing[0] != "AAPL" {
		t.Errorf("missing: got %v, want [AAPL]", v.Missing)
	}
	// AAPL contributes nothing, not zero-priced shares: 8000 + 10*110.
	if !approxEqual(v.TotalValue, 9100) {
		t.Errorf("total value: got %.2f, want 9100", v.TotalValue)
	}

	for _, hv := range v.Holdings {
		if hv.Symbol == "AAPL" {
			if hv.PriceAvailable {
				t.Error("AAPL should be flagged price-unavailable")
			}
			if hv.MarketValue != 0 {
				t.Errorf("AAPL market value: got %.2f, want 0", hv.MarketValue)
			}
		}
	}
}

func TestValuateEmptyPortfolio(t *testing.T) {
	p := models.NewPortfolio(10000)
	svc := NewService(&mockQuoteClient{}, common.NewSilentLogger())

	v, err := svc.Valuate(context.Background(), p)
	if err != nil {
		t.Fatalf("Valuate: %v", err)
	}
	if !approxEqual(v.TotalValue, 10000) || !approxEqual(v.ProfitLoss, 0) {
		t.Errorf("empty portfolio: total %.2f, P/L %.2f", v.TotalValue, v.ProfitLoss)
	}
}

func TestComputeZeroInitialValue(t *testing.T) {
	p := &models.Portfolio{Cash: 0, Holdings: map[string]models.Holding{}, InitialValue: 0}

	v := Compute(p, nil, nil, time.Now())
	if v.ProfitLossPct != 0 {
		t.Errorf("zero baseline should not divide: got %.4f", v.ProfitLossPct)
	}
}
