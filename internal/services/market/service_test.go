package market

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/neurotrade/neurotrade/internal/common"
	"github.com/neurotrade/neurotrade/internal/models"
)

type mockQuoteClient struct {
	prices map[string]float64
	series []models.SeriesPoint
	news   []models.NewsItem
}

func (m *mockQuoteClient) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	price, ok := m.prices[symbol]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return &models.Quote{Symbol: symbol, Price: price, ChangePct: 1.5}, nil
}

func (m *mockQuoteClient) GetSeries(_ context.Context, _ string, _ models.Timeframe) ([]models.SeriesPoint, error) {
	return m.series, nil
}

func (m *mockQuoteClient) GetNews(_ context.Context, _ string, limit int) ([]models.NewsItem, error) {
	if limit > 0 && len(m.news) > limit {
		return m.news[:limit], nil
	}
	return m.news, nil
}

func TestGetTickerTapeOmitsFailures(t *testing.T) {
	client := &mockQuoteClient{prices: map[string]float64{"AAPL": 150, "MSFT": 300}}
	svc := NewService(client, []string{"AAPL", "GOOGL", "MSFT"}, common.NewSilentLogger())

	items, err := svc.GetTickerTape(context.Background())
	if err != nil {
		t.Fatalf("GetTickerTape: %v", err)
	}

	// GOOGL fails and is omitted; configured order is preserved.
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Symbol != "AAPL" || items[1].Symbol != "MSFT" {
		t.Errorf("tape order: got %s, %s", items[0].Symbol, items[1].Symbol)
	}
}

func TestGetQuoteRequiresSymbol(t *testing.T) {
	svc := NewService(&mockQuoteClient{}, nil, common.NewSilentLogger())
	if _, err := svc.GetQuote(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank symbol")
	}
}

func TestGetSeriesRejectsUnknownTimeframe(t *testing.T) {
	svc := NewService(&mockQuoteClient{}, nil, common.NewSilentLogger())
	if _, err := svc.GetSeries(context.Background(), "MSFT", models.Timeframe("2h")); err == nil {
		t.Fatal("expected error for unsupported timeframe")
	}
}

func TestRenderSeriesChart(t *testing.T) {
	points := []models.SeriesPoint{
		{Label: "2026-08-25", Close: 100},
		{Label: "2026-08-26", Close: 102},
		{Label: "2026-08-27", Close: 101},
		{Label: "2026-08-28", Close: 105},
	}

	png, err := RenderSeriesChart("MSFT", points)
	if err != nil {
		t.Fatalf("RenderSeriesChart: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderSeriesChartNeedsTwoPoints(t *testing.T) {
	if _, err := RenderSeriesChart("MSFT", []models.SeriesPoint{{Label: "x", Close: 1}}); err == nil {
		t.Fatal("expected error for a single point")
	}
}
