package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neurotrade/neurotrade/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", WithBaseURL(server.URL), WithRateLimit(1000))
}

func TestGetQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "GLOBAL_QUOTE" {
			t.Errorf("function: got %s", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "MSFT" {
			t.Errorf("symbol: got %s", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("apikey: got %s", got)
		}
		w.Write([]byte(`{
			"Global Quote": {
				"01. symbol": "MSFT",
				"05. price": "402.5600",
				"07. latest trading day": "2026-08-28",
				"09. change": "-1.2400",
				"10. change percent": "-0.3071%"
			}
		}`))
	})

	quote, err := client.GetQuote(context.Background(), "msft")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if quote.Symbol != "MSFT" {
		t.Errorf("symbol: got %s", quote.Symbol)
	}
	if quote.Price != 402.56 {
		t.Errorf("price: got %v", quote.Price)
	}
	if quote.Change != -1.24 {
		t.Errorf("change: got %v", quote.Change)
	}
	if quote.ChangePct != -0.3071 {
		t.Errorf("change pct: got %v", quote.ChangePct)
	}
	if quote.Timestamp.Format("2006-01-02") != "2026-08-28" {
		t.Errorf("timestamp: got %v", quote.Timestamp)
	}
}

func TestGetQuoteUnknownSymbol(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Alpha Vantage answers unknown symbols with an empty object.
		w.Write([]byte(`{"Global Quote": {}}`))
	})

	_, err := client.GetQuote(context.Background(), "ZZZZ")
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("got %v, want ErrSymbolNotFound", err)
	}
}

func TestGetQuoteRateLimitNote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 25 requests per day."}`))
	})

	_, err := client.GetQuote(context.Background(), "MSFT")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
}

func TestGetQuoteErrorMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API call."}`))
	})

	_, err := client.GetQuote(context.Background(), "MSFT")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want APIError", err)
	}
	if apiErr.Message != "Invalid API call." {
		t.Errorf("message: got %q", apiErr.Message)
	}
}

func TestGetQuoteHTTP429(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GetQuote(context.Background(), "MSFT")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
}

func TestGetSeriesDaily(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "TIME_SERIES_DAILY" {
			t.Errorf("function: got %s", got)
		}
		if got := r.URL.Query().Get("outputsize"); got != "compact" {
			t.Errorf("outputsize: got %s", got)
		}
		w.Write([]byte(`{
			"Meta Data": {"2. Symbol": "MSFT"},
			"Time Series (Daily)": {
				"2026-08-28": {"1. open": "401.0", "4. close": "402.56"},
				"2026-08-26": {"1. open": "398.0", "4. close": "399.10"},
				"2026-08-27": {"1. open": "399.0", "4. close": "401.00"}
			}
		}`))
	})

	points, err := client.GetSeries(context.Background(), "MSFT", models.Timeframe1W)
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	// Ordered oldest to newest.
	if points[0].Label != "2026-08-26" || points[2].Label != "2026-08-28" {
		t.Errorf("ordering: got %s .. %s", points[0].Label, points[2].Label)
	}
	if points[2].Close != 402.56 {
		t.Errorf("close: got %v", points[2].Close)
	}
}

func TestGetSeriesIntradaySetsInterval(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "TIME_SERIES_INTRADAY" {
			t.Errorf("function: got %s", got)
		}
		if got := r.URL.Query().Get("interval"); got != "5min" {
			t.Errorf("interval: got %s", got)
		}
		w.Write([]byte(`{
			"Time Series (5min)": {
				"2026-08-28 15:55:00": {"4. close": "402.50"},
				"2026-08-28 16:00:00": {"4. close": "402.56"}
			}
		}`))
	})

	points, err := client.GetSeries(context.Background(), "MSFT", models.Timeframe1D)
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
}

func TestGetSeriesNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Meta Data": {}}`))
	})

	_, err := client.GetSeries(context.Background(), "ZZZZ", models.Timeframe1M)
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("got %v, want ErrSymbolNotFound", err)
	}
}

func TestGetNews(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "NEWS_SENTIMENT" {
			t.Errorf("function: got %s", got)
		}
		if got := r.URL.Query().Get("tickers"); got != "MSFT" {
			t.Errorf("tickers: got %s", got)
		}
		w.Write([]byte(`{
			"feed": [
				{
					"title": "Strong quarter",
					"summary": "Earnings beat.",
					"url": "https://example.com/a",
					"time_published": "20260828T093000",
					"overall_sentiment_score": 0.42
				},
				{
					"title": "Lawsuit filed",
					"summary": "Regulatory trouble.",
					"url": "https://example.com/b",
					"time_published": "bogus",
					"overall_sentiment_score": -0.51
				},
				{
					"title": "Sideways day",
					"summary": "Nothing happened.",
					"url": "https://example.com/c",
					"time_published": "20260828T160000",
					"overall_sentiment_score": 0.02
				}
			]
		}`))
	})

	items, err := client.GetNews(context.Background(), "MSFT", 10)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Sentiment != models.SentimentPositive {
		t.Errorf("item 0 sentiment: got %s", items[0].Sentiment)
	}
	if items[1].Sentiment != models.SentimentNegative {
		t.Errorf("item 1 sentiment: got %s", items[1].Sentiment)
	}
	if !items[1].PublishedAt.IsZero() {
		t.Error("unparseable timestamp should leave PublishedAt zero")
	}
	if items[2].Sentiment != models.SentimentNeutral {
		t.Errorf("item 2 sentiment: got %s", items[2].Sentiment)
	}
	if items[0].PublishedAt.Hour() != 9 {
		t.Errorf("item 0 published at: got %v", items[0].PublishedAt)
	}
}

func TestGetNewsLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"feed": [
				{"title": "a", "overall_sentiment_score": 0.1},
				{"title": "b", "overall_sentiment_score": 0.2},
				{"title": "c", "overall_sentiment_score": 0.3}
			]
		}`))
	})

	items, err := client.GetNews(context.Background(), "MSFT", 2)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
}

func TestGetNewsEmptyFeed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": "0"}`))
	})

	items, err := client.GetNews(context.Background(), "MSFT", 10)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d items, want 0", len(items))
	}
}
