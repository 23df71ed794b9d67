package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/neurotrade/neurotrade/internal/models"
)

// newsTimeLayout is the compact timestamp format used by NEWS_SENTIMENT
// (e.g. "20240131T093000").
const newsTimeLayout = "20060102T150405"

type newsFeedItem struct {
	Title                 string  `json:"title"`
	Summary               string  `json:"summary"`
	URL                   string  `json:"url"`
	TimePublished         string  `json:"time_published"`
	OverallSentimentScore float64 `json:"overall_sentiment_score"`
}

// GetNews retrieves recent news for a symbol. Articles with unparseable
// timestamps are kept with a zero PublishedAt rather than dropped.
func (c *Client) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	symbol = models.NormalizeSymbol(symbol)

	params := url.Values{}
	params.Set("tickers", symbol)

	raw, err := c.query(ctx, "NEWS_SENTIMENT", params)
	if err != nil {
		return nil, err
	}

	payload, ok := raw["feed"]
	if !ok {
		return []models.NewsItem{}, nil
	}

	var feed []newsFeedItem
	if err := json.Unmarshal(payload, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}

	items := make([]models.NewsItem, 0, len(feed))
	for _, f := range feed {
		var published time.Time
		if t, err := time.Parse(newsTimeLayout, f.TimePublished); err == nil {
			published = t
		}
		items = append(items, models.NewsItem{
			Title:          f.Title,
			Summary:        f.Summary,
			URL:            f.URL,
			SentimentScore: f.OverallSentimentScore,
			Sentiment:      models.ClassifySentiment(f.OverallSentimentScore),
			PublishedAt:    published,
		})
	}
	return items, nil
}
