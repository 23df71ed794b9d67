// Package models defines data structures for neurotrade
package models

import (
	"time"
)

// Quote holds a live price snapshot for one symbol. Quotes are transient:
// they are fetched per request and consumed immediately, never persisted.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_pct"`
	Timestamp time.Time `json:"timestamp"`
}

// SeriesPoint is one close price in a historical series.
type SeriesPoint struct {
	Label string  `json:"label"` // date or datetime label from the source
	Close float64 `json:"close"`
}

// Timeframe selects the historical series resolution for charting.
type Timeframe string

const (
	Timeframe1D Timeframe = "1d"
	Timeframe1W Timeframe = "1w"
	Timeframe1M Timeframe = "1m"
	Timeframe3M Timeframe = "3m"
	Timeframe1Y Timeframe = "1y"
)

// SeriesResolution is the source data resolution backing a timeframe.
type SeriesResolution string

const (
	ResolutionIntraday SeriesResolution = "intraday"
	ResolutionDaily    SeriesResolution = "daily"
	ResolutionWeekly   SeriesResolution = "weekly"
)

// Resolution maps a timeframe to the series resolution to request:
// 1d uses intraday bars, 1w and 1m daily bars, 3m and 1y weekly bars.
// Unknown timeframes fall back to daily.
func (t Timeframe) Resolution() SeriesResolution {
	switch t {
	case Timeframe1D:
		return ResolutionIntraday
	case Timeframe1W, Timeframe1M:
		return ResolutionDaily
	case Timeframe3M, Timeframe1Y:
		return ResolutionWeekly
	default:
		return ResolutionDaily
	}
}

// Valid reports whether the timeframe is one of the supported values.
func (t Timeframe) Valid() bool {
	switch t {
	case Timeframe1D, Timeframe1W, Timeframe1M, Timeframe3M, Timeframe1Y:
		return true
	}
	return false
}

// NewsSentiment labels an article's sentiment score.
type NewsSentiment string

const (
	SentimentPositive NewsSentiment = "positive"
	SentimentNegative NewsSentiment = "negative"
	SentimentNeutral  NewsSentiment = "neutral"
)

// Sentiment score thresholds. Scores above the bullish threshold classify
// as positive, below the bearish threshold as negative.
const (
	SentimentBullishThreshold = 0.35
	SentimentBearishThreshold = -0.35
)

// ClassifySentiment maps a raw sentiment score to a label.
func ClassifySentiment(score float64) NewsSentiment {
	switch {
	case score > SentimentBullishThreshold:
		return SentimentPositive
	case score < SentimentBearishThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// NewsItem represents a news article with sentiment.
type NewsItem struct {
	Title          string        `json:"title"`
	Summary        string        `json:"summary"`
	URL            string        `json:"url"`
	SentimentScore float64       `json:"sentiment_score"`
	Sentiment      NewsSentiment `json:"sentiment"`
	PublishedAt    time.Time     `json:"published_at"`
}

// TickerItem is one entry on the scrolling ticker tape.
type TickerItem struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}
